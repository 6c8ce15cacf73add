package config

// DiffConfig holds settings for diff presentation.
type DiffConfig struct {
	// AutoLineThresholdChars is the character count past which callers
	// switch from word to line granularity. Policy lives with the caller,
	// never inside the diff engine.
	AutoLineThresholdChars int `json:"auto_line_threshold_chars,omitempty" yaml:"auto_line_threshold_chars,omitempty" validate:"gte=1"`
}

// NewDefaultDiffConfig creates default diff configuration.
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		AutoLineThresholdChars: 500,
	}
}
