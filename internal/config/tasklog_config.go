package config

// TaskLogConfig holds settings for the text action task log.
type TaskLogConfig struct {
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty" validate:"required"`
	// RetentionLimit bounds the number of tasks kept; the oldest tasks are
	// pruned on append once the limit is exceeded.
	RetentionLimit int `json:"retention_limit,omitempty" yaml:"retention_limit,omitempty" validate:"gte=1"`
}

// NewDefaultTaskLogConfig creates default task log configuration.
func NewDefaultTaskLogConfig() TaskLogConfig {
	return TaskLogConfig{
		DatabasePath:   "database/tasklog.db",
		RetentionLimit: 500,
	}
}
