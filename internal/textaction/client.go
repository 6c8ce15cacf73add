package textaction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aleister1102/redline/internal/classifier"
	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"github.com/aleister1102/redline/internal/config"
	"github.com/aleister1102/redline/internal/models"
	"github.com/rs/zerolog"
)

// CredentialProvider supplies the bearer credential for the text
// transformation service. Absence of a credential is a precondition failure,
// checked before any network call.
type CredentialProvider interface {
	Token() (string, bool)
}

// StaticCredential is a CredentialProvider backed by a fixed token string.
type StaticCredential string

// Token implements CredentialProvider.
func (s StaticCredential) Token() (string, bool) {
	return string(s), s != ""
}

// Client issues text action requests against the transformation service and
// returns normalized StructuredResult values. Every success body passes
// through the classifier before the caller sees it.
type Client struct {
	doer       Doer
	endpoint   string
	timeout    time.Duration
	creds      CredentialProvider
	classifier *classifier.Classifier
	validator  *requestValidator
	logger     zerolog.Logger
}

// ClientBuilder provides a fluent interface for creating a Client.
type ClientBuilder struct {
	cfg     config.ClientConfig
	creds   CredentialProvider
	doer    Doer
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClientBuilder creates a new builder with default configuration.
func NewClientBuilder(logger zerolog.Logger) *ClientBuilder {
	return &ClientBuilder{
		cfg:    config.NewDefaultClientConfig(),
		logger: logger,
	}
}

// WithConfig sets the client configuration.
func (b *ClientBuilder) WithConfig(cfg config.ClientConfig) *ClientBuilder {
	b.cfg = cfg
	return b
}

// WithCredentialProvider sets the credential source.
func (b *ClientBuilder) WithCredentialProvider(creds CredentialProvider) *ClientBuilder {
	b.creds = creds
	return b
}

// WithDoer overrides the transport, used by tests.
func (b *ClientBuilder) WithDoer(doer Doer) *ClientBuilder {
	b.doer = doer
	return b
}

// WithTimeout overrides the configured round-trip bound with an exact
// duration.
func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	b.timeout = timeout
	return b
}

// Build creates a new Client instance.
func (b *ClientBuilder) Build() (*Client, error) {
	if b.cfg.Endpoint == "" {
		return nil, errorwrapper.NewValidationError("endpoint", b.cfg.Endpoint, "text action endpoint cannot be empty")
	}

	doer := b.doer
	if doer == nil {
		doer = newTransportClient(b.cfg, b.logger)
	}

	timeout := b.timeout
	if timeout <= 0 {
		timeout = b.cfg.Timeout()
	}

	return &Client{
		doer:       doer,
		endpoint:   b.cfg.Endpoint,
		timeout:    timeout,
		creds:      b.creds,
		classifier: classifier.NewClassifier(b.logger),
		validator:  newRequestValidator(),
		logger:     b.logger.With().Str("component", "TextActionClient").Logger(),
	}, nil
}

// Execute validates the request, performs the text action, and normalizes
// the response. Failures are returned as typed errors per the taxonomy:
// ValidationError, AuthenticationError, TimeoutError, ServiceError,
// ClassificationError.
func (c *Client) Execute(ctx context.Context, req models.TextActionRequest) (*models.StructuredResult, error) {
	start := time.Now()

	if err := c.validator.Validate(req); err != nil {
		c.logFailure(req, err, time.Since(start))
		return nil, err
	}

	token, ok := c.credential()
	if !ok {
		err := errorwrapper.NewAuthenticationError("no credential available")
		c.logFailure(req, err, time.Since(start))
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.performTextAction(ctx, req, token)
	if err != nil {
		c.logFailure(req, err, time.Since(start))
		return nil, err
	}

	result, err := c.classifier.Normalize(body, classifier.RequestContext{
		Instruction:  req.Context,
		OriginalText: req.Text,
	})
	if err != nil {
		c.logFailure(req, err, time.Since(start))
		return nil, err
	}

	c.logger.Info().
		Str("agent_id", req.AgentID).
		Str("action_type", string(req.ActionType)).
		Str("task_type", string(result.Type)).
		Dur("elapsed", time.Since(start)).
		Msg("Text action completed")

	return result, nil
}

// performTextAction is the low-level request/response exchange. It returns
// the raw success body; non-success statuses become ServiceError with the
// body surfaced verbatim, and deadline expiry becomes TimeoutError with the
// in-flight request cancelled at the transport level.
func (c *Client) performTextAction(ctx context.Context, req models.TextActionRequest, token string) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to encode text action request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build text action request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errorwrapper.NewTimeoutError("text action", err)
		}
		return nil, errorwrapper.WrapError(err, "text action transport failure")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errorwrapper.NewTimeoutError("text action", err)
		}
		return nil, errorwrapper.WrapError(err, "failed to read text action response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorwrapper.NewServiceError(resp.StatusCode, string(body), c.endpoint)
	}

	return body, nil
}

func (c *Client) credential() (string, bool) {
	if c.creds == nil {
		return "", false
	}
	return c.creds.Token()
}

func (c *Client) logFailure(req models.TextActionRequest, err error, elapsed time.Duration) {
	c.logger.Error().
		Err(err).
		Str("agent_id", req.AgentID).
		Str("action_type", string(req.ActionType)).
		Dur("elapsed", elapsed).
		Msg("Text action failed")
}
