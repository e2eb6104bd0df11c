package edge

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ApiKeyConfig configures the anonymous credentials added to API requests.
type ApiKeyConfig struct {
	ApiKey string `json:"apiKey" validate:"required"`
}

// ApiKeyTransformer lets anonymous visitors reach the GraphQL API by adding
// the public API key to requests that carry no authorization header.
type ApiKeyTransformer struct {
	cfg ApiKeyConfig
}

func NewApiKeyTransformer(cfg ApiKeyConfig) (*ApiKeyTransformer, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &ApiKeyTransformer{cfg: cfg}, nil
}

func (t *ApiKeyTransformer) Config() ApiKeyConfig {
	return t.cfg
}

// Transform always passes the request through. An empty authorization header
// counts as absent.
func (t *ApiKeyTransformer) Transform(req Request) Decision {
	if auth, ok := req.Headers.Get(HeaderAuthorization); ok && auth.Value != "" {
		return PassThrough{Request: req}
	}

	return PassThrough{Request: req.WithHeader(HeaderApiKey, t.cfg.ApiKey)}
}
