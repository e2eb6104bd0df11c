package edge

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config is the deployment-time configuration of the website viewer-request
// rule. The JSON form is what gets baked into the CloudFront Function.
type Config struct {
	// WebsiteHash partitions the CDN cache by website deployment.
	WebsiteHash string `json:"websiteHash" validate:"required"`
	// PrimaryDomain is the canonical host name. Empty disables the redirect.
	PrimaryDomain string `json:"primaryDomain,omitempty" validate:"omitempty,hostname_rfc1123"`
}

// WebsiteTransformer redirects visitors to the primary domain and tags every
// other request with the website hash.
type WebsiteTransformer struct {
	cfg Config
}

// NewWebsiteTransformer validates cfg and returns a transformer bound to it.
func NewWebsiteTransformer(cfg Config) (*WebsiteTransformer, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &WebsiteTransformer{cfg: cfg}, nil
}

// Config returns the configuration the transformer was built with.
func (t *WebsiteTransformer) Config() Config {
	return t.cfg
}

// Transform redirects to https://<PrimaryDomain><uri> when a primary domain is
// configured and the host header is missing or different. Otherwise the
// request passes through with x-website-hash set.
func (t *WebsiteTransformer) Transform(req Request) Decision {
	if t.cfg.PrimaryDomain != "" {
		host, ok := req.Headers.Get(HeaderHost)
		if !ok || host.Value != t.cfg.PrimaryDomain {
			return NewRedirect("https://" + t.cfg.PrimaryDomain + req.URI)
		}
	}

	return PassThrough{Request: req.WithHeader(HeaderWebsiteHash, t.cfg.WebsiteHash)}
}
