package stages

import (
	"github.com/kellendonk/webv2/deployments/infra/config/domain"
)

// Stage describes one deployment of the website.
type Stage struct {
	// Name is the CDK stage id, e.g. "Kellendonk-Production".
	Name string `yaml:"name" toml:"name" validate:"required"`
	// DomainName gives the CDN a custom domain. Nil keeps the CloudFront
	// domain and disables the primary-domain redirect.
	DomainName *domain.Spec `yaml:"domainName,omitempty" toml:"domainName"`
	// IdentityDomainName gives the hosted login a custom domain.
	IdentityDomainName *domain.Spec `yaml:"identityDomainName,omitempty" toml:"identityDomainName"`
	// WebDistDir overrides WEB_DIST_DIR for this stage.
	WebDistDir string `yaml:"webDistDir,omitempty" toml:"webDistDir"`
}

// Config is the root structure of the stages file.
type Config struct {
	Stages []Stage `yaml:"stages" toml:"stages" validate:"required,min=1,unique=Name,dive"`
}

// Names lists the stage names in file order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Stages))
	for _, s := range c.Stages {
		names = append(names, s.Name)
	}
	return names
}
