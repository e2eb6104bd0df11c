package domain

import (
	"github.com/samber/lo"
)

// Spec names a domain, its alternative names, and the Route 53 zone that
// holds their records.
type Spec struct {
	// DomainName is the primary name. Visitors on any other name are
	// redirected here.
	DomainName              string   `yaml:"domainName" toml:"domainName" validate:"required,fqdn"`
	SubjectAlternativeNames []string `yaml:"subjectAlternativeNames,omitempty" toml:"subjectAlternativeNames" validate:"dive,fqdn"`
	HostedZoneId            string   `yaml:"hostedZoneId" toml:"hostedZoneId" validate:"required"`
	HostedZoneName          string   `yaml:"hostedZoneName" toml:"hostedZoneName" validate:"required,fqdn"`
}

// DomainNames returns the primary name followed by the alternative names,
// without duplicates.
func (s Spec) DomainNames() []string {
	return lo.Uniq(append([]string{s.DomainName}, s.SubjectAlternativeNames...))
}

// URL returns https://<DomainName><path>.
func (s Spec) URL(path string) string {
	return "https://" + s.DomainName + path
}

// WithZone returns a copy of s placed in the given hosted zone.
func (s Spec) WithZone(hostedZoneId, hostedZoneName string) Spec {
	s.HostedZoneId = hostedZoneId
	s.HostedZoneName = hostedZoneName
	return s
}
