package stages

import (
	"github.com/kellendonk/webv2/deployments/infra/config/domain"
)

const (
	kellendonkZoneId   = "Z04480822SF8LKAO9VKJ5"
	kellendonkZoneName = "kellendonk.ca"
)

// Default is used when no stages file exists: a Dev stage on CloudFront
// defaults and Production on kellendonk.ca.
func Default() *Config {
	return &Config{
		Stages: []Stage{
			{Name: "Kellendonk-Dev"},
			{
				Name: "Kellendonk-Production",
				DomainName: inKellendonkZone(domain.Spec{
					DomainName:              "www.kellendonk.ca",
					SubjectAlternativeNames: []string{"kellendonk.ca"},
				}),
				IdentityDomainName: inKellendonkZone(domain.Spec{
					DomainName: "auth.kellendonk.ca",
				}),
			},
		},
	}
}

func inKellendonkZone(s domain.Spec) *domain.Spec {
	s = s.WithZone(kellendonkZoneId, kellendonkZoneName)
	return &s
}
