package domain

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestDomainNames_PrimaryFirst(t *testing.T) {
	s := Spec{DomainName: "www.kellendonk.ca", SubjectAlternativeNames: []string{"kellendonk.ca"}}
	assert.Equal(t, []string{"www.kellendonk.ca", "kellendonk.ca"}, s.DomainNames())
}

func TestDomainNames_Dedup(t *testing.T) {
	s := Spec{DomainName: "www.kellendonk.ca", SubjectAlternativeNames: []string{"www.kellendonk.ca", "kellendonk.ca", "kellendonk.ca"}}
	assert.Equal(t, []string{"www.kellendonk.ca", "kellendonk.ca"}, s.DomainNames())
}

func TestURL(t *testing.T) {
	s := Spec{DomainName: "www.kellendonk.ca"}
	assert.Equal(t, "https://www.kellendonk.ca/login/callback", s.URL("/login/callback"))
}

func TestWithZone(t *testing.T) {
	s := Spec{DomainName: "auth.kellendonk.ca"}.WithZone("Z04480822SF8LKAO9VKJ5", "kellendonk.ca")
	assert.Equal(t, "Z04480822SF8LKAO9VKJ5", s.HostedZoneId)
	assert.Equal(t, "kellendonk.ca", s.HostedZoneName)
}

func TestValidation(t *testing.T) {
	v := validator.New()

	valid := Spec{DomainName: "www.kellendonk.ca", HostedZoneId: "Z1", HostedZoneName: "kellendonk.ca"}
	assert.NoError(t, v.Struct(valid))

	badSan := valid
	badSan.SubjectAlternativeNames = []string{"not a domain"}
	assert.Error(t, v.Struct(badSan))

	noZone := valid
	noZone.HostedZoneId = ""
	assert.Error(t, v.Struct(noZone))
}
