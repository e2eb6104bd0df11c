package identity_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellendonk/webv2/deployments/infra/config/domain"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/identity"
	"github.com/kellendonk/webv2/deployments/infra/tests/testutil"
)

func TestNewIdentity_PrefixDomain(t *testing.T) {
	_, stack := testutil.NewStack(t)

	id := identity.NewIdentity(stack, "Identity", nil)
	require.NotNil(t, id.BaseUrl)

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::Cognito::UserPool"), map[string]interface{}{
		"UserPoolName":          "TestStack",
		"AdminCreateUserConfig": map[string]interface{}{"AllowAdminCreateUserOnly": false},
	})
	template.HasResourceProperties(jsii.String("AWS::Cognito::UserPoolDomain"), map[string]interface{}{
		"Domain": "teststack-" + testutil.TestAccount,
	})
}

func TestNewIdentity_CustomDomain(t *testing.T) {
	_, stack := testutil.NewStack(t)
	domainName := domainname.NewDomainName(stack, "IdentityDomainName", &domainname.DomainNameProps{
		Spec: domain.Spec{
			DomainName:     "auth.example.com",
			HostedZoneId:   "Z0000000000000000000",
			HostedZoneName: "example.com",
		},
	})

	id := identity.NewIdentity(stack, "Identity", &identity.IdentityProps{DomainName: domainName})

	assert.Equal(t, "https://auth.example.com", *id.BaseUrl)
	assert.True(t, domainName.Bound())
	assertions.Template_FromStack(stack, nil).HasResourceProperties(jsii.String("AWS::Cognito::UserPoolDomain"), map[string]interface{}{
		"Domain": "auth.example.com",
	})
}

func TestAddWebClient(t *testing.T) {
	_, stack := testutil.NewStack(t)
	domainName := domainname.NewDomainName(stack, "IdentityDomainName", &domainname.DomainNameProps{
		Spec: domain.Spec{
			DomainName:     "auth.example.com",
			HostedZoneId:   "Z0000000000000000000",
			HostedZoneName: "example.com",
		},
	})
	id := identity.NewIdentity(stack, "Identity", &identity.IdentityProps{DomainName: domainName})

	client := id.AddWebClient("WebClient", &identity.OAuthWebClientOptions{
		CallbackUrls: []string{"http://localhost:4200/login/callback", "", "http://localhost:4200/login/callback"},
	})

	assert.Equal(t, "https://auth.example.com/oauth2/authorize", *client.AuthorizeUrl)
	assert.Equal(t, "https://auth.example.com/oauth2/token", *client.TokenUrl)
	require.NotNil(t, client.ClientId)
	require.NotNil(t, client.Authority)

	assertions.Template_FromStack(stack, nil).HasResourceProperties(jsii.String("AWS::Cognito::UserPoolClient"), map[string]interface{}{
		"AllowedOAuthFlows": []interface{}{"code"},
		"CallbackURLs":      []interface{}{"http://localhost:4200/login/callback"},
	})
}
