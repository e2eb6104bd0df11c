// Package identity provisions the Cognito user pool visitors sign in with.
package identity

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscognito"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
)

type IdentityProps struct {
	// DomainName hosts the sign-in UI. A Cognito prefix domain is used when
	// nil.
	DomainName *domainname.DomainName
}

type Identity struct {
	constructs.Construct

	UserPool awscognito.UserPool
	// BaseUrl is the root of the hosted UI, without a trailing slash.
	BaseUrl *string
}

func NewIdentity(scope constructs.Construct, id string, props *IdentityProps) *Identity {
	if props == nil {
		props = &IdentityProps{}
	}

	node := constructs.NewConstruct(scope, jsii.String(id))
	i := &Identity{Construct: node}

	stack := awscdk.Stack_Of(node)

	i.UserPool = awscognito.NewUserPool(node, jsii.String("UserPool"), &awscognito.UserPoolProps{
		UserPoolName:      stack.StackName(),
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		SelfSignUpEnabled: jsii.Bool(true),
	})

	if props.DomainName != nil {
		props.DomainName.Bind(domainname.Cognito(i.UserPool))
		i.BaseUrl = jsii.String(props.DomainName.Spec.URL(""))
	} else {
		domain := i.UserPool.AddDomain(jsii.String("Domain"), &awscognito.UserPoolDomainOptions{
			CognitoDomain: &awscognito.CognitoDomainOptions{
				DomainPrefix: jsii.String(domainPrefix(*stack.StackName(), *stack.Account())),
			},
		})
		i.BaseUrl = domain.BaseUrl(nil)
	}

	return i
}

// AddWebClient registers an authorization-code OAuth client on the pool.
func (i *Identity) AddWebClient(id string, options *OAuthWebClientOptions) *OAuthWebClient {
	return NewOAuthWebClient(i.Construct, id, &OAuthWebClientProps{
		Identity:     i,
		CallbackUrls: options.CallbackUrls,
	})
}

func domainPrefix(stackName, account string) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(stackName), account)
}
