package identity

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awscognito"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

type OAuthWebClientOptions struct {
	// CallbackUrls may contain empty entries; they are dropped.
	CallbackUrls []string
}

type OAuthWebClientProps struct {
	Identity     *Identity
	CallbackUrls []string
}

type OAuthWebClient struct {
	constructs.Construct

	Client       awscognito.UserPoolClient
	UserPool     awscognito.UserPool
	ClientId     *string
	AuthorizeUrl *string
	TokenUrl     *string
	// Authority is the OpenID issuer of the pool.
	Authority *string
}

func NewOAuthWebClient(scope constructs.Construct, id string, props *OAuthWebClientProps) *OAuthWebClient {
	node := constructs.NewConstruct(scope, jsii.String(id))
	c := &OAuthWebClient{Construct: node, UserPool: props.Identity.UserPool}

	callbackUrls := lo.Uniq(lo.Compact(props.CallbackUrls))

	c.Client = awscognito.NewUserPoolClient(node, jsii.String("Client"), &awscognito.UserPoolClientProps{
		UserPool: c.UserPool,
		OAuth: &awscognito.OAuthSettings{
			Flows: &awscognito.OAuthFlows{
				AuthorizationCodeGrant: jsii.Bool(true),
			},
			CallbackUrls: jsii.Strings(callbackUrls...),
		},
	})

	baseUrl := *props.Identity.BaseUrl
	c.ClientId = c.Client.UserPoolClientId()
	c.AuthorizeUrl = jsii.String(fmt.Sprintf("%s/oauth2/authorize", baseUrl))
	c.TokenUrl = jsii.String(fmt.Sprintf("%s/oauth2/token", baseUrl))
	c.Authority = c.UserPool.UserPoolProviderUrl()

	return c
}
