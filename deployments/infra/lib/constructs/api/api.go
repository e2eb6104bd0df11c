// Package api provisions the site's GraphQL API: an AppSync API over a
// single DynamoDB table, plus the guest-book resolver Lambda.
package api

import (
	"fmt"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappsync"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscognito"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
	"github.com/kellendonk/webv2/deployments/infra/lib/utils"
	"github.com/kellendonk/webv2/deployments/infra/scripts/renderer"
)

// ApiKeyLifetime is how long a freshly deployed API key stays valid before
// StableExpiration rounds it down.
const ApiKeyLifetime = 365 * 24 * time.Hour

// WebClientConfig describes the OAuth client the public uses to sign in, so
// the API can hand it out and check the tokens it issues.
type WebClientConfig struct {
	UserPool  awscognito.IUserPool
	Authority *string
	ClientId  *string
}

type ApiProps struct {
	// Table is an externally owned table. A table that is destroyed with the
	// construct is created when nil.
	Table     awsdynamodb.ITable
	WebClient WebClientConfig
	// GuestBookEntry is the Go package of the guest-book resolver. Defaults
	// to cmd/guestbook-resolver.
	GuestBookEntry string
	// Now anchors the API key expiry. Defaults to time.Now.
	Now func() time.Time
}

type Api struct {
	constructs.Construct

	GraphqlApi        awsappsync.GraphqlApi
	Table             awsdynamodb.ITable
	GuestBookResolver awscdklambdagoalpha.GoFunction
	// ApiDomain is the host name of the GraphQL endpoint.
	ApiDomain *string
	ApiKey    *string
}

func NewApi(scope constructs.Construct, id string, props *ApiProps) *Api {
	if props.WebClient.UserPool == nil || props.WebClient.Authority == nil || props.WebClient.ClientId == nil {
		cdklogger.LogError(scope, id, "api requires a web client config")
		panic(fmt.Errorf("api %s: incomplete web client config", id))
	}

	node := constructs.NewConstruct(scope, jsii.String(id))
	a := &Api{Construct: node, Table: props.Table}

	if a.Table == nil {
		a.Table = NewApiTable(node, "Table", &ApiTableProps{RemovalPolicy: awscdk.RemovalPolicy_DESTROY})
	}

	now := time.Now
	if props.Now != nil {
		now = props.Now
	}
	expires := StableExpiration(now(), ApiKeyLifetime)

	a.GraphqlApi = awsappsync.NewGraphqlApi(node, jsii.String("Api"), &awsappsync.GraphqlApiProps{
		Name:       awscdk.Stack_Of(node).StackName(),
		Definition: awsappsync.Definition_FromFile(jsii.String(SchemaPath())),

		XrayEnabled: jsii.Bool(true),
		LogConfig: &awsappsync.LogConfig{
			FieldLogLevel: awsappsync.FieldLogLevel_ALL,
			Retention:     awslogs.RetentionDays_ONE_MONTH,
		},

		AuthorizationConfig: &awsappsync.AuthorizationConfig{
			DefaultAuthorization: &awsappsync.AuthorizationMode{
				AuthorizationType: awsappsync.AuthorizationType_IAM,
			},
			AdditionalAuthorizationModes: &[]*awsappsync.AuthorizationMode{
				{
					AuthorizationType: awsappsync.AuthorizationType_API_KEY,
					ApiKeyConfig: &awsappsync.ApiKeyConfig{
						Expires: awscdk.Expiration_AtTimestamp(jsii.Number(float64(expires.UnixMilli()))),
					},
				},
				{
					AuthorizationType: awsappsync.AuthorizationType_USER_POOL,
					UserPoolConfig: &awsappsync.UserPoolConfig{
						UserPool:      props.WebClient.UserPool,
						DefaultAction: awsappsync.UserPoolDefaultAction_DENY,
					},
				},
			},
		},
	})

	a.addInteractionResolvers()
	a.addAuthInfoResolver(props.WebClient)
	a.addGuestBookResolvers(props.GuestBookEntry)

	// The GraphQL URL looks like https://<id>.appsync-api.<region>.amazonaws.com/graphql
	// and the id is not the API id, so take the host from the URL.
	a.ApiDomain = awscdk.Fn_Select(jsii.Number(2), awscdk.Fn_Split(jsii.String("/"), a.GraphqlApi.GraphqlUrl(), nil))
	a.ApiKey = a.GraphqlApi.ApiKey()

	cdklogger.LogInfo(node, "", "api key expires %s", expires.Format(time.RFC3339))

	return a
}

// SchemaPath is the GraphQL schema file served by the API.
func SchemaPath() string {
	return utils.ProjectPath("deployments", "infra", "lib", "constructs", "api", "schema.graphql")
}

func (a *Api) addInteractionResolvers() {
	table := a.GraphqlApi.AddDynamoDbDataSource(jsii.String("Table"), a.Table, nil)
	keys := renderer.DefaultInteractionKeys

	a.GraphqlApi.CreateResolver(jsii.String("Query.getInteractions"), &awsappsync.ExtendedResolverProps{
		DataSource:              table,
		TypeName:                jsii.String("Query"),
		FieldName:               jsii.String("getInteractions"),
		RequestMappingTemplate:  vtl(renderer.TplGetInteractionsRequest, keys),
		ResponseMappingTemplate: vtl(renderer.TplGetInteractionsResponse, nil),
	})

	a.GraphqlApi.CreateResolver(jsii.String("Mutation.addInteraction"), &awsappsync.ExtendedResolverProps{
		DataSource:              table,
		TypeName:                jsii.String("Mutation"),
		FieldName:               jsii.String("addInteraction"),
		RequestMappingTemplate:  vtl(renderer.TplAddInteractionRequest, keys),
		ResponseMappingTemplate: vtl(renderer.TplAddInteractionResponse, nil),
	})
}

func (a *Api) addAuthInfoResolver(webClient WebClientConfig) {
	none := a.GraphqlApi.AddNoneDataSource(jsii.String("None"), nil)

	a.GraphqlApi.CreateResolver(jsii.String("Query.authInfo"), &awsappsync.ExtendedResolverProps{
		DataSource:             none,
		TypeName:               jsii.String("Query"),
		FieldName:              jsii.String("authInfo"),
		RequestMappingTemplate: vtl(renderer.TplAuthInfoRequest, nil),
		ResponseMappingTemplate: vtl(renderer.TplAuthInfoResponse, renderer.AuthInfoData{
			Authority: *webClient.Authority,
			ClientId:  *webClient.ClientId,
		}),
	})
}

// addGuestBookResolvers wires the guest-book fields to a direct Lambda
// resolver. The function reads the field name from the AppSync event.
func (a *Api) addGuestBookResolvers(entry string) {
	if entry == "" {
		entry = utils.ProjectPath("cmd", "guestbook-resolver")
	}

	a.GuestBookResolver = awscdklambdagoalpha.NewGoFunction(a.Construct, jsii.String("GuestBookResolver"), &awscdklambdagoalpha.GoFunctionProps{
		Entry:        jsii.String(entry),
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Architecture: awslambda.Architecture_ARM_64(),
		Tracing:      awslambda.Tracing_ACTIVE,
		Timeout:      awscdk.Duration_Seconds(jsii.Number(10)),
		Bundling: &awscdklambdagoalpha.BundlingOptions{
			GoBuildFlags: &[]*string{
				jsii.String("-ldflags \"-s -w\""),
			},
		},
		Environment: &map[string]*string{
			"TABLE_NAME": a.Table.TableName(),
		},
	})
	a.Table.GrantReadWriteData(a.GuestBookResolver)

	guestBook := a.GraphqlApi.AddLambdaDataSource(jsii.String("GuestBook"), a.GuestBookResolver, nil)

	for _, field := range []struct{ typeName, fieldName string }{
		{"Query", "getGuestBookSignatures"},
		{"Mutation", "addGuestBookSignature"},
	} {
		a.GraphqlApi.CreateResolver(jsii.String(field.typeName+"."+field.fieldName), &awsappsync.ExtendedResolverProps{
			DataSource: guestBook,
			TypeName:   jsii.String(field.typeName),
			FieldName:  jsii.String(field.fieldName),
		})
	}
}

func vtl(name renderer.TemplateName, data any) awsappsync.MappingTemplate {
	return awsappsync.MappingTemplate_FromString(jsii.String(renderer.MustRender(name, data)))
}
