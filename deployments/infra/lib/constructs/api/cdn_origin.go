package api

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/cdn"
	"github.com/kellendonk/webv2/deployments/infra/lib/utils"
	"github.com/kellendonk/webv2/deployments/infra/scripts/renderer"
	"github.com/kellendonk/webv2/internal/edge"
)

const GraphqlPath = "/graphql"

// forwardedHeaders reach the API: the API key, CORS preflight headers and
// the GraphQL POST content type.
var forwardedHeaders = []string{
	edge.HeaderApiKey,
	"access-control-request-headers",
	"access-control-request-method",
	"content-type",
}

type ApiCdnOriginProps struct {
	Api *Api
}

// ApiCdnOrigin serves the GraphQL API under /graphql on the CDN. Anonymous
// requests get the public API key added at the edge.
type ApiCdnOrigin struct {
	constructs.Construct

	AddApiKeyFn awscloudfront.Function

	behaviors []cdn.Behavior
}

var _ cdn.Origin = (*ApiCdnOrigin)(nil)

func NewApiCdnOrigin(scope constructs.Construct, id string, props *ApiCdnOriginProps) *ApiCdnOrigin {
	node := constructs.NewConstruct(scope, jsii.String(id))
	o := &ApiCdnOrigin{Construct: node}

	o.AddApiKeyFn = newAddApiKeyFn(node, "AddApiKeyFn", edge.ApiKeyConfig{ApiKey: *props.Api.ApiKey})

	originRequestPolicy := awscloudfront.NewOriginRequestPolicy(node, jsii.String("OriginRequest"), &awscloudfront.OriginRequestPolicyProps{
		HeaderBehavior: awscloudfront.OriginRequestHeaderBehavior_AllowList(*jsii.Strings(forwardedHeaders...)...),
	})

	o.behaviors = []cdn.Behavior{{
		PathPattern: GraphqlPath,
		Origin:      awscloudfrontorigins.NewHttpOrigin(props.Api.ApiDomain, nil),
		Options: &awscloudfront.AddBehaviorOptions{
			AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_ALL(),
			CachePolicy:          awscloudfront.CachePolicy_CACHING_DISABLED(),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			OriginRequestPolicy:  originRequestPolicy,
			FunctionAssociations: &[]*awscloudfront.FunctionAssociation{{
				EventType: awscloudfront.FunctionEventType_VIEWER_REQUEST,
				Function:  o.AddApiKeyFn,
			}},
		},
	}}

	return o
}

func (o *ApiCdnOrigin) Behaviors() []cdn.Behavior {
	return o.behaviors
}

func newAddApiKeyFn(scope constructs.Construct, id string, cfg edge.ApiKeyConfig) awscloudfront.Function {
	transformer, err := edge.NewApiKeyTransformer(cfg)
	if err != nil {
		panic(err)
	}

	code, err := renderer.ApiKeyViewerRequest(transformer.Config())
	if err != nil {
		panic(err)
	}

	return awscloudfront.NewFunction(scope, jsii.String(id), &awscloudfront.FunctionProps{
		FunctionName: jsii.String(utils.RenderName(scope, id)),
		Code:         awscloudfront.FunctionCode_FromInline(jsii.String(code)),
		Runtime:      awscloudfront.FunctionRuntime_JS_2_0(),
	})
}
