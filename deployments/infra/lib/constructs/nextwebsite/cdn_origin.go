package nextwebsite

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/cdn"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
	"github.com/kellendonk/webv2/deployments/infra/lib/utils"
	"github.com/kellendonk/webv2/deployments/infra/scripts/renderer"
	"github.com/kellendonk/webv2/internal/edge"
)

const staticCacheControl = "public,max-age=31536000,immutable"

// NextWebsiteCdnOriginProps holds inputs for creating a NextWebsiteCdnOrigin.
type NextWebsiteCdnOriginProps struct {
	Website *NextWebsite
	// DomainName, when set, becomes the primary domain: requests for any
	// other host are redirected to it.
	DomainName *domainname.DomainName
}

// NextWebsiteCdnOrigin routes the CDN default behavior to the website server
// and /_next/static/* to the assets bucket.
type NextWebsiteCdnOrigin struct {
	constructs.Construct

	ViewerRequestFn awscloudfront.Function

	defaultBehavior *awscloudfront.BehaviorOptions
	behaviors       []cdn.Behavior
}

var _ cdn.DefaultOrigin = (*NextWebsiteCdnOrigin)(nil)

func NewNextWebsiteCdnOrigin(scope constructs.Construct, id string, props *NextWebsiteCdnOriginProps) *NextWebsiteCdnOrigin {
	node := constructs.NewConstruct(scope, jsii.String(id))
	o := &NextWebsiteCdnOrigin{Construct: node}

	website := props.Website

	cfg := edge.Config{WebsiteHash: website.Hash}
	if props.DomainName != nil {
		cfg.PrimaryDomain = props.DomainName.Spec.DomainName
	}
	o.ViewerRequestFn = newViewerRequestFn(node, "ViewerRequestFn", cfg)

	// Deploy the website before the function so the hash cache key does not
	// flip ahead of the build it names.
	o.ViewerRequestFn.Node().AddDependency(website.Construct)

	cachePolicy := awscloudfront.NewCachePolicy(node, jsii.String("CachePolicy"), &awscloudfront.CachePolicyProps{
		MinTtl:                     awscdk.Duration_Seconds(jsii.Number(1)),
		MaxTtl:                     awscdk.Duration_Days(jsii.Number(30)),
		DefaultTtl:                 awscdk.Duration_Days(jsii.Number(1)),
		EnableAcceptEncodingGzip:   jsii.Bool(true),
		EnableAcceptEncodingBrotli: jsii.Bool(true),
		HeaderBehavior:             awscloudfront.CacheHeaderBehavior_AllowList(jsii.String("X-Website-Hash")),
		CookieBehavior:             awscloudfront.CacheCookieBehavior_None(),
		QueryStringBehavior:        awscloudfront.CacheQueryStringBehavior_All(),
	})

	o.defaultBehavior = &awscloudfront.BehaviorOptions{
		Origin:      awscloudfrontorigins.NewHttpOrigin(website.HttpDomain, nil),
		CachePolicy: cachePolicy,
		FunctionAssociations: &[]*awscloudfront.FunctionAssociation{{
			EventType: awscloudfront.FunctionEventType_VIEWER_REQUEST,
			Function:  o.ViewerRequestFn,
		}},
		ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
	}

	o.behaviors = []cdn.Behavior{{
		PathPattern: fmt.Sprintf("/%s/*", StaticAssetsPrefix),
		Origin:      awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(website.AssetsBucket, nil),
		Options: &awscloudfront.AddBehaviorOptions{
			ViewerProtocolPolicy:  awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			ResponseHeadersPolicy: newStaticHeadersPolicy(node, "StaticHeaders"),
		},
	}}

	return o
}

func (o *NextWebsiteCdnOrigin) DefaultBehavior() *awscloudfront.BehaviorOptions {
	return o.defaultBehavior
}

func (o *NextWebsiteCdnOrigin) Behaviors() []cdn.Behavior {
	return o.behaviors
}

func newViewerRequestFn(scope constructs.Construct, id string, cfg edge.Config) awscloudfront.Function {
	transformer, err := edge.NewWebsiteTransformer(cfg)
	if err != nil {
		cdklogger.LogError(scope, id, "invalid viewer request config: %v", err)
		panic(err)
	}

	code, err := renderer.WebsiteViewerRequest(transformer.Config())
	if err != nil {
		panic(err)
	}

	return awscloudfront.NewFunction(scope, jsii.String(id), &awscloudfront.FunctionProps{
		FunctionName: jsii.String(utils.RenderName(scope, id)),
		Code:         awscloudfront.FunctionCode_FromInline(jsii.String(code)),
		Runtime:      awscloudfront.FunctionRuntime_JS_2_0(),
	})
}

// newStaticHeadersPolicy marks build assets immutable. Their names are
// content hashed.
func newStaticHeadersPolicy(scope constructs.Construct, id string) awscloudfront.ResponseHeadersPolicy {
	return awscloudfront.NewResponseHeadersPolicy(scope, jsii.String(id), &awscloudfront.ResponseHeadersPolicyProps{
		CustomHeadersBehavior: &awscloudfront.ResponseCustomHeadersBehavior{
			CustomHeaders: &[]*awscloudfront.ResponseCustomHeader{{
				Header:   jsii.String("Cache-Control"),
				Value:    jsii.String(staticCacheControl),
				Override: jsii.Bool(true),
			}},
		},
	})
}
