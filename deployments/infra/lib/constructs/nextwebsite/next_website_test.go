package nextwebsite_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellendonk/webv2/deployments/infra/config/domain"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/nextwebsite"
	"github.com/kellendonk/webv2/deployments/infra/tests/testutil"
)

func TestNewNextWebsite(t *testing.T) {
	_, stack := testutil.NewStack(t)

	website := nextwebsite.NewNextWebsite(stack, "Website", &nextwebsite.NextWebsiteProps{
		DistDir:            testutil.WebDistDir(t),
		WarmingConcurrency: 3,
	})

	assert.NotEmpty(t, website.Hash)
	require.NotNil(t, website.HttpDomain)

	template := assertions.Template_FromStack(stack, nil)

	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"PackageType":   "Image",
		"TracingConfig": map[string]interface{}{"Mode": "Active"},
	})
	template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Api"), map[string]interface{}{
		"ProtocolType": "HTTP",
	})
	template.HasResourceProperties(jsii.String("Custom::CDKBucketDeployment"), map[string]interface{}{
		"DestinationBucketKeyPrefix": "_next/static",
		"Prune":                      false,
	})

	rules := template.FindResources(jsii.String("AWS::Events::Rule"), map[string]interface{}{
		"Properties": map[string]interface{}{"ScheduleExpression": "rate(1 minute)"},
	})
	require.Len(t, *rules, 1)
	for _, rule := range *rules {
		props := (*rule)["Properties"].(map[string]interface{})
		assert.Len(t, props["Targets"], 3)
	}
}

func TestNewNextWebsite_WarmingDisabled(t *testing.T) {
	_, stack := testutil.NewStack(t)

	nextwebsite.NewNextWebsite(stack, "Website", &nextwebsite.NextWebsiteProps{
		DistDir: testutil.WebDistDir(t),
	})

	assertions.Template_FromStack(stack, nil).ResourceCountIs(jsii.String("AWS::Events::Rule"), jsii.Number(0))
}

func TestNewNextWebsite_InvalidProps(t *testing.T) {
	for name, props := range map[string]*nextwebsite.NextWebsiteProps{
		"missing dist dir": {DistDir: t.TempDir() + "/missing"},
		"too much warming": {DistDir: t.TempDir(), WarmingConcurrency: 6},
	} {
		t.Run(name, func(t *testing.T) {
			_, stack := testutil.NewStack(t)
			assert.Panics(t, func() {
				nextwebsite.NewNextWebsite(stack, "Website", props)
			})
		})
	}
}

func TestWarmingEvent(t *testing.T) {
	event := nextwebsite.WarmingEvent()

	assert.Equal(t, "2.0", event.Version)
	assert.Equal(t, "/", event.RawPath)
	assert.Equal(t, "GET", event.RequestContext.HTTP.Method)
}

func TestNewNextWebsiteCdnOrigin(t *testing.T) {
	_, stack := testutil.NewStack(t)
	website := nextwebsite.NewNextWebsite(stack, "Website", &nextwebsite.NextWebsiteProps{
		DistDir: testutil.WebDistDir(t),
	})
	domainName := domainname.NewDomainName(stack, "DomainName", &domainname.DomainNameProps{
		Spec: domain.Spec{
			DomainName:     "www.example.com",
			HostedZoneId:   "Z0000000000000000000",
			HostedZoneName: "example.com",
		},
	})

	origin := nextwebsite.NewNextWebsiteCdnOrigin(stack, "WebsiteCdnOrigin", &nextwebsite.NextWebsiteCdnOriginProps{
		Website:    website,
		DomainName: domainName,
	})

	require.NotNil(t, origin.DefaultBehavior())
	behaviors := origin.Behaviors()
	require.Len(t, behaviors, 1)
	assert.Equal(t, "/_next/static/*", behaviors[0].PathPattern)

	template := assertions.Template_FromStack(stack, nil)

	template.HasResourceProperties(jsii.String("AWS::CloudFront::Function"), map[string]interface{}{
		"Name":         "TestStack-WebsiteCdnOrigin-ViewerRequestFn",
		"FunctionCode": assertions.Match_StringLikeRegexp(jsii.String(`"primaryDomain":"www\.example\.com"`)),
	})
	template.HasResourceProperties(jsii.String("AWS::CloudFront::Function"), map[string]interface{}{
		"FunctionCode": assertions.Match_StringLikeRegexp(jsii.String(`"websiteHash":"` + website.Hash + `"`)),
	})
	template.HasResourceProperties(jsii.String("AWS::CloudFront::CachePolicy"), map[string]interface{}{
		"CachePolicyConfig": map[string]interface{}{
			"MinTTL":     1,
			"DefaultTTL": 86400,
			"MaxTTL":     2592000,
			"ParametersInCacheKeyAndForwardedToOrigin": map[string]interface{}{
				"EnableAcceptEncodingGzip":   true,
				"EnableAcceptEncodingBrotli": true,
				"HeadersConfig": map[string]interface{}{
					"HeaderBehavior": "whitelist",
					"Headers":        []interface{}{"X-Website-Hash"},
				},
				"CookiesConfig":      map[string]interface{}{"CookieBehavior": "none"},
				"QueryStringsConfig": map[string]interface{}{"QueryStringBehavior": "all"},
			},
		},
	})
	template.HasResourceProperties(jsii.String("AWS::CloudFront::ResponseHeadersPolicy"), map[string]interface{}{
		"ResponseHeadersPolicyConfig": map[string]interface{}{
			"CustomHeadersConfig": map[string]interface{}{
				"Items": []interface{}{map[string]interface{}{
					"Header":   "Cache-Control",
					"Value":    "public,max-age=31536000,immutable",
					"Override": true,
				}},
			},
		},
	})
}

func TestNewNextWebsiteCdnOrigin_WithoutDomain(t *testing.T) {
	_, stack := testutil.NewStack(t)
	website := nextwebsite.NewNextWebsite(stack, "Website", &nextwebsite.NextWebsiteProps{
		DistDir: testutil.WebDistDir(t),
	})

	nextwebsite.NewNextWebsiteCdnOrigin(stack, "WebsiteCdnOrigin", &nextwebsite.NextWebsiteCdnOriginProps{
		Website: website,
	})

	assertions.Template_FromStack(stack, nil).HasResourceProperties(jsii.String("AWS::CloudFront::Function"), map[string]interface{}{
		"FunctionCode": assertions.Match_Not(assertions.Match_StringLikeRegexp(jsii.String(`"primaryDomain"`))),
	})
}
