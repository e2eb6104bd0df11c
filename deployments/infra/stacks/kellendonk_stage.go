package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/config"
	"github.com/kellendonk/webv2/deployments/infra/config/domain"
	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/api"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/cdn"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/identity"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/nextwebsite"
)

// LocalCallbackUrl is where `next dev` receives the login redirect.
const LocalCallbackUrl = "http://localhost:4200/login/callback"

type KellendonkStageProps struct {
	awscdk.StageProps
	// DomainName gives the CDN a custom domain.
	DomainName *domain.Spec
	// IdentityDomainName gives the hosted login a custom domain.
	IdentityDomainName *domain.Spec
	// WebDistDir is the Next.js build output.
	WebDistDir string
}

type KellendonkStageExports struct {
	Stage awscdk.Stage
	Stack awscdk.Stack
	// Resources is nil when the stack was not selected for synthesis.
	Resources *StageResources
}

type StageResources struct {
	Identity  *identity.Identity
	WebClient *identity.OAuthWebClient
	Api       *api.Api
	Website   *nextwebsite.NextWebsite
	Cdn       *cdn.Cdn
}

// NewKellendonkStage deploys one copy of the site in a single stack:
//
//	CDN ─┬─ /*              → Next.js server (Lambda behind an HTTP API)
//	     ├─ /_next/static/* → static assets bucket
//	     └─ /graphql        → AppSync API over DynamoDB
//
// plus the Cognito user pool the site signs visitors in with.
func NewKellendonkStage(scope constructs.Construct, id string, props *KellendonkStageProps) KellendonkStageExports {
	if props == nil {
		props = &KellendonkStageProps{}
	}

	stage := awscdk.NewStage(scope, jsii.String(id), &props.StageProps)
	awscdk.Tags_Of(stage).Add(jsii.String("Stage"), jsii.String(id), nil)

	stack := awscdk.NewStack(stage, jsii.String("Stack"), nil)
	exports := KellendonkStageExports{Stage: stage, Stack: stack}

	if !config.IsStackInSynthesis(stack) {
		return exports
	}

	exports.Resources = newStageResources(stack, props)
	return exports
}

func newStageResources(stack awscdk.Stack, props *KellendonkStageProps) *StageResources {
	r := &StageResources{}

	var identityDomainName *domainname.DomainName
	if props.IdentityDomainName != nil {
		identityDomainName = domainname.NewDomainName(stack, "IdentityDomainName", &domainname.DomainNameProps{
			Spec: *props.IdentityDomainName,
		})
	}
	r.Identity = identity.NewIdentity(stack, "Identity", &identity.IdentityProps{
		DomainName: identityDomainName,
	})

	r.WebClient = r.Identity.AddWebClient("WebClient", &identity.OAuthWebClientOptions{
		CallbackUrls: callbackUrls(props.DomainName),
	})

	r.Api = api.NewApi(stack, "Api", &api.ApiProps{
		Table: api.NewApiTable(stack, "ApiTable", nil),
		WebClient: api.WebClientConfig{
			UserPool:  r.WebClient.UserPool,
			Authority: r.WebClient.Authority,
			ClientId:  r.WebClient.ClientId,
		},
	})

	r.Website = nextwebsite.NewNextWebsite(stack, "Website", &nextwebsite.NextWebsiteProps{
		DistDir:            props.WebDistDir,
		WarmingConcurrency: config.WarmingConcurrency(stack),
	})

	var domainName *domainname.DomainName
	if props.DomainName != nil {
		domainName = domainname.NewDomainName(stack, "DomainName", &domainname.DomainNameProps{
			Spec: *props.DomainName,
		})
	}

	websiteOrigin := nextwebsite.NewNextWebsiteCdnOrigin(stack, "WebsiteCdnOrigin", &nextwebsite.NextWebsiteCdnOriginProps{
		Website:    r.Website,
		DomainName: domainName,
	})
	apiOrigin := api.NewApiCdnOrigin(stack, "ApiCdnOrigin", &api.ApiCdnOriginProps{Api: r.Api})

	r.Cdn = cdn.NewCdn(stack, "Cdn", &cdn.CdnProps{
		DefaultOrigin:     websiteOrigin,
		AdditionalOrigins: []cdn.Origin{apiOrigin},
		DomainName:        domainName,
	})

	awscdk.NewCfnOutput(stack, jsii.String("Url"), &awscdk.CfnOutputProps{
		Value: jsii.String("https://" + *r.Cdn.DomainName + "/"),
	})
	awscdk.NewCfnOutput(stack, jsii.String("IdentityUrl"), &awscdk.CfnOutputProps{
		Value: r.Identity.BaseUrl,
	})

	cdklogger.LogInfo(stack, "", "stage resources created (custom domain: %t)", domainName != nil)

	return r
}

// callbackUrls always allows the local dev server, plus the site itself when
// it has a custom domain.
func callbackUrls(domainName *domain.Spec) []string {
	urls := []string{LocalCallbackUrl}
	if domainName != nil {
		urls = append(urls, domainName.URL("/login/callback"))
	}
	return urls
}
