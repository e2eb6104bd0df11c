package cdn

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
)

// Behavior routes PathPattern to Origin.
type Behavior struct {
	PathPattern string
	Origin      awscloudfront.IOrigin
	Options     *awscloudfront.AddBehaviorOptions
}

// Origin contributes path-pattern behaviors to the distribution, in the
// order CloudFront should evaluate them.
type Origin interface {
	Behaviors() []Behavior
}

// DefaultOrigin also serves every path no other behavior matches.
type DefaultOrigin interface {
	Origin
	DefaultBehavior() *awscloudfront.BehaviorOptions
}

// CdnProps holds inputs for creating a Cdn construct.
type CdnProps struct {
	DefaultOrigin DefaultOrigin
	// AdditionalOrigins is ordered: for a shared path pattern the earlier
	// origin's behavior is kept.
	AdditionalOrigins []Origin
	// DomainName is bound to the distribution when set. Otherwise the
	// CloudFront domain name is used.
	DomainName *domainname.DomainName
}

// Cdn is the CloudFront distribution fronting every origin of the site.
type Cdn struct {
	constructs.Construct
	Distribution awscloudfront.Distribution
	// DomainName is the primary custom domain or the distribution's domain.
	DomainName *string
}

func NewCdn(scope constructs.Construct, id string, props *CdnProps) *Cdn {
	node := constructs.NewConstruct(scope, jsii.String(id))
	c := &Cdn{Construct: node}

	c.Distribution = awscloudfront.NewDistribution(node, jsii.String("Distribution"), &awscloudfront.DistributionProps{
		DefaultBehavior: props.DefaultOrigin.DefaultBehavior(),

		EnableIpv6:    jsii.Bool(true),
		EnableLogging: jsii.Bool(true),
		HttpVersion:   awscloudfront.HttpVersion_HTTP2_AND_3,
		PriceClass:    awscloudfront.PriceClass_PRICE_CLASS_100,
	})

	origins := append([]Origin{props.DefaultOrigin}, props.AdditionalOrigins...)
	behaviors, shadowed := MergeBehaviors(origins...)
	for _, pattern := range shadowed {
		cdklogger.LogWarning(node, "", "behavior for %q is defined by more than one origin; keeping the first", pattern)
	}
	for _, b := range behaviors {
		c.Distribution.AddBehavior(jsii.String(b.PathPattern), b.Origin, b.Options)
	}

	if props.DomainName != nil {
		props.DomainName.Bind(domainname.CloudFront(c.Distribution))
		c.DomainName = jsii.String(props.DomainName.Spec.DomainName)
	} else {
		c.DomainName = c.Distribution.DistributionDomainName()
	}

	return c
}

// MergeBehaviors concatenates the behaviors of origins in order. The first
// behavior to claim a path pattern keeps it; later claims are dropped and
// reported as shadowed.
func MergeBehaviors(origins ...Origin) (merged []Behavior, shadowed []string) {
	seen := map[string]bool{}

	for _, origin := range origins {
		for _, b := range origin.Behaviors() {
			if seen[b.PathPattern] {
				shadowed = append(shadowed, b.PathPattern)
				continue
			}
			seen[b.PathPattern] = true
			merged = append(merged, b)
		}
	}

	return merged, shadowed
}
