package domainname

import (
	"errors"
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/go-playground/validator/v10"

	"github.com/kellendonk/webv2/deployments/infra/config/domain"
	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
)

// EdgeCertificateRegion is where CloudFront and Cognito custom domains look
// for certificates.
const EdgeCertificateRegion = "us-east-1"

var ErrDomainAlreadyBound = errors.New("cannot register more than one target for this domain name")

// DomainNameProps holds inputs for creating a DomainName construct.
type DomainNameProps struct {
	Spec domain.Spec
	// Target, when set, is bound immediately.
	Target Binding
}

// DomainName produces the certificate and records for a domain and its
// alternative names. It serves exactly one target.
type DomainName struct {
	constructs.Construct
	Spec       domain.Spec
	HostedZone awsroute53.IHostedZone

	bound bool
}

// Binding attaches a DomainName to the resource that serves it.
type Binding interface {
	Bind(d *DomainName)
}

func NewDomainName(scope constructs.Construct, id string, props *DomainNameProps) *DomainName {
	if err := validator.New().Struct(props.Spec); err != nil {
		cdklogger.LogError(scope, id, "invalid domain name spec: %v", err)
		panic(fmt.Errorf("domain name %s: %w", id, err))
	}

	node := constructs.NewConstruct(scope, jsii.String(id))
	d := &DomainName{Construct: node, Spec: props.Spec}

	d.HostedZone = awsroute53.HostedZone_FromHostedZoneAttributes(node, jsii.String("HostedZone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String(props.Spec.HostedZoneId),
		ZoneName:     jsii.String(props.Spec.HostedZoneName),
	})

	if props.Target != nil {
		d.Bind(props.Target)
	}

	return d
}

// Bind attaches the domain to binding's target. A second call panics with
// ErrDomainAlreadyBound.
func (d *DomainName) Bind(binding Binding) {
	if d.bound {
		panic(fmt.Errorf("%w: %s", ErrDomainAlreadyBound, d.Spec.DomainName))
	}

	binding.Bind(d)
	d.bound = true

	cdklogger.LogInfo(d.Construct, "", "bound %v", d.Spec.DomainNames())
}

// Bound reports whether a target has been bound.
func (d *DomainName) Bound() bool {
	return d.bound
}

// newEdgeCertificate issues a DNS validated certificate covering every name
// of d in EdgeCertificateRegion, under scope.
func (d *DomainName) newEdgeCertificate(scope constructs.Construct) awscertificatemanager.ICertificate {
	props := &awscertificatemanager.DnsValidatedCertificateProps{
		DomainName: jsii.String(d.Spec.DomainName),
		HostedZone: d.HostedZone,
		Region:     jsii.String(EdgeCertificateRegion),
	}
	if len(d.Spec.SubjectAlternativeNames) > 0 {
		props.SubjectAlternativeNames = jsii.Strings(d.Spec.SubjectAlternativeNames...)
	}

	return awscertificatemanager.NewDnsValidatedCertificate(scope, jsii.String("Certificate"), props)
}
