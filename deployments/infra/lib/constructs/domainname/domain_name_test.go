package domainname_test

import (
	"fmt"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscognito"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellendonk/webv2/deployments/infra/config/domain"
	"github.com/kellendonk/webv2/deployments/infra/lib/constructs/domainname"
	"github.com/kellendonk/webv2/deployments/infra/tests/testutil"
)

var wwwSpec = domain.Spec{
	DomainName:              "www.example.com",
	SubjectAlternativeNames: []string{"example.com"},
	HostedZoneId:            "Z0000000000000000000",
	HostedZoneName:          "example.com",
}

type bindingFunc func(d *domainname.DomainName)

func (f bindingFunc) Bind(d *domainname.DomainName) { f(d) }

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}

func TestBind_OnlyOnce(t *testing.T) {
	_, stack := testutil.NewStack(t)
	d := domainname.NewDomainName(stack, "DomainName", &domainname.DomainNameProps{Spec: wwwSpec})

	calls := 0
	binding := bindingFunc(func(got *domainname.DomainName) {
		assert.Same(t, d, got)
		calls++
	})

	assert.False(t, d.Bound())
	d.Bind(binding)
	assert.True(t, d.Bound())

	err := recoverError(func() { d.Bind(binding) })
	require.ErrorIs(t, err, domainname.ErrDomainAlreadyBound)
	assert.Equal(t, 1, calls)
}

func TestTargetIsBoundOnCreation(t *testing.T) {
	_, stack := testutil.NewStack(t)

	calls := 0
	d := domainname.NewDomainName(stack, "DomainName", &domainname.DomainNameProps{
		Spec:   wwwSpec,
		Target: bindingFunc(func(*domainname.DomainName) { calls++ }),
	})

	assert.True(t, d.Bound())
	assert.Equal(t, 1, calls)
}

func TestInvalidSpecPanics(t *testing.T) {
	_, stack := testutil.NewStack(t)

	assert.Panics(t, func() {
		domainname.NewDomainName(stack, "DomainName", &domainname.DomainNameProps{
			Spec: domain.Spec{DomainName: "www.example.com"},
		})
	})
}

func TestCloudFrontBinding(t *testing.T) {
	_, stack := testutil.NewStack(t)
	distribution := awscloudfront.NewDistribution(stack, jsii.String("Distribution"), &awscloudfront.DistributionProps{
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin: awscloudfrontorigins.NewHttpOrigin(jsii.String("origin.example.com"), nil),
		},
	})

	domainname.NewDomainName(stack, "DomainName", &domainname.DomainNameProps{
		Spec:   wwwSpec,
		Target: domainname.CloudFront(distribution),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": map[string]interface{}{
			"Aliases": []interface{}{"www.example.com", "example.com"},
			"ViewerCertificate": map[string]interface{}{
				"SslSupportMethod":       "sni-only",
				"MinimumProtocolVersion": "TLSv1.2_2021",
			},
		},
	})
	template.ResourcePropertiesCountIs(jsii.String("AWS::Route53::RecordSet"), map[string]interface{}{"Type": "A"}, jsii.Number(2))
	template.ResourcePropertiesCountIs(jsii.String("AWS::Route53::RecordSet"), map[string]interface{}{"Type": "AAAA"}, jsii.Number(2))
}

func TestCognitoBinding(t *testing.T) {
	_, stack := testutil.NewStack(t)
	userPool := awscognito.NewUserPool(stack, jsii.String("UserPool"), nil)

	domainname.NewDomainName(stack, "IdentityDomainName", &domainname.DomainNameProps{
		Spec: domain.Spec{
			DomainName:     "auth.example.com",
			HostedZoneId:   "Z0000000000000000000",
			HostedZoneName: "example.com",
		},
		Target: domainname.Cognito(userPool),
	})

	template := assertions.Template_FromStack(stack, nil)
	template.HasResourceProperties(jsii.String("AWS::Cognito::UserPoolDomain"), map[string]interface{}{
		"Domain": "auth.example.com",
	})
	template.HasResourceProperties(jsii.String("AWS::Route53::RecordSet"), map[string]interface{}{
		"Type": "CNAME",
		"Name": "auth.example.com.",
	})
}
