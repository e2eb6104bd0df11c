package domainname

import (
	"errors"

	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscognito"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/jsii-runtime-go"
)

var ErrNotCfnDistribution = errors.New("distribution default child is not a CfnDistribution")

// CloudFront binds a domain to a distribution: the certificate and aliases
// are patched onto the distribution and A/AAAA alias records are created for
// every name.
func CloudFront(distribution awscloudfront.Distribution) Binding {
	return &cloudFrontBinding{distribution: distribution}
}

// Cognito binds a domain to the hosted UI of a user pool.
func Cognito(userPool awscognito.UserPool) Binding {
	return &cognitoBinding{userPool: userPool}
}

type cloudFrontBinding struct {
	distribution awscloudfront.Distribution
}

func (b *cloudFrontBinding) Bind(d *DomainName) {
	cfnDistribution, ok := b.distribution.Node().DefaultChild().(awscloudfront.CfnDistribution)
	if !ok {
		panic(ErrNotCfnDistribution)
	}

	certificate := d.newEdgeCertificate(b.distribution)

	cfnDistribution.AddPropertyOverride(jsii.String("DistributionConfig.Aliases"), d.Spec.DomainNames())
	cfnDistribution.AddPropertyOverride(jsii.String("DistributionConfig.ViewerCertificate"), map[string]interface{}{
		"AcmCertificateArn":      certificate.CertificateArn(),
		"SslSupportMethod":       string(awscloudfront.SSLMethod_SNI),
		"MinimumProtocolVersion": string(awscloudfront.SecurityPolicyProtocol_TLS_V1_2_2021),
	})

	target := awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(b.distribution))
	for _, recordName := range d.Spec.DomainNames() {
		aRecord := awsroute53.NewARecord(d.Construct, jsii.String("A-"+recordName), &awsroute53.ARecordProps{
			Zone:           d.HostedZone,
			RecordName:     jsii.String(recordName),
			Target:         target,
			DeleteExisting: jsii.Bool(true),
		})
		aaaaRecord := awsroute53.NewAaaaRecord(d.Construct, jsii.String("Aaaa-"+recordName), &awsroute53.AaaaRecordProps{
			Zone:           d.HostedZone,
			RecordName:     jsii.String(recordName),
			Target:         target,
			DeleteExisting: jsii.Bool(true),
		})

		// deleteExisting must only run once the distribution owns the aliases
		aRecord.Node().AddDependency(b.distribution)
		aaaaRecord.Node().AddDependency(b.distribution)
	}
}

type cognitoBinding struct {
	userPool awscognito.UserPool
}

func (b *cognitoBinding) Bind(d *DomainName) {
	certificate := d.newEdgeCertificate(b.userPool)

	userPoolDomain := b.userPool.AddDomain(jsii.String("Domain"), &awscognito.UserPoolDomainOptions{
		CustomDomain: &awscognito.CustomDomainOptions{
			DomainName:  jsii.String(d.Spec.DomainName),
			Certificate: certificate,
		},
	})

	awsroute53.NewCnameRecord(d.Construct, jsii.String("Cname-"+d.Spec.DomainName), &awsroute53.CnameRecordProps{
		Zone:       d.HostedZone,
		RecordName: jsii.String(d.Spec.DomainName),
		DomainName: userPoolDomain.CloudFrontDomainName(),
	})
}
