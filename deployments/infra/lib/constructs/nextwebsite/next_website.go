package nextwebsite

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2integrations"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/go-playground/validator/v10"

	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
)

// StaticAssetsPrefix is where Next.js serves its build assets from, both in
// the bucket and on the CDN.
const StaticAssetsPrefix = "_next/static"

// NextWebsiteProps holds inputs for creating a NextWebsite construct.
type NextWebsiteProps struct {
	// DistDir is the Next.js build output. It must contain a Dockerfile for
	// the server image and the .next/static directory.
	DistDir string `validate:"required,dir"`
	// WarmingConcurrency is how many warming requests hit the server each
	// minute. Zero disables warming.
	WarmingConcurrency int `validate:"gte=0,lte=5"`
}

// NextWebsite hosts a server-rendered Next.js site: the server runs as a
// container Lambda behind an HTTP API and static assets live in a bucket.
type NextWebsite struct {
	constructs.Construct

	// Hash identifies the deployed build. It changes whenever DistDir does.
	Hash string
	// HttpDomain is the domain name of the HTTP API in front of the server.
	HttpDomain   *string
	AssetsBucket awss3.Bucket
	Handler      awslambda.DockerImageFunction
	HttpApi      awsapigatewayv2.HttpApi
}

func NewNextWebsite(scope constructs.Construct, id string, props *NextWebsiteProps) *NextWebsite {
	if err := validator.New().Struct(props); err != nil {
		cdklogger.LogError(scope, id, "invalid website props: %v", err)
		panic(fmt.Errorf("next website %s: %w", id, err))
	}

	node := constructs.NewConstruct(scope, jsii.String(id))
	w := &NextWebsite{Construct: node}

	// The staged asset hash covers the whole build output.
	staged := awscdk.NewAssetStaging(node, jsii.String("StagedDistAsset"), &awscdk.AssetStagingProps{
		SourcePath: jsii.String(props.DistDir),
	})
	w.Hash = *staged.AssetHash()

	w.Handler = awslambda.NewDockerImageFunction(node, jsii.String("Handler"), &awslambda.DockerImageFunctionProps{
		Code:    awslambda.DockerImageCode_FromImageAsset(jsii.String(props.DistDir), nil),
		Tracing: awslambda.Tracing_ACTIVE,
	})

	if props.WarmingConcurrency > 0 {
		newWarming(node, "HandlerWarming", w.Handler, props.WarmingConcurrency)
	}

	w.HttpApi = awsapigatewayv2.NewHttpApi(node, jsii.String("HttpApi"), &awsapigatewayv2.HttpApiProps{
		DefaultIntegration: awsapigatewayv2integrations.NewHttpLambdaIntegration(jsii.String("Handler"), w.Handler, nil),
	})

	w.AssetsBucket = awss3.NewBucket(node, jsii.String("Assets"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
	})

	// No pruning: clients still on the previous build keep loading its chunks.
	awss3deployment.NewBucketDeployment(node, jsii.String("DeployStaticAssets"), &awss3deployment.BucketDeploymentProps{
		DestinationBucket:    w.AssetsBucket,
		DestinationKeyPrefix: jsii.String(StaticAssetsPrefix),
		Sources: &[]awss3deployment.ISource{
			awss3deployment.Source_Asset(jsii.String(fmt.Sprintf("%s/.next/static", props.DistDir)), nil),
		},
		Prune: jsii.Bool(false),
	})

	region := awscdk.Stack_Of(node).Region()
	w.HttpDomain = jsii.String(fmt.Sprintf("%s.execute-api.%s.amazonaws.com", *w.HttpApi.ApiId(), *region))

	cdklogger.LogInfo(node, "", "website build %s from %s", w.Hash, props.DistDir)

	return w
}
