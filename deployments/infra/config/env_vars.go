package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/caarlos0/env/v11"
)

// AppEnvironmentVariables configures the CDK app process.
type AppEnvironmentVariables struct {
	DeployAccount  string `env:"CDK_DEPLOY_ACCOUNT"`
	DeployRegion   string `env:"CDK_DEPLOY_REGION"`
	DefaultAccount string `env:"CDK_DEFAULT_ACCOUNT"`
	DefaultRegion  string `env:"CDK_DEFAULT_REGION"`
	// WebDistDir is the Next.js build output, relative to the project root
	// unless absolute.
	WebDistDir string `env:"WEB_DIST_DIR" envDefault:"dist/packages/web"`
}

// Environment determines the AWS environment (account+region) in which our
// stacks are deployed. The CDK_DEPLOY_* pair wins when both are set. For more
// information see: https://docs.aws.amazon.com/cdk/latest/guide/environments.html
func (v AppEnvironmentVariables) Environment() *awscdk.Environment {
	account, region := v.DeployAccount, v.DeployRegion
	if account == "" || region == "" {
		account, region = v.DefaultAccount, v.DefaultRegion
	}

	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}

// GetEnvironmentVariables parses T from the process environment.
func GetEnvironmentVariables[T any]() (T, error) {
	return env.ParseAs[T]()
}
