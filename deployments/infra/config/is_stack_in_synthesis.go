package config

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"

	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
)

// IsStackInSynthesis reports whether the stack enclosing scope is targeted by
// the running `cdk synth`/`cdk deploy`. Untargeted stacks skip asset staging,
// so their resources are left out and an info annotation says so.
func IsStackInSynthesis(scope constructs.Construct) bool {
	required := awscdk.Stack_Of(scope).BundlingRequired()
	if required != nil && *required {
		return true
	}

	cdklogger.LogInfo(scope, "", "stack not selected for synthesis, resources skipped")
	return false
}
