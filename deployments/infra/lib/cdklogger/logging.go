// Package cdklogger reports synthesis diagnostics as CDK annotations, so they
// show up in `cdk synth` output next to the construct path.
package cdklogger

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// LogInfo adds an INFO annotation to scope.
func LogInfo(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddInfo(message(scope, constructID, format, args...))
}

// LogWarning adds a WARNING annotation to scope.
func LogWarning(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddWarning(message(scope, constructID, format, args...))
}

// LogError adds an ERROR annotation to scope. Errors fail `cdk synth`.
func LogError(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	awscdk.Annotations_Of(scope).AddError(message(scope, constructID, format, args...))
}

// message prefixes the text with [constructID] unless the scope path already
// ends with that id.
func message(scope constructs.Construct, constructID string, format string, args ...interface{}) *string {
	msg := fmt.Sprintf(format, args...)
	if constructID == "" {
		return jsii.String(msg)
	}

	path := *scope.Node().Path()
	if path == constructID || strings.HasSuffix(path, "/"+constructID) {
		return jsii.String(msg)
	}
	return jsii.String(fmt.Sprintf("[%s] %s", constructID, msg))
}
