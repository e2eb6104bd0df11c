package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kellendonk/webv2/deployments/infra/lib/cdklogger"
)

const DefaultStagesConfigPath = "stages.yaml"

// StagesConfigPath is the stage definitions file, set by
// 'cdk.json/context/stagesConfig' or '--context stagesConfig=...'.
func StagesConfigPath(scope constructs.Construct) string {
	path := DefaultStagesConfigPath

	ctxValue := scope.Node().TryGetContext(jsii.String("stagesConfig"))
	if v, ok := ctxValue.(string); ok && v != "" {
		path = v
	}

	return path
}

const (
	DefaultWarmingConcurrency = 3
	// MaxWarmingConcurrency is the EventBridge limit of targets per rule.
	MaxWarmingConcurrency = 5
)

// WarmingConcurrency is how many synthetic requests keep the website Lambda
// warm each minute, set by 'cdk.json/context/warmingConcurrency' or
// '--context warmingConcurrency=N'. Zero turns warming off. Anything that is
// not an integer in 0..MaxWarmingConcurrency stops synthesis.
func WarmingConcurrency(scope constructs.Construct) int {
	raw := scope.Node().TryGetContext(jsii.String("warmingConcurrency"))

	concurrency := DefaultWarmingConcurrency
	valid := true
	switch v := raw.(type) {
	case nil:
	case float64:
		concurrency, valid = int(v), v == float64(int(v))
	case int:
		concurrency = v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		concurrency, valid = n, err == nil
	default:
		valid = false
	}

	if !valid || concurrency < 0 || concurrency > MaxWarmingConcurrency {
		cdklogger.LogError(scope, "", "warmingConcurrency must be an integer in 0..%d, got %v", MaxWarmingConcurrency, raw)
		panic(fmt.Sprintf("invalid warmingConcurrency context value %v", raw))
	}
	return concurrency
}
