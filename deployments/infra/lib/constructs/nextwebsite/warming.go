package nextwebsite

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const warmingUserAgent = "kellendonk-warmer"

// WarmingEvent is the synthetic request sent to the server to keep
// instances warm. It is shaped like an HTTP API (payload v2.0) GET of "/".
func WarmingEvent() events.APIGatewayV2HTTPRequest {
	headers := map[string]string{
		"accept":     "text/html",
		"user-agent": warmingUserAgent,
	}

	return events.APIGatewayV2HTTPRequest{
		Version:  "2.0",
		RouteKey: "$default",
		RawPath:  "/",
		Headers:  headers,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RouteKey: "$default",
			Stage:    "$default",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    "GET",
				Path:      "/",
				Protocol:  "HTTP/1.1",
				SourceIP:  "127.0.0.1",
				UserAgent: warmingUserAgent,
			},
		},
	}
}

// newWarming invokes handler concurrency times every minute with
// WarmingEvent. Each invocation is its own rule target so they run in
// parallel.
func newWarming(scope constructs.Construct, id string, handler awslambda.IFunction, concurrency int) awsevents.Rule {
	node := constructs.NewConstruct(scope, jsii.String(id))

	input, err := warmingInput()
	if err != nil {
		panic(fmt.Errorf("warming payload: %w", err))
	}

	rule := awsevents.NewRule(node, jsii.String("Schedule"), &awsevents.RuleProps{
		Schedule: awsevents.Schedule_Rate(awscdk.Duration_Minutes(jsii.Number(1))),
	})

	for i := 0; i < concurrency; i++ {
		rule.AddTarget(awseventstargets.NewLambdaFunction(handler, &awseventstargets.LambdaFunctionProps{
			Event:         input,
			RetryAttempts: jsii.Number(0),
		}))
	}

	return rule
}

// warmingInput converts WarmingEvent into a plain object, since jsii only
// passes maps and primitives through to the target input.
func warmingInput() (awsevents.RuleTargetInput, error) {
	raw, err := json.Marshal(WarmingEvent())
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}

	return awsevents.RuleTargetInput_FromObject(obj), nil
}
