package api

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

const (
	PartitionKey = "PK"
	SortKey      = "SK"
)

type ApiTableProps struct {
	// RemovalPolicy defaults to RETAIN.
	RemovalPolicy awscdk.RemovalPolicy
}

// NewApiTable creates the single table every API resolver shares: string
// PK/SK keys, on-demand billing and point-in-time recovery.
func NewApiTable(scope constructs.Construct, id string, props *ApiTableProps) awsdynamodb.Table {
	if props == nil {
		props = &ApiTableProps{}
	}
	removalPolicy := props.RemovalPolicy
	if removalPolicy == "" {
		removalPolicy = awscdk.RemovalPolicy_RETAIN
	}

	return awsdynamodb.NewTable(scope, jsii.String(id), &awsdynamodb.TableProps{
		PartitionKey: &awsdynamodb.Attribute{
			Name: jsii.String(PartitionKey),
			Type: awsdynamodb.AttributeType_STRING,
		},
		SortKey: &awsdynamodb.Attribute{
			Name: jsii.String(SortKey),
			Type: awsdynamodb.AttributeType_STRING,
		},
		BillingMode:         awsdynamodb.BillingMode_PAY_PER_REQUEST,
		PointInTimeRecovery: jsii.Bool(true),
		RemovalPolicy:       removalPolicy,
	})
}
