// Command guestbook-resolver is the AppSync Lambda resolver for the guest
// book fields of the site API.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/kellendonk/webv2/internal/guestbook"
)

type settings struct {
	TableName string `env:"TABLE_NAME,required"`
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := env.ParseAs[settings]()
	if err != nil {
		logger.Fatal("reading settings", zap.Error(err))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal("loading AWS config", zap.Error(err))
	}

	store := guestbook.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.TableName, guestbook.WithLogger(logger))
	lambda.Start(guestbook.NewHandler(store, logger).Handle)
}
