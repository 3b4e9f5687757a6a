package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/placement-portal/quiz-api/internal/config"
	"github.com/placement-portal/quiz-api/internal/container"
)

var adapter *httpadapter.HandlerAdapter

func init() {
	cfg, err := config.Load()
	if err != nil {
		config.Log.WithError(err).Fatal("failed to load config")
	}
	config.InitLogger(cfg)

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		config.Log.WithError(err).Fatal("failed to build container")
	}
	adapter = httpadapter.New(c.Handler())
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
