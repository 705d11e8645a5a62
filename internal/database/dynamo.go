// Package database provides constructors for the portal's backing service
// clients (DynamoDB, Redis). Connection settings come from internal/config;
// no package below this one reads the environment.
package database

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hywep/alerts/internal/config"
)

// NewDynamoDB creates a DynamoDB client for the configured region using the
// default AWS credential chain (env vars, shared config, instance role).
func NewDynamoDB(ctx context.Context, cfg config.StoreConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg), nil
}
