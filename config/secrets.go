package config

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterStore is the subset of the SSM client used to resolve secrets.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewParameterStore builds an SSM client from the default AWS credential chain.
func NewParameterStore(ctx context.Context) (ParameterStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return ssm.NewFromConfig(awsCfg), nil
}

// NeedsSecrets reports whether any value must come from the parameter store.
func (c *Config) NeedsSecrets() bool {
	return c.CoinMarketCap.APIKeyParam != "" ||
		(c.Postgres.Enabled && c.Postgres.PasswordParam != "")
}

// ResolveSecrets replaces the API key and database password with the values
// of their SSM parameters, when parameter names are configured.
func (c *Config) ResolveSecrets(ctx context.Context, store ParameterStore) error {
	if c.CoinMarketCap.APIKeyParam != "" {
		v, err := getParameterStoreValue(ctx, store, c.CoinMarketCap.APIKeyParam, true)
		if err != nil {
			return fmt.Errorf("resolve coinmarketcap api key: %w", err)
		}
		c.CoinMarketCap.APIKey = v
	}

	if c.Postgres.Enabled && c.Postgres.PasswordParam != "" {
		v, err := getParameterStoreValue(ctx, store, c.Postgres.PasswordParam, true)
		if err != nil {
			return fmt.Errorf("resolve postgres password: %w", err)
		}
		c.Postgres.Password = v
	}

	return nil
}

func getParameterStoreValue(ctx context.Context, store ParameterStore, parameterName string, decrypt bool) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := store.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", parameterName, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", parameterName)
	}

	return *result.Parameter.Value, nil
}
