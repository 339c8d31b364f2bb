package aws_handler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/src/config"
	aws_handler "fittrack/src/utils/aws"
)

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	secrets map[string]*string
}

func (f *fakeSecretsManager) GetSecretValueWithContext(_ aws.Context, in *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := f.secrets[aws.StringValue(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: value}, nil
}

func TestSecretManager(t *testing.T) {
	manager := aws_handler.NewSecretManager(&fakeSecretsManager{secrets: map[string]*string{
		"fittrack/prod": aws.String(`{"KROGER_CLIENT_ID":"id"}`),
		"binary":        nil,
	}})
	ctx := context.Background()

	value, err := manager.GetSecretValue(ctx, "fittrack/prod")
	require.NoError(t, err)
	assert.JSONEq(t, `{"KROGER_CLIENT_ID":"id"}`, value)

	_, err = manager.GetSecretValue(ctx, "binary")
	assert.Error(t, err)

	_, err = manager.GetSecretValue(ctx, "missing")
	assert.Error(t, err)
}

func TestLoadSecrets(t *testing.T) {
	handler := &aws_handler.AWSHandler{SecretManager: aws_handler.NewSecretManager(&fakeSecretsManager{secrets: map[string]*string{
		"fittrack/prod": aws.String(`{"KROGER_CLIENT_ID":"from-secret","EDAMAM_APP_KEY":"key"}`),
	}})}

	cfg := &config.Config{}
	cfg.Secrets.SecretName = "fittrack/prod"
	cfg.ExternalClients.Edamam.AppKey = "already-set"

	require.NoError(t, handler.LoadSecrets(context.Background(), cfg))
	assert.Equal(t, "from-secret", cfg.ExternalClients.Kroger.ClientID)
	assert.Equal(t, "already-set", cfg.ExternalClients.Edamam.AppKey)

	cfg.Secrets.SecretName = "missing"
	assert.Error(t, handler.LoadSecrets(context.Background(), cfg))
}
