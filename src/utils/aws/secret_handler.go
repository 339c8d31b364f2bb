package aws_handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

// SecretManager reads the JSON secret bundle holding the API credentials.
type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretID string) (string, error) {
	result, err := s.svc.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretID)
	}
	return *result.SecretString, nil
}
