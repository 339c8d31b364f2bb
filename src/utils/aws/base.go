package aws_handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"

	"fittrack/src/config"
)

type AWSHandler struct {
	SecretManager *SecretManager
}

func NewAWSHandler(region string) (*AWSHandler, error) {
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return &AWSHandler{SecretManager: NewSecretManager(secretsmanager.New(sess))}, nil
}

// LoadSecrets fills the missing credentials in cfg from the secret named by
// secrets.secretName.
func (h *AWSHandler) LoadSecrets(ctx context.Context, cfg *config.Config) error {
	secret, err := h.SecretManager.GetSecretValue(ctx, cfg.Secrets.SecretName)
	if err != nil {
		return fmt.Errorf("failed to read secret %s: %w", cfg.Secrets.SecretName, err)
	}
	return config.ApplySecrets(cfg, secret)
}
