package config

import (
	"encoding/json"
	"fmt"
)

// ApplySecrets fills empty credentials from a JSON secret document such as
// the ones stored in AWS Secrets Manager. Values already set win.
func ApplySecrets(cfg *Config, secretJSON string) error {
	var secrets map[string]string
	if err := json.Unmarshal([]byte(secretJSON), &secrets); err != nil {
		return fmt.Errorf("failed to parse secret document: %w", err)
	}

	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = secrets[key]
		}
	}
	fill(&cfg.ExternalClients.Kroger.ClientID, "KROGER_CLIENT_ID")
	fill(&cfg.ExternalClients.Kroger.ClientSecret, "KROGER_CLIENT_SECRET")
	fill(&cfg.ExternalClients.Edamam.AppID, "EDAMAM_APP_ID")
	fill(&cfg.ExternalClients.Edamam.AppKey, "EDAMAM_APP_KEY")
	fill(&cfg.ExternalClients.AIML.APIKey, "AIML_API_KEY")
	fill(&cfg.Sync.APIKey, "SYNC_API_KEY")
	fill(&cfg.Databases.SQL.Password, "DB_PASSWORD")
	return nil
}
