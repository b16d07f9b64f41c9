package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	AppName     = "buddy-vision"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// CredentialStore persists service credentials between runs. Satisfied by
// *storage.SQLiteStore.
type CredentialStore interface {
	Credential(name string) (string, error)
	SetCredential(name, value string) error
}

// ResolveCredential returns the credential named by an environment
// variable. The environment wins and is persisted to the store for later
// runs, so a key only has to be exported once; without it the stored
// value is used.
func ResolveCredential(store CredentialStore, name string) string {
	if value := os.Getenv(name); value != "" {
		if store != nil {
			if err := store.SetCredential(name, value); err != nil {
				log.Warn().Err(err).Str("name", name).Msg("failed to persist credential")
			}
		}
		return value
	}
	if store == nil {
		return ""
	}
	value, err := store.Credential(name)
	if err != nil {
		log.Warn().Err(err).Str("name", name).Msg("failed to read stored credential")
		return ""
	}
	return value
}

// Required returns the credentials still missing after resolution. Vision
// analysis always needs its key; description generation needs at least
// one LLM key.
func Required(lookup func(name string) string) []string {
	var missing []string
	if lookup("GOOGLE_VISION_API_KEY") == "" {
		missing = append(missing, "GOOGLE_VISION_API_KEY")
	}
	if lookup("OPENAI_API_KEY") == "" && lookup("GEMINI_API_KEY") == "" {
		missing = append(missing, "OPENAI_API_KEY or GEMINI_API_KEY")
	}
	return missing
}
