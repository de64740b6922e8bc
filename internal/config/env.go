package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "audio2text/internal/app/errors"
)

// placeholderAPIKey is the value shipped in .env.example; it counts as unset.
const placeholderAPIKey = "your_api_key_here"

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini string
}

// LoadEnv loads environment variables from the first .env file it finds and
// returns its path. A missing file is not an error since the keys may be set
// system-wide.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetAPIKeys reads the API keys from environment variables. Format checks
// happen in RequireKeyFor, for the selected provider only.
func GetAPIKeys() *APIKeys {
	return &APIKeys{
		OpenAI: readKey("OPENAI_API_KEY"),
		Gemini: readKey("GEMINI_API_KEY"),
	}
}

func readKey(name string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == placeholderAPIKey {
		return ""
	}
	return v
}

// Available lists the providers that have a key configured.
func (k *APIKeys) Available() []string {
	var available []string
	if k.OpenAI != "" {
		available = append(available, "openai")
	}
	if k.Gemini != "" {
		available = append(available, "gemini")
	}
	return available
}

// RequireKeyFor returns the key the named provider needs, failing fast with
// ErrMissingAPIKey when it is absent and ErrInvalidAPIKey when it does not
// look like a key for the hosted API. A non-empty baseURL points at a
// compatible server whose keys can look like anything, so the format check
// is skipped.
func RequireKeyFor(provider string, apiKeys *APIKeys, baseURL string) (string, error) {
	if apiKeys == nil {
		apiKeys = &APIKeys{}
	}
	var key, envName, keyType string
	switch provider {
	case "openai":
		key, envName, keyType = apiKeys.OpenAI, "OPENAI_API_KEY", "OpenAI"
	case "gemini":
		key, envName, keyType = apiKeys.Gemini, "GEMINI_API_KEY", "Gemini"
	default:
		return "", apperrors.Wrapf(apperrors.ErrProviderNotFound, "provider %q", provider)
	}

	if key == "" {
		msg := envName + " is not set; export it or add it to a .env file"
		if others := apiKeys.Available(); len(others) > 0 {
			msg += fmt.Sprintf(" (keys found for: %s)", strings.Join(others, ", "))
		}
		return "", apperrors.Kind(apperrors.ErrMissingAPIKey, "%s", msg)
	}
	if baseURL == "" {
		if err := ValidateAPIKey(key, keyType); err != nil {
			return "", err
		}
	}
	return key, nil
}
