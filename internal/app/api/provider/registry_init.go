package provider

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"audio2text/internal/app/api"
	apperrors "audio2text/internal/app/errors"
)

// Config carries everything a backend needs to build a transcriber.
type Config struct {
	APIKey   string
	Model    string
	Language string
	Prompt   string
	BaseURL  string
	Logger   *zap.Logger
}

// ProviderCreator is a function that creates a transcriber from configuration
type ProviderCreator func(cfg Config) (api.Transcriber, error)

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(name string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[name] = creator
}

// GetProviderCreator returns the creator function for a provider
func GetProviderCreator(name string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrProviderNotFound, "provider %q is not registered", name)
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider names, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// Create builds the named transcriber. An empty API key fails before any
// network access.
func Create(name string, cfg Config) (api.Transcriber, error) {
	creator, err := GetProviderCreator(name)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, apperrors.Kind(apperrors.ErrMissingAPIKey, "%s provider requires an API key", name)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return creator(cfg)
}
