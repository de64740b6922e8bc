package openai

import (
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultTimeout bounds a single upload and transcription round trip.
const DefaultTimeout = 10 * time.Minute

// NewClient builds a client for apiKey. An empty baseURL keeps the public
// endpoint; the stub server and tests pass their own.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	config.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	return openai.NewClientWithConfig(config)
}
