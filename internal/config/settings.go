package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSettingsFile = "a2t.yaml"
	DefaultAudioDir     = "audio_files"
	DefaultBitrate      = "192k"
	DefaultProvider     = "openai"
	DefaultCacheTTL     = 30 * 24 * time.Hour
)

// DefaultExtensions are the containers the transcription API rejects and the
// converter therefore targets when no -t flag is given.
var DefaultExtensions = []string{"wma", "dss"}

// Settings is the a2t.yaml file merged with environment overrides.
type Settings struct {
	AudioDir      string          `yaml:"audio_dir" validate:"required"`
	Provider      string          `yaml:"provider" validate:"oneof=openai gemini"`
	Model         string          `yaml:"model,omitempty"`
	Language      string          `yaml:"language,omitempty" validate:"omitempty,alpha,min=2,max=3"`
	OpenAIBaseURL string          `yaml:"openai_base_url,omitempty" validate:"omitempty,url"`
	GeminiBaseURL string          `yaml:"gemini_base_url,omitempty" validate:"omitempty,url"`
	Convert       ConvertSettings `yaml:"convert"`
	History       HistorySettings `yaml:"history,omitempty"`
	Cache         CacheSettings   `yaml:"cache,omitempty"`
	Storage       StorageSettings `yaml:"storage,omitempty"`
}

type ConvertSettings struct {
	Bitrate    string   `yaml:"bitrate" validate:"bitrate"`
	Extensions []string `yaml:"extensions" validate:"min=1,dive,required"`
}

type HistorySettings struct {
	DSN string `yaml:"dsn,omitempty"`
}

type CacheSettings struct {
	RedisURL string        `yaml:"redis_url,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

type StorageSettings struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		AudioDir: DefaultAudioDir,
		Provider: DefaultProvider,
		Convert: ConvertSettings{
			Bitrate:    DefaultBitrate,
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Cache: CacheSettings{TTL: DefaultCacheTTL},
	}
}

// LoadSettings reads path (or a2t.yaml in the working directory when path is
// empty and the file exists), applies environment overrides and validates the
// result. An explicit path that does not exist is an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings.applyEnv()
	settings.Convert.Extensions = NormalizeExtensions(settings.Convert.Extensions)
	if settings.Cache.TTL == 0 {
		settings.Cache.TTL = DefaultCacheTTL
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the settings struct tags.
func (s *Settings) Validate() error {
	if err := newValidator().Struct(s); err != nil {
		return validationError(err)
	}
	return nil
}

func (s *Settings) applyEnv() {
	override := func(dst *string, name string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	override(&s.AudioDir, "A2T_AUDIO_DIR")
	override(&s.Provider, "A2T_PROVIDER")
	override(&s.OpenAIBaseURL, "OPENAI_BASE_URL")
	override(&s.History.DSN, "A2T_HISTORY_DSN")
	override(&s.Cache.RedisURL, "REDIS_URL")
	override(&s.Storage.Endpoint, "MINIO_ENDPOINT")
	override(&s.Storage.AccessKey, "MINIO_ACCESS_KEY")
	override(&s.Storage.SecretKey, "MINIO_SECRET_KEY")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		s.Storage.UseSSL = v == "true"
	}
}
