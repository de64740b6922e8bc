package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	apperrors "audio2text/internal/app/errors"
)

var bitratePattern = regexp.MustCompile(`^[1-9][0-9]*k$`)

// ValidateBitrate checks an ffmpeg audio bitrate such as "192k".
func ValidateBitrate(bitrate string) error {
	if !bitratePattern.MatchString(bitrate) {
		return apperrors.InvalidField("bitrate", fmt.Sprintf("%q must look like 192k", bitrate))
	}
	return nil
}

// NormalizeExtensions lower-cases an extension allow-list, strips leading dots
// and blanks, and removes duplicates. It accepts comma separated entries.
func NormalizeExtensions(exts []string) []string {
	var out []string
	for _, e := range exts {
		for _, part := range strings.Split(e, ",") {
			part = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(part)), ".")
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return lo.Uniq(out)
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "invalid OPENAI_API_KEY format: too short")
		}
	case "Gemini":
		if !strings.HasPrefix(apiKey, "AIza") {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "invalid GEMINI_API_KEY format: must start with 'AIza'")
		}
		if len(apiKey) < 30 {
			return apperrors.Wrap(apperrors.ErrInvalidAPIKey, "invalid GEMINI_API_KEY format: too short")
		}
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bitrate", func(fl validator.FieldLevel) bool {
		return bitratePattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError flattens validator errors into one readable line.
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	msgs := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
	})
	return apperrors.Wrap(apperrors.ErrInvalidConfig, strings.Join(msgs, "; "))
}
