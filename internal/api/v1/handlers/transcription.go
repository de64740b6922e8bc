package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audio2text/internal/api/errors"
	"audio2text/internal/api/middleware"
)

// DefaultMaxUploadBytes mirrors the 25 MiB limit of the hosted API.
const DefaultMaxUploadBytes int64 = 25 << 20

type TranscriptionResponse struct {
	Text string `json:"text"`
}

type VerboseTranscriptionResponse struct {
	Task     string  `json:"task"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// TranscriptionHandler answers every valid upload with the same transcript.
type TranscriptionHandler struct {
	transcript string
	maxBytes   int64
	logger     *zap.Logger
}

func NewTranscriptionHandler(transcript string, maxBytes int64, logger *zap.Logger) *TranscriptionHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionHandler{transcript: transcript, maxBytes: maxBytes, logger: logger}
}

// Create handles POST /v1/audio/transcriptions. The multipart form must
// carry "file" and "model"; response_format selects JSON or plain text.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewMissingParamError("file"))
		return
	}
	model := c.PostForm("model")
	if model == "" {
		middleware.HandleError(c, errors.NewMissingParamError("model"))
		return
	}
	if header.Size > h.maxBytes {
		middleware.HandleError(c, errors.NewTooLargeError(header.Size, h.maxBytes))
		return
	}

	h.logger.Debug("transcription request",
		zap.String("file", header.Filename),
		zap.Int64("size", header.Size),
		zap.String("model", model),
		zap.String("language", c.PostForm("language")))

	switch format := c.DefaultPostForm("response_format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, TranscriptionResponse{Text: h.transcript})
	case "verbose_json":
		c.JSON(http.StatusOK, VerboseTranscriptionResponse{
			Task:     "transcribe",
			Language: c.DefaultPostForm("language", "english"),
			Text:     h.transcript,
		})
	case "text", "srt", "vtt":
		c.String(http.StatusOK, h.transcript)
	default:
		middleware.HandleError(c, &errors.APIError{
			Kind:    errors.KindInvalidRequest,
			Message: "unsupported response_format " + format,
			Param:   "response_format",
		})
	}
}
