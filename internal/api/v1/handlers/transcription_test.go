package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2text/internal/api/middleware"
)

func setupTestRouter(h *TranscriptionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/v1/audio/transcriptions", h.Create)
	return router
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile("file", "lecture.mp3")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestTranscriptionHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		file           []byte
		maxBytes       int64
		expectedStatus int
		validate       func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "json response",
			fields:         map[string]string{"model": "whisper-1"},
			file:           []byte("ID3 fake audio"),
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp TranscriptionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "hello world", resp.Text)
			},
		},
		{
			name:           "text response",
			fields:         map[string]string{"model": "whisper-1", "response_format": "text"},
			file:           []byte("ID3 fake audio"),
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "hello world", rec.Body.String())
			},
		},
		{
			name:           "verbose json response",
			fields:         map[string]string{"model": "whisper-1", "response_format": "verbose_json", "language": "en"},
			file:           []byte("ID3 fake audio"),
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp VerboseTranscriptionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "en", resp.Language)
				assert.Equal(t, "hello world", resp.Text)
			},
		},
		{
			name:           "missing file",
			fields:         map[string]string{"model": "whisper-1"},
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body map[string]map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "invalid_request_error", body["error"]["type"])
				assert.Equal(t, "file", body["error"]["param"])
				assert.NotEmpty(t, body["error"]["request_id"])
			},
		},
		{
			name:           "missing model",
			file:           []byte("ID3 fake audio"),
			expectedStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"param":"model"`)
			},
		},
		{
			name:           "file too large",
			fields:         map[string]string{"model": "whisper-1"},
			file:           bytes.Repeat([]byte("a"), 64),
			maxBytes:       16,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "unknown response format",
			fields:         map[string]string{"model": "whisper-1", "response_format": "xml"},
			file:           []byte("ID3 fake audio"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(NewTranscriptionHandler("hello world", tt.maxBytes, nil))
			body, contentType := multipartBody(t, tt.fields, tt.file)

			req := httptest.NewRequest(http.MethodPost, "/v1/audio/transcriptions", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}
