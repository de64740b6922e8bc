package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"audio2text/internal/app/testutil"
)

var whisper1 = Scope{Provider: "openai", Model: "whisper-1"}

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mini, client
}

func writeAudio(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "memo.mp3")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCacheMissThenHit(t *testing.T) {
	mini, client := setup(t)
	path := writeAudio(t, "audio bytes")

	inner := new(testutil.MockTranscriber)
	inner.On("Transcript", mock.Anything, path).Return("hello world", nil).Once()

	tr := New(inner, client, whisper1, time.Hour, nil)

	text, err := tr.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	text, err = tr.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	inner.AssertNumberOfCalls(t, "Transcript", 1)

	keys := mini.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "a2t:transcript:openai:whisper-1:auto:-:")
	assert.Equal(t, time.Hour, mini.TTL(keys[0]))
}

func TestCacheKeyIncludesModel(t *testing.T) {
	_, client := setup(t)
	path := writeAudio(t, "same bytes")

	inner := new(testutil.MockTranscriber)
	inner.On("Transcript", mock.Anything, path).Return("text", nil)

	a := New(inner, client, whisper1, time.Hour, nil)
	b := New(inner, client, Scope{Provider: "openai", Model: "gpt-4o-transcribe"}, time.Hour, nil)

	_, err := a.Transcript(context.Background(), path)
	require.NoError(t, err)
	_, err = b.Transcript(context.Background(), path)
	require.NoError(t, err)

	inner.AssertNumberOfCalls(t, "Transcript", 2)
}

func TestCacheKeySeparatesLanguageAndPrompt(t *testing.T) {
	mini, client := setup(t)
	path := writeAudio(t, "same bytes")

	inner := new(testutil.MockTranscriber)
	inner.On("Transcript", mock.Anything, path).Return("guten tag", nil).Once()
	inner.On("Transcript", mock.Anything, path).Return("good day", nil).Once()
	inner.On("Transcript", mock.Anything, path).Return("good day, frogs", nil).Once()

	german := New(inner, client, Scope{Provider: "openai", Model: "whisper-1", Language: "de"}, time.Hour, nil)
	english := New(inner, client, Scope{Provider: "openai", Model: "whisper-1", Language: "en"}, time.Hour, nil)
	prompted := New(inner, client, Scope{Provider: "openai", Model: "whisper-1", Language: "en", Prompt: "amphibians"}, time.Hour, nil)

	text, err := german.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "guten tag", text)

	text, err = english.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "good day", text)

	text, err = prompted.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "good day, frogs", text)

	text, err = german.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "guten tag", text, "each language keeps its own entry")

	inner.AssertNumberOfCalls(t, "Transcript", 3)
	assert.Len(t, mini.Keys(), 3)
}

func TestCacheDefaultModel(t *testing.T) {
	tr := New(nil, nil, Scope{Provider: "gemini"}, time.Hour, nil)
	assert.Equal(t, "a2t:transcript:gemini:default:auto:-:abc", tr.Key("abc"))
}

func TestCacheErrorsAreNotStored(t *testing.T) {
	mini, client := setup(t)
	path := writeAudio(t, "x")

	inner := new(testutil.MockTranscriber)
	inner.On("Transcript", mock.Anything, path).Return("", errors.New("boom"))

	tr := New(inner, client, whisper1, time.Hour, nil)
	_, err := tr.Transcript(context.Background(), path)
	assert.EqualError(t, err, "boom")
	assert.Empty(t, mini.Keys())
}

func TestCacheUnavailableFallsThrough(t *testing.T) {
	mini, client := setup(t)
	mini.Close()
	path := writeAudio(t, "x")

	inner := new(testutil.MockTranscriber)
	inner.On("Transcript", mock.Anything, path).Return("still works", nil)

	tr := New(inner, client, whisper1, time.Hour, nil)
	text, err := tr.Transcript(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "still works", text)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Options().DB)

	_, err = NewClient("http://nope")
	assert.Error(t, err)
}
