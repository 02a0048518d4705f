package openai_client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

func newClient(url string) *Client {
	var cfg config.Config
	cfg.Clients.Generator.Url = url
	cfg.Clients.Generator.ApiKey = "test-key"
	return New(&cfg)
}

const completion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini-2024-07-18",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Cena: 40.00 EUR (0.400 EUR/gab.)"}}
  ]
}`

func TestGenerate_ChatCompletion(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion))
	}))
	defer server.Close()

	res, err := newClient(server.URL+"/v1/").Generate(context.Background(), app.GenerateRequest{
		Instruction:   "You are a pricing calculator.",
		Message:       "100 A3",
		Deterministic: true,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, "/chat/completions"), gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, DefaultModel, gotBody["model"])
	assert.Equal(t, 0.0, gotBody["temperature"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])

	assert.Equal(t, []string{"Cena: 40.00 EUR (0.400 EUR/gab.)"}, res.Candidates)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", res.Model)
}

func TestGenerate_ServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL+"/v1/").Generate(context.Background(), app.GenerateRequest{Message: "q"})

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindUpstream, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	res, err := newClient(server.URL+"/v1/").Generate(context.Background(), app.GenerateRequest{Message: "q"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errs.Is(err, errs.KindUpstream))
}
