package gemini_client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

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

func TestGenerate_SendsDeterministicRequest(t *testing.T) {
	var (
		gotPath string
		gotKey  string
		gotBody map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Cena: 40.00 EUR "},{"text":"(0.400 EUR/gab.)\n"}]}}],"modelVersion":"gemini-1.5-pro-002"}`))
	}))
	defer server.Close()

	res, err := newClient(server.URL+"/v1beta/").Generate(context.Background(), app.GenerateRequest{
		Instruction:   "You are a pricing calculator.",
		Message:       "100 A3",
		Deterministic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	genCfg, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig sent")
	assert.Equal(t, 0.0, genCfg["temperature"])

	sys := gotBody["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)
	assert.Equal(t, "You are a pricing calculator.", sys["text"])
	user := gotBody["contents"].([]any)[0].(map[string]any)["parts"].([]any)[0].(map[string]any)
	assert.Equal(t, "100 A3", user["text"])

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "  Cena: 40.00 EUR (0.400 EUR/gab.)\n", res.Candidates[0])
	assert.Equal(t, "gemini-1.5-pro-002", res.Model)
}

func TestGenerate_FullEndpointURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL + "/v1/models/gemini-pro:generateContent").Generate(context.Background(), app.GenerateRequest{Message: "q"})
	require.NoError(t, err)
	assert.Equal(t, "/v1/models/gemini-pro:generateContent", gotPath)
}

func TestGenerate_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"code":500,"message":"boom"}}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"missing candidates", http.StatusOK, `{}`},
		{"error payload", http.StatusOK, `{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`},
		{"not json", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			res, err := newClient(server.URL).Generate(context.Background(), app.GenerateRequest{Message: "q"})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errs.Is(err, errs.KindUpstream), "got %v", err)
		})
	}
}

func TestGenerate_ServerErrorKeepsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newClient(server.URL).Generate(context.Background(), app.GenerateRequest{Message: "q"})

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)
	assert.Contains(t, e.Detail, "overloaded")
}

func TestGenerate_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(server.URL).Generate(ctx, app.GenerateRequest{Message: "q"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindUpstream))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerate_DetailStaysValidUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("x" + strings.Repeat("ā", maxDetail)))
	}))
	defer server.Close()

	_, err := newClient(server.URL).Generate(context.Background(), app.GenerateRequest{Message: "q"})

	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.True(t, utf8.ValidString(e.Detail))
	assert.LessOrEqual(t, len(e.Detail), maxDetail)
}
