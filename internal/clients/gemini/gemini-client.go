package gemini_client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

const DefaultModel = "gemini-1.5-pro"

const maxDetail = 2048

type Client struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
}

var _ app.Generator = &Client{}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	// pointer so that 0 is sent
	Temperature *float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates   []candidate `json:"candidates"`
	ModelVersion string      `json:"modelVersion,omitempty"`
	Error        *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func New(cfg *config.Config) *Client {
	model := cfg.Clients.Generator.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		url:    strings.TrimRight(cfg.Clients.Generator.Url, "/"),
		apiKey: cfg.Clients.Generator.ApiKey,
		model:  model,
		// request deadline comes from ctx
		http: &http.Client{},
	}
}

// endpoint accepts either a base URL or a full :generateContent URL.
func (this *Client) endpoint() string {
	if strings.Contains(this.url, ":generateContent") {
		return this.url
	}
	return fmt.Sprintf("%s/models/%s:generateContent", this.url, url.PathEscape(this.model))
}

func (this *Client) Generate(ctx context.Context, req app.GenerateRequest) (*app.GenerateResult, error) {
	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Message}}}},
	}
	if req.Instruction != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.Instruction}}}
	}
	if req.Deterministic {
		zero := 0.0
		body.GenerationConfig = &generationConfig{Temperature: &zero}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, err, &errs.ErrorOpts{Message: "marshal gemini request"})
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, this.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{Message: "build gemini request"})
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", this.apiKey)

	httpRes, err := this.http.Do(httpReq)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{Message: "send gemini request"})
	}
	defer httpRes.Body.Close()

	raw, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{
			Message: "read gemini response",
			Status:  httpRes.StatusCode,
		})
	}

	if httpRes.StatusCode != http.StatusOK {
		return nil, &errs.Error{
			Kind:    errs.KindUpstream,
			Message: "gemini returned non-success status",
			Status:  httpRes.StatusCode,
			Detail:  errs.Truncate(string(raw), maxDetail),
		}
	}

	var res generateResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{
			Message: "parse gemini response",
			Status:  httpRes.StatusCode,
			Detail:  errs.Truncate(string(raw), maxDetail),
		})
	}
	if res.Error != nil {
		return nil, &errs.Error{
			Kind:    errs.KindUpstream,
			Message: fmt.Sprintf("gemini error %s: %s", res.Error.Status, res.Error.Message),
			Status:  res.Error.Code,
			Detail:  errs.Truncate(string(raw), maxDetail),
		}
	}

	result := &app.GenerateResult{Model: this.model}
	if res.ModelVersion != "" {
		result.Model = res.ModelVersion
	}
	for _, c := range res.Candidates {
		var b strings.Builder
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		result.Candidates = append(result.Candidates, b.String())
	}

	if len(result.Candidates) == 0 {
		return nil, &errs.Error{
			Kind:    errs.KindUpstream,
			Message: "gemini response has no candidates",
			Status:  httpRes.StatusCode,
			Detail:  errs.Truncate(string(raw), maxDetail),
		}
	}
	return result, nil
}
