package openai_client

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

const DefaultModel = "gpt-4o-mini"

type Client struct {
	client *openai.Client
	model  string
}

var _ app.Generator = &Client{}

func New(cfg *config.Config) *Client {
	var cl = openai.NewClient(
		option.WithAPIKey(cfg.Clients.Generator.ApiKey),
		option.WithBaseURL(cfg.Clients.Generator.Url),
		// одна попытка на вопрос
		option.WithMaxRetries(0),
	)

	model := cfg.Clients.Generator.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{client: &cl, model: model}
}

func (this *Client) Generate(ctx context.Context, req app.GenerateRequest) (*app.GenerateResult, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(this.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.Instruction),
			openai.UserMessage(req.Message),
		},
	}
	if req.Deterministic {
		params.Temperature = openai.Float(0)
	}

	completion, err := this.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{
				Message: "openai returned non-success status",
				Status:  apiErr.StatusCode,
				Detail:  apiErr.RawJSON(),
			})
		}
		return nil, errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{Message: "send openai request"})
	}

	result := &app.GenerateResult{Model: completion.Model}
	for _, choice := range completion.Choices {
		result.Candidates = append(result.Candidates, choice.Message.Content)
	}
	if len(result.Candidates) == 0 {
		return nil, errs.New(errs.KindUpstream, "openai response has no choices")
	}
	return result, nil
}
