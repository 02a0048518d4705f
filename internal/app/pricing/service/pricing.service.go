package pricing_service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/config"
	"github.com/init-pkg/print-pricing/internal/errs"
)

const journalTimeout = 3 * time.Second

type PricingService struct {
	generator      app.Generator
	journal        app.QueryJournal
	log            *slog.Logger
	timeout        time.Duration
	journalTimeout time.Duration
	instruction    string
}

var _ app.PricingService = &PricingService{}

func New(
	cfg *config.Config,
	table *app.PriceTable,
	generator app.Generator,
	journal app.QueryJournal,
	log *slog.Logger,
) *PricingService {
	return &PricingService{
		generator:      generator,
		journal:        journal,
		log:            log,
		timeout:        cfg.Clients.Generator.Timeout,
		journalTimeout: journalTimeout,
		instruction:    renderInstruction(table),
	}
}

func (this *PricingService) Answer(ctx context.Context, question string) (string, error) {
	started := time.Now()
	question = strings.TrimSpace(question)

	if question == "" {
		err := errs.New(errs.KindValidation, "question is required")
		this.record(ctx, app.QueryRecord{Status: app.QueryStatusRejected, Error: err.Error()}, started)
		return "", err
	}

	this.log.Debug("Pricing prompt", "instruction", this.instruction, "question", question)

	answer, model, err := this.generate(ctx, question)
	if err != nil {
		e := errs.Wrap(errs.KindUpstream, err, &errs.ErrorOpts{Message: "generation failed"})
		this.log.Error("Generation failed",
			"error", e.Error(),
			"status", e.Status,
			"detail", e.Detail)
		this.record(ctx, app.QueryRecord{
			Question: question,
			Status:   app.QueryStatusFailed,
			Error:    e.Error(),
			Model:    model,
		}, started)
		return "", e
	}

	this.record(ctx, app.QueryRecord{
		Question: question,
		Answer:   answer,
		Status:   app.QueryStatusAnswered,
		Model:    model,
	}, started)
	return answer, nil
}

func (this *PricingService) generate(ctx context.Context, question string) (string, string, error) {
	if this.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, this.timeout)
		defer cancel()
	}

	res, err := this.generator.Generate(ctx, app.GenerateRequest{
		Instruction:   this.instruction,
		Message:       question,
		Deterministic: true,
	})
	if err != nil {
		return "", "", err
	}
	if res == nil || len(res.Candidates) == 0 {
		return "", "", errs.New(errs.KindUpstream, "response has no candidates")
	}

	answer := strings.TrimSpace(res.Candidates[0])
	if answer == "" {
		return "", res.Model, errs.New(errs.KindUpstream, "first candidate has no text")
	}
	return answer, res.Model, nil
}

// record never fails the query; journal errors are only logged.
// The write outlives a cancelled request but is bounded by journalTimeout.
func (this *PricingService) record(ctx context.Context, rec app.QueryRecord, started time.Time) {
	rec.At = started.UTC()
	rec.Latency = time.Since(started)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), this.journalTimeout)
	defer cancel()

	if err := this.journal.Record(ctx, rec); err != nil {
		this.log.Warn("Query journal write failed", "error", err.Error(), "status", rec.Status)
	}
}
