package app

import "context"

type GenerateRequest struct {
	Instruction string
	Message     string
	// Deterministic asks for the lowest sampling temperature.
	Deterministic bool
}

type GenerateResult struct {
	Candidates []string
	Model      string
}

// Generator is a text-generation endpoint. Implementations return *errs.Error of kind upstream.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}
