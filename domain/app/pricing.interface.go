package app

import "context"

type PricingService interface {
	// Answer returns the model's text for question, trimmed and otherwise untouched.
	Answer(ctx context.Context, question string) (string, error)
}
