package app

import (
	"context"
	"time"
)

type QueryStatus string

const (
	QueryStatusAnswered QueryStatus = "answered"
	QueryStatusRejected QueryStatus = "rejected"
	QueryStatusFailed   QueryStatus = "failed"
)

type QueryRecord struct {
	Question string
	Answer   string
	Status   QueryStatus
	Error    string
	Model    string
	Latency  time.Duration
	At       time.Time
}

// QueryJournal stores query outcomes. It is write-only; answers never depend on it.
type QueryJournal interface {
	Record(ctx context.Context, rec QueryRecord) error
}
