package journal_store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/internal/errs"
)

type queryEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:varchar(16);not null"`
	Error     string    `gorm:"type:text;not null"`
	Model     string    `gorm:"type:varchar(128);not null"`
	LatencyMs int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (queryEntity) TableName() string {
	return "pricing_queries"
}

func toEntity(rec app.QueryRecord) queryEntity {
	return queryEntity{
		ID:        uuid.New(),
		Question:  rec.Question,
		Answer:    rec.Answer,
		Status:    string(rec.Status),
		Error:     rec.Error,
		Model:     rec.Model,
		LatencyMs: rec.Latency.Milliseconds(),
		CreatedAt: rec.At,
	}
}

// GormJournal appends query outcomes to the pricing_queries table.
type GormJournal struct {
	db  *gorm.DB
	log *slog.Logger
}

var _ app.QueryJournal = &GormJournal{}

func NewGorm(db *gorm.DB, log *slog.Logger) *GormJournal {
	return &GormJournal{db, log}
}

func (this *GormJournal) Record(ctx context.Context, rec app.QueryRecord) error {
	entity := toEntity(rec)
	if err := this.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return errs.Wrap(errs.KindInternal, err, &errs.ErrorOpts{Message: "insert pricing query"})
	}

	this.log.Debug("Query recorded", "id", entity.ID.String(), "status", entity.Status)
	return nil
}

type NoopJournal struct{}

var _ app.QueryJournal = NoopJournal{}

func (NoopJournal) Record(context.Context, app.QueryRecord) error {
	return nil
}
