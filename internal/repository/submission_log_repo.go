package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/models"
)

// SubmissionLogRepository appends audit records for submission attempts.
type SubmissionLogRepository interface {
	Append(ctx context.Context, log *models.SubmissionLog) error
	ListByPortfolio(ctx context.Context, portfolioUUID string) ([]models.SubmissionLog, error)
}

type submissionLogRepository struct {
	db *gorm.DB
}

// NewSubmissionLogRepository instantiates the repository.
func NewSubmissionLogRepository(db *gorm.DB) SubmissionLogRepository {
	return &submissionLogRepository{db: db}
}

func (r *submissionLogRepository) Append(ctx context.Context, log *models.SubmissionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *submissionLogRepository) ListByPortfolio(ctx context.Context, portfolioUUID string) ([]models.SubmissionLog, error) {
	var logs []models.SubmissionLog
	if err := r.db.WithContext(ctx).Where("portfolio_uuid = ?", portfolioUUID).Order("created_at").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
