package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/models"
)

// ShoutoutFilter narrows shoutout queries.
type ShoutoutFilter struct {
	GiverEmail    *string
	ReceiverEmail *string
	IncludeHidden bool
}

// ShoutoutRepository defines data operations for shoutouts.
type ShoutoutRepository interface {
	List(ctx context.Context, filter ShoutoutFilter) ([]models.Shoutout, error)
	GetByUUID(ctx context.Context, uuid string) (models.Shoutout, error)
	Create(ctx context.Context, shoutout *models.Shoutout) error
	Update(ctx context.Context, shoutout *models.Shoutout) error
	Delete(ctx context.Context, uuid string) error
}

type shoutoutRepository struct {
	db *gorm.DB
}

// NewShoutoutRepository instantiates the repository.
func NewShoutoutRepository(db *gorm.DB) ShoutoutRepository {
	return &shoutoutRepository{db: db}
}

func (r *shoutoutRepository) List(ctx context.Context, filter ShoutoutFilter) ([]models.Shoutout, error) {
	query := r.db.WithContext(ctx).Model(&models.Shoutout{})

	if filter.GiverEmail != nil {
		query = query.Where("giver_email = ?", *filter.GiverEmail)
	}
	if filter.ReceiverEmail != nil {
		query = query.Where("receiver_email = ?", *filter.ReceiverEmail)
	}
	if !filter.IncludeHidden {
		query = query.Where("hidden = ?", false)
	}

	var shoutouts []models.Shoutout
	if err := query.Order("created_at DESC").Find(&shoutouts).Error; err != nil {
		return nil, err
	}
	return shoutouts, nil
}

func (r *shoutoutRepository) GetByUUID(ctx context.Context, uuid string) (models.Shoutout, error) {
	var shoutout models.Shoutout
	if err := r.db.WithContext(ctx).First(&shoutout, "uuid = ?", uuid).Error; err != nil {
		return models.Shoutout{}, err
	}
	return shoutout, nil
}

func (r *shoutoutRepository) Create(ctx context.Context, shoutout *models.Shoutout) error {
	return r.db.WithContext(ctx).Create(shoutout).Error
}

func (r *shoutoutRepository) Update(ctx context.Context, shoutout *models.Shoutout) error {
	return r.db.WithContext(ctx).Save(shoutout).Error
}

func (r *shoutoutRepository) Delete(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Delete(&models.Shoutout{}, "uuid = ?", uuid).Error
}
