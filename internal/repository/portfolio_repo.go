package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/models"
)

// PortfolioRepository defines data operations for portfolio documents. Save
// rewrites the whole row, submissions document included; the store offers no
// partial-field transaction beyond that.
type PortfolioRepository interface {
	List(ctx context.Context) ([]models.Portfolio, error)
	ListInfo(ctx context.Context) ([]models.Portfolio, error)
	GetByUUID(ctx context.Context, uuid string) (models.Portfolio, error)
	GetInfoByUUID(ctx context.Context, uuid string) (models.Portfolio, error)
	Create(ctx context.Context, portfolio *models.Portfolio) error
	Save(ctx context.Context, portfolio *models.Portfolio) error
	Delete(ctx context.Context, uuid string) error
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository instantiates the repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

var portfolioInfoColumns = []string{"uuid", "name", "earliest_valid_date", "deadline", "late_deadline", "created_at", "updated_at"}

func (r *portfolioRepository) List(ctx context.Context) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := r.db.WithContext(ctx).Order("deadline DESC").Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *portfolioRepository) ListInfo(ctx context.Context) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := r.db.WithContext(ctx).Select(portfolioInfoColumns).Order("deadline DESC").Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

func (r *portfolioRepository) GetByUUID(ctx context.Context, uuid string) (models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := r.db.WithContext(ctx).First(&portfolio, "uuid = ?", uuid).Error; err != nil {
		return models.Portfolio{}, err
	}
	return portfolio, nil
}

func (r *portfolioRepository) GetInfoByUUID(ctx context.Context, uuid string) (models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := r.db.WithContext(ctx).Select(portfolioInfoColumns).First(&portfolio, "uuid = ?", uuid).Error; err != nil {
		return models.Portfolio{}, err
	}
	return portfolio, nil
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	return r.db.WithContext(ctx).Create(portfolio).Error
}

func (r *portfolioRepository) Save(ctx context.Context, portfolio *models.Portfolio) error {
	return r.db.WithContext(ctx).Save(portfolio).Error
}

func (r *portfolioRepository) Delete(ctx context.Context, uuid string) error {
	return r.db.WithContext(ctx).Delete(&models.Portfolio{}, "uuid = ?", uuid).Error
}
