package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/models"
)

// MemberRepository defines data operations for org members.
type MemberRepository interface {
	List(ctx context.Context) ([]models.Member, error)
	GetByEmail(ctx context.Context, email string) (models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, email string) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository instantiates the repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).Order("email").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, "email = ?", email).Error; err != nil {
		return models.Member{}, err
	}
	return member, nil
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&models.Member{}, "email = ?", email).Error
}
