package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/grading"
	"github.com/orghub/orghub-api/internal/models"
	"github.com/orghub/orghub-api/internal/repository"
)

const portfolioInfoCacheKey = "portfolio:info"

// PortfolioService manages portfolio lifecycle and read views.
type PortfolioService interface {
	Create(ctx context.Context, payload dto.PortfolioCreateRequest, actor models.Member) (dto.PortfolioInfoResponse, error)
	Delete(ctx context.Context, portfolioUUID string, actor models.Member) error
	List(ctx context.Context, actor models.Member) ([]dto.PortfolioResponse, error)
	ListInfo(ctx context.Context) ([]dto.PortfolioInfoResponse, error)
	Get(ctx context.Context, portfolioUUID string, actor models.Member) (dto.PortfolioResponse, error)
	GetInfo(ctx context.Context, portfolioUUID string) (dto.PortfolioInfoResponse, error)
	GetUserSubmissions(ctx context.Context, portfolioUUID, email string) ([]dto.SubmissionResponse, error)
}

type portfolioService struct {
	portfolios repository.PortfolioRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	location   *time.Location
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewPortfolioService constructs a PortfolioService instance. Deadlines are
// normalized once at creation time in the provided location.
func NewPortfolioService(portfolios repository.PortfolioRepository, cache *redis.Client, cacheTTL time.Duration, location *time.Location, validate *validator.Validate, logger zerolog.Logger) PortfolioService {
	return &portfolioService{
		portfolios: portfolios,
		cache:      cache,
		cacheTTL:   cacheTTL,
		location:   location,
		validator:  validate,
		logger:     logger.With().Str("component", "portfolio_service").Logger(),
	}
}

func (s *portfolioService) Create(ctx context.Context, payload dto.PortfolioCreateRequest, actor models.Member) (dto.PortfolioInfoResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return dto.PortfolioInfoResponse{}, fmt.Errorf("%w: %s may not create portfolios", ErrPermissionDenied, actor.Email)
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.PortfolioInfoResponse{}, err
	}

	if payload.Deadline.Before(payload.EarliestValidDate) {
		return dto.PortfolioInfoResponse{}, fmt.Errorf("%w: deadline precedes earliest valid date", ErrInvalidRequest)
	}
	if payload.LateDeadline != nil && payload.LateDeadline.Before(payload.Deadline) {
		return dto.PortfolioInfoResponse{}, fmt.Errorf("%w: late deadline precedes deadline", ErrInvalidRequest)
	}

	portfolio := models.Portfolio{
		UUID:              uuid.NewString(),
		Name:              payload.Name,
		EarliestValidDate: grading.StartOfDay(payload.EarliestValidDate, s.location),
		Deadline:          grading.EndOfDay(payload.Deadline, s.location),
	}
	if payload.LateDeadline != nil {
		lateDeadline := grading.EndOfDay(*payload.LateDeadline, s.location)
		portfolio.LateDeadline = &lateDeadline
	}
	if err := portfolio.SetSubmissionList(nil); err != nil {
		return dto.PortfolioInfoResponse{}, err
	}

	if err := s.portfolios.Create(ctx, &portfolio); err != nil {
		return dto.PortfolioInfoResponse{}, err
	}

	s.invalidateInfoCache(ctx)
	s.logger.Info().Str("uuid", portfolio.UUID).Str("name", portfolio.Name).Msg("portfolio created")

	return dto.NewPortfolioInfoResponse(portfolio), nil
}

func (s *portfolioService) Delete(ctx context.Context, portfolioUUID string, actor models.Member) error {
	if !actor.IsLeadOrAdmin() {
		return fmt.Errorf("%w: %s may not delete portfolios", ErrPermissionDenied, actor.Email)
	}

	if _, err := s.portfolios.GetInfoByUUID(ctx, portfolioUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortfolioNotFound
		}
		return err
	}

	if err := s.portfolios.Delete(ctx, portfolioUUID); err != nil {
		return err
	}

	s.invalidateInfoCache(ctx)
	return nil
}

func (s *portfolioService) List(ctx context.Context, actor models.Member) ([]dto.PortfolioResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return nil, fmt.Errorf("%w: %s may not view full portfolios", ErrPermissionDenied, actor.Email)
	}

	portfolios, err := s.portfolios.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PortfolioResponse, 0, len(portfolios))
	for _, portfolio := range portfolios {
		submissions, err := portfolio.SubmissionList()
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewPortfolioResponse(portfolio, submissions))
	}
	return responses, nil
}

func (s *portfolioService) ListInfo(ctx context.Context) ([]dto.PortfolioInfoResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, portfolioInfoCacheKey).Result(); err == nil {
			var responses []dto.PortfolioInfoResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				return responses, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read portfolio info cache")
		}
	}

	portfolios, err := s.portfolios.ListInfo(ctx)
	if err != nil {
		return nil, err
	}

	responses := dto.NewPortfolioInfoResponseSlice(portfolios)

	if s.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, portfolioInfoCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store portfolio info cache")
			}
		}
	}

	return responses, nil
}

func (s *portfolioService) Get(ctx context.Context, portfolioUUID string, actor models.Member) (dto.PortfolioResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return dto.PortfolioResponse{}, fmt.Errorf("%w: %s may not view full portfolios", ErrPermissionDenied, actor.Email)
	}

	portfolio, err := s.portfolios.GetByUUID(ctx, portfolioUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PortfolioResponse{}, ErrPortfolioNotFound
		}
		return dto.PortfolioResponse{}, err
	}

	submissions, err := portfolio.SubmissionList()
	if err != nil {
		return dto.PortfolioResponse{}, err
	}

	return dto.NewPortfolioResponse(portfolio, submissions), nil
}

func (s *portfolioService) GetInfo(ctx context.Context, portfolioUUID string) (dto.PortfolioInfoResponse, error) {
	portfolio, err := s.portfolios.GetInfoByUUID(ctx, portfolioUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PortfolioInfoResponse{}, ErrPortfolioNotFound
		}
		return dto.PortfolioInfoResponse{}, err
	}
	return dto.NewPortfolioInfoResponse(portfolio), nil
}

func (s *portfolioService) GetUserSubmissions(ctx context.Context, portfolioUUID, email string) ([]dto.SubmissionResponse, error) {
	portfolio, err := s.portfolios.GetByUUID(ctx, portfolioUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}

	submissions, err := portfolio.SubmissionList()
	if err != nil {
		return nil, err
	}

	var owned []models.Submission
	for _, submission := range submissions {
		if submission.MemberEmail == email {
			owned = append(owned, submission)
		}
	}

	return dto.NewSubmissionResponseSlice(owned), nil
}

func (s *portfolioService) invalidateInfoCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, portfolioInfoCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate portfolio info cache")
	}
}
