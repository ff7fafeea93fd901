package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/models"
	"github.com/orghub/orghub-api/internal/repository"
)

// ShoutoutService manages member-to-member shoutouts.
type ShoutoutService interface {
	List(ctx context.Context, filter dto.ShoutoutFilter, actor models.Member) ([]dto.ShoutoutResponse, error)
	Create(ctx context.Context, payload dto.ShoutoutCreateRequest, actor models.Member) (dto.ShoutoutResponse, error)
	SetHidden(ctx context.Context, shoutoutUUID string, hidden bool, actor models.Member) (dto.ShoutoutResponse, error)
	Delete(ctx context.Context, shoutoutUUID string, actor models.Member) error
}

type shoutoutService struct {
	shoutouts repository.ShoutoutRepository
	members   MemberService
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewShoutoutService constructs a ShoutoutService instance.
func NewShoutoutService(shoutouts repository.ShoutoutRepository, members MemberService, validate *validator.Validate, logger zerolog.Logger) ShoutoutService {
	return &shoutoutService{
		shoutouts: shoutouts,
		members:   members,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "shoutout_service").Logger(),
	}
}

func (s *shoutoutService) List(ctx context.Context, filter dto.ShoutoutFilter, actor models.Member) ([]dto.ShoutoutResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.ShoutoutFilter{
		GiverEmail:    filter.GiverEmail,
		ReceiverEmail: filter.ReceiverEmail,
		IncludeHidden: actor.IsLeadOrAdmin(),
	}

	shoutouts, err := s.shoutouts.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewShoutoutResponseSlice(shoutouts), nil
}

func (s *shoutoutService) Create(ctx context.Context, payload dto.ShoutoutCreateRequest, actor models.Member) (dto.ShoutoutResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ShoutoutResponse{}, err
	}

	message := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	if message == "" {
		return dto.ShoutoutResponse{}, fmt.Errorf("%w: shoutout message empty after sanitization", ErrInvalidRequest)
	}

	if _, err := s.members.ResolveMember(ctx, payload.ReceiverEmail); err != nil {
		return dto.ShoutoutResponse{}, err
	}

	shoutout := models.Shoutout{
		UUID:          uuid.NewString(),
		GiverEmail:    actor.Email,
		ReceiverEmail: payload.ReceiverEmail,
		Message:       message,
	}

	if err := s.shoutouts.Create(ctx, &shoutout); err != nil {
		return dto.ShoutoutResponse{}, err
	}

	s.logger.Info().Str("giver", shoutout.GiverEmail).Str("receiver", shoutout.ReceiverEmail).Msg("shoutout created")

	return dto.NewShoutoutResponse(shoutout), nil
}

func (s *shoutoutService) SetHidden(ctx context.Context, shoutoutUUID string, hidden bool, actor models.Member) (dto.ShoutoutResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return dto.ShoutoutResponse{}, fmt.Errorf("%w: %s may not hide shoutouts", ErrPermissionDenied, actor.Email)
	}

	shoutout, err := s.shoutouts.GetByUUID(ctx, shoutoutUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ShoutoutResponse{}, ErrShoutoutNotFound
		}
		return dto.ShoutoutResponse{}, err
	}

	shoutout.Hidden = hidden
	if err := s.shoutouts.Update(ctx, &shoutout); err != nil {
		return dto.ShoutoutResponse{}, err
	}

	return dto.NewShoutoutResponse(shoutout), nil
}

func (s *shoutoutService) Delete(ctx context.Context, shoutoutUUID string, actor models.Member) error {
	if !actor.IsLeadOrAdmin() {
		return fmt.Errorf("%w: %s may not delete shoutouts", ErrPermissionDenied, actor.Email)
	}

	if _, err := s.shoutouts.GetByUUID(ctx, shoutoutUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShoutoutNotFound
		}
		return err
	}

	return s.shoutouts.Delete(ctx, shoutoutUUID)
}
