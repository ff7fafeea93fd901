package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/models"
	"github.com/orghub/orghub-api/internal/repository"
)

// MemberService manages org members and answers role lookups for grading.
type MemberService interface {
	List(ctx context.Context) ([]dto.MemberResponse, error)
	Upsert(ctx context.Context, payload dto.MemberUpsertRequest, actor models.Member) (dto.MemberResponse, error)
	Delete(ctx context.Context, email string, actor models.Member) error
	ResolveMember(ctx context.Context, email string) (models.Member, error)
}

type memberService struct {
	members   repository.MemberRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMemberService constructs a MemberService instance. The redis client is
// optional; without it every lookup hits the database.
func NewMemberService(members repository.MemberRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) MemberService {
	return &memberService{
		members:   members,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger.With().Str("component", "member_service").Logger(),
	}
}

func (s *memberService) List(ctx context.Context) ([]dto.MemberResponse, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewMemberResponseSlice(members), nil
}

func (s *memberService) Upsert(ctx context.Context, payload dto.MemberUpsertRequest, actor models.Member) (dto.MemberResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return dto.MemberResponse{}, fmt.Errorf("%w: %s may not manage members", ErrPermissionDenied, actor.Email)
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.MemberResponse{}, err
	}

	member := models.Member{
		Email:          payload.Email,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Role:           models.Role(payload.Role),
		GithubUsername: payload.GithubUsername,
	}

	existing, err := s.members.GetByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		member.CreatedAt = existing.CreatedAt
		if err := s.members.Update(ctx, &member); err != nil {
			return dto.MemberResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.members.Create(ctx, &member); err != nil {
			return dto.MemberResponse{}, err
		}
	default:
		return dto.MemberResponse{}, err
	}

	s.invalidate(ctx, member.Email)
	s.logger.Info().Str("email", member.Email).Str("role", string(member.Role)).Msg("member upserted")

	return dto.NewMemberResponse(member), nil
}

func (s *memberService) Delete(ctx context.Context, email string, actor models.Member) error {
	if !actor.IsLeadOrAdmin() {
		return fmt.Errorf("%w: %s may not manage members", ErrPermissionDenied, actor.Email)
	}

	if _, err := s.members.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if err := s.members.Delete(ctx, email); err != nil {
		return err
	}

	s.invalidate(ctx, email)
	return nil
}

// ResolveMember resolves an email reference to the member record, consulting
// the cache first. Grading depends on this for per-submission role lookup.
func (s *memberService) ResolveMember(ctx context.Context, email string) (models.Member, error) {
	cacheKey := memberCacheKey(email)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var member models.Member
			if unmarshalErr := json.Unmarshal([]byte(cached), &member); unmarshalErr == nil {
				return member, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read member cache")
		}
	}

	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Member{}, ErrMemberNotFound
		}
		return models.Member{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(member); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store member cache")
			}
		}
	}

	return member, nil
}

func (s *memberService) invalidate(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, memberCacheKey(email)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate member cache")
	}
}

func memberCacheKey(email string) string {
	return fmt.Sprintf("member:%s", email)
}
