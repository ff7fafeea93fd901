package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/github"
	"github.com/orghub/orghub-api/internal/grading"
	"github.com/orghub/orghub-api/internal/models"
	"github.com/orghub/orghub-api/internal/observability"
	"github.com/orghub/orghub-api/internal/repository"
)

// SubmissionService is the grading pipeline entry point: it validates and
// aggregates submissions on create, regrades whole portfolios, and applies
// admin status overrides.
type SubmissionService interface {
	Submit(ctx context.Context, portfolioUUID string, draft dto.SubmissionDraft, submitterEmail string) (dto.SubmissionResponse, error)
	RegradeAll(ctx context.Context, portfolioUUID string, actor models.Member) (dto.PortfolioResponse, error)
	SetManualStatus(ctx context.Context, portfolioUUID string, payload dto.ManualStatusRequest, actor models.Member) (dto.SubmissionResponse, error)
	ListRequestLog(ctx context.Context, portfolioUUID string, actor models.Member) ([]dto.SubmissionLogResponse, error)
}

type submissionService struct {
	portfolios repository.PortfolioRepository
	logs       repository.SubmissionLogRepository
	members    MemberService
	pulls      github.PullService
	publisher  SubmissionEventPublisher
	logger     zerolog.Logger
	now        func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(portfolios repository.PortfolioRepository, logs repository.SubmissionLogRepository, members MemberService, pulls github.PullService, publisher SubmissionEventPublisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		portfolios: portfolios,
		logs:       logs,
		members:    members,
		pulls:      pulls,
		publisher:  publisher,
		logger:     logger.With().Str("component", "submission_service").Logger(),
		now:        time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, portfolioUUID string, draft dto.SubmissionDraft, submitterEmail string) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/orghub/orghub-api/internal/service/submission")
	ctx, span := tracer.Start(ctx, "submission.submit")
	span.SetAttributes(
		attribute.String("portfolio.uuid", portfolioUUID),
		attribute.String("submission.member", submitterEmail),
	)
	defer span.End()

	member, err := s.members.ResolveMember(ctx, submitterEmail)
	if err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	portfolio, err := s.portfolios.GetByUUID(ctx, portfolioUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrPortfolioNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	s.logRequest(ctx, portfolioUUID, submitterEmail, draft)

	now := s.now()
	if !grading.WithinWindow(now, portfolio.EarliestValidDate, portfolio.EffectiveDeadline()) {
		return dto.SubmissionResponse{}, fmt.Errorf(
			"%w: this portfolio accepts submissions between %s and %s",
			ErrInvalidRequest,
			portfolio.EarliestValidDate.Format("Jan 2 2006"),
			portfolio.EffectiveDeadline().Format("Jan 2 2006"),
		)
	}

	submission := submissionFromDraft(draft, member.Email)
	submission.SubmittedAt = now
	submission.IsLate = grading.ComputeIsLate(now, portfolio.Deadline, portfolio.LateDeadline)

	if err := checkSubmitGates(member, submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission = grading.ValidateSubmission(ctx, s.pulls, member, submission)
	submission.Status = grading.Aggregate(grading.RequirementFor(member, submission), submission)

	submissions, err := portfolio.SubmissionList()
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	submissions = append(submissions, submission)
	if err := portfolio.SetSubmissionList(submissions); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := s.portfolios.Save(ctx, &portfolio); err != nil {
		return dto.SubmissionResponse{}, err
	}

	response := dto.NewSubmissionResponse(submission)
	s.publisher.PublishSubmission(SubmissionEvent{
		PortfolioUUID: portfolio.UUID,
		PortfolioName: portfolio.Name,
		Submission:    response,
		SentAt:        now.UTC(),
	})

	observability.SubmissionsGraded().WithLabelValues(string(submission.Status)).Inc()
	s.logger.Info().
		Str("portfolio", portfolio.UUID).
		Str("member", member.Email).
		Str("status", string(submission.Status)).
		Bool("is_late", submission.IsLate).
		Msg("submission accepted")

	return response, nil
}

func (s *submissionService) RegradeAll(ctx context.Context, portfolioUUID string, actor models.Member) (dto.PortfolioResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return dto.PortfolioResponse{}, fmt.Errorf("%w: %s may not regrade submissions", ErrPermissionDenied, actor.Email)
	}

	tracer := otel.Tracer("github.com/orghub/orghub-api/internal/service/submission")
	ctx, span := tracer.Start(ctx, "submission.regrade_all")
	span.SetAttributes(attribute.String("portfolio.uuid", portfolioUUID))
	defer span.End()

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

	regraded := make([]models.Submission, 0, len(submissions))
	for _, submission := range submissions {
		member, err := s.members.ResolveMember(ctx, submission.MemberEmail)
		if err != nil {
			if errors.Is(err, ErrMemberNotFound) {
				// The member left the org; keep the stored grade untouched.
				s.logger.Warn().Str("member", submission.MemberEmail).Msg("skipping regrade for unknown member")
				regraded = append(regraded, submission)
				continue
			}
			return dto.PortfolioResponse{}, err
		}

		updated := grading.ValidateSubmission(ctx, s.pulls, member, submission)
		updated.Status = grading.Aggregate(grading.RequirementFor(member, updated), updated)
		updated.ManualOverride = false
		regraded = append(regraded, updated)
	}

	if err := portfolio.SetSubmissionList(regraded); err != nil {
		return dto.PortfolioResponse{}, err
	}
	if err := s.portfolios.Save(ctx, &portfolio); err != nil {
		return dto.PortfolioResponse{}, err
	}

	observability.RegradeRuns().Inc()
	s.logger.Info().Str("portfolio", portfolio.UUID).Int("submissions", len(regraded)).Msg("portfolio regraded")

	return dto.NewPortfolioResponse(portfolio, regraded), nil
}

func (s *submissionService) SetManualStatus(ctx context.Context, portfolioUUID string, payload dto.ManualStatusRequest, actor models.Member) (dto.SubmissionResponse, error) {
	if !actor.IsAdmin() {
		return dto.SubmissionResponse{}, fmt.Errorf("%w: %s may not override submission status", ErrPermissionDenied, actor.Email)
	}

	portfolio, err := s.portfolios.GetByUUID(ctx, portfolioUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrPortfolioNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submissions, err := portfolio.SubmissionList()
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if payload.SubmissionIndex < 0 || payload.SubmissionIndex >= len(submissions) {
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	submissions[payload.SubmissionIndex].Status = models.SubmissionStatus(payload.Status)
	submissions[payload.SubmissionIndex].ManualOverride = true

	if err := portfolio.SetSubmissionList(submissions); err != nil {
		return dto.SubmissionResponse{}, err
	}
	if err := s.portfolios.Save(ctx, &portfolio); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Str("portfolio", portfolio.UUID).
		Int("index", payload.SubmissionIndex).
		Str("status", payload.Status).
		Str("actor", actor.Email).
		Msg("manual status set")

	return dto.NewSubmissionResponse(submissions[payload.SubmissionIndex]), nil
}

func (s *submissionService) ListRequestLog(ctx context.Context, portfolioUUID string, actor models.Member) ([]dto.SubmissionLogResponse, error) {
	if !actor.IsLeadOrAdmin() {
		return nil, fmt.Errorf("%w: %s may not view the submission log", ErrPermissionDenied, actor.Email)
	}

	if _, err := s.portfolios.GetInfoByUUID(ctx, portfolioUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, err
	}

	logs, err := s.logs.ListByPortfolio(ctx, portfolioUUID)
	if err != nil {
		return nil, err
	}
	return dto.NewSubmissionLogResponseSlice(logs), nil
}

// logRequest appends an audit row for the attempt before grading runs.
// Logging failures never fail the submission.
func (s *submissionService) logRequest(ctx context.Context, portfolioUUID, email string, draft dto.SubmissionDraft) {
	if s.logs == nil {
		return
	}

	body, err := json.Marshal(draft)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode submission log body")
		return
	}

	log := models.SubmissionLog{
		PortfolioUUID: portfolioUUID,
		MemberEmail:   email,
		Body:          datatypes.JSON(body),
	}
	if err := s.logs.Append(ctx, &log); err != nil {
		s.logger.Warn().Err(err).Msg("failed to append submission log")
	}
}

// checkSubmitGates enforces the structural requirements that reject a
// submission before any GitHub lookup runs.
func checkSubmitGates(member models.Member, submission models.Submission) error {
	switch grading.RequirementFor(member, submission) {
	case grading.RequirementTPM:
		if strings.TrimSpace(submission.Text) == "" {
			return fmt.Errorf("%w: a written summary is required for this role", ErrInvalidRequest)
		}
	case grading.RequirementOtherOnly:
		// RequirementFor only selects this path when an explanation and at
		// least one other-PR entry are present.
	default:
		if countNonBlank(submission.OpenedPRs) == 0 {
			return fmt.Errorf("%w: at least one opened pull request is required", ErrInvalidRequest)
		}
		if countNonBlank(submission.ReviewedPRs) == 0 {
			return fmt.Errorf("%w: at least one reviewed pull request is required", ErrInvalidRequest)
		}
		if strings.TrimSpace(submission.DocumentationText) == "" {
			return fmt.Errorf("%w: documentation text is required", ErrInvalidRequest)
		}
	}
	return nil
}

func countNonBlank(entries []models.PullRequestEntry) int {
	count := 0
	for _, entry := range entries {
		if strings.TrimSpace(entry.URL) != "" {
			count++
		}
	}
	return count
}

func submissionFromDraft(draft dto.SubmissionDraft, email string) models.Submission {
	return models.Submission{
		MemberEmail:       email,
		OpenedPRs:         entriesFromURLs(draft.OpenedPRs),
		ReviewedPRs:       entriesFromURLs(draft.ReviewedPRs),
		OtherPRs:          entriesFromURLs(draft.OtherPRs),
		Text:              strings.TrimSpace(draft.Text),
		DocumentationText: strings.TrimSpace(draft.DocumentationText),
		Status:            models.StatusPending,
	}
}

func entriesFromURLs(urls []string) []models.PullRequestEntry {
	if len(urls) == 0 {
		return nil
	}
	entries := make([]models.PullRequestEntry, 0, len(urls))
	for _, url := range urls {
		entries = append(entries, models.PullRequestEntry{URL: strings.TrimSpace(url), Status: models.StatusPending})
	}
	return entries
}
