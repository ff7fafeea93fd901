package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/service"
	"github.com/orghub/orghub-api/internal/utils"
)

// PortfolioHandler manages portfolio and submission endpoints.
type PortfolioHandler struct {
	portfolios  service.PortfolioService
	submissions service.SubmissionService
	members     service.MemberService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewPortfolioHandler builds a portfolio handler instance.
func NewPortfolioHandler(portfolios service.PortfolioService, submissions service.SubmissionService, members service.MemberService, validate *validator.Validate, logger zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolios:  portfolios,
		submissions: submissions,
		members:     members,
		validator:   validate,
		logger:      logger.With().Str("component", "portfolio_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *PortfolioHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:uuid", h.get)
	router.Delete("/:uuid", h.delete)
	router.Get("/:uuid/submissions/me", h.mySubmissions)
	router.Post("/:uuid/submissions", h.submit)
	router.Put("/:uuid/submissions/regrade", h.regradeAll)
	router.Put("/:uuid/submissions/status", h.setManualStatus)
	router.Get("/:uuid/submissions/log", h.requestLog)
}

func (h *PortfolioHandler) list(c *fiber.Ctx) error {
	if c.QueryBool("meta_only") {
		portfolios, err := h.portfolios.ListInfo(c.Context())
		if err != nil {
			return sendServiceError(c, h.logger, err)
		}
		return utils.SendSuccess(c, "portfolios retrieved", portfolios)
	}

	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	portfolios, err := h.portfolios.List(c.Context(), actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "portfolios retrieved", portfolios)
}

func (h *PortfolioHandler) create(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	var payload dto.PortfolioCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	portfolio, err := h.portfolios.Create(c.Context(), payload, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "portfolio created", portfolio)
}

func (h *PortfolioHandler) get(c *fiber.Ctx) error {
	uuid := c.Params("uuid")

	if c.QueryBool("meta_only") {
		portfolio, err := h.portfolios.GetInfo(c.Context(), uuid)
		if err != nil {
			return sendServiceError(c, h.logger, err)
		}
		return utils.SendSuccess(c, "portfolio retrieved", portfolio)
	}

	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	portfolio, err := h.portfolios.Get(c.Context(), uuid, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "portfolio retrieved", portfolio)
}

func (h *PortfolioHandler) delete(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	if err := h.portfolios.Delete(c.Context(), c.Params("uuid"), actor); err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "portfolio deleted", nil)
}

func (h *PortfolioHandler) mySubmissions(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	submissions, err := h.portfolios.GetUserSubmissions(c.Context(), c.Params("uuid"), actor.Email)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *PortfolioHandler) submit(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	var draft dto.SubmissionDraft
	if err := c.BodyParser(&draft); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.submissions.Submit(c.Context(), c.Params("uuid"), draft, actor.Email)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission accepted", submission)
}

func (h *PortfolioHandler) regradeAll(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	portfolio, err := h.submissions.RegradeAll(c.Context(), c.Params("uuid"), actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "portfolio regraded", portfolio)
}

func (h *PortfolioHandler) requestLog(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	logs, err := h.submissions.ListRequestLog(c.Context(), c.Params("uuid"), actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submission log retrieved", logs)
}

func (h *PortfolioHandler) setManualStatus(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	var payload dto.ManualStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return sendServiceError(c, h.logger, err)
	}

	submission, err := h.submissions.SetManualStatus(c.Context(), c.Params("uuid"), payload, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "submission status updated", submission)
}
