package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/service"
	"github.com/orghub/orghub-api/internal/utils"
)

// ShoutoutHandler manages shoutout endpoints.
type ShoutoutHandler struct {
	shoutouts service.ShoutoutService
	members   service.MemberService
	logger    zerolog.Logger
}

// NewShoutoutHandler builds a shoutout handler instance.
func NewShoutoutHandler(shoutouts service.ShoutoutService, members service.MemberService, logger zerolog.Logger) *ShoutoutHandler {
	return &ShoutoutHandler{
		shoutouts: shoutouts,
		members:   members,
		logger:    logger.With().Str("component", "shoutout_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ShoutoutHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:uuid/hidden", h.setHidden)
	router.Delete("/:uuid", h.delete)
}

func (h *ShoutoutHandler) list(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	filter := dto.ShoutoutFilter{}
	if giver := c.Query("giver_email"); giver != "" {
		filter.GiverEmail = &giver
	}
	if receiver := c.Query("receiver_email"); receiver != "" {
		filter.ReceiverEmail = &receiver
	}

	shoutouts, err := h.shoutouts.List(c.Context(), filter, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "shoutouts retrieved", shoutouts)
}

func (h *ShoutoutHandler) create(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	var payload dto.ShoutoutCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	shoutout, err := h.shoutouts.Create(c.Context(), payload, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "shoutout created", shoutout)
}

func (h *ShoutoutHandler) setHidden(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	var payload struct {
		Hidden bool `json:"hidden"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	shoutout, err := h.shoutouts.SetHidden(c.Context(), c.Params("uuid"), payload.Hidden, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "shoutout updated", shoutout)
}

func (h *ShoutoutHandler) delete(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	if err := h.shoutouts.Delete(c.Context(), c.Params("uuid"), actor); err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "shoutout deleted", nil)
}
