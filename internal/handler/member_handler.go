package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/orghub/orghub-api/internal/dto"
	"github.com/orghub/orghub-api/internal/service"
	"github.com/orghub/orghub-api/internal/utils"
)

// MemberHandler manages org member endpoints.
type MemberHandler struct {
	members service.MemberService
	logger  zerolog.Logger
}

// NewMemberHandler builds a member handler instance.
func NewMemberHandler(members service.MemberService, logger zerolog.Logger) *MemberHandler {
	return &MemberHandler{
		members: members,
		logger:  logger.With().Str("component", "member_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *MemberHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Put("", h.upsert)
	router.Delete("/:email", h.delete)
}

func (h *MemberHandler) list(c *fiber.Ctx) error {
	members, err := h.members.List(c.Context())
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "members retrieved", members)
}

func (h *MemberHandler) upsert(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	var payload dto.MemberUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	member, err := h.members.Upsert(c.Context(), payload, actor)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "member saved", member)
}

func (h *MemberHandler) delete(c *fiber.Ctx) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	if err := h.members.Delete(c.Context(), c.Params("email"), actor); err != nil {
		return sendServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "member deleted", nil)
}
