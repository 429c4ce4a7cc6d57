package handlers

import (
	"context"

	apperrors "cardkeeper/internal/errors"
	"cardkeeper/internal/logger"
	"cardkeeper/internal/models"
	"cardkeeper/internal/services/card"
	"cardkeeper/internal/utils"
	"cardkeeper/internal/utils/response"
	"cardkeeper/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

// CardHandler exposes the caller's card store. Add, remove and set-default are
// dispatched in the background and answered with 202; clients follow the outcome
// through GET /api/cards.
type CardHandler struct {
	registry *card.Registry
}

func NewCardHandler(registry *card.Registry) *CardHandler {
	return &CardHandler{
		registry: registry,
	}
}

func (h *CardHandler) store(c *fiber.Ctx) (*card.Store, error) {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return nil, &apperrors.DomainError{Code: apperrors.CodeUnauthorized, Message: "Unauthorized", Err: err}
	}

	s, err := h.registry.For(c.UserContext(), *claims)
	if err != nil {
		logger.Error("failed to open card store",
			logger.LoggerOptions{Key: "user_id", Data: claims.UserID},
			logger.LoggerOptions{Key: "error", Data: err.Error()},
		)
		return nil, &apperrors.DomainError{Code: apperrors.CodeUnavailable, Message: "Failed to load cards", Err: err}
	}
	return s, nil
}

func (h *CardHandler) GetCards(c *fiber.Ctx) error {
	s, err := h.store(c)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Cards retrieved successfully", s.Snapshot())
}

func (h *CardHandler) AddCard(c *fiber.Ctx) error {
	var form models.CardFormData
	if err := c.BodyParser(&form); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	// Holder name and expiry are free text to the store, but a request without them
	// cannot be charged later, so they are required here. The number rule stays in
	// the store and surfaces in the snapshot.
	if err := validation.Struct(form); err != nil {
		return response.ValidationError(c, err.Error())
	}

	s, err := h.store(c)
	if err != nil {
		return response.FromError(c, err)
	}

	go func() {
		if _, err := s.AddCard(context.Background(), form); err != nil {
			logger.Debug("add card settled with error", logger.LoggerOptions{Key: "error", Data: err.Error()})
		}
	}()

	return response.Accepted(c, "Card submission started", s.Snapshot())
}

func (h *CardHandler) RemoveCard(c *fiber.Ctx) error {
	id := fiberutils.CopyString(c.Params("id"))

	s, err := h.store(c)
	if err != nil {
		return response.FromError(c, err)
	}

	go func() {
		if _, err := s.RemoveCard(context.Background(), id); err != nil {
			logger.Debug("remove card settled with error",
				logger.LoggerOptions{Key: "card_id", Data: id},
				logger.LoggerOptions{Key: "error", Data: err.Error()},
			)
		}
	}()

	return response.Accepted(c, "Card removal started", s.Snapshot())
}

func (h *CardHandler) SetDefaultCard(c *fiber.Ctx) error {
	id := fiberutils.CopyString(c.Params("id"))

	s, err := h.store(c)
	if err != nil {
		return response.FromError(c, err)
	}

	go func() {
		if _, err := s.SetDefaultCard(context.Background(), id); err != nil {
			logger.Debug("set default card settled with error",
				logger.LoggerOptions{Key: "card_id", Data: id},
				logger.LoggerOptions{Key: "error", Data: err.Error()},
			)
		}
	}()

	return response.Accepted(c, "Default card update started", s.Snapshot())
}

func (h *CardHandler) ClearError(c *fiber.Ctx) error {
	s, err := h.store(c)
	if err != nil {
		return response.FromError(c, err)
	}

	s.ClearError()
	return response.Success(c, "Error cleared", s.Snapshot())
}

func (h *CardHandler) ClearCards(c *fiber.Ctx) error {
	s, err := h.store(c)
	if err != nil {
		return response.FromError(c, err)
	}

	s.ClearCards()
	return response.Success(c, "Cards cleared", s.Snapshot())
}
