package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ywatanabe-dev/line-support-relay/internal/models"
	"github.com/ywatanabe-dev/line-support-relay/internal/services"
)

// ModalOpener opens the reply-collection dialog in Slack.
type ModalOpener interface {
	OpenReplyModal(ctx context.Context, triggerID string, token models.CorrelationToken) error
}

// SlackHandler handles Slack interactive-component callbacks.
type SlackHandler struct {
	support SupportService
	modals  ModalOpener
}

// NewSlackHandler creates a Slack interactions handler.
func NewSlackHandler(support SupportService, modals ModalOpener) *SlackHandler {
	return &SlackHandler{support: support, modals: modals}
}

type slackInteractionPayload struct {
	Type      string        `json:"type"`
	TriggerID string        `json:"trigger_id"`
	Actions   []slackAction `json:"actions"`
	View      slackView     `json:"view"`
}

type slackAction struct {
	ActionID string `json:"action_id"`
	Value    string `json:"value"`
}

type slackView struct {
	CallbackID      string `json:"callback_id"`
	PrivateMetadata string `json:"private_metadata"`
	State           struct {
		Values map[string]map[string]struct {
			Value string `json:"value"`
		} `json:"values"`
	} `json:"state"`
}

// HandleInteractions processes interaction callbacks: a button click
// opens the reply modal, a modal submission relays the typed reply back
// to the LINE user. Any other interaction type is acknowledged as a
// no-op; an unparseable payload is a 500.
func (h *SlackHandler) HandleInteractions(c *fiber.Ctx) error {
	raw := c.FormValue("payload")

	var payload slackInteractionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Error().Err(err).Msg("failed to parse slack interaction payload")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	switch payload.Type {
	case "block_actions":
		return h.handleBlockActions(c, payload)
	case "view_submission":
		return h.handleViewSubmission(c, payload)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *SlackHandler) handleBlockActions(c *fiber.Ctx, payload slackInteractionPayload) error {
	if len(payload.Actions) == 0 {
		log.Error().Msg("block_actions payload without actions")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	action := payload.Actions[0]
	if action.ActionID != services.ActionHandleCustomer {
		return c.SendStatus(fiber.StatusOK)
	}

	token, err := models.DecodeCorrelationToken(action.Value)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode correlation token from button value")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if err := h.modals.OpenReplyModal(c.UserContext(), payload.TriggerID, token); err != nil {
		log.Error().Err(err).Str("user_id", token.UserID).Msg("failed to open reply modal")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *SlackHandler) handleViewSubmission(c *fiber.Ctx, payload slackInteractionPayload) error {
	token, err := models.DecodeCorrelationToken(payload.View.PrivateMetadata)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode correlation token from private metadata")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	reply := payload.View.State.Values[services.ReplyBlockID][services.ReplyActionID].Value

	if err := h.support.HandleStaffResponse(c.UserContext(), token.ReplyToken, reply); err != nil {
		log.Error().Err(err).Str("user_id", token.UserID).Msg("failed to relay staff response")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"response_action": "clear"})
}
