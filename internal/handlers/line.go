package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// SupportService is the inquiry pipeline the webhook dispatches into.
type SupportService interface {
	HandleCustomerInquiry(ctx context.Context, userID, message, replyToken string) error
	HandleStaffResponse(ctx context.Context, replyToken, message string) error
}

// LineHandler handles LINE webhook deliveries.
type LineHandler struct {
	support SupportService
}

// NewLineHandler creates a LINE webhook handler.
func NewLineHandler(support SupportService) *LineHandler {
	return &LineHandler{support: support}
}

// LineEvent is one event within a webhook delivery. Only text message
// events are of interest; everything else is ignored.
type LineEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

type lineWebhookRequest struct {
	Destination string      `json:"destination"`
	Events      []LineEvent `json:"events"`
}

// HandleWebhook processes one webhook delivery. All events in the batch
// are dispatched concurrently and the response is sent only once every
// event has settled: 200 when all succeeded, 500 when any failed. An
// event's already-delivered user-facing replies are never rolled back
// by another event's failure.
func (h *LineHandler) HandleWebhook(c *fiber.Ctx) error {
	var req lineWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		log.Error().Err(err).Msg("failed to parse line webhook body")
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	ctx := c.UserContext()
	g := new(errgroup.Group)
	for _, event := range req.Events {
		event := event
		g.Go(func() error {
			return h.handleEvent(ctx, event)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("line webhook batch failed")
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *LineHandler) handleEvent(ctx context.Context, event LineEvent) error {
	if event.Type != "message" || event.Message.Type != "text" {
		return nil
	}

	if event.Source.UserID == "" {
		// Nothing to look up and no conversation to correlate.
		log.Warn().Msg("text message event without a user id, skipping")
		return nil
	}

	inquiryID := uuid.NewString()
	log.Info().
		Str("inquiry_id", inquiryID).
		Str("user_id", event.Source.UserID).
		Msg("line message received")

	return h.support.HandleCustomerInquiry(ctx, event.Source.UserID, event.Message.Text, event.ReplyToken)
}
