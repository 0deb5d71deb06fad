package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

// Fixed texts sent back to the inquiring user.
const (
	// AckMessage confirms that staff have been notified.
	AckMessage = "ありがとうございます。担当者に通知しました。"

	// ErrorMessage is sent when the inquiry could not be processed.
	ErrorMessage = "メッセージの処理中にエラーが発生しました。しばらくしてからもう一度お試しください。"
)

// CustomerDirectory looks up a customer's profile and order history.
type CustomerDirectory interface {
	GetCustomerWithOrders(ctx context.Context, userID string) (models.Customer, []models.Order, error)
}

// StaffNotifier delivers an inquiry notification to the staff channel.
type StaffNotifier interface {
	SendNotification(ctx context.Context, userID, message string, customer models.Customer, orders []models.Order, replyToken string) error
}

// MessageSender delivers text back to a LINE user via a reply token.
type MessageSender interface {
	ReplyMessage(ctx context.Context, replyToken, text string) error
}

// CustomerSupportService sequences the inquiry pipeline: lookup, staff
// notification, then acknowledgment to the user. Each inquiry carries
// its own local state only; concurrent inquiries do not interact.
type CustomerSupportService struct {
	directory CustomerDirectory
	notifier  StaffNotifier
	messenger MessageSender
}

// NewCustomerSupportService wires the orchestrator from its collaborators.
func NewCustomerSupportService(directory CustomerDirectory, notifier StaffNotifier, messenger MessageSender) *CustomerSupportService {
	return &CustomerSupportService{
		directory: directory,
		notifier:  notifier,
		messenger: messenger,
	}
}

// HandleCustomerInquiry runs one inquiry to a terminal state. Lookup or
// notification failure is absorbed into the fixed error acknowledgment;
// a failed success-path acknowledgment is logged only, since the staff
// notification already went out. The returned error is non-nil only
// when the error acknowledgment itself could not be delivered, i.e. no
// user-visible outcome was produced at all.
func (s *CustomerSupportService) HandleCustomerInquiry(ctx context.Context, userID, message, replyToken string) error {
	customer, orders, err := s.directory.GetCustomerWithOrders(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("customer lookup failed")
		return s.acknowledgeError(ctx, replyToken)
	}

	if err := s.notifier.SendNotification(ctx, userID, message, customer, orders, replyToken); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("staff notification failed")
		return s.acknowledgeError(ctx, replyToken)
	}

	if err := s.messenger.ReplyMessage(ctx, replyToken, AckMessage); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("acknowledgment reply failed")
	}
	return nil
}

// HandleStaffResponse relays the staff's typed reply to the customer.
// Unlike the inquiry path there is no further user-facing fallback, so
// a relay failure propagates to the caller.
func (s *CustomerSupportService) HandleStaffResponse(ctx context.Context, replyToken, message string) error {
	if err := s.messenger.ReplyMessage(ctx, replyToken, message); err != nil {
		log.Error().Err(err).Msg("staff response relay failed")
		return fmt.Errorf("send staff response: %w", err)
	}
	return nil
}

func (s *CustomerSupportService) acknowledgeError(ctx context.Context, replyToken string) error {
	if err := s.messenger.ReplyMessage(ctx, replyToken, ErrorMessage); err != nil {
		log.Error().Err(err).Msg("error acknowledgment reply failed")
		return err
	}
	return nil
}
