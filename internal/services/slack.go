package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ywatanabe-dev/line-support-relay/internal/config"
	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

const (
	// Substituted into the notification when suggestion generation fails.
	suggestionFailedMessage = "※ AI提案の生成に失敗しました"

	noRecentOrdersMessage = "最近の注文はありません"

	notificationHeader = "🔔 新しいLINEメッセージが届きました"

	// ActionHandleCustomer identifies the notification's reply button.
	ActionHandleCustomer = "handle_customer"

	// CallbackReplyModal identifies the reply-collection modal.
	CallbackReplyModal = "reply_modal"

	// ReplyBlockID and ReplyActionID address the modal's text input.
	ReplyBlockID  = "reply_block"
	ReplyActionID = "reply_action"

	recentOrderLimit = 3
)

// SuggestionGenerator drafts a reply suggestion for staff.
type SuggestionGenerator interface {
	GenerateSuggestion(ctx context.Context, customer models.Customer, orders []models.Order, message string) (string, error)
}

// SlackService delivers inquiry notifications to the staff channel and
// opens the reply-collection modal.
type SlackService struct {
	webhookURL string
	botToken   string
	apiBaseURL string
	ai         SuggestionGenerator
	client     *http.Client
}

// NewSlackService creates a notifier using the given Slack settings and
// suggestion generator.
func NewSlackService(cfg config.SlackConfig, ai SuggestionGenerator) *SlackService {
	return &SlackService{
		webhookURL: cfg.WebhookURL,
		botToken:   cfg.BotToken,
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		ai:         ai,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SendNotification composes and delivers the staff notification for one
// inquiry. Suggestion generation failure never blocks delivery; the
// fixed placeholder is substituted instead. Exactly one notification is
// sent per inquiry, with no retry.
func (s *SlackService) SendNotification(ctx context.Context, userID, message string, customer models.Customer, orders []models.Order, replyToken string) error {
	suggestion, err := s.ai.GenerateSuggestion(ctx, customer, orders, message)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("ai suggestion generation failed")
		suggestion = suggestionFailedMessage
	}

	tokenValue, err := models.CorrelationToken{ReplyToken: replyToken, UserID: userID}.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode correlation token: %v", ErrNotificationFailed, err)
	}

	payload := map[string]interface{}{
		"blocks": buildNotificationBlocks(customer, message, orders, suggestion, tokenValue),
	}

	if err := s.postJSON(ctx, s.webhookURL, "", payload, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	log.Info().Str("user_id", userID).Msg("slack notification sent")
	return nil
}

// OpenReplyModal opens the reply-collection dialog for a staff member.
// The correlation token rides along in the modal's private metadata so
// the submission can be routed back to the right LINE conversation.
func (s *SlackService) OpenReplyModal(ctx context.Context, triggerID string, token models.CorrelationToken) error {
	tokenValue, err := token.Encode()
	if err != nil {
		return fmt.Errorf("encode correlation token: %w", err)
	}

	payload := map[string]interface{}{
		"trigger_id": triggerID,
		"view": map[string]interface{}{
			"type":             "modal",
			"callback_id":      CallbackReplyModal,
			"private_metadata": tokenValue,
			"title":            plainText("お客様への返信"),
			"submit":           plainText("送信"),
			"close":            plainText("キャンセル"),
			"blocks": []map[string]interface{}{
				{
					"type":     "input",
					"block_id": ReplyBlockID,
					"label":    plainText("返信内容"),
					"element": map[string]interface{}{
						"type":      "plain_text_input",
						"action_id": ReplyActionID,
						"multiline": true,
					},
				},
			},
		},
	}

	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := s.postJSON(ctx, s.apiBaseURL+"/views.open", s.botToken, payload, &result); err != nil {
		return fmt.Errorf("open reply modal: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("open reply modal: slack api error: %s", result.Error)
	}

	return nil
}

func buildNotificationBlocks(customer models.Customer, message string, orders []models.Order, suggestion, tokenValue string) []map[string]interface{} {
	return []map[string]interface{}{
		{
			"type": "header",
			"text": map[string]interface{}{"type": "plain_text", "text": notificationHeader, "emoji": true},
		},
		{
			"type": "section",
			"fields": []map[string]interface{}{
				mrkdwn(fmt.Sprintf("*顧客名:*\n%s", customer.Name)),
				mrkdwn(fmt.Sprintf("*会員レベル:*\n%s", customer.MembershipLevel)),
			},
		},
		{
			"type": "section",
			"fields": []map[string]interface{}{
				mrkdwn(fmt.Sprintf("*顧客ID:*\n%s", customer.ID)),
				mrkdwn(fmt.Sprintf("*最終購入日:*\n%s", customer.LastPurchaseDate)),
			},
		},
		{
			"type": "section",
			"text": mrkdwn(fmt.Sprintf("*メッセージ:*\n%s", message)),
		},
		{"type": "divider"},
		{
			"type": "section",
			"text": mrkdwn(fmt.Sprintf("*最近の注文:*\n%s", formatRecentOrders(orders))),
		},
		{"type": "divider"},
		{
			"type": "section",
			"text": mrkdwn(fmt.Sprintf("*AI提案:*\n%s", suggestion)),
		},
		{"type": "divider"},
		{
			"type": "actions",
			"elements": []map[string]interface{}{
				{
					"type":      "button",
					"text":      map[string]interface{}{"type": "plain_text", "text": "対応する", "emoji": true},
					"value":     tokenValue,
					"action_id": ActionHandleCustomer,
				},
			},
		},
	}
}

// formatRecentOrders renders the newest orders first, up to the display
// limit. Order dates compare lexicographically in YYYY-MM-DD form.
func formatRecentOrders(orders []models.Order) string {
	if len(orders) == 0 {
		return noRecentOrdersMessage
	}

	recent := make([]models.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].OrderDate > recent[j].OrderDate
	})
	if len(recent) > recentOrderLimit {
		recent = recent[:recentOrderLimit]
	}

	lines := make([]string, 0, len(recent))
	for _, order := range recent {
		lines = append(lines, fmt.Sprintf("• 注文番号: %s | 日付: %s | 状態: %s | 金額: %s",
			order.ID, order.OrderDate, order.Status, formatYen(order.TotalAmount)))
	}
	return strings.Join(lines, "\n")
}

func mrkdwn(text string) map[string]interface{} {
	return map[string]interface{}{"type": "mrkdwn", "text": text}
}

func plainText(text string) map[string]interface{} {
	return map[string]interface{}{"type": "plain_text", "text": text}
}

func (s *SlackService) postJSON(ctx context.Context, url, bearer string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s returned status %d", url, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
