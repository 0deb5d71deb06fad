package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ywatanabe-dev/line-support-relay/internal/config"
)

// LineService sends replies to LINE users through the Messaging API.
type LineService struct {
	accessToken string
	baseURL     string
	client      *http.Client
}

// NewLineService creates a reply relay using the given LINE settings.
func NewLineService(cfg config.LineConfig) *LineService {
	return &LineService{
		accessToken: cfg.ChannelAccessToken,
		baseURL:     strings.TrimRight(cfg.APIBaseURL, "/"),
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type lineReplyRequest struct {
	ReplyToken string            `json:"replyToken"`
	Messages   []lineTextMessage `json:"messages"`
}

type lineTextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ReplyMessage delivers text to the user via the one-time reply token.
// The token is single-use, so a rejected call is never retried.
func (s *LineService) ReplyMessage(ctx context.Context, replyToken, text string) error {
	body, err := json.Marshal(lineReplyRequest{
		ReplyToken: replyToken,
		Messages:   []lineTextMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v2/bot/message/reply", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRelayFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}
