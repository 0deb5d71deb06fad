package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ywatanabe-dev/line-support-relay/internal/config"
	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

const (
	suggestionSystemPrompt = "あなたは顧客サポートの担当者です。顧客情報と注文履歴を元に、適切な対応を提案してください。"

	// Returned when the model responds but produces no usable content.
	noSuggestionMessage = "提案を生成できませんでした。"
)

// OpenAIService drafts reply suggestions for staff from the customer's
// profile, order history and inquiry text.
type OpenAIService struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOpenAIService creates a suggestion generator from the given
// configuration. BaseURL is overridable for tests and proxies.
func NewOpenAIService(cfg config.OpenAIConfig) *OpenAIService {
	// Every external call in the pipeline is attempted exactly once,
	// so the SDK's default retrying is turned off.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	return &OpenAIService{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// GenerateSuggestion asks the model for a reply draft. A backend call
// failure yields ErrSuggestionFailed; an empty completion yields the
// fixed fallback text instead of an error.
func (s *OpenAIService) GenerateSuggestion(ctx context.Context, customer models.Customer, orders []models.Order, message string) (string, error) {
	prompt := buildSuggestionPrompt(customer, orders, message)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(suggestionSystemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(s.maxTokens)),
		Temperature: openai.Float(s.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return noSuggestionMessage, nil
	}
	return resp.Choices[0].Message.Content, nil
}

func buildSuggestionPrompt(customer models.Customer, orders []models.Order, message string) string {
	var b strings.Builder

	b.WriteString("顧客情報:\n")
	fmt.Fprintf(&b, "- 名前: %s\n", customer.Name)
	fmt.Fprintf(&b, "- ID: %s\n", customer.ID)
	fmt.Fprintf(&b, "- メールアドレス: %s\n", customer.Email)
	fmt.Fprintf(&b, "- 電話番号: %s\n", customer.Phone)
	fmt.Fprintf(&b, "- 住所: %s\n", customer.Address)
	fmt.Fprintf(&b, "- 会員レベル: %s\n", customer.MembershipLevel)
	fmt.Fprintf(&b, "- 登録日: %s\n", customer.RegistrationDate)
	fmt.Fprintf(&b, "- 最終購入日: %s\n", customer.LastPurchaseDate)
	b.WriteString("\n")

	if len(orders) > 0 {
		b.WriteString("注文履歴:\n")
		for i, order := range orders {
			fmt.Fprintf(&b, "注文 %d:\n", i+1)
			fmt.Fprintf(&b, "- 注文番号: %s\n", order.ID)
			fmt.Fprintf(&b, "- 注文日: %s\n", order.OrderDate)
			fmt.Fprintf(&b, "- 状態: %s\n", order.Status)
			fmt.Fprintf(&b, "- 合計金額: %s\n", formatYen(order.TotalAmount))
			b.WriteString("- 商品:\n")
			for _, item := range order.Items {
				fmt.Fprintf(&b, "  • %s x %d (%s/個)\n", item.Name, item.Quantity, formatYen(item.Price))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("注文履歴: なし\n\n")
	}

	fmt.Fprintf(&b, "顧客からのメッセージ:\n\"%s\"\n\n", message)

	b.WriteString("上記の情報を元に、以下の内容を含む対応案を作成してください:\n")
	b.WriteString("1. 顧客の状況に合わせた適切な挨拶\n")
	b.WriteString("2. メッセージの内容に対する具体的な回答や提案\n")
	b.WriteString("3. 顧客の購入履歴や会員レベルに基づいたパーソナライズされた提案\n")
	b.WriteString("4. 適切な締めの言葉\n\n")
	b.WriteString("回答は日本語で、丁寧かつ簡潔に作成してください。\n")

	return b.String()
}
