package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywatanabe-dev/line-support-relay/internal/config"
	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

func testCustomer() models.Customer {
	return models.Customer{
		ID:               "CUST-000123",
		Name:             "顧客 42",
		Email:            "customer42@example.com",
		Phone:            "090-1234-5678",
		Address:          "東京都渋谷区代々木1-2-3",
		MembershipLevel:  models.MembershipGold,
		RegistrationDate: "2025-01-15",
		LastPurchaseDate: "2025-08-20",
	}
}

func testOrders() []models.Order {
	return []models.Order{
		{
			ID:         "ORDER-000123",
			CustomerID: "CUST-000123",
			OrderDate:  "2025-08-20",
			Status:     models.OrderStatusCompleted,
			Items: []models.OrderItem{
				{ID: "ITEM-000123", Name: "商品A", Price: 1500, Quantity: 2},
			},
			TotalAmount: 3000,
		},
		{
			ID:         "ORDER-000124",
			CustomerID: "CUST-000123",
			OrderDate:  "2025-08-25",
			Status:     models.OrderStatusShipping,
			Items: []models.OrderItem{
				{ID: "ITEM-000124", Name: "商品B", Price: 2000, Quantity: 1},
			},
			TotalAmount: 2000,
		},
	}
}

func newCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, `{"error":{"message":"boom"}}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-3.5-turbo",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAIService(baseURL string) *OpenAIService {
	return NewOpenAIService(config.OpenAIConfig{
		APIKey:      "test-key",
		Model:       "gpt-3.5-turbo",
		MaxTokens:   500,
		Temperature: 0.7,
		BaseURL:     baseURL,
	})
}

func TestGenerateSuggestion(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "お客様へのご提案です。")
	svc := newTestOpenAIService(srv.URL)

	suggestion, err := svc.GenerateSuggestion(context.Background(), testCustomer(), testOrders(), "配送はいつですか？")
	require.NoError(t, err)
	assert.Equal(t, "お客様へのご提案です。", suggestion)
}

func TestGenerateSuggestionEmptyContentFallsBack(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, "")
	svc := newTestOpenAIService(srv.URL)

	suggestion, err := svc.GenerateSuggestion(context.Background(), testCustomer(), nil, "こんにちは")
	require.NoError(t, err)
	assert.Equal(t, noSuggestionMessage, suggestion)
}

func TestGenerateSuggestionBackendError(t *testing.T) {
	srv := newCompletionServer(t, http.StatusInternalServerError, "")
	svc := newTestOpenAIService(srv.URL)

	_, err := svc.GenerateSuggestion(context.Background(), testCustomer(), testOrders(), "こんにちは")
	assert.ErrorIs(t, err, ErrSuggestionFailed)
}

func TestBuildSuggestionPromptContainsAllFields(t *testing.T) {
	customer := testCustomer()
	orders := testOrders()
	message := "注文した商品はいつ届きますか？"

	prompt := buildSuggestionPrompt(customer, orders, message)

	for _, want := range []string{
		customer.Name, customer.ID, customer.Email, customer.Phone,
		customer.Address, customer.MembershipLevel,
		customer.RegistrationDate, customer.LastPurchaseDate,
	} {
		assert.Contains(t, prompt, want)
	}

	for _, order := range orders {
		assert.Contains(t, prompt, order.ID)
		assert.Contains(t, prompt, order.OrderDate)
		assert.Contains(t, prompt, order.Status)
		for _, item := range order.Items {
			assert.Contains(t, prompt, item.Name)
		}
	}
	assert.Contains(t, prompt, "¥3,000")

	// Verbatim message, quoted.
	assert.Contains(t, prompt, fmt.Sprintf("\"%s\"", message))

	// Instruction block.
	assert.Contains(t, prompt, "適切な挨拶")
	assert.Contains(t, prompt, "パーソナライズされた提案")
	assert.Contains(t, prompt, "締めの言葉")
	assert.Contains(t, prompt, "丁寧かつ簡潔に")
}

func TestBuildSuggestionPromptNoOrders(t *testing.T) {
	prompt := buildSuggestionPrompt(testCustomer(), nil, "こんにちは")
	assert.Contains(t, prompt, "注文履歴: なし")
	assert.NotContains(t, prompt, "注文 1:")
}
