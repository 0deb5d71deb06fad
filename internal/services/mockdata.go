package services

import (
	"fmt"
	"time"

	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

// Deterministic demo data in place of a real CRM backend. All values
// derive from a character-code hash of the user ID, so the same user
// always gets the same profile and history while different users
// diverge almost surely.

var mockProductNames = []string{"商品A", "商品B", "商品C", "商品D", "商品E"}

func mockHash(userID string) int {
	hash := 0
	for _, r := range userID {
		hash += int(r)
	}
	return hash
}

func pastDate(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

// GenerateMockCustomer builds a deterministic customer profile for the
// given user ID.
func GenerateMockCustomer(userID string) models.Customer {
	hash := mockHash(userID)

	return models.Customer{
		ID:               fmt.Sprintf("CUST-%06d", hash),
		Name:             fmt.Sprintf("顧客 %d", hash%1000),
		Email:            fmt.Sprintf("customer%d@example.com", hash%1000),
		Phone:            fmt.Sprintf("090-%04d-%04d", 1000+hash%9000, 1000+(hash*2)%9000),
		Address:          fmt.Sprintf("東京都渋谷区代々木%d-%d-%d", hash%10, hash%100, hash%1000),
		MembershipLevel:  models.MembershipLevels[hash%len(models.MembershipLevels)],
		RegistrationDate: pastDate(hash % 365),
		LastPurchaseDate: pastDate(hash % 30),
	}
}

// GenerateMockOrders builds 1-5 deterministic orders for the given
// user ID. Each order's total is accumulated from its line items.
func GenerateMockOrders(userID string) []models.Order {
	hash := mockHash(userID)
	customer := GenerateMockCustomer(userID)

	orderCount := hash%5 + 1
	orders := make([]models.Order, 0, orderCount)

	for i := 0; i < orderCount; i++ {
		itemCount := hash%3 + 1
		items := make([]models.OrderItem, 0, itemCount)
		totalAmount := 0

		for j := 0; j < itemCount; j++ {
			price := 1000 + ((hash+j)%10)*500
			quantity := (hash+j)%3 + 1
			totalAmount += price * quantity

			items = append(items, models.OrderItem{
				ID:       fmt.Sprintf("ITEM-%06d", hash+j),
				Name:     mockProductNames[(hash+j)%len(mockProductNames)],
				Price:    price,
				Quantity: quantity,
			})
		}

		orders = append(orders, models.Order{
			ID:          fmt.Sprintf("ORDER-%06d", hash+i),
			CustomerID:  customer.ID,
			OrderDate:   pastDate((hash + i) % 30),
			Status:      models.OrderStatuses[(hash+i)%len(models.OrderStatuses)],
			Items:       items,
			TotalAmount: totalAmount,
		})
	}

	return orders
}
