package models

// Order statuses as rendered to staff.
const (
	OrderStatusShipping   = "配送中"
	OrderStatusProcessing = "処理中"
	OrderStatusCompleted  = "完了"
	OrderStatusCancelled  = "キャンセル"
)

// OrderStatuses lists every order status the directory can return.
var OrderStatuses = []string{
	OrderStatusShipping,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// OrderItem is a single line item on an order. Price is in yen
// (no minor unit) and Quantity is always positive.
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Order is one purchase in a customer's history. TotalAmount always
// equals the sum of Price*Quantity over Items.
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	OrderDate   string      `json:"orderDate"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	TotalAmount int         `json:"totalAmount"`
}

// ItemsTotal recomputes the order total from its line items.
func (o Order) ItemsTotal() int {
	total := 0
	for _, item := range o.Items {
		total += item.Price * item.Quantity
	}
	return total
}
