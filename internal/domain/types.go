package domain

import "time"

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ProductVariant is one version of a product (color, size, ...). Its stock is
// expressed relative to the parent product's stock.
type ProductVariant struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Attributes      map[string]string `json:"attributes"`
	StockAdjustment int               `json:"stockAdjustment"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in-progress"
	OrderCompleted  OrderStatus = "completed"
	OrderDelivered  OrderStatus = "delivered"
)

// OrderStatuses lists every status in workflow order.
var OrderStatuses = []OrderStatus{OrderPending, OrderInProgress, OrderCompleted, OrderDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Open reports whether work on the order is still outstanding.
func (s OrderStatus) Open() bool {
	return s == OrderPending || s == OrderInProgress
}

// Order is a customer commission or pre-order. Items are stored under the
// "products" key.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Items         []OrderItem `json:"products"`
	TotalAmount   float64     `json:"totalAmount"`
	DepositAmount float64     `json:"depositAmount,omitempty"`
	IsPaid        bool        `json:"isPaid"`
	Status        OrderStatus `json:"status"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	EventID       string      `json:"eventId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Event struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	BoothNumber    string          `json:"boothNumber,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Products       []string        `json:"products"`
	ChecklistItems []ChecklistItem `json:"checklistItems"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsChecked bool   `json:"isChecked"`
}

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentOther PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentOther
}

type Sale struct {
	ID            string        `json:"id"`
	EventID       string        `json:"eventId,omitempty"`
	Items         []SaleItem    `json:"products"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Notes         string        `json:"notes,omitempty"`
	Date          time.Time     `json:"date"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SaleItem records the price at the time of sale, not the current product price.
type SaleItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	VariantID   string  `json:"variantId,omitempty"`
}

type BoothLayout struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	EventID   string            `json:"eventId,omitempty"`
	Items     []BoothLayoutItem `json:"items"`
	ImageURL  string            `json:"imageUrl,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// BoothLayoutItem positions are percentages of the layout canvas.
type BoothLayoutItem struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}
