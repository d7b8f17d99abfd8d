package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/cart"
)

// Order statuses. A quote request starts as pending.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusQuoted     = "quoted"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatusLabels are the Polish names shown to customers and staff.
var OrderStatusLabels = map[string]string{
	OrderStatusPending:    "Oczekujące",
	OrderStatusProcessing: "W realizacji",
	OrderStatusQuoted:     "Wycenione",
	OrderStatusCompleted:  "Zakończone",
	OrderStatusCancelled:  "Anulowane",
}

// QuoteCustomer is the contact block of a quote request.
type QuoteCustomer struct {
	FirstName string  `json:"firstName" gorm:"not null" binding:"required"`
	LastName  string  `json:"lastName" gorm:"not null" binding:"required"`
	Email     string  `json:"email" gorm:"not null;index" binding:"required,email"`
	Phone     string  `json:"phone" gorm:"not null" binding:"required"`
	Company   *string `json:"company,omitempty"`
	NIP       *string `json:"nip,omitempty" gorm:"column:nip"`
	Message   *string `json:"message,omitempty" gorm:"type:text"`
}

// FullName is "first last".
func (c QuoteCustomer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Order is a persisted quote request: who asked and what was in the cart.
type Order struct {
	ID          uuid.UUID                         `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber string                            `json:"order_number" gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID      *uuid.UUID                        `json:"user_id,omitempty" gorm:"type:uuid;index"`
	IsGuest     bool                              `json:"is_guest" gorm:"default:true"`
	Customer    QuoteCustomer                     `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Cart        datatypes.JSONType[cart.Snapshot] `json:"cart" gorm:"type:jsonb;not null"`
	Total       float64                           `json:"total" gorm:"type:numeric(12,2);not null"`
	Status      string                            `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes  *string                           `json:"admin_notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time                         `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                         `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7 and the human readable number
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	if o.OrderNumber == "" {
		o.OrderNumber = NewOrderNumber(o.ID, time.Now())
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// NewOrderNumber builds "WL-20261016-1A2B3C" from the creation date and the
// random tail of the id.
func NewOrderNumber(id uuid.UUID, at time.Time) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("WL-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(hex[len(hex)-6:]))
}

// Items returns the cart line items frozen into the order.
func (o *Order) Items() []cart.LineItem {
	return o.Cart.Data().Items
}

// ═══════════════════════════════════════════════════════════
// Request / Response Models
// ═══════════════════════════════════════════════════════════

// QuoteRequest is the POST /api/zapytanie body.
type QuoteRequest struct {
	Customer QuoteCustomer   `json:"customer" binding:"required"`
	Items    []cart.LineItem `json:"items" binding:"required,min=1,dive"`
	Total    float64         `json:"total" binding:"min=0"`
	UserID   *string         `json:"userId,omitempty"`
	IsGuest  bool            `json:"isGuest"`
}

// QuoteResponse is the POST /api/zapytanie reply.
type QuoteResponse struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"orderId,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Error       string `json:"error,omitempty"`
}

// OrderHistoryResponse for the customer's list view
type OrderHistoryResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *Order) ToHistory() OrderHistoryResponse {
	return OrderHistoryResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		StatusLabel: OrderStatusLabels[o.Status],
		Total:       o.Total,
		ItemCount:   o.Cart.Data().ItemCount,
		CreatedAt:   o.CreatedAt,
	}
}

type UpdateOrderStatusRequest struct {
	Status     string  `json:"status" binding:"required" example:"quoted"`
	AdminNotes *string `json:"admin_notes,omitempty"` // required if status=cancelled
}

type UpdateOrderStatusResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	AdminNotes  *string   `json:"admin_notes,omitempty"`
}

// AdminOrderQuery filters the back office order list.
type AdminOrderQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending processing quoted completed cancelled"`
	Q      string `form:"q"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// OrderStats is the back office order overview. OpenValue sums the totals of
// orders that are neither completed nor cancelled.
type OrderStats struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	OpenValue   float64        `json:"open_value"`
	ThisMonth   int            `json:"this_month"`
	LastMonth   int            `json:"last_month"`
	MonthChange float64        `json:"month_change_pct"`
}

// OrderStatusOpen reports whether status still needs staff attention.
func OrderStatusOpen(status string) bool {
	return status != OrderStatusCompleted && status != OrderStatusCancelled
}

// MonthChangePct is the change from prev to cur in percent, rounded to one
// decimal. Growth from zero counts as 100%.
func MonthChangePct(cur, prev int) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	pct := float64(cur-prev) / float64(prev) * 100
	return math.Round(pct*10) / 10
}

// MonthBounds returns the start of the month containing now and of the
// month before it, in now's location.
func MonthBounds(now time.Time) (thisMonth, lastMonth time.Time) {
	thisMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return thisMonth, thisMonth.AddDate(0, -1, 0)
}
