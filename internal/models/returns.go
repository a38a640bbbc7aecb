package models

import "time"

// ReturnStatus is the state of a return request as it moves through
// approval, pickup and refund.
type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnPickedUp  ReturnStatus = "picked_up"
	ReturnRefunded  ReturnStatus = "refunded"
)

// ReturnRequest records a customer's request to return a delivered
// order. RefundAmount is copied from the order total at request time.
type ReturnRequest struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string       `json:"order_id" gorm:"index"`
	UserID       string       `json:"user_id" gorm:"index"`
	Reason       string       `json:"reason"`
	Status       ReturnStatus `json:"status" gorm:"type:varchar(16)"`
	RefundAmount float64      `json:"refund_amount"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
