package models

import "time"

// PaymentStatus is the lifecycle state of a payment request. The submission
// flow only ever creates records in StatusPending; the transitions to
// Completed/Failed belong to an external reconciliation process.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "Pending"
	StatusCompleted PaymentStatus = "Completed"
	StatusFailed    PaymentStatus = "Failed"
)

// Consignment is one line item (recipient plus two amounts) of a multi-item
// payment request.
type Consignment struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Amount1 float64 `json:"amount1"`
	Amount2 float64 `json:"amount2"`
}

// Payment is a recorded payment request. TrxID is the client-supplied
// transfer receipt identifier and is unique system-wide.
//
// ServicePasswordHash holds the bcrypt hash of the payment-form service
// password, a credential unrelated to the login password. It is write-only:
// nothing in this system reads it back, and it is excluded from every
// projection.
type Payment struct {
	ID                  string        `json:"id"`
	UserID              string        `json:"userId"`
	Company             string        `json:"company"`
	Phone               string        `json:"phone"`
	ServicePasswordHash []byte        `json:"-"`
	ServiceType         string        `json:"serviceType,omitempty"`
	Name                string        `json:"name,omitempty"`
	Phone1              string        `json:"phone1,omitempty"`
	Amount1             float64       `json:"amount1,omitempty"`
	Amount2             float64       `json:"amount2,omitempty"`
	Method              string        `json:"method"`
	Amount3             float64       `json:"amount3"`
	TrxID               string        `json:"trxid"`
	Consignments        []Consignment `json:"consignments,omitempty"`
	Status              PaymentStatus `json:"status"`
	CreatedAt           time.Time     `json:"createdAt"`
}
