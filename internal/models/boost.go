package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Boost is a customer fee-payment record. JSON field names are camelCase to
// match the wire format the existing frontend consumes.
type Boost struct {
	ID                   int64           `json:"id"`
	IdentificationNumber string          `json:"identificationNumber"`
	Amount               decimal.Decimal `json:"amount"`
	Fee                  decimal.Decimal `json:"fee"`
	Paid                 bool            `json:"paid"`
	PaymentDate          *time.Time      `json:"paymentDate"`
	ExternalReference    string          `json:"externalReference"`
	CreatedAt            time.Time       `json:"createdAt"`
}

type CreateBoostRequest struct {
	IdentificationNumber string          `json:"identificationNumber"`
	Amount               decimal.Decimal `json:"amount"`
	Fee                  decimal.Decimal `json:"fee"`
}

type PayRequest struct {
	Phone        string          `json:"phone" binding:"required"`
	Fee          decimal.Decimal `json:"fee"`
	CustomerName string          `json:"customer_name"`
	BoostID      int64           `json:"boost_id"`
}

type CallbackRequest struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

// DayWindow returns the closed interval covering the whole calendar day of d,
// 00:00:00 through 23:59:59 in d's location.
func DayWindow(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
	return start, end
}

// RangeWindow returns the closed interval from start's midnight through
// 23:59:59 on end.
func RangeWindow(start, end time.Time) (time.Time, time.Time) {
	from, _ := DayWindow(start)
	_, to := DayWindow(end)
	return from, to
}
