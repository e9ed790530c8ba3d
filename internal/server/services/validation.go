// Package services contains server-side business logic: registration,
// login and token issuance, and the payment submission flow (validation,
// duplicate guard, persistence).
package services

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"

	"github.com/sprov007/payserver/internal/common"
	"github.com/sprov007/payserver/internal/server/models"
)

const (
	// MinAmount and MaxAmount bound every monetary field of a submission,
	// in currency units.
	MinAmount = 100
	MaxAmount = 100000

	// ChargeTolerance is the allowed absolute deviation between the
	// declared service charge and the computed one, in currency units.
	// Applies to both the flat and the consignment form.
	ChargeTolerance = 0.5
)

// phonePattern accepts national mobile numbers: an optional 88 country-code
// prefix (with optional +), then 01, then an operator digit in 3-9, then
// eight more digits.
var phonePattern = regexp.MustCompile(`^(?:\+?88)?01[3-9]\d{8}$`)

// ConsignmentSubmission is one line item of the multi-item payment form.
// Amounts arrive as json.Number so that a non-numeric value is reported as
// an invalid amount instead of failing the whole decode.
type ConsignmentSubmission struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Amount1 json.Number `json:"amount1"`
	Amount2 json.Number `json:"amount2"`
}

// PaymentSubmission is the wire payload of POST /payment. The flat fields
// mirror the single-recipient form; when Consignments is non-empty the
// submission switches to the multi-item variant and the flat recipient
// fields are ignored.
type PaymentSubmission struct {
	Company      string                  `json:"company"`
	Phone        string                  `json:"phone"`
	Password     string                  `json:"password"`
	ServiceType  string                  `json:"serviceType"`
	Name         string                  `json:"name"`
	Phone1       string                  `json:"phone1"`
	Amount1      json.Number             `json:"amount1"`
	Amount2      json.Number             `json:"amount2"`
	Method       string                  `json:"method"`
	Amount3      json.Number             `json:"amount3"`
	TrxID        string                  `json:"trxid"`
	Consignments []ConsignmentSubmission `json:"consignments"`
}

// ValidatedPayment is a submission with all amounts parsed and all rules
// applied, ready to be persisted.
type ValidatedPayment struct {
	Company      string
	Phone        string
	Password     string
	ServiceType  string
	Name         string
	Phone1       string
	Amount1      float64
	Amount2      float64
	Method       string
	Amount3      float64
	TrxID        string
	Consignments []models.Consignment
}

// ExpectedCharge returns the service charge implied by a set of
// (amount1, amount2) pairs: Σ(amount1−amount2)/2.
func ExpectedCharge(pairs ...[2]float64) float64 {
	var sum float64
	for _, p := range pairs {
		sum += (p[0] - p[1]) / 2
	}
	return sum
}

// ChargeMatches reports whether the declared charge is within
// ChargeTolerance of the expected one. Pure predicate, no range checks.
func ChargeMatches(declared, expected float64) bool {
	return math.Abs(declared-expected) <= ChargeTolerance
}

// ValidateSubmission applies the submission rules in order: field
// completeness, phone format, amount ranges, charge consistency. It is a
// pure function; the returned error is always a *common.ValidationError.
func ValidateSubmission(sub *PaymentSubmission) (*ValidatedPayment, error) {
	if len(sub.Consignments) > 0 {
		return validateConsignmentForm(sub)
	}
	return validateFlatForm(sub)
}

func validateFlatForm(sub *PaymentSubmission) (*ValidatedPayment, error) {
	required := []struct {
		field string
		value string
	}{
		{"company", sub.Company},
		{"phone", sub.Phone},
		{"password", sub.Password},
		{"serviceType", sub.ServiceType},
		{"name", sub.Name},
		{"phone1", sub.Phone1},
		{"amount1", sub.Amount1.String()},
		{"amount2", sub.Amount2.String()},
		{"method", sub.Method},
		{"amount3", sub.Amount3.String()},
		{"trxid", sub.TrxID},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, common.NewValidationError(r.field, "required")
		}
	}

	if !phonePattern.MatchString(sub.Phone) {
		return nil, common.NewValidationError("phone", "invalid phone")
	}

	amount1, err := parseAmount("amount1", sub.Amount1)
	if err != nil {
		return nil, err
	}
	amount2, err := parseAmount("amount2", sub.Amount2)
	if err != nil {
		return nil, err
	}
	amount3, err := parseAmount("amount3", sub.Amount3)
	if err != nil {
		return nil, err
	}

	if !ChargeMatches(amount3, ExpectedCharge([2]float64{amount1, amount2})) {
		return nil, common.NewValidationError("amount3", "charge mismatch")
	}

	return &ValidatedPayment{
		Company:     sub.Company,
		Phone:       sub.Phone,
		Password:    sub.Password,
		ServiceType: sub.ServiceType,
		Name:        sub.Name,
		Phone1:      sub.Phone1,
		Amount1:     amount1,
		Amount2:     amount2,
		Method:      sub.Method,
		Amount3:     amount3,
		TrxID:       sub.TrxID,
	}, nil
}

func validateConsignmentForm(sub *PaymentSubmission) (*ValidatedPayment, error) {
	required := []struct {
		field string
		value string
	}{
		{"company", sub.Company},
		{"phone", sub.Phone},
		{"password", sub.Password},
		{"method", sub.Method},
		{"trxid", sub.TrxID},
		{"amount3", sub.Amount3.String()},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, common.NewValidationError(r.field, "required")
		}
	}

	if !phonePattern.MatchString(sub.Phone) {
		return nil, common.NewValidationError("phone", "invalid phone")
	}

	consignments := make([]models.Consignment, 0, len(sub.Consignments))
	pairs := make([][2]float64, 0, len(sub.Consignments))
	for i, c := range sub.Consignments {
		prefix := fmt.Sprintf("consignments[%d].", i)
		if c.Name == "" {
			return nil, common.NewValidationError(prefix+"name", "required")
		}
		if c.Phone == "" {
			return nil, common.NewValidationError(prefix+"phone", "required")
		}
		if c.Amount1.String() == "" {
			return nil, common.NewValidationError(prefix+"amount1", "required")
		}
		if c.Amount2.String() == "" {
			return nil, common.NewValidationError(prefix+"amount2", "required")
		}

		if !phonePattern.MatchString(c.Phone) {
			return nil, common.NewValidationError(prefix+"phone", "invalid phone")
		}

		amount1, err := parseAmount(prefix+"amount1", c.Amount1)
		if err != nil {
			return nil, err
		}
		amount2, err := parseAmount(prefix+"amount2", c.Amount2)
		if err != nil {
			return nil, err
		}

		consignments = append(consignments, models.Consignment{
			Name:    c.Name,
			Phone:   c.Phone,
			Amount1: amount1,
			Amount2: amount2,
		})
		pairs = append(pairs, [2]float64{amount1, amount2})
	}

	amount3, err := parseAmount("amount3", sub.Amount3)
	if err != nil {
		return nil, err
	}

	if !ChargeMatches(amount3, ExpectedCharge(pairs...)) {
		return nil, common.NewValidationError("amount3", "charge mismatch")
	}

	return &ValidatedPayment{
		Company:      sub.Company,
		Phone:        sub.Phone,
		Password:     sub.Password,
		Method:       sub.Method,
		Amount3:      amount3,
		TrxID:        sub.TrxID,
		Consignments: consignments,
	}, nil
}

// parseAmount converts a monetary field and enforces the [MinAmount,
// MaxAmount] range.
func parseAmount(field string, n json.Number) (float64, error) {
	v, err := n.Float64()
	if err != nil {
		return 0, common.NewValidationError(field, "invalid amount")
	}
	if v < MinAmount || v > MaxAmount {
		return 0, common.NewValidationError(field, "invalid amount")
	}
	return v, nil
}
