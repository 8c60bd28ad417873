package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus reflects how much of an invoice total has been settled
type PaymentStatus int

const (
	PaymentStatusPaid    PaymentStatus = 0
	PaymentStatusPartial PaymentStatus = 1
	PaymentStatusUnpaid  PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	names := [...]string{"paid", "partial", "unpaid"}
	if int(s) < 0 || int(s) >= len(names) {
		return "paid"
	}
	return names[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "paid":
		*s = PaymentStatusPaid
	case "partial":
		*s = PaymentStatusPartial
	case "unpaid":
		*s = PaymentStatusUnpaid
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}

// ParsePaymentStatus maps a status name to its value
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "paid":
		return PaymentStatusPaid, true
	case "partial":
		return PaymentStatusPartial, true
	case "unpaid":
		return PaymentStatusUnpaid, true
	}
	return PaymentStatusPaid, false
}
