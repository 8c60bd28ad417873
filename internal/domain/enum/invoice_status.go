package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of a committed invoice
type InvoiceStatus int

const (
	InvoiceStatusActive InvoiceStatus = 0
	InvoiceStatusVoid   InvoiceStatus = 1
)

func (s InvoiceStatus) String() string {
	names := [...]string{"active", "void"}
	if int(s) < 0 || int(s) >= len(names) {
		return "active"
	}
	return names[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "active":
		*s = InvoiceStatusActive
	case "void":
		*s = InvoiceStatusVoid
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}

// ParseInvoiceStatus maps a status name to its value
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch s {
	case "active":
		return InvoiceStatusActive, true
	case "void":
		return InvoiceStatusVoid, true
	}
	return InvoiceStatusActive, false
}
