package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RegisterStatus represents the open/close cycle of an outlet register
type RegisterStatus string

const (
	RegisterStatusOpen   RegisterStatus = "open"
	RegisterStatusClosed RegisterStatus = "closed"
)

func (s RegisterStatus) String() string {
	return string(s)
}

func (s RegisterStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *RegisterStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = RegisterStatus(str)
	return nil
}

func (s RegisterStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *RegisterStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RegisterStatusClosed
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = RegisterStatus(v)
	case []byte:
		*s = RegisterStatus(string(v))
	}
	return nil
}
