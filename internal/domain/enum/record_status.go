package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// RecordStatus is the soft-delete lifecycle of catalog records
type RecordStatus string

const (
	RecordStatusActive  RecordStatus = "active"
	RecordStatusDeleted RecordStatus = "deleted"
)

func (s RecordStatus) String() string {
	return string(s)
}

func (s RecordStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *RecordStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = RecordStatus(str)
	return nil
}

func (s RecordStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *RecordStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RecordStatusActive
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = RecordStatus(v)
	case []byte:
		*s = RecordStatus(string(v))
	}
	return nil
}
