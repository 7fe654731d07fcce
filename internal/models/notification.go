package models

import (
	"encoding/json"
	"log"
)

// Notification is a per-user named JSON payload. At most one row exists per
// (user, name) pair; the repository enforces replace-by-name on insert.
type Notification struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:128;index"`
	UserID      uint    `json:"user_id" gorm:"index"`
	Timestamp   float64 `json:"timestamp" gorm:"index"` // epoch seconds
	PayloadJSON string  `json:"-" gorm:"type:text"`
}

// GetData deserializes the stored payload back to its structured form.
func (n *Notification) GetData() (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(n.PayloadJSON), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (n *Notification) ToDict() Dict {
	data, err := n.GetData()
	if err != nil {
		log.Printf("notification %d (%s): undecodable payload: %v", n.ID, n.Name, err)
	}
	return Dict{
		"id":        n.ID,
		"name":      n.Name,
		"timestamp": n.Timestamp,
		"data":      data,
	}
}

// EncodePayload JSON-serializes a notification payload. Encoding errors
// propagate to the caller rather than being swallowed.
func EncodePayload(data interface{}) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
