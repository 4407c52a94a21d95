package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry records one successful mutation of an app's state.
type Entry struct {
	ID        string          `json:"id"`
	App       string          `json:"app"`
	Operation string          `json:"operation"`
	Subject   string          `json:"subject,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
