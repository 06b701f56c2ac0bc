package model

import (
	"encoding/json"
	"time"
)

// Message is a single chat entry on a page. AI responses are inserted with
// IsComplete=false and patched in place while the provider stream runs;
// once IsComplete flips to true it never goes back.
// TextVector is stored as a JSON array of float64 for portability.
//
// IsComplete must not carry a gorm default tag: GORM drops zero-valued
// fields that have one from the INSERT, which would store an ai placeholder
// as already complete.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PageID     uint      `gorm:"not null;index" json:"page_id"`
	Sender     string    `gorm:"size:64;not null" json:"sender"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Likes      int       `gorm:"not null;default:0" json:"likes"`
	TextVector string    `gorm:"type:text" json:"-"`
	IsComplete bool      `gorm:"not null" json:"is_complete"`
	CreatedAt  time.Time `json:"created_at"`
}

// Vector returns the parsed embedding slice; nil when absent or unparsable.
func (m *Message) Vector() []float64 {
	if m.TextVector == "" {
		return nil
	}
	var v []float64
	_ = json.Unmarshal([]byte(m.TextVector), &v)
	return v
}

// SetVector stores the embedding as JSON.
func (m *Message) SetVector(vec []float64) {
	if len(vec) == 0 {
		m.TextVector = ""
		return
	}
	b, _ := json.Marshal(vec)
	m.TextVector = string(b)
}
