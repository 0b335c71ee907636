// Package models provides data model definitions for the complaint client.
package models

import "encoding/json"

// Fields is the opaque complaint submission payload (title, description,
// category, priority, location and whatever else the server accepts). The
// queue never inspects it beyond passing it through.
type Fields map[string]interface{}

// Clone returns a shallow copy of the fields map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Complaint represents a server-acknowledged complaint record.
// The schema is owned by the server; only the identifiers and the fields
// echoed back on creation are modeled here.
type Complaint struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	OfflineID   string `json:"offline_id,omitempty"`
	IsSynced    bool   `json:"is_synced"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`

	// Raw keeps the full server response body for callers that need
	// fields not modeled above.
	Raw json.RawMessage `json:"-"`
}
