package item

import "time"

// Item is a single stored entry. ID and CreatedAt are assigned by the store.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItem carries the caller-supplied fields of an item. A nil Name is
// passed to the store as NULL.
type NewItem struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Health reports service liveness.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusHealthy is the only status Health ever reports.
const StatusHealthy = "healthy"
