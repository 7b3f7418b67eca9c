package models

import "time"

// Item is the resource managed by the service.
//
// Example JSON:
//
//	{
//	  "id": 1,
//	  "name": "Test Item",
//	  "description": "A test",
//	  "created_at": "2026-10-16T09:30:00.123456Z",
//	  "updated_at": "2026-10-16T09:31:12.654321Z"
//	}
//
// updated_at is omitted until the first successful update.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ItemPatch holds the fields of a partial update. Empty strings mean "not provided":
// only non-empty fields are applied, so a patch cannot clear a description.
type ItemPatch struct {
	Name        string
	Description string
}

// Apply copies the non-empty fields of p onto item and stamps UpdatedAt with now,
// whether or not any field changed.
func (p ItemPatch) Apply(item *Item, now time.Time) {
	if p.Name != "" {
		item.Name = p.Name
	}
	if p.Description != "" {
		item.Description = p.Description
	}
	item.UpdatedAt = &now
}
