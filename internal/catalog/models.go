package catalog

import "time"

// PhoneType is a brand+model reference row used to validate and suggest
// intake choices. It carries no stock.
type PhoneType struct {
	ID          int64     `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Category    string    `json:"category"`
	ReleaseYear int       `json:"release_year"`
	IsActive    bool      `json:"is_active"`
	Notes       string    `json:"notes,omitempty"`
	DateAdded   time.Time `json:"date_added"`
}

// AccessoryCategory pairs a machine key with its Arabic display name.
// Accessories reference the machine key.
type AccessoryCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ArabicName  string    `json:"arabic_name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	Notes       string    `json:"notes,omitempty"`
	DateAdded   time.Time `json:"date_added"`
}
