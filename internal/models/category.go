package models

import "time"

// Category groups products. Deleting a category detaches its products
// (category_id set to NULL); it never deletes them.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
