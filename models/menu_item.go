package models

import "time"

// MenuItem is one of the two fixed stall items. Rows are seeded at
// migration and never written by the API; the board reads prices from
// here when staging an order.
type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"kind"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
