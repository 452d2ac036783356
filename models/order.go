package models

import (
	"time"
)

// Item kinds sold by the stall. The menu is fixed to these two.
const (
	KindApple  = "apple"
	KindBanana = "banana"
)

const OrderStatusOpen = "open"

// ValidKind -> true when kind is one of the two stall items
func ValidKind(kind string) bool {
	return kind == KindApple || kind == KindBanana
}

// ItemKinds -> the fixed enumeration, board display order
func ItemKinds() []string {
	return []string{KindApple, KindBanana}
}

// Order is one open order on the board. A row exists only while the
// order is open; serving the order deletes the row, which frees its
// ticket number for reuse. (item_kind, ticket_number) is unique across
// stored rows.
type Order struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Ref          string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"ref"`
	ItemKind     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_kind_ticket" json:"item_kind"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	TicketNumber int       `gorm:"not null;uniqueIndex:idx_kind_ticket" json:"ticket_number"`
	Status       string    `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// StagedOrder is a board-local order awaiting confirmation. It never
// touches the database; Ref identifies it until the store assigns an ID.
type StagedOrder struct {
	Ref          string    `json:"ref"`
	ItemKind     string    `json:"item_kind"`
	Price        float64   `json:"price"`
	TicketNumber int       `json:"ticket_number"`
	StagedAt     time.Time `json:"staged_at"`
}

// Order -> the durable row for a staged order. Status is left empty so
// the store default applies on insert.
func (s StagedOrder) Order() Order {
	return Order{
		Ref:          s.Ref,
		ItemKind:     s.ItemKind,
		Price:        s.Price,
		TicketNumber: s.TicketNumber,
	}
}
