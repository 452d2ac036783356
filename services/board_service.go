package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/stall-pos/live"
	"github.com/yeremiapane/stall-pos/models"
	"github.com/yeremiapane/stall-pos/tickets"
)

var ErrUnknownKind = errors.New("unknown item kind")

// Fallback prices when the menu rows are missing (fresh database
// before seeding). The menu table is the normal source.
var defaultPrices = map[string]float64{
	models.KindApple:  300,
	models.KindBanana: 200,
}

// BoardService keeps the stall board in sync with the orders table.
// The durable rows are the source of truth: every mutation and every
// change notification ends in Refresh, which refetches the full order
// list and recomputes the ticket pool from it. Staged orders live only
// here until they are confirmed or cleared.
type BoardService struct {
	db *gorm.DB

	mu     sync.Mutex
	orders []models.Order
	staged []models.StagedOrder
	pool   *tickets.Pool
	prices map[string]float64
}

// BoardSnapshot is what viewers render: open orders in creation order,
// the staged list, and the free ticket numbers per item kind.
type BoardSnapshot struct {
	Orders      []models.Order       `json:"orders"`
	Staged      []models.StagedOrder `json:"staged"`
	FreeTickets map[string][]int     `json:"free_tickets"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func NewBoardService(db *gorm.DB) *BoardService {
	prices := make(map[string]float64, len(defaultPrices))
	for kind, price := range defaultPrices {
		prices[kind] = price
	}
	return &BoardService{
		db:     db,
		pool:   tickets.NewPool(models.ItemKinds()),
		prices: prices,
	}
}

// Refresh refetches the full order list (creation order) and replaces
// the derived state: the ticket pool is recomputed from the fetched
// set, never patched incrementally. The fresh snapshot is broadcast to
// all live viewers. On a fetch error the previous state stays and the
// error is logged and returned for the caller to swallow.
func (bs *BoardService) Refresh() error {
	var orders []models.Order
	if err := bs.db.Order("created_at asc").Find(&orders).Error; err != nil {
		log.Printf("Error refetching orders: %v", err)
		return err
	}

	var menu []models.MenuItem
	if err := bs.db.Find(&menu).Error; err != nil {
		// Prices fall back to the last known values.
		log.Printf("Error refetching menu: %v", err)
	}

	bs.mu.Lock()
	bs.orders = orders
	bs.pool = tickets.Compute(models.ItemKinds(), orders)
	for _, item := range menu {
		bs.prices[item.Kind] = item.Price
	}
	snap := bs.snapshotLocked()
	bs.mu.Unlock()

	live.BroadcastBoardUpdate(snap)
	return nil
}

// Snapshot -> a copy of the current board state
func (bs *BoardService) Snapshot() BoardSnapshot {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.snapshotLocked()
}

func (bs *BoardService) snapshotLocked() BoardSnapshot {
	snap := BoardSnapshot{
		Orders:      make([]models.Order, len(bs.orders)),
		Staged:      make([]models.StagedOrder, len(bs.staged)),
		FreeTickets: make(map[string][]int, len(models.ItemKinds())),
		UpdatedAt:   time.Now(),
	}
	copy(snap.Orders, bs.orders)
	copy(snap.Staged, bs.staged)
	for _, kind := range models.ItemKinds() {
		snap.FreeTickets[kind] = bs.pool.Free(kind)
	}
	return snap
}

// Stage adds a not-yet-durable order for the given kind, taking the
// lowest free ticket from the local pool. Nothing touches the store;
// the reservation is optimistic until Confirm. When the kind is sold
// out the pool is left untouched and tickets.ErrExhausted is returned
// so the caller can alert the user.
func (bs *BoardService) Stage(kind string) (models.StagedOrder, error) {
	if !models.ValidKind(kind) {
		return models.StagedOrder{}, ErrUnknownKind
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()

	number, err := bs.pool.Allocate(kind)
	if err != nil {
		return models.StagedOrder{}, err
	}

	staged := models.StagedOrder{
		Ref:          uuid.New().String(),
		ItemKind:     kind,
		Price:        bs.prices[kind],
		TicketNumber: number,
		StagedAt:     time.Now(),
	}
	bs.staged = append(bs.staged, staged)
	return staged, nil
}

// ClearStaged drops every staged order and returns their tickets to
// the local pool. The store is not touched. Returns how many orders
// were dropped.
func (bs *BoardService) ClearStaged() int {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	dropped := len(bs.staged)
	for _, s := range bs.staged {
		bs.pool.Release(s.ItemKind, s.TicketNumber)
	}
	bs.staged = nil
	return dropped
}

// Confirm writes all staged orders to the store in one batch, then
// replaces local state by refetching and recomputing. An empty staged
// list is a no-op on the store. A failed insert is logged and the flow
// still clears the staged list and refetches, so the board converges
// on whatever the store actually holds. Returns how many orders were
// sent in the batch.
func (bs *BoardService) Confirm() (int, error) {
	bs.mu.Lock()
	staged := bs.staged
	bs.staged = nil
	bs.mu.Unlock()

	if len(staged) == 0 {
		return 0, nil
	}

	rows := make([]models.Order, 0, len(staged))
	for _, s := range staged {
		rows = append(rows, s.Order())
	}

	var insertErr error
	if err := bs.db.Create(&rows).Error; err != nil {
		log.Printf("Error inserting confirmed orders: %v", err)
		insertErr = err
	}

	if err := bs.Refresh(); err != nil && insertErr == nil {
		insertErr = err
	}
	return len(staged), insertErr
}

// Remove deletes one confirmed order by its store identifier, then
// refetches and recomputes. The recompute is what returns the ticket
// number to the pool. A failed delete is logged; the refetch still
// runs so the board shows the store's real state.
func (bs *BoardService) Remove(orderID uint) error {
	var removeErr error
	if err := bs.db.Delete(&models.Order{}, orderID).Error; err != nil {
		log.Printf("Error deleting order %d: %v", orderID, err)
		removeErr = err
	}

	if err := bs.Refresh(); err != nil && removeErr == nil {
		removeErr = err
	}
	return removeErr
}
