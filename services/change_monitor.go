package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/stall-pos/live"
	"github.com/yeremiapane/stall-pos/models"
)

// ChangeMonitor drains the db_changes journal that the row-level
// triggers feed. Every drained event ends in the same
// refetch-and-recompute path a local mutation takes, so boards served
// by other processes converge without any incremental merging.
type ChangeMonitor struct {
	DB       *gorm.DB
	Board    *BoardService
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB, board *BoardService) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		Board:    board,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	var count int64
	tx.Model(&models.DBChange{}).Where("processed = ?", false).Count(&count)
	if count > 0 {
		log.Printf("Found %d unprocessed changes", count)
	}

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		log.Printf("Processing change: table=%s, action=%s, record_id=%d",
			change.TableName, change.ActionType, change.RecordID)

		switch change.TableName {
		case "orders":
			cm.processOrderChange(tx, change)
		case "menu_items":
			cm.processMenuChange(tx, change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}

	// One refetch covers the whole batch, whatever the event types
	// were; the refresh recomputes the ticket pool and pushes the
	// snapshot to every viewer.
	if len(changes) > 0 && cm.Board != nil {
		if err := cm.Board.Refresh(); err != nil {
			log.Printf("Error refreshing board after changes: %v", err)
		}
	}

	if len(changes) > 0 {
		log.Printf("Successfully processed %d changes", len(changes))
	}
}

// Reads go through the drain transaction so the broadcast matches the
// journal batch being marked processed.
func (cm *ChangeMonitor) processOrderChange(tx *gorm.DB, change models.DBChange) {
	switch change.ActionType {
	case models.ActionInsert, models.ActionUpdate:
		var order models.Order
		if err := tx.First(&order, change.RecordID).Error; err != nil {
			log.Printf("Error fetching order: %v", err)
			return
		}
		live.BroadcastOrderUpdate(order)
	case models.ActionDelete:
		live.BroadcastOrderDelete(change.RecordID)
	}
}

func (cm *ChangeMonitor) processMenuChange(tx *gorm.DB, change models.DBChange) {
	var items []models.MenuItem
	if err := tx.Find(&items).Error; err != nil {
		log.Printf("Error fetching menu items: %v", err)
		return
	}
	live.BroadcastMenuUpdate(items)
}
