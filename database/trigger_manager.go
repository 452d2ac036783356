package database

import (
	"os"
	"strings"

	"github.com/yeremiapane/stall-pos/utils"
	"gorm.io/gorm"
)

// ExecuteTriggers installs the change-journal triggers from
// database/migrations/triggers.sql. Statements are executed one by one
// and failures are logged, so re-running against a database that
// already has the triggers is harmless.
func ExecuteTriggers(db *gorm.DB) error {
	triggerSQL, err := os.ReadFile("database/migrations/triggers.sql")
	if err != nil {
		return err
	}

	// Split berdasarkan DELIMITER
	statements := strings.Split(string(triggerSQL), "DELIMITER")

	for _, block := range statements {
		if strings.TrimSpace(block) == "" {
			continue
		}

		// Eksekusi setiap statement dalam blok
		for _, stmt := range strings.Split(block, "//") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || stmt == ";" {
				continue
			}

			if err := db.Exec(stmt).Error; err != nil {
				utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
				continue
			}
			utils.InfoLogger.Printf("Successfully executed trigger statement")
		}
	}

	// Verifikasi trigger
	var triggers []struct {
		TriggerName string
		EventType   string
		TableName   string
		Timing      string
	}

	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.TriggerName, t.Timing, t.EventType, t.TableName)
	}

	return nil
}
