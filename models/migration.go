package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&School{},
		&Report{},
		&ChecklistResponse{},
		&Photo{},
		&AISummary{},
		&WorkflowComment{},
	)
	if err != nil {
		log.Fatalf("failed to migrate tables: %v", err)
	}
}
