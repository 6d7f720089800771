package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Membership lookups: invite resolution, roster queries, cascade updates
		{"users", "idx_users_room_id", "room_id"},
		{"room_members", "idx_room_members_room_id", "room_id"},
		{"room_members", "idx_room_members_user_id", "user_id"},
		{"rooms", "idx_rooms_invite_code", "invite_code"},

		// Chore indexes for filtering and sorting
		{"chores", "idx_chores_room_id", "room_id"},
		{"chores", "idx_chores_creator_id", "creator_id"},
		{"chores", "idx_chores_status", "status"},
		{"chores", "idx_chores_due_date", "due_date"},

		// Chore assignments
		{"chore_assignments", "idx_chore_assignments_chore_id", "chore_id"},
		{"chore_assignments", "idx_chore_assignments_user_id", "user_id"},

		// Expenses
		{"expenses", "idx_expenses_room_id", "room_id"},
		{"expenses", "idx_expenses_paid_by", "paid_by"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			fmt.Printf("Index %s already exists, skipping\n", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
