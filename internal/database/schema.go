package database

import (
	"database/sql"
	"fmt"
)

// TableDefinitions returns the DDL for the engine's two tables. Table names
// come from configuration so several deployments can share one database.
func TableDefinitions(draftTable, followupTable string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(255) PRIMARY KEY,
			status VARCHAR(32) NOT NULL DEFAULT 'drafting',
			sent_at TIMESTAMPTZ,
			recipient VARCHAR(255) NOT NULL DEFAULT '',
			x_external_id VARCHAR(255) NOT NULL DEFAULT '',
			version_group_id VARCHAR(255) NOT NULL DEFAULT '',
			followup_number INTEGER NOT NULL DEFAULT 0,
			has_reply BOOLEAN NOT NULL DEFAULT FALSE,
			no_followup BOOLEAN NOT NULL DEFAULT FALSE,
			initial_draft_id VARCHAR(255),
			thread_id VARCHAR(255),
			message_id VARCHAR(255),
			original_subject TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			followup_ids TEXT[] NOT NULL DEFAULT '{}',
			followups_scheduled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, draftTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status ON %s (status)`, draftTable, draftTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_x_external_id ON %s (x_external_id)`, draftTable, draftTable),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			draft_id VARCHAR(255) NOT NULL,
			followup_number INTEGER NOT NULL,
			business_days_after INTEGER NOT NULL,
			scheduled_for TIMESTAMPTZ NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'scheduled',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			processed_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ,
			error_message TEXT,
			cancellation_reason VARCHAR(64),
			draft_id_created VARCHAR(255),
			UNIQUE (draft_id, followup_number)
		)`, followupTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status_scheduled_for ON %s (status, scheduled_for)`, followupTable, followupTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_draft_id ON %s (draft_id)`, followupTable, followupTable),
	}
}

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB, draftTable, followupTable string) error {
	for _, query := range TableDefinitions(draftTable, followupTable) {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
