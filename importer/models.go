package importer

import "time"

// Ledger statuses. A file name reaches StatusCompleted only after its
// archive's transaction committed.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ImportRecord is the durable ledger row for one processed archive. A file
// name appears at most once; retries upsert the same row, so a later
// successful run overwrites a prior failure.
type ImportRecord struct {
	ID             uint      `gorm:"primaryKey"`
	FileName       string    `gorm:"uniqueIndex;size:512"`
	Classification string    `gorm:"index;size:16"` // license, application
	Mode           string    `gorm:"size:16"`       // full, incremental
	ImportedAt     time.Time `gorm:"index"`
	RecordCount    int64
	TableCount     int
	Status         string `gorm:"index;size:16"` // in_progress, completed, failed
	LastError      string `gorm:"type:text"`
}

func (ImportRecord) TableName() string { return "import_tracking" }
