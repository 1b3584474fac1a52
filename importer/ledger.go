package importer

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlreadyCompleted reports whether an archive with this file name has a
// committed, completed ledger row. It is the gate that makes re-runs
// idempotent; a failed or in-progress row does not block a retry.
func (imp *Importer) AlreadyCompleted(fileName string) (bool, error) {
	var rec ImportRecord
	err := imp.db.Where("file_name = ? AND status = ?", fileName, StatusCompleted).First(&rec).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// markInProgress upserts a pending ledger row before the archive's
// transaction opens. A crash mid-archive leaves this row behind, which is
// indistinguishable from a failure and does not block a future retry.
func (imp *Importer) markInProgress(fileName string, class Classification, mode string) error {
	return imp.upsertLedger(&ImportRecord{
		FileName:       fileName,
		Classification: string(class),
		Mode:           mode,
		ImportedAt:     time.Now().UTC(),
		Status:         StatusInProgress,
	})
}

// RecordOutcome upserts the terminal ledger row for an archive. It is
// invoked exactly once per processing attempt, success or failure, after the
// enclosing transaction committed or rolled back, so a later successful
// retry overwrites a prior failure.
func (imp *Importer) RecordOutcome(fileName string, class Classification, mode string, recordCount int64, tableCount int, status string, importErr error) error {
	rec := &ImportRecord{
		FileName:       fileName,
		Classification: string(class),
		Mode:           mode,
		ImportedAt:     time.Now().UTC(),
		RecordCount:    recordCount,
		TableCount:     tableCount,
		Status:         status,
	}
	if importErr != nil {
		rec.LastError = importErr.Error()
	}
	return imp.upsertLedger(rec)
}

func (imp *Importer) upsertLedger(rec *ImportRecord) error {
	return imp.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_name"}},
		UpdateAll: true,
	}).Create(rec).Error
}

// History returns all ledger rows, most recent first.
func (imp *Importer) History() ([]ImportRecord, error) {
	var recs []ImportRecord
	err := imp.db.Order("imported_at desc, id desc").Find(&recs).Error
	return recs, err
}

// TableCount is one row of the per-table count surface consumed by the
// external reporting layer.
type TableCount struct {
	Table string
	Rows  int64
}

// TableCounts returns the populated tables and their row counts, sorted by
// table name. Tables missing from the store are skipped.
func (imp *Importer) TableCounts() []TableCount {
	names := make([]string, 0, len(prefixTables))
	for _, t := range prefixTables {
		names = append(names, t)
	}
	sort.Strings(names)

	out := make([]TableCount, 0, len(names))
	for _, t := range names {
		var n int64
		if err := imp.db.Raw("SELECT COUNT(*) FROM " + t).Scan(&n).Error; err != nil {
			continue
		}
		if n > 0 {
			out = append(out, TableCount{Table: t, Rows: n})
		}
	}
	return out
}

// LastSuccessfulImport returns the most recent completed import time for a
// classification, or nil when none exists.
func (imp *Importer) LastSuccessfulImport(class Classification) (*time.Time, error) {
	var rec ImportRecord
	err := imp.db.Where("classification = ? AND status = ?", string(class), StatusCompleted).
		Order("imported_at desc, id desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec.ImportedAt, nil
}
