package importer

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// InsertPolicy selects the conflict clause used when loading records.
type InsertPolicy string

const (
	// PolicyIgnore leaves rows already present by unique key untouched.
	// Used for idempotent initial loads.
	PolicyIgnore InsertPolicy = "OR IGNORE"
	// PolicyReplace overwrites rows with a matching unique key in place.
	// Used for incremental difference loads.
	PolicyReplace InsertPolicy = "OR REPLACE"
)

// PolicyFor returns the insert policy for an import mode.
func PolicyFor(mode string, replace bool) InsertPolicy {
	if mode == ModeIncremental || replace {
		return PolicyReplace
	}
	return PolicyIgnore
}

// maxBindVars is SQLite's historical bind-variable ceiling. Multi-row
// statements are chunked to stay under it regardless of column count.
const maxBindVars = 999

// BatchLoader applies normalized records to one table inside the caller's
// transaction. Each chunk is applied bulk-first with a per-record fallback,
// so one malformed line never discards an otherwise valid batch.
type BatchLoader struct {
	table   string
	columns []string
	policy  InsertPolicy
	// Dropped counts records discarded by the per-record fallback tier.
	Dropped int64
}

func NewBatchLoader(table string, columns []string, policy InsertPolicy) *BatchLoader {
	return &BatchLoader{table: table, columns: columns, policy: policy}
}

// Load applies records and returns the number of rows actually inserted or
// replaced. Lines that collide under OR IGNORE contribute zero.
func (l *BatchLoader) Load(tx *gorm.DB, records [][]any, batchSize int) int64 {
	if len(records) == 0 {
		return 0
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	rowsPerStmt := maxBindVars / len(l.columns)
	if rowsPerStmt < 1 {
		rowsPerStmt = 1
	}
	if rowsPerStmt > batchSize {
		rowsPerStmt = batchSize
	}

	var affected int64
	for start := 0; start < len(records); start += rowsPerStmt {
		end := start + rowsPerStmt
		if end > len(records) {
			end = len(records)
		}
		affected += l.applyChunk(tx, records[start:end])
	}
	return affected
}

// applyChunk is the two-tier apply: one multi-row statement first, then a
// per-record pass over the chunk that failed, dropping only the individual
// records that still fail.
func (l *BatchLoader) applyChunk(tx *gorm.DB, chunk [][]any) int64 {
	res := tx.Exec(l.insertSQL(len(chunk)), flattenRecords(chunk)...)
	if res.Error == nil {
		return res.RowsAffected
	}
	log.Printf("warn: bulk insert into %s failed (%v), retrying records individually", l.table, res.Error)

	single := l.insertSQL(1)
	var affected int64
	for _, rec := range chunk {
		r := tx.Exec(single, rec...)
		if r.Error != nil {
			l.Dropped++
			continue
		}
		affected += r.RowsAffected
	}
	return affected
}

func (l *BatchLoader) insertSQL(rows int) string {
	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?,", len(l.columns)), ",") + ")"
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT %s INTO %s (%s) VALUES %s",
		l.policy, l.table, strings.Join(l.columns, ","), placeholders)
	for i := 1; i < rows; i++ {
		b.WriteString(",")
		b.WriteString(placeholders)
	}
	return b.String()
}

func flattenRecords(records [][]any) []any {
	out := make([]any, 0, len(records)*len(records[0]))
	for _, rec := range records {
		out = append(out, rec...)
	}
	return out
}
