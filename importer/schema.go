package importer

import (
	"database/sql"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// typeSubstitutions maps SQL Server types to their SQLite equivalents.
// Applied in order: the integer widths must be rewritten before the bare
// "int", and varchar( before char(.
var typeSubstitutions = []struct{ from, to string }{
	{"numeric(", "DECIMAL("},
	{"money", "DECIMAL(19,4)"},
	{"datetime", "TEXT"},
	{"tinyint", "INTEGER"},
	{"smallint", "INTEGER"},
	{"int", "INTEGER"},
	{"varchar(", "TEXT("},
	{"char(", "TEXT("},
}

// goSeparator matches SQL Server "go" batch separators on their own line.
var goSeparator = regexp.MustCompile(`(?mi)^\s*go\s*$`)

// supportIndexes are created after the data tables. Each runs independently;
// an index whose table or column is absent is logged and skipped.
var supportIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_hd_call_sign ON PUBACC_HD(call_sign)",
	"CREATE INDEX IF NOT EXISTS idx_hd_uls_file ON PUBACC_HD(uls_file_number)",
	"CREATE INDEX IF NOT EXISTS idx_hd_unique_id ON PUBACC_HD(unique_system_identifier)",
	"CREATE INDEX IF NOT EXISTS idx_en_unique_id ON PUBACC_EN(unique_system_identifier)",
	"CREATE INDEX IF NOT EXISTS idx_en_licensee_id ON PUBACC_EN(licensee_id)",
	"CREATE INDEX IF NOT EXISTS idx_en_entity_name ON PUBACC_EN(entity_name)",
	"CREATE INDEX IF NOT EXISTS idx_lo_call_sign ON PUBACC_LO(call_sign)",
	"CREATE INDEX IF NOT EXISTS idx_lo_location ON PUBACC_LO(call_sign, location_number)",
	"CREATE INDEX IF NOT EXISTS idx_fr_call_sign ON PUBACC_FR(call_sign)",
	"CREATE INDEX IF NOT EXISTS idx_fr_frequency ON PUBACC_FR(call_sign, location_number, antenna_number)",
	"CREATE INDEX IF NOT EXISTS idx_hs_call_sign ON PUBACC_HS(callsign)",
	"CREATE INDEX IF NOT EXISTS idx_hs_uls_file ON PUBACC_HS(uls_file_number)",
}

// TranslateSchemaSQL converts SQL Server table-definition text into SQLite
// dialect: strips the dbo. qualifier, turns "go" batch separators into
// statement separators, and rewrites the data types.
func TranslateSchemaSQL(src string) string {
	out := strings.ReplaceAll(src, "dbo.", "")
	out = goSeparator.ReplaceAllString(out, ";")
	for _, sub := range typeSubstitutions {
		out = strings.ReplaceAll(out, sub.from, sub.to)
	}
	return out
}

// InitializeSchema reads the source DDL file, translates it, and executes
// each CREATE TABLE statement independently: one statement's failure is
// logged and skipped so the remaining tables are still created. Re-running
// against an initialized store is a no-op thanks to IF NOT EXISTS. The
// support indexes and the import ledger table are created afterwards.
func (imp *Importer) InitializeSchema(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read schema file")
	}

	created := 0
	for _, stmt := range splitStatements(TranslateSchemaSQL(string(b))) {
		if !strings.HasPrefix(strings.ToLower(stmt), "create table") {
			continue
		}
		if err := imp.db.Exec(ensureIfNotExists(stmt)).Error; err != nil {
			log.Printf("warn: create table failed, skipping: %v", err)
			continue
		}
		created++
	}

	for _, idx := range supportIndexes {
		if err := imp.db.Exec(idx).Error; err != nil {
			log.Printf("warn: create index failed, skipping: %v", err)
		}
	}

	if err := imp.db.AutoMigrate(&ImportRecord{}); err != nil {
		return errors.Wrap(err, "create import tracking table")
	}

	log.Printf("schema initialized: %d table statements applied", created)
	return nil
}

func splitStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ensureIfNotExists(stmt string) string {
	lower := strings.ToLower(stmt)
	if !strings.HasPrefix(lower, "create table") {
		return stmt
	}
	if strings.HasPrefix(lower, "create table if not exists") {
		return stmt
	}
	return "CREATE TABLE IF NOT EXISTS" + stmt[len("create table"):]
}

// tableColumns returns the ordered column names of a table, or an empty
// slice when the table does not exist. RecordParser and BatchLoader both
// align to this list.
func tableColumns(tx *gorm.DB, table string) ([]string, error) {
	rows, err := tx.Raw("PRAGMA table_info(" + table + ")").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
