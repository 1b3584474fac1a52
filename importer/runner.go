package importer

import (
	"archive/zip"
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Import modes.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// dataFileExt is the member extension that marks a delimited data file
// inside an archive.
const dataFileExt = ".DAT"

// maxLineBytes bounds one data-file line; ULS free-text fields can run long.
const maxLineBytes = 1 << 20

// Config configures an Importer.
type Config struct {
	// DBPath is the SQLite database path.
	DBPath string
	// BatchSize is the number of records per insert batch. Defaults to
	// DefaultBatchSize.
	BatchSize int
	Debug     bool
}

// Importer drives the pipeline: archive classification, schema lookup, line
// parsing, batched loading, and the import ledger. Processing is sequential
// over a single shared store handle; one archive completes before the next
// begins.
type Importer struct {
	cfg Config
	db  *gorm.DB
}

func NewImporter(cfg Config) (*Importer, error) {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return nil, errors.New("DBPath is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", cfg.DBPath)
	}
	return &Importer{cfg: cfg, db: db}, nil
}

func (imp *Importer) Close() error {
	if imp == nil || imp.db == nil {
		return nil
	}
	sqlDB, err := imp.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	imp.db = nil
	return err
}

func (imp *Importer) debugf(format string, args ...any) {
	if imp == nil || !imp.cfg.Debug {
		return
	}
	log.Printf(format, args...)
}

// ParseMode validates an import mode string. "daily" is accepted as a legacy
// alias for the incremental difference files it used to name.
func ParseMode(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ModeFull:
		return ModeFull, nil
	case ModeIncremental, "daily":
		return ModeIncremental, nil
	}
	return "", fmt.Errorf("unsupported import mode: %q", s)
}

// ImportArchive processes one zip archive. replace bypasses the
// completed-archive gate and switches the insert policy to OR REPLACE;
// forced overrides classification when non-empty. All data-file loads share
// one transaction, so a failure anywhere rolls the whole archive back and
// the ledger records a failed outcome with the error detail.
func (imp *Importer) ImportArchive(path string, mode string, replace bool, forced Classification) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "archive not found")
	}
	fileName := filepath.Base(path)

	if !replace {
		done, err := imp.AlreadyCompleted(fileName)
		if err != nil {
			return errors.Wrap(err, "ledger lookup")
		}
		if done {
			log.Printf("skip already imported archive: %s", fileName)
			return nil
		}
	}

	class := forced
	if class == "" {
		class = ClassifyArchive(path)
	}
	imp.debugf("import start: file=%q class=%s mode=%s replace=%v", fileName, class, mode, replace)
	if err := imp.markInProgress(fileName, class, mode); err != nil {
		return errors.Wrap(err, "ledger mark in-progress")
	}

	var totalRecords int64
	tables := map[string]struct{}{}
	policy := PolicyFor(mode, replace)

	txErr := imp.db.Transaction(func(tx *gorm.DB) error {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return errors.Wrap(err, "open archive")
		}
		defer zr.Close()

		for _, member := range zr.File {
			if !strings.HasSuffix(strings.ToUpper(member.Name), dataFileExt) {
				continue
			}
			n, table, err := imp.loadDataFile(tx, member, policy)
			if err != nil {
				return errors.Wrapf(err, "load %s", member.Name)
			}
			if table == "" {
				continue
			}
			totalRecords += n
			tables[table] = struct{}{}
			log.Printf("imported %d records from %s into %s", n, member.Name, table)
		}
		return nil
	})
	if txErr != nil {
		log.Printf("error: archive %s failed: %v", fileName, txErr)
		if err := imp.RecordOutcome(fileName, class, mode, 0, 0, StatusFailed, txErr); err != nil {
			log.Printf("error: record failed outcome for %s: %v", fileName, err)
		}
		return txErr
	}

	if err := imp.RecordOutcome(fileName, class, mode, totalRecords, len(tables), StatusCompleted, nil); err != nil {
		return errors.Wrap(err, "ledger record outcome")
	}
	log.Printf("imported archive %s (%s, %s): %d records across %d tables",
		fileName, class, mode, totalRecords, len(tables))
	return nil
}

// loadDataFile streams one .dat member into its mapped table. An unknown
// prefix code skips the member (empty table name returned); a mapped table
// missing from the store is a hard error that fails the archive.
func (imp *Importer) loadDataFile(tx *gorm.DB, member *zip.File, policy InsertPolicy) (int64, string, error) {
	base := strings.ToUpper(filepath.Base(member.Name))
	code := strings.TrimSuffix(base, dataFileExt)
	table, ok := TableForPrefix(code)
	if !ok {
		log.Printf("warn: unknown data file prefix %q, skipping %s", code, member.Name)
		return 0, "", nil
	}

	columns, err := tableColumns(tx, table)
	if err != nil {
		return 0, "", errors.Wrapf(err, "inspect table %s", table)
	}
	if len(columns) == 0 {
		return 0, "", errors.Errorf("table %s does not exist in the store", table)
	}

	rc, err := member.Open()
	if err != nil {
		return 0, "", errors.Wrap(err, "open data file")
	}
	defer rc.Close()

	loader := NewBatchLoader(table, columns, policy)
	batch := make([][]any, 0, imp.cfg.BatchSize)
	var affected int64

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		batch = append(batch, ParseLine(line, len(columns)))
		if len(batch) >= imp.cfg.BatchSize {
			affected += loader.Load(tx, batch, imp.cfg.BatchSize)
			batch = batch[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return 0, "", errors.Wrap(err, "read data file")
	}
	affected += loader.Load(tx, batch, imp.cfg.BatchSize)

	if loader.Dropped > 0 {
		log.Printf("warn: dropped %d unloadable records from %s", loader.Dropped, member.Name)
	}
	return affected, table, nil
}

// ImportDirectory imports every archive under dir matching pattern. All
// license archives load before any application archive; within a group,
// lexical file-name order, which for date-stamped difference files is
// chronological. One archive's failure does not abort the rest. Returns the
// number of archives successfully imported; an archive skipped because it
// was already completed counts as a success.
func (imp *Importer) ImportDirectory(dir string, pattern string, mode string) (int, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.zip"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0, errors.Wrap(err, "expand pattern")
	}
	sort.Strings(matches)
	log.Printf("found %d archives matching %s in %s", len(matches), pattern, dir)

	var licenses, applications []string
	for _, m := range matches {
		if ClassifyArchive(m) == ClassApplication {
			applications = append(applications, m)
		} else {
			licenses = append(licenses, m)
		}
	}

	succeeded := 0
	for _, group := range []struct {
		class Classification
		paths []string
	}{
		{ClassLicense, licenses},
		{ClassApplication, applications},
	} {
		for _, path := range group.paths {
			if err := imp.ImportArchive(path, mode, false, group.class); err != nil {
				log.Printf("error: import %s: %v", path, err)
				continue
			}
			succeeded++
		}
	}
	return succeeded, nil
}
