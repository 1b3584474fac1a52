package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"uls-importer/importer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string
	var dbPath string
	var schemaPath string
	var importFile string
	var importDir string
	var pattern string
	var mode string
	var classification string
	var replace bool
	var status bool
	var vacuum bool
	var analyze bool
	var batchSize int
	var debug bool

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&dbPath, "db", "uls.db", "SQLite database path.")
	flag.StringVar(&schemaPath, "schema", "", "SQL schema definition file; runs schema initialization.")
	flag.StringVar(&importFile, "import-file", "", "Zip archive to import.")
	flag.StringVar(&importDir, "import-dir", "", "Directory of zip archives to import.")
	flag.StringVar(&pattern, "pattern", "*.zip", "File pattern for directory import.")
	flag.StringVar(&mode, "mode", importer.ModeFull, "Import mode: full or incremental.")
	flag.StringVar(&classification, "classification", "", "Force archive classification: license or application.")
	flag.BoolVar(&replace, "replace", false, "Replace existing records and re-import already completed archives.")
	flag.BoolVar(&status, "status", false, "Show import history and per-table record counts.")
	flag.BoolVar(&vacuum, "vacuum", false, "Run VACUUM after other operations.")
	flag.BoolVar(&analyze, "analyze", false, "Run ANALYZE after other operations.")
	flag.IntVar(&batchSize, "batch-size", importer.DefaultBatchSize, "Records per insert batch.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	// Base config from file (optional)
	fileCfg := &importer.FileConfig{}
	if configPath != "" {
		cfg, err := importer.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		fileCfg = cfg
	}

	// Merge config + CLI overrides
	finalDB := fileCfg.DB
	if finalDB == "" {
		finalDB = "uls.db"
	}
	if visited["db"] {
		finalDB = dbPath
	}
	finalSchema := fileCfg.Schema
	if visited["schema"] {
		finalSchema = schemaPath
	}
	finalBatch := fileCfg.BatchSize
	if finalBatch <= 0 {
		finalBatch = importer.DefaultBatchSize
	}
	if visited["batch-size"] {
		finalBatch = batchSize
	}
	finalDebug := fileCfg.Debug
	if visited["debug"] {
		finalDebug = debug
	}

	finalMode, err := importer.ParseMode(mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	forced, err := importer.ParseClassification(classification)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if finalSchema == "" && importFile == "" && importDir == "" && !status && !vacuum && !analyze {
		fmt.Fprintln(os.Stderr, "nothing to do (use -schema, -import-file, -import-dir, -status, -vacuum or -analyze)")
		flag.Usage()
		os.Exit(2)
	}

	imp, err := importer.NewImporter(importer.Config{
		DBPath:    finalDB,
		BatchSize: finalBatch,
		Debug:     finalDebug,
	})
	if err != nil {
		log.Fatalf("init importer: %v", err)
	}
	defer imp.Close()

	if finalSchema != "" {
		if err := imp.InitializeSchema(finalSchema); err != nil {
			log.Fatalf("initialize schema: %v", err)
		}
	}

	if importFile != "" {
		if err := imp.ImportArchive(importFile, finalMode, replace, forced); err != nil {
			log.Fatalf("import %s: %v", importFile, err)
		}
		log.Printf("import completed: %s", importFile)
	}

	if importDir != "" {
		n, err := imp.ImportDirectory(importDir, pattern, finalMode)
		if err != nil {
			log.Fatalf("import directory %s: %v", importDir, err)
		}
		log.Printf("directory import completed: %d archives imported", n)
	}

	if status {
		printStatus(imp)
	}

	if vacuum {
		if err := imp.Vacuum(); err != nil {
			log.Fatalf("vacuum: %v", err)
		}
		log.Printf("vacuum completed")
	}
	if analyze {
		if err := imp.Analyze(); err != nil {
			log.Fatalf("analyze: %v", err)
		}
		log.Printf("analyze completed")
	}
}

func printStatus(imp *importer.Importer) {
	fmt.Println("=== Import History ===")
	history, err := imp.History()
	if err != nil {
		log.Fatalf("read import history: %v", err)
	}
	if len(history) == 0 {
		fmt.Println("no imports found")
	}
	for _, rec := range history {
		fmt.Printf("File: %s\n", rec.FileName)
		fmt.Printf("  Class: %s, Mode: %s, Date: %s\n", rec.Classification, rec.Mode, rec.ImportedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Records: %d, Tables: %d, Status: %s\n", rec.RecordCount, rec.TableCount, rec.Status)
		if rec.LastError != "" {
			fmt.Printf("  Error: %s\n", rec.LastError)
		}
	}

	fmt.Println("\n=== Table Record Counts ===")
	for _, tc := range imp.TableCounts() {
		fmt.Printf("%s: %d records\n", tc.Table, tc.Rows)
	}

	fmt.Println("\n=== Last Successful Imports ===")
	for _, class := range []importer.Classification{importer.ClassLicense, importer.ClassApplication} {
		ts, err := imp.LastSuccessfulImport(class)
		if err != nil {
			log.Fatalf("read last import for %s: %v", class, err)
		}
		if ts == nil {
			fmt.Printf("%s: never\n", class)
			continue
		}
		fmt.Printf("%s: %s\n", class, ts.Format("2006-01-02 15:04:05"))
	}
}
