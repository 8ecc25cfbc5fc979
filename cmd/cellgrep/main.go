package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cellgrep/internal/config"
	"cellgrep/internal/driver"
	"cellgrep/internal/exporter"
	"cellgrep/internal/journal"
	"cellgrep/internal/logger"
	"cellgrep/internal/model"
	"cellgrep/internal/rule"
	"cellgrep/internal/ui"
)

const (
	appName    = "Cellgrep"
	appVersion = "1.0.0"
	appDesc    = "Batch value-pair search across Excel workbook folders"
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	folderPath  string
	outputDir   string
	formats     string
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&folderPath, "folder", "", "Override workbook folder from config")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "excel", "Comma-separated report formats (excel,word,none)")
}

func main() {
	// Ensure "Press Enter to Exit" runs even on panic or error
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
		}
		waitForEnter()
	}()

	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	printBanner()

	// 1. Initialize
	logger.Info("Loading configuration...")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}

	if outputDir != "" {
		cfg.Output.Dir = outputDir
		cfg.EnsureOutputDir()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}

	logPath := filepath.Join(cfg.Output.Dir, "cellgrep.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	summary, err := runBatch(cfg)
	if err != nil {
		logger.Error("Batch failed: %v", err)
		return 1
	}

	printSummary(summary)
	return 0
}

func runBatch(cfg *config.Config) (*model.Summary, error) {
	// Validate rules at load time so the scan never sees a malformed rule
	rules, ruleErrs := rule.Parse(cfg.SearchRules)
	grouping := rule.GroupBySheet(rules)
	if grouping.ActiveRules() == 0 {
		return nil, fmt.Errorf("no enabled search rules in configuration")
	}

	folder := folderPath
	if folder == "" {
		var err error
		if folder, err = cfg.FolderPath(); err != nil {
			return nil, err
		}
	}

	logger.Info("Looking for Excel files in: %s", folder)
	printActiveRules(grouping)

	jrnl, err := journal.Open(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	defer jrnl.Close()

	// Invalid rules are skipped, not fatal; they still land in the error journal
	for _, rerr := range ruleErrs {
		logger.Warn("Skipping rule: %v", rerr)
		jrnl.RecordError(model.ErrorRecord{Timestamp: time.Now(), Message: rerr.Error()})
	}

	// --- Phase 1: Scanning ---
	logger.Info("Phase 1: Scanning workbooks...")
	scanBar := ui.NewProgressBar(ui.PhaseScanning, 1)

	d := driver.New(grouping, jrnl, cfg.MaxRowsToProcess)
	d.OnFile = func(index, total int, name string) {
		if index == 0 {
			scanBar.SetTotal(total)
		} else {
			scanBar.Increment()
		}
		scanBar.Describe(name)
		logger.Debug("File %d/%d: %s", index+1, total, name)
	}

	summary, err := d.Run(folder)
	if err != nil {
		return nil, err
	}
	scanBar.Finish()

	logger.Info("Results log: %s", jrnl.ResultsPath())
	logger.Info("Error log:   %s", jrnl.ErrorsPath())

	// --- Phase 2: Reporting ---
	exporters := exporter.GetExporters(strings.Split(formats, ","))
	if len(exporters) > 0 {
		logger.Info("Phase 2: Generating reports...")
		genBar := ui.NewProgressBar(ui.PhaseReporting, len(exporters))

		for _, exp := range exporters {
			// Report failures never invalidate the journaled results
			if err := exp.Export(summary, cfg); err != nil {
				logger.Error("Export failed: %v", err)
			}
			genBar.Increment()
		}
		genBar.Finish()
	}

	return summary, nil
}

func printActiveRules(grouping *rule.Grouping) {
	logger.Info("Active search rules: %d", grouping.ActiveRules())
	for _, sheet := range grouping.Sheets() {
		for _, group := range grouping.ForSheet(sheet) {
			for _, r := range group.Rules {
				logger.Info("  [%s] Sheet '%s': search col %s for '%s', check col %s for '%s'",
					r.Name, r.SheetName, r.SearchColumn, r.SearchValue, r.CheckColumn, r.CheckValue)
			}
		}
	}
}

func printSummary(summary *model.Summary) {
	logger.Info("")
	logger.Info(strings.Repeat("=", 60))
	logger.Info("SEARCH COMPLETE!")
	logger.Info("Total files found:     %d", summary.FilesFound)
	logger.Info("Total files processed: %d", summary.FilesProcessed)
	if summary.FilesFailed > 0 {
		logger.Info("Total files failed:    %d", summary.FilesFailed)
	}
	logger.Info("Total matches found:   %d", summary.TotalMatches())
	logger.Info("Duration:              %s", summary.Duration().Round(time.Millisecond).String())
	logger.Info(strings.Repeat("=", 60))
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                      CELLGREP v1.0.0                      ║
║        Value-Pair Search for Excel Workbook Folders       ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
