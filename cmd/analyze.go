package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bundlecheck/bundle-health-checker/internal/analyzer"
	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/config"
	"github.com/bundlecheck/bundle-health-checker/internal/git"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
	"github.com/bundlecheck/bundle-health-checker/internal/scanner"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a frontend bundle directory for health issues",
	Long: `Analyze a directory of HTML/CSS/JS assets for size problems,
duplicated code patterns and performance anti-patterns. If no path is
provided, the current directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	failOnIssues      bool
	severityThreshold string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "exit with non-zero code if issues found")
	analyzeCmd.Flags().StringVar(&severityThreshold, "severity", "info", "minimum severity level (info, warning, error)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	context, err := setupAnalyzeContext(cmd, args)
	if err != nil {
		return err
	}

	bundleReport, err := performAnalysis(context, startTime)
	if err != nil {
		return err
	}

	if err := outputResults(cmd, bundleReport, context.verbose); err != nil {
		return err
	}

	handleFailOnIssues(bundleReport)
	return nil
}

type analyzeContext struct {
	absPath string
	cfg     *config.Config
	branch  string
	commit  string
	verbose bool
}

func setupAnalyzeContext(cmd *cobra.Command, args []string) (*analyzeContext, error) {
	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}

	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", targetPath, err)
	}

	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", absPath)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	metadata := git.CollectMetadata(absPath)
	verbose, _ := cmd.Flags().GetBool("verbose")

	return &analyzeContext{
		absPath: absPath,
		cfg:     cfg,
		branch:  metadata.Branch,
		commit:  metadata.Commit,
		verbose: verbose,
	}, nil
}

func performAnalysis(context *analyzeContext, startTime time.Time) (*report.Report, error) {
	if context.verbose {
		fmt.Printf("Analyzing bundle: %s\n", context.absPath)
		if context.branch != "" {
			fmt.Printf("Branch: %s | Commit: %s\n", context.branch, context.commit)
		}
		fmt.Println("Running health checks...")
	}

	fileScanner, err := scanner.NewFileScanner(context.absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file scanner: %w", err)
	}

	sources, err := fileScanner.ScanSources()
	if err != nil {
		return nil, fmt.Errorf("failed to scan bundle files: %w", err)
	}

	bundleReport := runAnalyzers(context.cfg, sources, context.verbose)
	bundleReport.Path = context.absPath
	bundleReport.Branch = context.branch
	bundleReport.CommitHash = context.commit
	bundleReport.Timestamp = startTime
	bundleReport.Duration = time.Since(startTime).String()
	bundleReport.Version = Version

	return bundleReport, nil
}

func runAnalyzers(cfg *config.Config, sources []asset.SourceFile, verbose bool) *report.Report {
	bundleReport := &report.Report{}

	if verbose {
		fmt.Println("  - Running size analysis...")
	}
	bundleReport.Size = analyzer.NewSizeAnalyzer(&cfg.Size).Analyze(sources)

	if verbose {
		fmt.Println("  - Running duplication analysis...")
	}
	bundleReport.Duplication = analyzer.NewDuplicationAnalyzer(&cfg.Duplication).Analyze(sources)

	if verbose {
		fmt.Println("  - Running performance analysis...")
	}
	bundleReport.Performance = analyzer.NewPerformanceAnalyzer(&cfg.Performance).Analyze(sources)

	bundleReport.Score = analyzer.CalculateScore(bundleReport.Size, bundleReport.Duplication, bundleReport.Performance)

	return bundleReport
}

func outputResults(cmd *cobra.Command, bundleReport *report.Report, verbose bool) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	formatter := report.GetFormatter(formatFlag)

	output, err := formatter.Format(bundleReport)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		if err := writeOutputToFile(output, outputPath); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if verbose {
			fmt.Printf("Report written to: %s\n", outputPath)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

func handleFailOnIssues(bundleReport *report.Report) {
	if failOnIssues {
		filtered := filterFindingsBySeverity(bundleReport.AllFindings(), severityThreshold)
		if len(filtered) > 0 {
			os.Exit(1)
		}
	}
}

func filterFindingsBySeverity(findings []report.Finding, threshold string) []report.Finding {
	severityOrder := map[report.Severity]int{
		report.SeverityInfo:    1,
		report.SeverityWarning: 2,
		report.SeverityError:   3,
	}

	thresholdLevel, exists := severityOrder[report.Severity(threshold)]
	if !exists {
		thresholdLevel = 1
	}

	var filtered []report.Finding
	for _, finding := range findings {
		if severityOrder[finding.Severity] >= thresholdLevel {
			filtered = append(filtered, finding)
		}
	}

	return filtered
}

func writeOutputToFile(content, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0644)
}
