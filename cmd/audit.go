package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bundlecheck/bundle-health-checker/internal/config"
	"github.com/bundlecheck/bundle-health-checker/internal/lighthouse"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
	"github.com/bundlecheck/bundle-health-checker/internal/scanner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var auditCmd = &cobra.Command{
	Use:   "audit <report.json|url>",
	Short: "Normalize a Lighthouse audit report and score it",
	Long: `Normalize a Lighthouse report (from a local JSON file or an audit
provider URL) into the internal issue, recommendation and score shape.

With --static, the bundle directory is analyzed concurrently and the
static score is blended 50/50 with the audit's performance score. If
the static analysis fails the run degrades to audit-only scoring; if
the audit itself fails the whole run fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

var staticPath string

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&staticPath, "static", "", "bundle directory to analyze and blend with the audit score")
}

func runAudit(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	source := args[0]

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	var rawReport *lighthouse.RawReport
	var staticReport *report.Report

	// The audit fetch and the static analysis are issued concurrently
	// and joined before scoring. Only the audit branch is fatal.
	group, ctx := errgroup.WithContext(cmd.Context())

	group.Go(func() error {
		var err error
		rawReport, err = obtainRawReport(ctx, cfg, source, verbose)
		return err
	})

	if staticPath != "" {
		group.Go(func() error {
			analyzed, err := runStaticBranch(cfg, verbose)
			if err != nil {
				fmt.Printf("Static analysis skipped: %v\n", err)
				return nil
			}
			staticReport = analyzed
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	result, err := lighthouse.Normalize(rawReport)
	if err != nil {
		return fmt.Errorf("failed to normalize audit report: %w", err)
	}

	bundleReport := buildAuditReport(result, staticReport)
	bundleReport.Path = source
	bundleReport.Timestamp = startTime
	bundleReport.Duration = time.Since(startTime).String()
	bundleReport.Version = Version

	return outputResults(cmd, bundleReport, verbose)
}

func obtainRawReport(ctx context.Context, cfg *config.Config, source string, verbose bool) (*lighthouse.RawReport, error) {
	if isURL(source) {
		if verbose {
			fmt.Printf("Fetching audit report from %s...\n", source)
		}
		client := lighthouse.NewClient(time.Duration(cfg.Audit.TimeoutSeconds) * time.Second)
		return client.FetchReport(ctx, source)
	}

	if verbose {
		fmt.Printf("Reading audit report from %s...\n", source)
	}
	return lighthouse.LoadReport(source)
}

func runStaticBranch(cfg *config.Config, verbose bool) (*report.Report, error) {
	fileScanner, err := scanner.NewFileScanner(staticPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file scanner: %w", err)
	}

	sources, err := fileScanner.ScanSources()
	if err != nil {
		return nil, fmt.Errorf("failed to scan bundle files: %w", err)
	}

	return runAnalyzers(cfg, sources, verbose), nil
}

func buildAuditReport(result *lighthouse.Result, staticReport *report.Report) *report.Report {
	externalScore := result.Score.Score

	if staticReport == nil {
		return &report.Report{
			Performance: result.Performance,
			Score:       lighthouse.CombineScores(nil, &externalScore),
			Categories:  result.Categories,
			CoreVitals:  result.CoreVitals,
		}
	}

	staticScore := staticReport.Score.Score
	combined := lighthouse.CombineScores(&staticScore, &externalScore)

	bundleReport := *staticReport
	bundleReport.Score = combined
	bundleReport.Categories = result.Categories
	bundleReport.CoreVitals = result.CoreVitals
	bundleReport.Performance.Issues = append(bundleReport.Performance.Issues, result.Performance.Issues...)
	report.SortFindings(bundleReport.Performance.Issues)
	bundleReport.Performance.Recommendations = append(bundleReport.Performance.Recommendations, result.Performance.Recommendations...)

	return &bundleReport
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
