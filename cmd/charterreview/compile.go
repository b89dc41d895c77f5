package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/charterreview/internal/boilerplate"
	"github.com/dgallion1/charterreview/internal/compilation"
	"github.com/dgallion1/charterreview/internal/config"
	"github.com/dgallion1/charterreview/internal/extract"
	"github.com/dgallion1/charterreview/internal/meta"
	"github.com/dgallion1/charterreview/internal/parser"
	"github.com/dgallion1/charterreview/internal/pipeline"
	"github.com/dgallion1/charterreview/internal/report"
	"github.com/dgallion1/charterreview/internal/sections"
	"github.com/spf13/cobra"
)

var compileJSON bool

var compileCmd = &cobra.Command{
	Use:   "compile [reviews-dir]",
	Short: "Compile every review in a directory into one report",
	Long: `Extracts the comments of every .docx review in the directory, merges
them in file name order and writes <School>_CompiledReviews.md. Text found in
the templates directory is treated as form boilerplate and ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	f := compileCmd.Flags()
	f.String("reviews-dir", "", "directory holding the review documents")
	f.String("templates-dir", "", "directory holding blank evaluation templates")
	f.String("profiles-file", "", "YAML file overriding section profiles")
	f.String("app-type", "", "application type: standard, virtual, high-performing or auto")
	f.String("cell-strategy", "", "form fields in table cells: substitute or append")
	f.String("classify-policy", "", "comment style order: run-block-first or label-first")
	f.String("reviewer-source", "", "reviewer and school from: filename, document or auto")
	f.StringP("output", "o", "", "Markdown report path")
	f.String("html-output", "", "also write the report as HTML")
	f.String("xlsx-output", "", "also write the comments as a spreadsheet")
	f.IntP("workers", "w", 0, "documents processed in parallel")
	f.Bool("skip-duplicate-inputs", false, "skip documents whose text repeats an earlier one")
	f.BoolVar(&compileJSON, "json", false, "print run statistics as JSON")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.ReviewsDir = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := newLogger(cfg.Log, cmd.ErrOrStderr())

	opts, err := pipelineOptions(cfg, log)
	if err != nil {
		return err
	}
	paths, err := parser.Discover(cfg.ReviewsDir)
	if err != nil {
		return err
	}
	orch, err := pipeline.NewOrchestrator(opts, log)
	if err != nil {
		return err
	}

	res, sum, err := orch.Run(cmd.Context(), paths)
	if err != nil {
		if sum != nil {
			_ = printSummary(cmd.OutOrStdout(), sum, res, "")
		}
		return err
	}

	out := cfg.Output
	if out == "" {
		out = filepath.Join(cfg.ReviewsDir, report.DefaultOutputName(res.School))
	}
	if err := writeReports(res, out, cfg.HTMLOutput, cfg.XLSXOutput); err != nil {
		return err
	}
	log.Info("report written", "path", out, "comments", res.Len())
	return printSummary(cmd.OutOrStdout(), sum, res, out)
}

// pipelineOptions turns validated configuration into orchestrator options,
// loading the section profiles and the template boilerplate once.
func pipelineOptions(cfg config.Config, log *slog.Logger) (pipeline.Options, error) {
	appType, err := sections.ParseAppType(cfg.AppType)
	if err != nil {
		return pipeline.Options{}, err
	}
	cells, err := parser.ParseCellStrategy(cfg.CellStrategy)
	if err != nil {
		return pipeline.Options{}, err
	}
	policy, err := extract.ParsePolicy(cfg.ClassifyPolicy)
	if err != nil {
		return pipeline.Options{}, err
	}
	source, err := meta.ParseSource(cfg.ReviewerSource)
	if err != nil {
		return pipeline.Options{}, err
	}
	registry, err := sections.LoadRegistry(cfg.ProfilesFile)
	if err != nil {
		return pipeline.Options{}, err
	}

	set := boilerplate.New()
	if cfg.TemplatesDir != "" {
		start := time.Now()
		var errs []error
		set, errs = boilerplate.LoadDir(cfg.TemplatesDir, cells, log)
		for _, e := range errs {
			log.Warn("template skipped", "error", e)
		}
		log.Info("templates loaded",
			"templates", set.Templates(),
			"fragments", set.Len(),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}

	return pipeline.Options{
		Registry:       registry,
		AppType:        appType,
		Boilerplate:    set,
		Cells:          cells,
		Policy:         policy,
		ReviewerSource: source,
		Workers:        cfg.Workers,
		SkipDuplicates: cfg.SkipDuplicateInputs,
	}, nil
}

// writeReports validates the Markdown outline and writes every requested output.
func writeReports(res *compilation.Result, mdPath, htmlPath, xlsxPath string) error {
	md := report.Markdown(res)
	if err := report.Validate(md); err != nil {
		return fmt.Errorf("report outline: %w", err)
	}
	if err := os.WriteFile(mdPath, md, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if htmlPath != "" {
		html, err := report.HTML(md)
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
			return fmt.Errorf("write html report: %w", err)
		}
	}
	if xlsxPath != "" {
		if err := report.WriteXLSX(res, xlsxPath); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, sum *pipeline.Summary, res *compilation.Result, out string) error {
	if compileJSON {
		data, err := json.MarshalIndent(sum, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "Run %s (%s application)\n", sum.RunID, sum.AppType)
	fmt.Fprintf(w, "  Documents:            %d processed, %d failed, %d duplicate inputs\n", sum.Processed, sum.Failed, sum.Duplicates)
	fmt.Fprintf(w, "  Boilerplate filtered: %d\n", sum.Filtered)
	fmt.Fprintf(w, "  Duplicates removed:   %d\n", sum.Merge.Duplicates)
	if sum.Merge.Rejected > 0 {
		fmt.Fprintf(w, "  Rejected comments:    %d\n", sum.Merge.Rejected)
	}
	if res != nil {
		fmt.Fprintf(w, "  Unique comments:      %d in %d sections\n", res.Len(), sum.Sections)
	}
	if sum.Timings.Count > 0 {
		fmt.Fprintf(w, "  Per document:         avg %.0fms, p95 %.0fms\n", sum.Timings.AvgMs, sum.Timings.P95Ms)
	}
	for _, j := range sum.Jobs {
		if j.Status == pipeline.StatusFailed {
			fmt.Fprintf(w, "  Failed: %s\n", j.Filename)
		}
	}
	if out != "" {
		fmt.Fprintf(w, "Report: %s\n", out)
	}
	return nil
}
