package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/shenikar/school_gunfire_dashboard/internal/config"
	"github.com/shenikar/school_gunfire_dashboard/internal/exporter"
	v1 "github.com/shenikar/school_gunfire_dashboard/internal/handler/http/v1"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/repository"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
	"github.com/shenikar/school_gunfire_dashboard/pkg/logger"
)

var (
	sourceURL         string
	inputPath         string
	userAgent         string
	fetchTimeout      time.Duration
	outputPath        string
	logLevel          string
	dropInvalidCoords bool
	massThreshold     int
	query             v1.IncidentFilterQuery
	minCasualties     int
	exportFormat      string
)

var rootCmd = &cobra.Command{
	Use:   "export",
	Short: "Load the school incidents dataset once, filter it and write CSV or XLSX",
	Example: `  export --preset fatal_only --region CA,TX -o fatal.csv
  export --from 2020-01-01 --format xlsx
  export --input previous.csv --min-severity "Mass Casualty" -o -`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExport,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&sourceURL, "source-url", config.DefaultDataSourceURL, "CSV source URL")
	flags.StringVar(&inputPath, "input", "", "Read a local CSV file instead of the source URL")
	flags.StringVar(&userAgent, "user-agent", "Mozilla/5.0", "User-Agent for the source request")
	flags.DurationVar(&fetchTimeout, "timeout", 10*time.Second, "Source request timeout")
	flags.StringVarP(&outputPath, "output", "o", "", "Output file, \"-\" for stdout (default: timestamped file name)")
	flags.StringVarP(&exportFormat, "format", "f", exporter.FormatCSV, "Output format: csv or xlsx")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level")
	flags.BoolVar(&dropInvalidCoords, "drop-invalid-coords", false, "Drop rows without coordinates at load time")
	flags.IntVar(&massThreshold, "mass-casualty-threshold", models.DefaultMassCasualtyThreshold, "Total casualties that make an incident mass-casualty")

	flags.StringVar(&query.Preset, "preset", "", "Filter preset")
	flags.StringSliceVar(&query.Regions, "region", nil, "Region codes or names")
	flags.StringSliceVar(&query.Intents, "intent", nil, "Intent values")
	flags.StringSliceVar(&query.Outcomes, "outcome", nil, "Outcome values")
	flags.StringVar(&query.DateFrom, "from", "", "Inclusive start date (YYYY-MM-DD)")
	flags.StringVar(&query.DateTo, "to", "", "Inclusive end date (YYYY-MM-DD)")
	flags.IntVar(&minCasualties, "min-casualties", 0, "Minimum total casualties")
	flags.StringVar(&query.MinSeverity, "min-severity", "", "Minimum severity category")
	flags.IntSliceVar(&query.Years, "year", nil, "Years")
	flags.StringSliceVar(&query.Months, "month", nil, "Month abbreviations")
	flags.BoolVar(&query.FatalOnly, "fatal-only", false, "Only incidents with fatalities")
	flags.IntVar(&query.TopRegions, "top-regions", 0, "Keep only the N regions with most incidents")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	// stdout остается под данные
	log := logger.NewWithOutput(logLevel, os.Stderr)

	if exportFormat != exporter.FormatCSV && exportFormat != exporter.FormatXLSX {
		return fmt.Errorf("unsupported format %q", exportFormat)
	}
	if cmd.Flags().Changed("min-casualties") {
		query.MinCasualties = &minCasualties
	}
	if err := validator.New().Struct(query); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	criteria, err := v1.QueryToCriteria(query)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	if err := service.ValidateCriteria(criteria); err != nil {
		return err
	}

	var repo service.IncidentRepository
	if inputPath != "" {
		repo = repository.NewFileIncidentRepository(inputPath)
	} else {
		repo = repository.NewIncidentRepository(sourceURL, userAgent, fetchTimeout)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*fetchTimeout)
	defer cancel()

	now := time.Now()
	loader := service.NewLoader(repo, log, func() time.Time { return now }, dropInvalidCoords)
	incidents, quality, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	enriched := service.NewEnricher(models.NewClassifier(massThreshold)).Enrich(incidents, now)
	filtered := service.Filter(enriched, criteria, now)

	out, err := openOutput(outputPath, exportFormat, now)
	if err != nil {
		return err
	}
	if err := exporter.Write(out, exportFormat, filtered); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	summary := service.SummarizeFilter(filtered, len(enriched))
	log.WithField("completeness_score", quality.CompletenessScore).
		WithField("shown", summary.Shown).
		WithField("original", summary.Original).
		Info("Export completed")
	return nil
}

// createFile подменяется в тестах
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func openOutput(path, format string, now time.Time) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	if path == "" {
		path = exporter.FileName(format, now)
	}
	f, err := createFile(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Writing", path)
	return f, nil
}
