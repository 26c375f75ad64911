package healthyplates

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var sleepCSVHeader = []string{"date", "bedtime", "wake_time", "quality", "notes"}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json snapshot or csv sleep log)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				data, err := service.ExportDataSnapshot(sqldb)
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
			case "csv":
				entries, err := service.ListSleepEntries(sqldb, 0)
				if err != nil {
					return err
				}
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				defer f.Close()
				w := csv.NewWriter(f)
				if err := w.Write(sleepCSVHeader); err != nil {
					return fmt.Errorf("write export csv header: %w", err)
				}
				for _, e := range entries {
					if err := w.Write([]string{e.Date, e.Bedtime, e.WakeTime, strconv.Itoa(e.Quality), e.Notes}); err != nil {
						return fmt.Errorf("write export csv row: %w", err)
					}
				}
				w.Flush()
				if err := w.Error(); err != nil {
					return fmt.Errorf("flush export csv: %w", err)
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import local data (json snapshot or csv sleep log)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			switch strings.ToLower(strings.TrimSpace(importFormat)) {
			case "json":
				raw, err := os.ReadFile(importIn)
				if err != nil {
					return fmt.Errorf("read import file: %w", err)
				}
				var payload service.ExportData
				if err := json.Unmarshal(raw, &payload); err != nil {
					return fmt.Errorf("parse import json: %w", err)
				}
				report, err := service.ImportDataSnapshot(sqldb, &payload, service.ImportOptions{
					Mode:   service.ImportMode(strings.ToLower(strings.TrimSpace(importMode))),
					DryRun: importDryRun,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Import report: inserted=%d updated=%d skipped=%d conflicts=%d\n", report.Inserted, report.Updated, report.Skipped, report.Conflicts)
				for _, w := range report.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
				}
			case "csv":
				if err := importSleepCSV(sqldb, importIn, importDryRun); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", importFormat)
			}
			if importDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry-run import validated %s\n", importIn)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func importSleepCSV(sqldb *sql.DB, path string, dryRun bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import csv: %w", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("read import csv: %w", err)
	}
	if len(records) <= 1 {
		return fmt.Errorf("import csv contains no data rows")
	}
	rows := make([]service.AddSleepInput, 0, len(records)-1)
	for i, row := range records[1:] {
		line := i + 2
		if len(row) != len(sleepCSVHeader) {
			return fmt.Errorf("csv row %d has %d columns, expected %d", line, len(row), len(sleepCSVHeader))
		}
		quality, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return fmt.Errorf("csv row %d quality: invalid number %q", line, row[3])
		}
		rows = append(rows, service.AddSleepInput{
			Date:     row[0],
			Bedtime:  row[1],
			WakeTime: row[2],
			Quality:  quality,
			Notes:    row[4],
		})
	}
	if _, err := service.ImportSleepEntries(sqldb, rows, dryRun); err != nil {
		return fmt.Errorf("import csv: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Import mode for JSON: fail|skip|merge|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
