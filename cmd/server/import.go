package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/orchestrators/statblock"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import stat blocks from a JSON file",
	Long: `Import reads a JSON array of stat block records and saves each one into the
configured store. Records with the same name replace what is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	addStoreFlags(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	records, err := decodeRecords(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.close()

	result := importRecords(ctx, svcs.statblocks, records)

	fmt.Printf("Imported %d stat blocks (%d failed)\n", result.Saved, result.Failed)
	return result.Err()
}

// importResult counts the outcome of an import
type importResult struct {
	Saved  int
	Failed int
}

// Err reports failed records as an error so the command exits non-zero
func (r importResult) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d records failed to import", r.Failed, r.Saved+r.Failed)
}

// decodeRecords reads a JSON array of records
func decodeRecords(r io.Reader) ([]*entity.Record, error) {
	var records []*entity.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// importRecords saves each record in order. Null records and failed saves are
// logged and counted; they do not stop the import.
func importRecords(ctx context.Context, svc statblock.Service, records []*entity.Record) importResult {
	var result importResult
	for i, record := range records {
		if record == nil {
			result.Failed++
			slog.WarnContext(ctx, "skipping null record", "index", i)
			continue
		}
		if _, err := svc.SaveStatblock(ctx, &statblock.SaveStatblockInput{Record: record}); err != nil {
			result.Failed++
			slog.WarnContext(ctx, "failed to import record", "index", i, "name", record.Name.String(), "error", err)
			continue
		}
		result.Saved++
	}
	return result
}
