package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/fitplan/internal/training"
)

// Result summarises an import.
type Result struct {
	Added int
	Total int
}

// Import converts the dataset, optionally describes the exercises that are new to the catalog and saves the
// merged catalog. A missing catalog is treated as empty. describer may be nil.
func Import(
	ctx context.Context,
	logger *slog.Logger,
	svc *training.Service,
	dataset []byte,
	describer Describer,
) (Result, error) {
	records, err := DecodeRecords(dataset)
	if err != nil {
		return Result{}, err
	}

	existing, err := svc.LoadCatalog(ctx)
	if err != nil && !errors.Is(err, training.ErrCatalogNotFound) {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}

	merged, added := Merge(existing, Convert(records))
	if describer != nil && added > 0 {
		tail := FillDescriptions(ctx, logger, describer, merged[len(merged)-added:])
		copy(merged[len(merged)-added:], tail)
	}

	if err = svc.SaveCatalog(ctx, merged); err != nil {
		return Result{}, fmt.Errorf("save catalog: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "exercises imported",
		slog.Int("records", len(records)),
		slog.Int("added", added),
		slog.Int("total", len(merged)))
	return Result{Added: added, Total: len(merged)}, nil
}
