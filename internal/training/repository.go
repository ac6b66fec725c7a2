package training

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/myrjola/fitplan/internal/docstore"
)

// Document keys. They match the file names used by earlier versions of the tool so an existing data
// directory can be reused with the directory store.
const (
	KeyProfile    = "user_profile"
	KeyCatalog    = "exercises"
	KeyPlan       = "training_plan"
	KeyConditions = "conditions"
)

// repository reads and writes the four training documents.
type repository struct {
	store  docstore.Store
	logger *slog.Logger
}

func newRepository(store docstore.Store, logger *slog.Logger) *repository {
	return &repository{
		store:  store,
		logger: logger,
	}
}

func (r *repository) getProfile(ctx context.Context) (Profile, error) {
	data, err := r.store.Get(ctx, KeyProfile)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile document: %w", err)
	}
	p, err := DecodeProfile(data)
	if err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (r *repository) putProfile(ctx context.Context, p Profile) error {
	data, err := EncodeProfile(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err = r.store.Put(ctx, KeyProfile, data); err != nil {
		return fmt.Errorf("put profile document: %w", err)
	}
	return nil
}

func (r *repository) getCatalog(ctx context.Context) ([]Exercise, error) {
	data, err := r.store.Get(ctx, KeyCatalog)
	if err != nil {
		return nil, fmt.Errorf("get catalog document: %w", err)
	}
	catalog, err := DecodeCatalog(ctx, r.logger, data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return catalog, nil
}

func (r *repository) putCatalog(ctx context.Context, catalog []Exercise) error {
	return r.putJSON(ctx, KeyCatalog, catalog)
}

func (r *repository) getPlan(ctx context.Context) (Plan, error) {
	data, err := r.store.Get(ctx, KeyPlan)
	if err != nil {
		return Plan{}, fmt.Errorf("get plan document: %w", err)
	}
	plan, err := DecodePlan(data)
	if err != nil {
		return Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	return plan, nil
}

func (r *repository) putPlan(ctx context.Context, plan Plan) error {
	return r.putJSON(ctx, KeyPlan, plan)
}

func (r *repository) getRegistry(ctx context.Context) (*Registry, error) {
	data, err := r.store.Get(ctx, KeyConditions)
	if err != nil {
		return nil, fmt.Errorf("get conditions document: %w", err)
	}
	registry, err := DecodeRegistry(ctx, r.logger, data)
	if err != nil {
		return nil, fmt.Errorf("decode conditions: %w", err)
	}
	return registry, nil
}

func (r *repository) putRegistry(ctx context.Context, registry *Registry) error {
	return r.putJSON(ctx, KeyConditions, registry.Conditions())
}

func (r *repository) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err = r.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s document: %w", key, err)
	}
	return nil
}

// DecodeCatalog parses a catalog document. Records that fail to decode or lack an id, name or type are
// skipped with a warning.
func DecodeCatalog(ctx context.Context, logger *slog.Logger, data []byte) ([]Exercise, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	catalog := make([]Exercise, 0, len(raw))
	for i, item := range raw {
		var e Exercise
		if err := json.Unmarshal(item, &e); err != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "skip malformed exercise",
				slog.Int("index", i), slog.Any("error", err))
			continue
		}
		if e.ID == "" || e.Name == "" || e.Type == "" {
			logger.LogAttrs(ctx, slog.LevelWarn, "skip incomplete exercise",
				slog.Int("index", i), slog.String("exercise_id", e.ID))
			continue
		}
		catalog = append(catalog, normalizeExercise(e))
	}
	return catalog, nil
}

func normalizeExercise(e Exercise) Exercise {
	if e.MuscleGroups == nil {
		e.MuscleGroups = []string{}
	}
	if e.Equipment == nil {
		e.Equipment = []string{}
	}
	if e.Locations == nil {
		e.Locations = []Location{}
	}
	if e.Contraindications == nil {
		e.Contraindications = []string{}
	}
	return e
}

// DecodePlan parses a plan document. Planned exercises written before blocks were recorded belong to the main
// block.
func DecodePlan(data []byte) (Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	for i := range plan.Sessions {
		for j := range plan.Sessions[i].Exercises {
			if plan.Sessions[i].Exercises[j].Block == "" {
				plan.Sessions[i].Exercises[j].Block = BlockMain
			}
		}
	}
	return plan, nil
}
