package training

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myrjola/fitplan/internal/docstore"
	"github.com/myrjola/fitplan/internal/errors"
	"golang.org/x/sync/errgroup"
)

var (
	ErrProfileNotFound = errors.NewSentinel("profile not found")
	ErrCatalogNotFound = errors.NewSentinel("exercise catalog not found")
	ErrPlanNotFound    = errors.NewSentinel("training plan not found")
)

// Service loads and stores the training documents and generates plans from them.
type Service struct {
	repo    *repository
	logger  *slog.Logger
	genOpts []Option
}

// NewService creates a training service on top of a document store. The options are applied to every plan
// generation.
func NewService(store docstore.Store, logger *slog.Logger, opts ...Option) *Service {
	return &Service{
		repo:    newRepository(store, logger),
		logger:  logger,
		genOpts: opts,
	}
}

// LoadProfile returns the saved profile or ErrProfileNotFound.
func (s *Service) LoadProfile(ctx context.Context) (Profile, error) {
	p, err := s.repo.getProfile(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		return Profile{}, fmt.Errorf("load profile: %w", ErrProfileNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// SaveProfile overwrites the saved profile.
func (s *Service) SaveProfile(ctx context.Context, p Profile) error {
	if err := s.repo.putProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// LoadCatalog returns the exercise catalog or ErrCatalogNotFound. Malformed records are skipped.
func (s *Service) LoadCatalog(ctx context.Context) ([]Exercise, error) {
	catalog, err := s.repo.getCatalog(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("load catalog: %w", ErrCatalogNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return catalog, nil
}

// SaveCatalog overwrites the exercise catalog. Only the importer writes it.
func (s *Service) SaveCatalog(ctx context.Context, catalog []Exercise) error {
	if err := s.repo.putCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// LoadPlan returns the saved plan or ErrPlanNotFound.
func (s *Service) LoadPlan(ctx context.Context) (Plan, error) {
	plan, err := s.repo.getPlan(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		return Plan{}, fmt.Errorf("load plan: %w", ErrPlanNotFound)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("load plan: %w", err)
	}
	return plan, nil
}

// SavePlan overwrites the saved plan.
func (s *Service) SavePlan(ctx context.Context, plan Plan) error {
	if err := s.repo.putPlan(ctx, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// LoadRegistry returns the condition registry. A missing conditions document yields an empty registry.
func (s *Service) LoadRegistry(ctx context.Context) (*Registry, error) {
	registry, err := s.repo.getRegistry(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "no conditions document, continuing without known conditions")
		return NewRegistry(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return registry, nil
}

// SaveRegistry overwrites the conditions document with the registry's conditions ordered by id.
func (s *Service) SaveRegistry(ctx context.Context, registry *Registry) error {
	if err := s.repo.putRegistry(ctx, registry); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// GenerateAndSave generates a plan from the saved profile and catalog and replaces the saved plan with it.
// On any failure the previously saved plan is left untouched.
func (s *Service) GenerateAndSave(ctx context.Context) (Plan, error) {
	var (
		profile  Profile
		catalog  []Exercise
		registry *Registry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.LoadProfile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.LoadCatalog(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		registry, err = s.LoadRegistry(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Plan{}, fmt.Errorf("load inputs: %w", err)
	}

	plan, err := GeneratePlan(profile, catalog, registry, s.genOpts...)
	if err != nil {
		return Plan{}, fmt.Errorf("generate plan: %w", err)
	}

	if err = s.SavePlan(ctx, plan); err != nil {
		return Plan{}, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "training plan generated",
		slog.String("goal", string(plan.Goal)),
		slog.Int("sessions_per_week", plan.SessionsPerWeek),
		slog.Int("total_weeks", plan.TotalWeeks),
		slog.Int("catalog_size", len(catalog)),
		slog.Int("known_conditions", registry.Len()))
	return plan, nil
}
