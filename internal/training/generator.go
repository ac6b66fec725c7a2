package training

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/ptr"
)

// Cadence and prescription constants.
const (
	BaselineSessionsScore = 3
	MinRuleSessions       = 1
	MaxRuleSessions       = 5
	MinSessionsPerWeek    = 1
	MaxSessionsPerWeek    = 7

	MicroCycleWeeks = 4

	MobilitySets  = 2
	MobilityReps  = 10
	CardioSets    = 1
	MinDeloadReps = 6
)

// ErrGeneration is returned when a plan cannot be assembled. No partial plan accompanies it.
var ErrGeneration = errors.NewSentinel("plan generation failed")

// RecommendSessionsPerWeek derives the weekly session count from the profile, its declared maximum and the
// caps of its medical conditions. The result is within [1, 7].
func RecommendSessionsPerWeek(p Profile, registry *Registry) int {
	value := ruleBasedSessions(p, registry.RiskTags(p))
	if p.MaxSessionsPerWeek > 0 {
		value = min(value, p.MaxSessionsPerWeek)
	}
	if limit, ok := registry.SessionsLimit(p); ok {
		value = min(value, limit)
	}
	return max(MinSessionsPerWeek, min(MaxSessionsPerWeek, value))
}

func ruleBasedSessions(p Profile, risks map[string]struct{}) int {
	score := float64(BaselineSessionsScore)

	switch p.ActivityLevel {
	case ActivityLow:
		score--
	case ActivityHigh:
		score++
	case ActivityMedium:
	}

	if p.Goal == GoalMuscleGain || p.Goal == GoalEndurance {
		score++
	}

	_, heart := risks[RiskHeart]
	_, joints := risks[RiskJoints]
	if heart || joints {
		score--
	}

	switch p.ExperienceLevel {
	case LevelBeginner:
		score -= 0.5
	case LevelAdvanced:
		score += 0.5
	case LevelIntermediate:
	}

	return max(MinRuleSessions, min(MaxRuleSessions, int(math.RoundToEven(score))))
}

// RecommendTotalWeeks returns the plan length for the goal.
func RecommendTotalWeeks(goal Goal) int {
	switch goal {
	case GoalWeightLoss:
		return 8 //nolint:mnd // weeks
	case GoalMuscleGain:
		return 12 //nolint:mnd // weeks
	case GoalEndurance:
		return 8 //nolint:mnd // weeks
	case GoalMaintenance, GoalBackHealth, GoalGeneralHealth:
		return 6 //nolint:mnd // weeks
	default:
		return 6 //nolint:mnd // weeks
	}
}

// Prescription is the load assigned to a week.
type Prescription struct {
	Sets                  int
	Reps                  int
	CardioDurationSeconds int
}

func baselinePrescription(experience Level) Prescription {
	switch experience {
	case LevelBeginner:
		return Prescription{Sets: 2, Reps: 12, CardioDurationSeconds: 8 * 60} //nolint:mnd // baseline
	case LevelIntermediate:
		return Prescription{Sets: 3, Reps: 10, CardioDurationSeconds: 12 * 60} //nolint:mnd // baseline
	case LevelAdvanced:
		return Prescription{Sets: 4, Reps: 8, CardioDurationSeconds: 18 * 60} //nolint:mnd // baseline
	default:
		return Prescription{Sets: 4, Reps: 8, CardioDurationSeconds: 18 * 60} //nolint:mnd // baseline
	}
}

// WeekPrescription applies the 4-week micro-cycle to the experience baseline. Weeks 2 and 3 add a rep and 10%
// cardio, week 4 deloads by a rep and 10% cardio. Week indices are 1-based.
func WeekPrescription(experience Level, week int) Prescription {
	base := baselinePrescription(experience)
	p := base
	switch (week-1)%MicroCycleWeeks + 1 {
	case 2, 3: //nolint:mnd // cycle weeks
		p.Reps = base.Reps + 1
		p.CardioDurationSeconds = base.CardioDurationSeconds * 11 / 10 //nolint:mnd // +10%
	case 4: //nolint:mnd // deload week
		p.Reps = max(base.Reps-1, max(MinDeloadReps, base.Reps-2))    //nolint:mnd // deload floor
		p.CardioDurationSeconds = base.CardioDurationSeconds * 9 / 10 //nolint:mnd // -10%
	}
	return p
}

// slot requests count exercises of a type, optionally restricted to muscle groups containing Muscle.
type slot struct {
	Type   ExerciseType
	Muscle string
	Count  int
}

// template describes the main block of a goal. Days rotate through Days by day index.
type template struct {
	Days         [][]slot
	MinExercises int
}

var templates = map[Goal]template{ //nolint:gochecknoglobals // static session templates
	GoalMuscleGain: {
		Days: [][]slot{
			{{TypeStrength, "chest", 4}, {TypeStrength, "shoulders", 2}},
			{{TypeStrength, "legs", 4}, {TypeStrength, "abs", 2}},
			{{TypeStrength, "back", 4}, {TypeStrength, "biceps", 2}},
		},
		MinExercises: 5,
	},
	GoalBackHealth: {
		Days:         [][]slot{{{TypeRehab, "", 4}, {TypeMobility, "", 3}}},
		MinExercises: 3,
	},
	GoalEndurance: {
		Days:         [][]slot{{{TypeCardio, "", 4}, {TypeStrength, "legs", 2}}},
		MinExercises: 4,
	},
	GoalWeightLoss: {
		Days:         [][]slot{{{TypeStrength, "", 5}, {TypeCardio, "", 3}}},
		MinExercises: 6,
	},
}

var defaultTemplate = template{ //nolint:gochecknoglobals // static session template
	Days:         [][]slot{{{TypeStrength, "", 3}, {TypeCardio, "", 2}, {TypeMobility, "", 2}}},
	MinExercises: 3,
}

func templateFor(goal Goal) template {
	if t, ok := templates[goal]; ok {
		return t
	}
	return defaultTemplate
}

// priorityRule schedules exercises whose lower-cased name contains all of Contains before the others.
type priorityRule struct {
	Contains []string
	AnyOf    []string
	Priority int
}

func (r priorityRule) matches(name string) bool {
	for _, s := range r.Contains {
		if !strings.Contains(name, s) {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return true
	}
	for _, s := range r.AnyOf {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// priorityRules are evaluated in order; the first match wins.
var priorityRules = []priorityRule{ //nolint:gochecknoglobals // static priority table
	{Contains: []string{"squat"}, Priority: 0},
	{Contains: []string{"deadlift"}, Priority: 1},
	{Contains: []string{"bench press"}, Priority: 2},
	{Contains: []string{"bench", "press"}, Priority: 3},
	{AnyOf: []string{"row", "pulldown", "pull-up", "pull up"}, Priority: 4},
	{AnyOf: []string{"lunge", "step-up", "step up"}, Priority: 5},
}

var typePriority = map[ExerciseType]int{ //nolint:gochecknoglobals // static priority table
	TypeStrength: 10,
	TypeCardio:   20,
}

const fallbackPriority = 30

func exercisePriority(e Exercise) int {
	name := strings.ToLower(e.Name)
	for _, r := range priorityRules {
		if r.matches(name) {
			return r.Priority
		}
	}
	if p, ok := typePriority[e.Type]; ok {
		return p
	}
	return fallbackPriority
}

// Option configures plan generation.
type Option func(*generator)

// WithLanguage selects the language of session titles and comments.
func WithLanguage(lang i18n.Language) Option {
	return func(g *generator) {
		g.lang = lang
	}
}

// generator assembles a plan for one profile. It is single use.
type generator struct {
	profile Profile
	// pool of eligible exercises.
	pool []Exercise
	// usedGlobal holds every exercise id placed so far in the plan.
	usedGlobal map[string]struct{}
	lang       i18n.Language
	registry   *Registry
}

func newGenerator(p Profile, catalog []Exercise, registry *Registry, opts ...Option) (*generator, error) {
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}
	g := &generator{
		profile:    p,
		pool:       EligibleExercises(p, catalog, registry),
		usedGlobal: make(map[string]struct{}),
		lang:       i18n.DefaultLanguage,
		registry:   registry,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// validateCatalog rejects catalogs where an id appears twice.
func validateCatalog(catalog []Exercise) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, e := range catalog {
		if _, ok := seen[e.ID]; ok {
			return errors.Wrap(ErrGeneration, "duplicate exercise id", slog.String("exercise_id", e.ID))
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// GeneratePlan builds the full multi-week plan. Generation is deterministic for equal inputs. Any failure,
// including an internal panic, is reported as ErrGeneration and no plan is returned.
func GeneratePlan(p Profile, catalog []Exercise, registry *Registry, opts ...Option) (_ Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrGeneration, errors.DecoratePanic(r))
		}
	}()

	g, err := newGenerator(p, catalog, registry, opts...)
	if err != nil {
		return Plan{}, err
	}
	return g.generate(), nil
}

func (g *generator) generate() Plan {
	var (
		sessionsPerWeek = RecommendSessionsPerWeek(g.profile, g.registry)
		totalWeeks      = RecommendTotalWeeks(g.profile.Goal)
		sessions        = make([]Session, 0, sessionsPerWeek*totalWeeks)
	)

	for week := 1; week <= totalWeeks; week++ {
		rx := WeekPrescription(g.profile.ExperienceLevel, week)
		for day := 1; day <= sessionsPerWeek; day++ {
			sessions = append(sessions, Session{
				WeekIndex: week,
				DayIndex:  day,
				Title:     sessionTitle(g.lang, g.profile.Goal, day),
				Exercises: g.prescribe(g.mainBlock(day), rx),
			})
		}
	}

	return Plan{
		Goal:            g.profile.Goal,
		SessionsPerWeek: sessionsPerWeek,
		TotalWeeks:      totalWeeks,
		Sessions:        sessions,
	}
}

// mainBlock picks the day's exercises from the goal template, pads it with generic strength work up to the
// template minimum and orders it by scheduling priority.
func (g *generator) mainBlock(day int) []Exercise {
	tmpl := templateFor(g.profile.Goal)
	var picked []Exercise
	for _, s := range tmpl.Days[(day-1)%len(tmpl.Days)] {
		picked = append(picked, g.pick(s)...)
	}
	if len(picked) < tmpl.MinExercises {
		picked = append(picked, g.pick(slot{Type: TypeStrength, Count: tmpl.MinExercises - len(picked)})...)
	}
	sort.SliceStable(picked, func(i, j int) bool {
		return exercisePriority(picked[i]) < exercisePriority(picked[j])
	})
	return picked
}

// pick selects up to s.Count exercises for a slot, preferring exercises not yet used anywhere in the plan.
func (g *generator) pick(s slot) []Exercise {
	var candidates []Exercise
	for _, e := range g.pool {
		if e.Type != s.Type {
			continue
		}
		if s.Muscle != "" && !matchesMuscle(e.MuscleGroups, s.Muscle) {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil
	}

	if len(g.usedGlobal) > 0 {
		var unused []Exercise
		for _, e := range candidates {
			if _, ok := g.usedGlobal[e.ID]; !ok {
				unused = append(unused, e)
			}
		}
		if len(unused) > 0 {
			candidates = unused
		}
	}

	if g.profile.Goal != "" {
		return RankForGoal(g.profile.Goal, candidates, max(1, s.Count))
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	return candidates[:min(len(candidates), max(0, s.Count))]
}

func matchesMuscle(groups []string, keyword string) bool {
	for _, g := range groups {
		if strings.Contains(g, keyword) {
			return true
		}
	}
	return false
}

// prescribe turns the ordered main block into planned exercises, dropping repeats within the session.
func (g *generator) prescribe(main []Exercise, rx Prescription) []PlannedExercise {
	planned := make([]PlannedExercise, 0, len(main))
	inSession := make(map[string]struct{}, len(main))
	for _, e := range main {
		if _, ok := inSession[e.ID]; ok {
			continue
		}
		inSession[e.ID] = struct{}{}
		g.usedGlobal[e.ID] = struct{}{}

		pe := PlannedExercise{ExerciseID: e.ID, Block: BlockMain}
		switch e.Type {
		case TypeCardio:
			pe.Sets = CardioSets
			pe.DurationSeconds = ptr.Ref(rx.CardioDurationSeconds)
			pe.Comment = i18n.Translate(g.lang, "comment.cardio")
		case TypeMobility, TypeRehab:
			pe.Sets = MobilitySets
			pe.Reps = ptr.Ref(MobilityReps)
			pe.Comment = i18n.Translate(g.lang, "comment.mobility")
		case TypeStrength:
			fallthrough
		default:
			pe.Sets = rx.Sets
			pe.Reps = ptr.Ref(rx.Reps)
			pe.Comment = i18n.Translate(g.lang, "comment.strength")
		}
		planned = append(planned, pe)
	}
	return planned
}

func sessionTitle(lang i18n.Language, goal Goal, day int) string {
	return fmt.Sprintf("%s - %s %d", GoalLabel(lang, goal), i18n.Translate(lang, "session.day"), day)
}
