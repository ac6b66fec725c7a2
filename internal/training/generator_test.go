package training_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/training"
)

func TestRecommendSessionsPerWeek(t *testing.T) {
	tests := []struct {
		name    string
		profile func(p *training.Profile)
		want    int
	}{
		{name: "baseline", profile: func(_ *training.Profile) {}, want: 3},
		{
			name:    "beginner rounds half to even",
			profile: func(p *training.Profile) { p.ExperienceLevel = training.LevelBeginner },
			want:    2,
		},
		{
			name:    "advanced rounds half to even",
			profile: func(p *training.Profile) { p.ExperienceLevel = training.LevelAdvanced },
			want:    4,
		},
		{
			name: "high activity muscle gain is clamped to five",
			profile: func(p *training.Profile) {
				p.ActivityLevel = training.ActivityHigh
				p.Goal = training.GoalMuscleGain
				p.ExperienceLevel = training.LevelAdvanced
				p.MaxSessionsPerWeek = 7
			},
			want: 5,
		},
		{
			name: "low activity beginner with heart tag is at least one",
			profile: func(p *training.Profile) {
				p.ActivityLevel = training.ActivityLow
				p.ExperienceLevel = training.LevelBeginner
				p.HealthIssues = []string{"heart"}
			},
			want: 1,
		},
		{
			name: "joint condition lowers the score",
			profile: func(p *training.Profile) {
				p.Goal = training.GoalEndurance
				p.HealthIssues = []string{"spine_lumbar_pain", "joint_knee_arthrosis"}
			},
			want: 3,
		},
		{
			name: "declared maximum caps",
			profile: func(p *training.Profile) {
				p.Goal = training.GoalEndurance
				p.MaxSessionsPerWeek = 2
			},
			want: 2,
		},
		{
			name: "zero declared maximum is ignored",
			profile: func(p *training.Profile) {
				p.Goal = training.GoalEndurance
				p.MaxSessionsPerWeek = 0
			},
			want: 4,
		},
		{
			name: "condition cap applies regardless of score",
			profile: func(p *training.Profile) {
				p.ActivityLevel = training.ActivityHigh
				p.Goal = training.GoalMuscleGain
				p.HealthIssues = []string{"cardio_hypertension"}
			},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			tt.profile(&p)
			if got := training.RecommendSessionsPerWeek(p, testRegistry()); got != tt.want {
				t.Errorf("RecommendSessionsPerWeek() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecommendTotalWeeks(t *testing.T) {
	want := map[training.Goal]int{
		training.GoalWeightLoss:    8,
		training.GoalMuscleGain:    12,
		training.GoalEndurance:     8,
		training.GoalMaintenance:   6,
		training.GoalBackHealth:    6,
		training.GoalGeneralHealth: 6,
		"yoga":                     6,
	}
	for goal, weeks := range want {
		if got := training.RecommendTotalWeeks(goal); got != weeks {
			t.Errorf("RecommendTotalWeeks(%q) = %d, want %d", goal, got, weeks)
		}
	}
}

func TestWeekPrescription(t *testing.T) {
	tests := []struct {
		level training.Level
		week  int
		want  training.Prescription
	}{
		{training.LevelBeginner, 1, training.Prescription{Sets: 2, Reps: 12, CardioDurationSeconds: 480}},
		{training.LevelBeginner, 2, training.Prescription{Sets: 2, Reps: 13, CardioDurationSeconds: 528}},
		{training.LevelBeginner, 4, training.Prescription{Sets: 2, Reps: 11, CardioDurationSeconds: 432}},
		{training.LevelIntermediate, 1, training.Prescription{Sets: 3, Reps: 10, CardioDurationSeconds: 720}},
		{training.LevelIntermediate, 3, training.Prescription{Sets: 3, Reps: 11, CardioDurationSeconds: 792}},
		{training.LevelIntermediate, 8, training.Prescription{Sets: 3, Reps: 9, CardioDurationSeconds: 648}},
		{training.LevelAdvanced, 5, training.Prescription{Sets: 4, Reps: 8, CardioDurationSeconds: 1080}},
		{training.LevelAdvanced, 6, training.Prescription{Sets: 4, Reps: 9, CardioDurationSeconds: 1188}},
		{training.LevelAdvanced, 12, training.Prescription{Sets: 4, Reps: 7, CardioDurationSeconds: 972}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s week %d", tt.level, tt.week), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, training.WeekPrescription(tt.level, tt.week)); diff != "" {
				t.Errorf("WeekPrescription() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeneratePlan_MuscleGainScenario(t *testing.T) {
	p := baseProfile()
	p.Goal = training.GoalMuscleGain

	plan, err := training.GeneratePlan(p, testCatalog(), testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.SessionsPerWeek != 4 {
		t.Errorf("SessionsPerWeek = %d, want 4", plan.SessionsPerWeek)
	}
	if plan.TotalWeeks != 12 {
		t.Errorf("TotalWeeks = %d, want 12", plan.TotalWeeks)
	}
	for _, s := range plan.Sessions {
		if len(s.Exercises) < 5 {
			t.Errorf("week %d day %d has %d exercises, want at least 5", s.WeekIndex, s.DayIndex, len(s.Exercises))
		}
		for _, pe := range s.Exercises {
			if pe.Block != training.BlockMain {
				t.Errorf("exercise %s in block %q", pe.ExerciseID, pe.Block)
			}
			if s.WeekIndex != 1 {
				continue
			}
			if pe.Sets != 3 || pe.Reps == nil || *pe.Reps != 10 || pe.DurationSeconds != nil {
				t.Errorf("week 1 exercise %s prescribed %d sets, reps %v", pe.ExerciseID, pe.Sets, pe.Reps)
			}
		}
	}
}

func TestGeneratePlan_MuscleGainDayRotation(t *testing.T) {
	p := baseProfile()
	p.Goal = training.GoalMuscleGain

	plan, err := training.GeneratePlan(p, testCatalog(), testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	idx := training.NewExerciseIndex(testCatalog())
	wantPrimary := map[int]string{1: "chest", 2: "legs", 3: "back", 4: "chest"}
	for _, s := range plan.WeekSessions(1) {
		primary := 0
		for _, pe := range s.Exercises {
			for _, m := range idx[pe.ExerciseID].MuscleGroups {
				if strings.Contains(m, wantPrimary[s.DayIndex]) {
					primary++
					break
				}
			}
		}
		if primary < 4 {
			t.Errorf("day %d has %d %s exercises, want 4", s.DayIndex, primary, wantPrimary[s.DayIndex])
		}
	}
}

func TestGeneratePlan_PrioritisesCompoundLifts(t *testing.T) {
	p := baseProfile()
	p.Goal = training.GoalMuscleGain

	plan, err := training.GeneratePlan(p, testCatalog(), testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	day2, ok := plan.Session(1, 2)
	if !ok {
		t.Fatal("week 1 day 2 missing")
	}
	// Squats open the legs day.
	first := day2.Exercises[0].ExerciseID
	if !strings.Contains(first, "squat") {
		t.Errorf("first exercise on legs day = %s, want a squat", first)
	}
}

func TestGeneratePlan_ConditionCap(t *testing.T) {
	p := baseProfile()
	p.ActivityLevel = training.ActivityHigh
	p.Goal = training.GoalEndurance
	p.ExperienceLevel = training.LevelAdvanced
	p.MaxSessionsPerWeek = 7
	p.HealthIssues = []string{"cardio_hypertension"}

	plan, err := training.GeneratePlan(p, testCatalog(), testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if plan.SessionsPerWeek > 2 {
		t.Errorf("SessionsPerWeek = %d, want at most 2", plan.SessionsPerWeek)
	}
}

func TestGeneratePlan_ContraindicatedNeverScheduled(t *testing.T) {
	p := baseProfile()
	p.HealthIssues = []string{"joint_knee_arthrosis"}
	catalog := testCatalog()

	for _, e := range training.EligibleExercises(p, catalog, testRegistry()) {
		if e.ID == "jump_squat" || e.ID == "box_jump" {
			t.Errorf("%s is eligible despite joints risk", e.ID)
		}
	}
	for _, goal := range training.Goals() {
		p.Goal = goal
		plan, err := training.GeneratePlan(p, catalog, testRegistry())
		if err != nil {
			t.Fatalf("GeneratePlan(%s): %v", goal, err)
		}
		for _, s := range plan.Sessions {
			for _, pe := range s.Exercises {
				if pe.ExerciseID == "jump_squat" || pe.ExerciseID == "box_jump" {
					t.Errorf("%s scheduled in week %d day %d for %s", pe.ExerciseID, s.WeekIndex, s.DayIndex, goal)
				}
			}
		}
	}
}

func TestGeneratePlan_Properties(t *testing.T) {
	catalog := testCatalog()
	registry := testRegistry()
	for _, goal := range append(training.Goals(), "") {
		for _, level := range []training.Level{
			training.LevelBeginner, training.LevelIntermediate, training.LevelAdvanced,
		} {
			for _, location := range []training.Location{
				training.LocationHome, training.LocationGym, training.LocationNoPreference,
			} {
				for _, maxSessions := range []int{0, 1, 3, 7} {
					p := baseProfile()
					p.Goal = goal
					p.ExperienceLevel = level
					p.PreferredLocation = location
					p.MaxSessionsPerWeek = maxSessions
					p.HealthIssues = []string{"joint_knee_arthrosis"}
					name := fmt.Sprintf("%s/%s/%s/%d", goal, level, location, maxSessions)
					checkPlanProperties(t, name, p, catalog, registry)
				}
			}
		}
	}
}

func checkPlanProperties(
	t *testing.T,
	name string,
	p training.Profile,
	catalog []training.Exercise,
	registry *training.Registry,
) {
	t.Helper()
	plan, err := training.GeneratePlan(p, catalog, registry)
	if err != nil {
		t.Fatalf("%s: GeneratePlan: %v", name, err)
	}

	if plan.SessionsPerWeek < 1 || plan.SessionsPerWeek > 7 {
		t.Errorf("%s: SessionsPerWeek = %d outside [1,7]", name, plan.SessionsPerWeek)
	}
	if p.MaxSessionsPerWeek > 0 && plan.SessionsPerWeek > p.MaxSessionsPerWeek {
		t.Errorf("%s: SessionsPerWeek = %d exceeds declared %d", name, plan.SessionsPerWeek, p.MaxSessionsPerWeek)
	}
	if limit, ok := registry.SessionsLimit(p); ok && plan.SessionsPerWeek > limit {
		t.Errorf("%s: SessionsPerWeek = %d exceeds condition cap %d", name, plan.SessionsPerWeek, limit)
	}
	if len(plan.Sessions) != plan.TotalWeeks*plan.SessionsPerWeek {
		t.Errorf("%s: %d sessions, want %d", name, len(plan.Sessions), plan.TotalWeeks*plan.SessionsPerWeek)
	}

	slots := make(map[[2]int]int)
	for _, s := range plan.Sessions {
		slots[[2]int{s.WeekIndex, s.DayIndex}]++
		seen := make(map[string]struct{})
		for _, pe := range s.Exercises {
			if _, dup := seen[pe.ExerciseID]; dup {
				t.Errorf("%s: week %d day %d repeats %s", name, s.WeekIndex, s.DayIndex, pe.ExerciseID)
			}
			seen[pe.ExerciseID] = struct{}{}
		}
	}
	for w := 1; w <= plan.TotalWeeks; w++ {
		for d := 1; d <= plan.SessionsPerWeek; d++ {
			if slots[[2]int{w, d}] != 1 {
				t.Errorf("%s: week %d day %d appears %d times", name, w, d, slots[[2]int{w, d}])
			}
		}
	}
}

func TestGeneratePlan_Idempotent(t *testing.T) {
	for _, goal := range training.Goals() {
		t.Run(string(goal), func(t *testing.T) {
			p := baseProfile()
			p.Goal = goal
			first, err := training.GeneratePlan(p, testCatalog(), testRegistry())
			if err != nil {
				t.Fatalf("GeneratePlan: %v", err)
			}
			second, err := training.GeneratePlan(p, testCatalog(), testRegistry())
			if err != nil {
				t.Fatalf("GeneratePlan: %v", err)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("plans differ (-first +second):\n%s", diff)
			}
		})
	}
}

func TestGeneratePlan_PrefersUnusedExercises(t *testing.T) {
	p := baseProfile()
	p.Goal = training.GoalWeightLoss
	plan, err := training.GeneratePlan(p, testCatalog(), testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	day1, _ := plan.Session(1, 1)
	day2, _ := plan.Session(1, 2)
	used := make(map[string]struct{})
	for _, pe := range day1.Exercises {
		used[pe.ExerciseID] = struct{}{}
	}
	for _, pe := range day2.Exercises {
		if _, ok := used[pe.ExerciseID]; ok && pe.DurationSeconds == nil {
			t.Errorf("strength exercise %s repeated on day 2 while unused ones remain", pe.ExerciseID)
		}
	}
}

func TestGeneratePlan_Prescriptions(t *testing.T) {
	p := baseProfile()
	p.Goal = training.GoalGeneralHealth
	p.ExperienceLevel = training.LevelBeginner
	catalog := testCatalog()
	idx := training.NewExerciseIndex(catalog)

	plan, err := training.GeneratePlan(p, catalog, testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	for _, s := range plan.Sessions {
		rx := training.WeekPrescription(p.ExperienceLevel, s.WeekIndex)
		for _, pe := range s.Exercises {
			switch idx[pe.ExerciseID].Type {
			case training.TypeCardio:
				if pe.Sets != 1 || pe.Reps != nil || pe.DurationSeconds == nil ||
					*pe.DurationSeconds != rx.CardioDurationSeconds {
					t.Errorf("cardio %s in week %d prescribed wrongly: %+v", pe.ExerciseID, s.WeekIndex, pe)
				}
			case training.TypeMobility, training.TypeRehab:
				if pe.Sets != 2 || pe.Reps == nil || *pe.Reps != 10 || pe.DurationSeconds != nil {
					t.Errorf("mobility %s prescribed wrongly: %+v", pe.ExerciseID, pe)
				}
			case training.TypeStrength:
				if pe.Sets != rx.Sets || pe.Reps == nil || *pe.Reps != rx.Reps {
					t.Errorf("strength %s in week %d prescribed wrongly: %+v", pe.ExerciseID, s.WeekIndex, pe)
				}
			}
			if pe.Comment == "" {
				t.Errorf("%s has no comment", pe.ExerciseID)
			}
		}
	}
}

func TestGeneratePlan_Titles(t *testing.T) {
	p := baseProfile()
	p.Goal = training.GoalEndurance

	plan, err := training.GeneratePlan(p, testCatalog(), testRegistry(), training.WithLanguage(i18n.Russian))
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	s, _ := plan.Session(2, 3)
	if s.Title != "Выносливость - день 3" {
		t.Errorf("Title = %q", s.Title)
	}

	p.Goal = "yoga"
	plan, err = training.GeneratePlan(p, testCatalog(), testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	s, _ = plan.Session(1, 1)
	if s.Title != "Workout - day 1" {
		t.Errorf("Title = %q", s.Title)
	}
}

func TestGeneratePlan_EmptyPool(t *testing.T) {
	p := baseProfile()
	plan, err := training.GeneratePlan(p, nil, testRegistry())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(plan.Sessions) != plan.TotalWeeks*plan.SessionsPerWeek {
		t.Errorf("got %d sessions", len(plan.Sessions))
	}
	for _, s := range plan.Sessions {
		if len(s.Exercises) != 0 {
			t.Errorf("week %d day %d has exercises from an empty catalog", s.WeekIndex, s.DayIndex)
		}
	}
}

func TestGeneratePlan_DuplicateIDs(t *testing.T) {
	catalog := append(testCatalog(), exercise("plank", "Plank Again", training.TypeStrength, training.LevelBeginner, nil))
	_, err := training.GeneratePlan(baseProfile(), catalog, testRegistry())
	if !errors.Is(err, training.ErrGeneration) {
		t.Errorf("GeneratePlan() error = %v, want ErrGeneration", err)
	}
}

func TestGeneratePlan_PadsShortChestDay(t *testing.T) {
	const beg = training.LevelBeginner
	var (
		press   = exercise("overhead_press", "Overhead Press", training.TypeStrength, beg, []string{"shoulders"})
		raise   = exercise("lateral_raise", "Lateral Raise", training.TypeStrength, beg, []string{"shoulders"})
		curl    = exercise("barbell_curl", "Barbell Curl", training.TypeStrength, beg, []string{"biceps"})
		hammer  = exercise("hammer_curl", "Hammer Curl", training.TypeStrength, beg, []string{"biceps"})
		crunch  = exercise("crunch", "Crunch", training.TypeStrength, beg, []string{"abdominals", "abs"})
		plank   = exercise("plank", "Plank", training.TypeStrength, beg, []string{"abdominals", "abs"})
		row     = exercise("barbell_row", "Barbell Row", training.TypeStrength, beg, []string{"middle_back", "back"})
		stretch = exercise("cat_cow", "Cat-Cow", training.TypeMobility, beg, []string{"lower_back", "back"})
	)

	tests := []struct {
		name    string
		catalog []training.Exercise
		want    []string
	}{
		{
			name:    "no chest or shoulder work is padded to the minimum",
			catalog: []training.Exercise{curl, hammer, crunch, plank, row, stretch},
			want:    []string{"barbell_curl", "barbell_row", "crunch", "hammer_curl", "plank"},
		},
		{
			// The padding picks overlap the shoulder picks and repeats are dropped afterwards.
			name:    "padding repeats shoulder work and stays short",
			catalog: []training.Exercise{press, raise, curl, stretch},
			want:    []string{"barbell_curl", "lateral_raise", "overhead_press"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProfile()
			p.Goal = training.GoalMuscleGain
			p.ExperienceLevel = beg

			plan, err := training.GeneratePlan(p, tt.catalog, testRegistry())
			if err != nil {
				t.Fatalf("GeneratePlan: %v", err)
			}
			day1, ok := plan.Session(1, 1)
			if !ok {
				t.Fatal("week 1 day 1 missing")
			}
			got := make(map[string]struct{}, len(day1.Exercises))
			for _, pe := range day1.Exercises {
				got[pe.ExerciseID] = struct{}{}
			}
			if len(got) != len(day1.Exercises) {
				t.Errorf("day 1 repeats exercises: %+v", day1.Exercises)
			}
			if diff := cmp.Diff(tt.want, sortedKeys(got)); diff != "" {
				t.Errorf("day 1 exercises mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
