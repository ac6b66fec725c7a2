package training

import (
	"errors"
	"testing"
)

func TestExercisePriority(t *testing.T) {
	tests := []struct {
		name string
		typ  ExerciseType
		want int
	}{
		{"Barbell Squat", TypeStrength, 0},
		{"Hack Squat Machine", TypeStrength, 0},
		{"Romanian Deadlift", TypeStrength, 1},
		{"Barbell Bench Press", TypeStrength, 2},
		{"Bench Dumbbell Press", TypeStrength, 3},
		{"Bent Over Row", TypeStrength, 4},
		{"Lat Pulldown", TypeStrength, 4},
		{"Pull-Up", TypeStrength, 4},
		{"Rowing Machine", TypeCardio, 4},
		{"Walking Lunge", TypeStrength, 5},
		{"Step Up", TypeStrength, 5},
		{"Barbell Curl", TypeStrength, 10},
		{"Jumping Jacks", TypeCardio, 20},
		{"Cat-Cow", TypeMobility, 30},
		{"Bird Dog", TypeRehab, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exercisePriority(Exercise{Name: tt.name, Type: tt.typ}); got != tt.want {
				t.Errorf("exercisePriority(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestGeneratePlan_RecoversPanic(t *testing.T) {
	orig, ok := templates[GoalEndurance]
	templates[GoalEndurance] = template{Days: nil, MinExercises: 1}
	t.Cleanup(func() {
		if ok {
			templates[GoalEndurance] = orig
		}
	})

	p := Profile{Goal: GoalEndurance, ExperienceLevel: LevelBeginner, MaxSessionsPerWeek: 3}
	plan, err := GeneratePlan(p, nil, NewRegistry(nil))
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("GeneratePlan() error = %v, want ErrGeneration", err)
	}
	if len(plan.Sessions) != 0 {
		t.Errorf("partial plan returned with %d sessions", len(plan.Sessions))
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("Pull-Up, a 3x10 ЖИМ_лёжа!")
	want := []string{"pull", "up", "3x10", "жим_лёжа"}
	if len(got) != len(want) {
		t.Fatalf("tokenize() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tokenize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
