package training_test

import (
	"sort"

	"github.com/myrjola/fitplan/internal/ptr"
	"github.com/myrjola/fitplan/internal/training"
)

func exercise(
	id, name string,
	typ training.ExerciseType,
	difficulty training.Level,
	muscles []string,
	equipment ...string,
) training.Exercise {
	if equipment == nil {
		equipment = []string{}
	}
	return training.Exercise{
		ID:                id,
		Name:              name,
		MuscleGroups:      muscles,
		Equipment:         equipment,
		Difficulty:        difficulty,
		Type:              typ,
		Locations:         []training.Location{training.LocationHome, training.LocationGym},
		Contraindications: []string{},
		Description:       "",
	}
}

func gymOnly(e training.Exercise) training.Exercise {
	e.Locations = []training.Location{training.LocationGym}
	return e
}

func contraindicated(e training.Exercise, tags ...string) training.Exercise {
	e.Contraindications = tags
	return e
}

func described(e training.Exercise, description string) training.Exercise {
	e.Description = description
	return e
}

// testCatalog has disjoint muscle groups and enough chest exercises to fill two muscle gain chest days in
// the first week without repeats.
func testCatalog() []training.Exercise {
	const (
		strength = training.TypeStrength
		cardio   = training.TypeCardio
		mobility = training.TypeMobility
		rehab    = training.TypeRehab
		beg      = training.LevelBeginner
		mid      = training.LevelIntermediate
		adv      = training.LevelAdvanced
	)
	return []training.Exercise{
		exercise("barbell_bench_press", "Barbell Bench Press", strength, mid, []string{"chest"}, "barbell"),
		exercise("dumbbell_bench_press", "Dumbbell Bench Press", strength, beg, []string{"chest"}, "dumbbell"),
		exercise("push_up", "Push-Up", strength, beg, []string{"chest"}),
		exercise("incline_dumbbell_press", "Incline Dumbbell Press", strength, mid, []string{"chest"}, "dumbbell"),
		gymOnly(exercise("cable_crossover", "Cable Crossover", strength, mid, []string{"chest"}, "cable")),
		exercise("chest_dip", "Chest Dip", strength, mid, []string{"chest"}),
		exercise("dumbbell_fly", "Dumbbell Fly", strength, beg, []string{"chest"}, "dumbbell"),
		gymOnly(exercise("pec_deck", "Pec Deck Fly", strength, beg, []string{"chest"}, "machine")),
		exercise("overhead_press", "Overhead Press", strength, mid, []string{"shoulders"}, "barbell"),
		exercise("lateral_raise", "Lateral Raise", strength, beg, []string{"shoulders"}, "dumbbell"),
		exercise("barbell_squat", "Barbell Squat", strength, mid, []string{"quadriceps", "legs"}, "barbell"),
		exercise("romanian_deadlift", "Romanian Deadlift", strength, mid, []string{"hamstrings", "legs"}, "barbell"),
		exercise("walking_lunge", "Walking Lunge", strength, beg, []string{"quadriceps", "legs"}, "dumbbell"),
		gymOnly(exercise("leg_press", "Leg Press", strength, beg, []string{"quadriceps", "legs"}, "machine")),
		exercise("step_up", "Step-Up", strength, beg, []string{"glutes", "legs"}),
		contraindicated(
			exercise("jump_squat", "Jump Squat", strength, mid, []string{"quadriceps", "legs"}),
			"joints", "knees"),
		exercise("clean_and_jerk", "Clean and Jerk", strength, adv, []string{"quadriceps", "legs"}, "barbell"),
		exercise("plank", "Plank", strength, beg, []string{"abdominals", "abs"}),
		exercise("crunch", "Crunch", strength, beg, []string{"abdominals", "abs"}),
		exercise("barbell_row", "Barbell Row", strength, mid, []string{"middle_back", "back"}, "barbell"),
		gymOnly(exercise("lat_pulldown", "Lat Pulldown", strength, beg, []string{"lats", "back"}, "cable")),
		exercise("pull_up", "Pull-Up", strength, mid, []string{"lats", "back"}),
		exercise("back_extension", "Back Extension", strength, beg, []string{"lower_back", "back"}),
		exercise("barbell_curl", "Barbell Curl", strength, beg, []string{"biceps"}, "barbell"),
		exercise("hammer_curl", "Hammer Curl", strength, beg, []string{"biceps"}, "dumbbell"),
		gymOnly(described(
			exercise("treadmill_running", "Treadmill Running", cardio, beg, []string{"quadriceps", "legs"}, "machine"),
			"Steady running on a treadmill to build endurance.")),
		gymOnly(exercise("stationary_bike", "Stationary Bike", cardio, beg, []string{"quadriceps", "legs"}, "machine")),
		exercise("jumping_jacks", "Jumping Jacks", cardio, beg, []string{"other"}),
		contraindicated(
			exercise("box_jump", "Box Jump", cardio, mid, []string{"quadriceps", "legs"}, "box"),
			"joints"),
		exercise("cat_cow", "Cat-Cow", mobility, beg, []string{"lower_back", "back"}),
		exercise("hip_flexor_stretch", "Hip Flexor Stretch", mobility, beg, []string{"quadriceps", "legs"}),
		exercise("bird_dog", "Bird Dog", rehab, beg, []string{"lower_back", "back"}),
		exercise("dead_bug", "Dead Bug", rehab, beg, []string{"abdominals", "abs"}),
		exercise("glute_bridge", "Glute Bridge", rehab, beg, []string{"glutes", "legs"}),
	}
}

func testRegistry() *training.Registry {
	return training.NewRegistry([]training.Condition{
		{
			ID:                 "joint_knee_arthrosis",
			Name:               "Knee arthrosis",
			Group:              training.GroupJoint,
			SessionsPerWeekMax: ptr.Ref(3),
			CardioLevel:        nil,
			Notes:              "",
		},
		{
			ID:                 "cardio_hypertension",
			Name:               "Hypertension",
			Group:              training.GroupCardio,
			SessionsPerWeekMax: ptr.Ref(2),
			CardioLevel:        ptr.Ref("moderate"),
			Notes:              "",
		},
		{
			ID:                 "spine_lumbar_pain",
			Name:               "Lumbar pain",
			Group:              training.GroupSpine,
			SessionsPerWeekMax: nil,
			CardioLevel:        nil,
			Notes:              "",
		},
	})
}

func baseProfile() training.Profile {
	return training.Profile{
		SchemaVersion:      training.CurrentProfileSchemaVersion,
		Gender:             "female",
		Age:                34,
		WeightKg:           68,
		HeightCm:           nil,
		ActivityLevel:      training.ActivityMedium,
		Goal:               training.GoalMaintenance,
		ExperienceLevel:    training.LevelIntermediate,
		PreferredLocation:  training.LocationGym,
		AvailableEquipment: []string{},
		HealthIssues:       []string{},
		MaxSessionsPerWeek: 5,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
