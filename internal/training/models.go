// Package training recommends multi-week training plans from a health and fitness profile and an exercise
// catalog.
package training

import (
	"encoding/json"
	"log/slog"

	"github.com/myrjola/fitplan/internal/errors"
)

// Goal is the training objective chosen by the user.
type Goal string

const (
	GoalWeightLoss    Goal = "weight_loss"
	GoalMuscleGain    Goal = "muscle_gain"
	GoalMaintenance   Goal = "maintenance"
	GoalEndurance     Goal = "endurance"
	GoalBackHealth    Goal = "back_health"
	GoalGeneralHealth Goal = "general_health"
)

// Goals lists the recognised goals.
func Goals() []Goal {
	return []Goal{GoalWeightLoss, GoalMuscleGain, GoalMaintenance, GoalEndurance, GoalBackHealth, GoalGeneralHealth}
}

// Level is both a user's experience level and an exercise's difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Rank orders levels as beginner=1, intermediate=2, advanced=3. Unknown levels rank as advanced.
func (l Level) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2 //nolint:mnd // rank
	case LevelAdvanced:
		return 3 //nolint:mnd // rank
	default:
		return 3 //nolint:mnd // rank
	}
}

// ActivityLevel describes how active the user is outside of training.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// Location is where the user prefers to train.
type Location string

const (
	LocationHome         Location = "home"
	LocationGym          Location = "gym"
	LocationNoPreference Location = "no_preference"
)

// ExerciseType classifies exercises for templates and prescriptions.
type ExerciseType string

const (
	TypeStrength ExerciseType = "strength"
	TypeCardio   ExerciseType = "cardio"
	TypeMobility ExerciseType = "mobility"
	TypeRehab    ExerciseType = "rehab"
)

// Block is the part of a session a planned exercise belongs to.
type Block string

const (
	BlockWarmup   Block = "warmup"
	BlockMain     Block = "main"
	BlockCooldown Block = "cooldown"
)

// CurrentProfileSchemaVersion is stamped on every profile written by this version.
const CurrentProfileSchemaVersion = 2

// DefaultMaxSessionsPerWeek applies to profiles written before the field existed.
const DefaultMaxSessionsPerWeek = 3

// ErrUnsupportedSchema is returned for profile documents written by a newer version.
var ErrUnsupportedSchema = errors.NewSentinel("unsupported profile schema version")

// Profile is the user's health and fitness snapshot.
type Profile struct {
	SchemaVersion     int           `json:"schema_version"`
	Gender            string        `json:"gender"`
	Age               int           `json:"age"`
	WeightKg          float64       `json:"weight_kg"`
	HeightCm          *float64      `json:"height_cm"`
	ActivityLevel     ActivityLevel `json:"activity_level"`
	Goal              Goal          `json:"goal"`
	ExperienceLevel   Level         `json:"experience_level"`
	PreferredLocation Location      `json:"preferred_location"`
	// AvailableEquipment are free-form equipment labels compared case-insensitively.
	AvailableEquipment []string `json:"available_equipment"`
	// HealthIssues mixes condition registry ids and free-form legacy tags. Both are kept.
	HealthIssues       []string `json:"health_issues"`
	MaxSessionsPerWeek int      `json:"max_sessions_per_week"`
}

// profileDocument is the on-disk shape accepted for every schema version.
type profileDocument struct {
	SchemaVersion      *int          `json:"schema_version"`
	Gender             string        `json:"gender"`
	Age                int           `json:"age"`
	WeightKg           float64       `json:"weight_kg"`
	HeightCm           *float64      `json:"height_cm"`
	ActivityLevel      ActivityLevel `json:"activity_level"`
	Goal               Goal          `json:"goal"`
	ExperienceLevel    Level         `json:"experience_level"`
	PreferredLocation  Location      `json:"preferred_location"`
	AvailableEquipment []string      `json:"available_equipment"`
	HealthIssues       []string      `json:"health_issues"`
	MaxSessionsPerWeek *int          `json:"max_sessions_per_week"`
}

// DecodeProfile parses a profile document, filling the fields that older schema versions lack.
//
// Version 1 documents carry no schema_version and may omit max_sessions_per_week, available_equipment and
// health_issues.
func DecodeProfile(data []byte) (Profile, error) {
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Profile{}, errors.Wrap(err, "unmarshal profile")
	}

	version := 1
	if doc.SchemaVersion != nil {
		version = *doc.SchemaVersion
	}
	if version > CurrentProfileSchemaVersion {
		return Profile{}, errors.Wrap(ErrUnsupportedSchema, "decode profile", slog.Int("version", version))
	}

	p := Profile{
		SchemaVersion:      CurrentProfileSchemaVersion,
		Gender:             doc.Gender,
		Age:                doc.Age,
		WeightKg:           doc.WeightKg,
		HeightCm:           doc.HeightCm,
		ActivityLevel:      doc.ActivityLevel,
		Goal:               doc.Goal,
		ExperienceLevel:    doc.ExperienceLevel,
		PreferredLocation:  doc.PreferredLocation,
		AvailableEquipment: doc.AvailableEquipment,
		HealthIssues:       doc.HealthIssues,
		MaxSessionsPerWeek: DefaultMaxSessionsPerWeek,
	}
	if doc.MaxSessionsPerWeek != nil {
		p.MaxSessionsPerWeek = *doc.MaxSessionsPerWeek
	}
	if p.AvailableEquipment == nil {
		p.AvailableEquipment = []string{}
	}
	if p.HealthIssues == nil {
		p.HealthIssues = []string{}
	}
	return p, nil
}

// EncodeProfile serialises the profile with the current schema version.
func EncodeProfile(p Profile) ([]byte, error) {
	p.SchemaVersion = CurrentProfileSchemaVersion
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal profile")
	}
	return data, nil
}

// Exercise is a catalog entry.
type Exercise struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	MuscleGroups      []string     `json:"muscle_groups"`
	Equipment         []string     `json:"equipment"`
	Difficulty        Level        `json:"difficulty"`
	Type              ExerciseType `json:"exercise_type"`
	Locations         []Location   `json:"locations"`
	Contraindications []string     `json:"contraindications"`
	Description       string       `json:"description"`
}

// PlannedExercise prescribes one exercise in a session. ExerciseID is resolved against the catalog when the
// plan is displayed.
type PlannedExercise struct {
	ExerciseID      string `json:"exercise_id"`
	Sets            int    `json:"sets"`
	Reps            *int   `json:"reps"`
	DurationSeconds *int   `json:"duration_seconds"`
	Block           Block  `json:"block"`
	Comment         string `json:"comment"`
}

// Session is one training day. Exercise ids are unique within a session.
type Session struct {
	WeekIndex int               `json:"week_index"`
	DayIndex  int               `json:"day_index"`
	Title     string            `json:"title"`
	Exercises []PlannedExercise `json:"exercises"`
}

// Plan covers every (week, day) pair in [1..TotalWeeks] x [1..SessionsPerWeek].
type Plan struct {
	Goal            Goal      `json:"goal"`
	SessionsPerWeek int       `json:"sessions_per_week"`
	TotalWeeks      int       `json:"total_weeks"`
	Sessions        []Session `json:"sessions"`
}

// Session returns the session for week and day, if present.
func (p Plan) Session(week, day int) (Session, bool) {
	for _, s := range p.Sessions {
		if s.WeekIndex == week && s.DayIndex == day {
			return s, true
		}
	}
	return Session{}, false
}

// WeeklyCounts returns the number of sessions scheduled in each week, index 0 being week 1.
func (p Plan) WeeklyCounts() []int {
	if p.TotalWeeks <= 0 {
		return []int{}
	}
	counts := make([]int, p.TotalWeeks)
	for _, s := range p.Sessions {
		if s.WeekIndex >= 1 && s.WeekIndex <= p.TotalWeeks {
			counts[s.WeekIndex-1]++
		}
	}
	return counts
}
