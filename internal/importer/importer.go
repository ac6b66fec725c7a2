// Package importer converts records of the free-exercise-db dataset into catalog exercises and merges them
// into an existing catalog.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/myrjola/fitplan/internal/training"
)

// stringList accepts a JSON list, a single scalar or null. Non-string values are formatted as text and
// null elements are skipped.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal list: %w", err)
	}
	if v == nil {
		*l = nil
		return nil
	}

	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	list := make(stringList, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		list = append(list, fmt.Sprint(item))
	}
	*l = list
	return nil
}

// Record is one entry of the dataset.
type Record struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	PrimaryMuscles   stringList `json:"primaryMuscles"`
	SecondaryMuscles stringList `json:"secondaryMuscles"`
	Equipment        *string    `json:"equipment"`
	Level            string     `json:"level"`
	Category         string     `json:"category"`
	Instructions     stringList `json:"instructions"`
}

// DecodeRecords parses a dataset document, which must be a JSON array.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}
	return records, nil
}

func mapCategory(category string) training.ExerciseType {
	switch strings.ToLower(category) {
	case "cardio", "plyometrics":
		return training.TypeCardio
	case "stretching", "yoga":
		return training.TypeMobility
	default:
		return training.TypeStrength
	}
}

func mapLevel(level string) training.Level {
	switch strings.ToLower(level) {
	case "beginner", "novice":
		return training.LevelBeginner
	case "intermediate":
		return training.LevelIntermediate
	default:
		return training.LevelAdvanced
	}
}

// muscleAggregates maps dataset muscle labels to the groups used by session templates.
var muscleAggregates = map[string]string{ //nolint:gochecknoglobals // lookup table
	"quadriceps":  "legs",
	"hamstrings":  "legs",
	"glutes":      "legs",
	"calves":      "legs",
	"adductors":   "legs",
	"abductors":   "legs",
	"chest":       "chest",
	"abdominals":  "abs",
	"lats":        "back",
	"lower_back":  "back",
	"middle_back": "back",
	"neck":        "back",
	"shoulders":   "shoulders",
	"traps":       "shoulders",
	"biceps":      "biceps",
	"triceps":     "triceps",
	"forearms":    "arms",
}

const otherMuscles = "other"

// muscleGroups keeps every lower-cased label followed by its aggregate group.
func muscleGroups(labels []string) []string {
	var groups []string
	for _, label := range labels {
		name := strings.ToLower(strings.TrimSpace(label))
		if name == "" {
			continue
		}
		groups = append(groups, name)
		if agg, ok := muscleAggregates[name]; ok && agg != name {
			groups = append(groups, agg)
		}
	}
	if len(groups) == 0 {
		return []string{otherMuscles}
	}
	return groups
}

// gymOnlyKeywords mark equipment that is not found at home.
var gymOnlyKeywords = []string{"machine", "smith", "cable", "lever", "sled", "hack squat"} //nolint:gochecknoglobals // lookup table

func inferLocations(equipment string) []training.Location {
	eq := strings.ToLower(equipment)
	for _, k := range gymOnlyKeywords {
		if strings.Contains(eq, k) {
			return []training.Location{training.LocationGym}
		}
	}
	return []training.Location{training.LocationHome, training.LocationGym}
}

// Convert maps dataset records to exercises. Records without an id are skipped.
func Convert(records []Record) []training.Exercise {
	exercises := make([]training.Exercise, 0, len(records))
	for _, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			continue
		}
		name := r.Name
		if name == "" {
			name = id
		}

		equipment := ""
		if r.Equipment != nil {
			equipment = strings.TrimSpace(*r.Equipment)
		}
		equipmentList := []string{}
		if equipment != "" {
			equipmentList = []string{equipment}
		}

		level := r.Level
		if level == "" {
			level = string(training.LevelBeginner)
		}

		var steps []string
		for _, step := range r.Instructions {
			if s := strings.TrimSpace(step); s != "" {
				steps = append(steps, s)
			}
		}

		labels := append(append([]string{}, r.PrimaryMuscles...), r.SecondaryMuscles...)
		exercises = append(exercises, training.Exercise{
			ID:                id,
			Name:              name,
			MuscleGroups:      muscleGroups(labels),
			Equipment:         equipmentList,
			Difficulty:        mapLevel(level),
			Type:              mapCategory(r.Category),
			Locations:         inferLocations(equipment),
			Contraindications: []string{},
			Description:       strings.Join(steps, " "),
		})
	}
	return exercises
}

// Merge appends imported exercises whose ids are not yet in the catalog. The existing catalog is kept as is,
// including any repeated ids, and the first of several imported duplicates wins. It returns the merged
// catalog and the number of exercises added.
func Merge(existing, imported []training.Exercise) ([]training.Exercise, int) {
	merged := make([]training.Exercise, 0, len(existing)+len(imported))
	merged = append(merged, existing...)
	seen := make(map[string]struct{}, len(existing)+len(imported))
	for _, e := range existing {
		seen[e.ID] = struct{}{}
	}
	added := 0
	for _, e := range imported {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		merged = append(merged, e)
		added++
	}
	return merged, added
}
