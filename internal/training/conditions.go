package training

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/myrjola/fitplan/internal/errors"
)

// ConditionGroup is the coarse risk group of a medical condition.
type ConditionGroup string

const (
	GroupCardio      ConditionGroup = "cardio"
	GroupJoint       ConditionGroup = "joint"
	GroupSpine       ConditionGroup = "spine"
	GroupMetabolic   ConditionGroup = "metabolic"
	GroupRespiratory ConditionGroup = "respiratory"
	GroupOther       ConditionGroup = "other"
)

func parseConditionGroup(s string) ConditionGroup {
	switch g := ConditionGroup(s); g {
	case GroupCardio, GroupJoint, GroupSpine, GroupMetabolic, GroupRespiratory:
		return g
	default:
		return GroupOther
	}
}

// Condition is a registry entry for a medical condition.
type Condition struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Group              ConditionGroup `json:"group"`
	SessionsPerWeekMax *int           `json:"sessions_per_week_max"`
	CardioLevel        *string        `json:"cardio_level"`
	Notes              string         `json:"notes"`
}

// Risk tags matched against Exercise.Contraindications.
const (
	RiskHeart  = "heart"
	RiskJoints = "joints"
	RiskBack   = "back"
)

var groupRiskTags = map[ConditionGroup]string{ //nolint:gochecknoglobals // lookup table
	GroupCardio: RiskHeart,
	GroupJoint:  RiskJoints,
	GroupSpine:  RiskBack,
}

var conditionRiskTags = map[string][]string{ //nolint:gochecknoglobals // lookup table
	"joint_knee_arthrosis":       {"knees", RiskJoints},
	"joint_hip_arthrosis":        {"hips", RiskJoints},
	"joint_shoulder_impingement": {"shoulders", RiskJoints},
	"joint_elbow_wrist_pain":     {"elbows", "wrists", RiskJoints},
	"spine_lumbar_pain":          {"lower_back", RiskBack},
	"spine_cervical_pain":        {"neck", RiskBack},
	"metabolic_obesity":          {"obesity"},
	"metabolic_diabetes_type2":   {"diabetes"},
	"resp_asthma_mild":           {"asthma"},
	"other_pregnancy":            {"pregnancy"},
	"other_post_surgery_general": {"post_surgery"},
}

// Registry is an immutable set of known conditions keyed by id.
type Registry struct {
	byID map[string]Condition
}

// NewRegistry builds a registry. A later condition with the same id replaces an earlier one.
func NewRegistry(conditions []Condition) *Registry {
	byID := make(map[string]Condition, len(conditions))
	for _, c := range conditions {
		byID[c.ID] = c
	}
	return &Registry{byID: byID}
}

// DecodeRegistry parses a conditions document. Records that fail to decode or lack an id are skipped with a
// warning; only a document that is not a JSON array is an error.
func DecodeRegistry(ctx context.Context, logger *slog.Logger, data []byte) (*Registry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshal conditions")
	}

	conditions := make([]Condition, 0, len(raw))
	for i, item := range raw {
		var doc struct {
			ID                 *string `json:"id"`
			Name               string  `json:"name"`
			Group              string  `json:"group"`
			SessionsPerWeekMax *int    `json:"sessions_per_week_max"`
			CardioLevel        *string `json:"cardio_level"`
			Notes              string  `json:"notes"`
		}
		if err := json.Unmarshal(item, &doc); err != nil {
			logger.LogAttrs(ctx, slog.LevelWarn, "skip malformed condition",
				slog.Int("index", i), slog.Any("error", err))
			continue
		}
		if doc.ID == nil || *doc.ID == "" {
			logger.LogAttrs(ctx, slog.LevelWarn, "skip condition without id", slog.Int("index", i))
			continue
		}
		conditions = append(conditions, Condition{
			ID:                 *doc.ID,
			Name:               doc.Name,
			Group:              parseConditionGroup(doc.Group),
			SessionsPerWeekMax: doc.SessionsPerWeekMax,
			CardioLevel:        doc.CardioLevel,
			Notes:              doc.Notes,
		})
	}
	return NewRegistry(conditions), nil
}

// Len returns the number of known conditions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byID)
}

// Lookup returns the condition with the given id.
func (r *Registry) Lookup(id string) (Condition, bool) {
	if r == nil {
		return Condition{}, false
	}
	c, ok := r.byID[id]
	return c, ok
}

// Conditions returns the known conditions sorted by id.
func (r *Registry) Conditions() []Condition {
	if r == nil {
		return []Condition{}
	}
	out := make([]Condition, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ConditionIDs returns the health issues that are known condition ids.
func (r *Registry) ConditionIDs(healthIssues []string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, issue := range healthIssues {
		if _, ok := r.Lookup(issue); ok {
			ids[issue] = struct{}{}
		}
	}
	return ids
}

// SessionsLimit returns the smallest weekly session cap among the profile's conditions. The boolean is false
// when no matched condition declares a cap.
func (r *Registry) SessionsLimit(p Profile) (int, bool) {
	limit, found := 0, false
	for id := range r.ConditionIDs(p.HealthIssues) {
		c, _ := r.Lookup(id)
		if c.SessionsPerWeekMax == nil {
			continue
		}
		if !found || *c.SessionsPerWeekMax < limit {
			limit, found = *c.SessionsPerWeekMax, true
		}
	}
	return limit, found
}

// RiskTags derives the tags matched against exercise contraindications. Health issues that are not known
// condition ids pass through verbatim.
func (r *Registry) RiskTags(p Profile) map[string]struct{} {
	tags := make(map[string]struct{})
	for _, issue := range p.HealthIssues {
		if _, ok := r.Lookup(issue); !ok {
			tags[issue] = struct{}{}
		}
	}
	for id := range r.ConditionIDs(p.HealthIssues) {
		c, _ := r.Lookup(id)
		if tag, ok := groupRiskTags[c.Group]; ok {
			tags[tag] = struct{}{}
		}
		for _, tag := range conditionRiskTags[id] {
			tags[tag] = struct{}{}
		}
	}
	return tags
}
