package training

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/yuin/goldmark"
)

// ExerciseIndex resolves planned exercise ids against a catalog.
type ExerciseIndex map[string]Exercise

// NewExerciseIndex indexes the catalog by id.
func NewExerciseIndex(catalog []Exercise) ExerciseIndex {
	idx := make(ExerciseIndex, len(catalog))
	for _, e := range catalog {
		idx[e.ID] = e
	}
	return idx
}

// DisplayName returns the localised name of the exercise, or the unknown-exercise label for ids missing from
// the catalog.
func (idx ExerciseIndex) DisplayName(lang i18n.Language, id string) string {
	e, ok := idx[id]
	if !ok {
		return i18n.Translate(lang, "plan.unknown")
	}
	return i18n.ExerciseDisplayName(lang, e.Name)
}

// PrescriptionText formats the load of a planned exercise: a duration in whole minutes, sets×reps or a bare
// set count.
func PrescriptionText(lang i18n.Language, pe PlannedExercise) string {
	switch {
	case pe.DurationSeconds != nil && *pe.DurationSeconds > 0:
		minutes := max(1, *pe.DurationSeconds/60) //nolint:mnd // seconds per minute
		return fmt.Sprintf("~%d %s", minutes, i18n.Translate(lang, "plan.minutes"))
	case pe.Reps != nil && *pe.Reps > 0:
		return fmt.Sprintf("%d×%d %s", pe.Sets, *pe.Reps, i18n.Translate(lang, "plan.reps"))
	default:
		return fmt.Sprintf("%d %s", pe.Sets, i18n.Translate(lang, "plan.sets"))
	}
}

// WeekSessions returns the sessions of a week ordered by day.
func (p Plan) WeekSessions(week int) []Session {
	var sessions []Session
	for _, s := range p.Sessions {
		if s.WeekIndex == week {
			sessions = append(sessions, s)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].DayIndex < sessions[j].DayIndex })
	return sessions
}

// RenderMarkdown renders the plan as Markdown. A positive week renders only that week.
func RenderMarkdown(plan Plan, catalog []Exercise, lang i18n.Language, week int) string {
	var (
		b     strings.Builder
		idx   = NewExerciseIndex(catalog)
		first = 1
		last  = plan.TotalWeeks
	)
	if week > 0 {
		first, last = week, week
	}

	fmt.Fprintf(&b, "# %s\n", GoalLabel(lang, plan.Goal))
	for w := first; w <= last; w++ {
		fmt.Fprintf(&b, "\n## %s %d\n", i18n.Translate(lang, "plan.week"), w)
		for _, s := range plan.WeekSessions(w) {
			fmt.Fprintf(&b, "\n### %s %d: %s\n\n", i18n.Translate(lang, "plan.day"), s.DayIndex, s.Title)
			writeSession(&b, s, idx, lang)
		}
	}
	return b.String()
}

func writeSession(b *strings.Builder, s Session, idx ExerciseIndex, lang i18n.Language) {
	blocks := map[Block][]string{}
	for _, pe := range s.Exercises {
		block := pe.Block
		if block == "" {
			block = BlockMain
		}
		line := fmt.Sprintf("- %s: %s", idx.DisplayName(lang, pe.ExerciseID), PrescriptionText(lang, pe))
		blocks[block] = append(blocks[block], line)
	}

	// The joint warmup is done by the user on their own, so only the reminder is printed.
	fmt.Fprintf(b, "_%s_\n", i18n.Translate(lang, "plan.warmup"))
	if len(blocks[BlockMain]) == 0 && len(blocks[BlockCooldown]) == 0 {
		fmt.Fprintf(b, "\n%s\n", i18n.Translate(lang, "plan.empty"))
		return
	}
	for _, section := range []struct {
		block Block
		key   string
	}{{BlockMain, "plan.main"}, {BlockCooldown, "plan.cooldown"}} {
		lines := blocks[section.block]
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n**%s:**\n\n%s\n", i18n.Translate(lang, section.key), strings.Join(lines, "\n"))
	}
}

// GoalLabel returns the localised goal name.
func GoalLabel(lang i18n.Language, goal Goal) string {
	key := "goal." + string(goal)
	if label := i18n.Translate(lang, key); label != key {
		return label
	}
	return i18n.Translate(lang, "goal.default")
}

// RenderHTML renders the Markdown form of the plan to an HTML fragment.
func RenderHTML(plan Plan, catalog []Exercise, lang i18n.Language, week int) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(RenderMarkdown(plan, catalog, lang, week)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
