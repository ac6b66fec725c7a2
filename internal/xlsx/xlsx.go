// Package xlsx exports training plans as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"

	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/training"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

//nolint:gochecknoglobals // column layout of the week sheets.
var weekColumns = []struct {
	key   string
	width float64
}{
	{"plan.day", 6},
	{"export.title", 28},
	{"export.block", 14},
	{"export.exercise", 40},
	{"plan.sets", 8},
	{"export.reps", 10},
	{"export.duration", 14},
	{"export.comment", 60},
}

// sheet writes cells row by row and keeps the first error.
type sheet struct {
	f    *excelize.File
	name string
	err  error
}

func (s *sheet) set(col, row int, value any) {
	if s.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		s.err = err
		return
	}
	if err = s.f.SetCellValue(s.name, cell, value); err != nil {
		s.err = fmt.Errorf("set %s!%s: %w", s.name, cell, err)
	}
}

func (s *sheet) style(fromCol, fromRow, toCol, toRow, style int) {
	if s.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		s.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		s.err = err
		return
	}
	if err = s.f.SetCellStyle(s.name, from, to, style); err != nil {
		s.err = fmt.Errorf("style %s!%s:%s: %w", s.name, from, to, err)
	}
}

// WeekSheetName returns the sheet name used for a week.
func WeekSheetName(lang i18n.Language, week int) string {
	return fmt.Sprintf("%s %d", i18n.Translate(lang, "plan.week"), week)
}

// OverviewSheetName returns the name of the summary sheet.
func OverviewSheetName(lang i18n.Language) string {
	return i18n.Translate(lang, "export.overview")
}

// Export builds a workbook with an overview sheet and one sheet per plan week. The caller owns the returned
// file and must close it.
func Export(plan training.Plan, catalog []training.Exercise, lang i18n.Language) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := build(f, plan, catalog, lang); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Write exports the plan and writes the workbook to w.
func Write(w io.Writer, plan training.Plan, catalog []training.Exercise, lang i18n.Language) error {
	f, err := Export(plan, catalog, lang)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func build(f *excelize.File, plan training.Plan, catalog []training.Exercise, lang i18n.Language) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E75B6"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	overview := OverviewSheetName(lang)
	if err = f.SetSheetName(defaultSheet, overview); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	if err = writeOverview(f, overview, plan, lang, header); err != nil {
		return err
	}

	idx := training.NewExerciseIndex(catalog)
	for week := 1; week <= plan.TotalWeeks; week++ {
		name := WeekSheetName(lang, week)
		if _, err = f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err = writeWeek(f, name, plan.WeekSessions(week), idx, lang, header); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return nil
}

func writeOverview(f *excelize.File, name string, plan training.Plan, lang i18n.Language, header int) error {
	s := &sheet{f: f, name: name}
	s.set(1, 1, i18n.Translate(lang, "export.goal"))
	s.set(2, 1, training.GoalLabel(lang, plan.Goal))
	s.set(1, 2, i18n.Translate(lang, "export.per_week"))
	s.set(2, 2, plan.SessionsPerWeek)
	s.set(1, 3, i18n.Translate(lang, "export.total_weeks"))
	s.set(2, 3, plan.TotalWeeks)

	const tableRow = 5
	s.set(1, tableRow, i18n.Translate(lang, "plan.week"))
	s.set(2, tableRow, i18n.Translate(lang, "export.sessions"))
	s.style(1, tableRow, 2, tableRow, header)
	counts := plan.WeeklyCounts()
	for i, n := range counts {
		s.set(1, tableRow+1+i, i+1)
		s.set(2, tableRow+1+i, n)
	}
	if s.err != nil {
		return s.err
	}
	if err := f.SetColWidth(name, "A", "A", 22); err != nil { //nolint:mnd // label column
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(name, "B", "B", 18); err != nil { //nolint:mnd // value column
		return fmt.Errorf("set column width: %w", err)
	}
	if len(counts) == 0 {
		return nil
	}

	last := tableRow + len(counts)
	err := f.AddChart(name, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", name, tableRow),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", name, tableRow+1, last),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", name, tableRow+1, last),
		}},
	})
	if err != nil {
		return fmt.Errorf("add weekly chart: %w", err)
	}
	return nil
}

func writeWeek(
	f *excelize.File,
	name string,
	sessions []training.Session,
	idx training.ExerciseIndex,
	lang i18n.Language,
	header int,
) error {
	s := &sheet{f: f, name: name}
	for i, col := range weekColumns {
		s.set(i+1, 1, i18n.Translate(lang, col.key))
	}
	s.style(1, 1, len(weekColumns), 1, header)

	row := 2
	for _, session := range sessions {
		for _, pe := range session.Exercises {
			block := pe.Block
			if block == "" {
				block = training.BlockMain
			}
			s.set(1, row, session.DayIndex)
			s.set(2, row, session.Title)
			s.set(3, row, i18n.Translate(lang, "plan."+string(block)))
			s.set(4, row, idx.DisplayName(lang, pe.ExerciseID))
			s.set(5, row, pe.Sets)
			if pe.Reps != nil {
				s.set(6, row, *pe.Reps)
			}
			if pe.DurationSeconds != nil && *pe.DurationSeconds > 0 {
				s.set(7, row, max(1, *pe.DurationSeconds/60)) //nolint:mnd // seconds per minute
			}
			if pe.Comment != "" {
				s.set(8, row, pe.Comment)
			}
			row++
		}
	}
	if s.err != nil {
		return s.err
	}

	for i, col := range weekColumns {
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err = f.SetColWidth(name, letter, letter, col.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
