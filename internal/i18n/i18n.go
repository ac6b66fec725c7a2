// Package i18n holds the user facing label tables.
package i18n

import (
	"strings"
)

// Language represents a supported language.
type Language string

const (
	// English is the English language.
	English Language = "en"
	// Russian is the Russian language.
	Russian Language = "ru"
)

// DefaultLanguage is the fallback language.
const DefaultLanguage = English

// translations maps language codes to translation keys and their values.
//
//nolint:gochecknoglobals // static label table.
var translations = map[Language]map[string]string{
	English: {
		"goal.weight_loss":    "Weight loss",
		"goal.muscle_gain":    "Muscle gain",
		"goal.maintenance":    "Maintenance",
		"goal.endurance":      "Endurance",
		"goal.back_health":    "Back health",
		"goal.general_health": "General health",
		"goal.default":        "Workout",
		"session.day":         "day",
		"plan.week":           "Week",
		"plan.day":            "Day",
		"plan.warmup":         "Joint warmup (5-10 minutes)",
		"plan.main":           "Main block",
		"plan.cooldown":       "Cooldown",
		"plan.reps":           "reps",
		"plan.sets":           "sets",
		"plan.minutes":        "min",
		"plan.unknown":        "Unknown exercise",
		"plan.empty":          "No exercises planned.",
		"comment.cardio":      "Main block: steady or interval cardio, keep breathing under control.",
		"comment.mobility":    "Main block: rehab and mobility, smooth movements without jerks.",
		"comment.strength":    "Main block: strength work, clean technique with a little effort in reserve.",
		"export.overview":     "Overview",
		"export.goal":         "Goal",
		"export.per_week":     "Sessions per week",
		"export.total_weeks":  "Total weeks",
		"export.sessions":     "Sessions",
		"export.title":        "Title",
		"export.block":        "Block",
		"export.exercise":     "Exercise",
		"export.reps":         "Reps",
		"export.duration":     "Duration, min",
		"export.comment":      "Comment",
	},
	Russian: {
		"goal.weight_loss":    "Похудение",
		"goal.muscle_gain":    "Набор массы",
		"goal.maintenance":    "Поддержание формы",
		"goal.endurance":      "Выносливость",
		"goal.back_health":    "Спина",
		"goal.general_health": "Общее здоровье",
		"goal.default":        "Тренировка",
		"session.day":         "день",
		"plan.week":           "Неделя",
		"plan.day":            "День",
		"plan.warmup":         "Суставная разминка (5-10 минут)",
		"plan.main":           "Основная часть",
		"plan.cooldown":       "Заминка",
		"plan.reps":           "повторов",
		"plan.sets":           "подхода",
		"plan.minutes":        "мин",
		"plan.unknown":        "Неизвестное упражнение",
		"plan.empty":          "Упражнения не запланированы.",
		"comment.cardio":      "Основной блок: интервальное или ровное кардио, контролируйте дыхание.",
		"comment.mobility":    "Основной блок: реабилитация/мобилити, движения плавные, без рывков.",
		"comment.strength":    "Основной блок: силовая часть, техника и небольшой запас по усилию.",
		"export.overview":     "Обзор",
		"export.goal":         "Цель",
		"export.per_week":     "Тренировок в неделю",
		"export.total_weeks":  "Всего недель",
		"export.sessions":     "Тренировок",
		"export.title":        "Название",
		"export.block":        "Блок",
		"export.exercise":     "Упражнение",
		"export.reps":         "Повторы",
		"export.duration":     "Длительность, мин",
		"export.comment":      "Комментарий",
	},
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{English, Russian}
}

// IsSupported checks if a language is supported.
func IsSupported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

// Translate returns the translation for the given key in the specified language.
// If the key is not found, it falls back to the default language.
// If still not found, it returns the key itself.
func Translate(lang Language, key string) string {
	if langTranslations, ok := translations[lang]; ok {
		if translation, ok := langTranslations[key]; ok {
			return translation
		}
	}

	if lang != DefaultLanguage {
		if translation, ok := translations[DefaultLanguage][key]; ok {
			return translation
		}
	}

	return key
}

// NameRule assigns a display label to exercise names containing Pattern.
type NameRule struct {
	Pattern string
	Label   string
}

// exerciseNames are evaluated in order, the first matching pattern wins, so longer patterns come first.
//
//nolint:gochecknoglobals // static label table.
var exerciseNames = map[Language][]NameRule{
	Russian: {
		{Pattern: "romanian deadlift", Label: "Румынская тяга"},
		{Pattern: "deadlift", Label: "Становая тяга"},
		{Pattern: "hack squat", Label: "Гакк-приседания"},
		{Pattern: "squat", Label: "Приседания"},
		{Pattern: "good morning", Label: "Наклоны «Гуд морнинг»"},
		{Pattern: "bench press", Label: "Жим лёжа"},
		{Pattern: "overhead press", Label: "Жим стоя"},
		{Pattern: "shoulder press", Label: "Жим на плечи"},
		{Pattern: "leg press", Label: "Жим ногами"},
		{Pattern: "push-up", Label: "Отжимания"},
		{Pattern: "push up", Label: "Отжимания"},
		{Pattern: "chin-up", Label: "Подтягивания обратным хватом"},
		{Pattern: "chin up", Label: "Подтягивания обратным хватом"},
		{Pattern: "pull-up", Label: "Подтягивания"},
		{Pattern: "pull up", Label: "Подтягивания"},
		{Pattern: "lat pulldown", Label: "Тяга верхнего блока к груди"},
		{Pattern: "pulldown", Label: "Тяга верхнего блока"},
		{Pattern: "face pull", Label: "Тяга к лицу"},
		{Pattern: "row", Label: "Тяга на спину"},
		{Pattern: "lunge", Label: "Выпады"},
		{Pattern: "leg curl", Label: "Сгибания ног"},
		{Pattern: "leg extension", Label: "Разгибания ног"},
		{Pattern: "step-up", Label: "Шаги на тумбу"},
		{Pattern: "step up", Label: "Шаги на тумбу"},
		{Pattern: "side plank", Label: "Боковая планка"},
		{Pattern: "plank", Label: "Планка"},
		{Pattern: "crunch", Label: "Скручивания"},
		{Pattern: "sit-up", Label: "Подъёмы туловища"},
		{Pattern: "hammer curl", Label: "Сгибания молотком"},
		{Pattern: "curl", Label: "Сгибания"},
		{Pattern: "tricep extension", Label: "Разгибания на трицепс"},
		{Pattern: "pushdown", Label: "Жим вниз на блоке"},
		{Pattern: "reverse fly", Label: "Обратные разведения"},
		{Pattern: "fly", Label: "Разведения"},
		{Pattern: "calf raise", Label: "Подъёмы на икры"},
		{Pattern: "raise", Label: "Подъёмы"},
		{Pattern: "walking", Label: "Ходьба"},
		{Pattern: "walk", Label: "Ходьба"},
		{Pattern: "running", Label: "Бег"},
		{Pattern: "jog", Label: "Лёгкий бег"},
		{Pattern: "bike", Label: "Велотренажёр"},
		{Pattern: "cycling", Label: "Велотренажёр"},
		{Pattern: "elliptical", Label: "Орбитрек"},
		{Pattern: "burpee", Label: "Берпи"},
		{Pattern: "swing", Label: "Махи"},
		{Pattern: "cat-cow", Label: "Упражнение «Кошка-корова»"},
		{Pattern: "cat cow", Label: "Упражнение «Кошка-корова»"},
		{Pattern: "smr", Label: "Самомассаж роликом"},
	},
}

// ExerciseNameRules returns the ordered display-name table for lang. Languages without a table get nil.
func ExerciseNameRules(lang Language) []NameRule {
	return exerciseNames[lang]
}

// ExerciseDisplayName returns a localized label followed by the original name in parentheses, or the name
// unchanged when no rule matches.
func ExerciseDisplayName(lang Language, name string) string {
	lower := strings.ToLower(name)
	for _, rule := range exerciseNames[lang] {
		if strings.Contains(lower, rule.Pattern) {
			return rule.Label + " (" + name + ")"
		}
	}
	return name
}
