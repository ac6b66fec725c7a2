package i18n_test

import (
	"testing"

	"github.com/myrjola/fitplan/internal/i18n"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		lang i18n.Language
		key  string
		want string
	}{
		{name: "english", lang: i18n.English, key: "goal.muscle_gain", want: "Muscle gain"},
		{name: "russian", lang: i18n.Russian, key: "goal.muscle_gain", want: "Набор массы"},
		{name: "unsupported language falls back", lang: i18n.Language("fi"), key: "plan.week", want: "Week"},
		{name: "unknown key", lang: i18n.Russian, key: "nope", want: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := i18n.Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestExerciseDisplayName(t *testing.T) {
	tests := []struct {
		lang i18n.Language
		name string
		want string
	}{
		{lang: i18n.Russian, name: "Romanian Deadlift", want: "Румынская тяга (Romanian Deadlift)"},
		{lang: i18n.Russian, name: "Barbell Deadlift", want: "Становая тяга (Barbell Deadlift)"},
		{lang: i18n.Russian, name: "Side Plank", want: "Боковая планка (Side Plank)"},
		{lang: i18n.Russian, name: "Zottman Twist", want: "Zottman Twist"},
		{lang: i18n.English, name: "Barbell Deadlift", want: "Barbell Deadlift"},
	}
	for _, tt := range tests {
		if got := i18n.ExerciseDisplayName(tt.lang, tt.name); got != tt.want {
			t.Errorf("ExerciseDisplayName(%q, %q) = %q, want %q", tt.lang, tt.name, got, tt.want)
		}
	}
}

func TestSupportedLanguages(t *testing.T) {
	for _, lang := range i18n.SupportedLanguages() {
		if !i18n.IsSupported(lang) {
			t.Errorf("%q listed but not supported", lang)
		}
	}
	if i18n.IsSupported("fi") {
		t.Error("fi should not be supported")
	}
}
