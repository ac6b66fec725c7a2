package training

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// goalQueries holds the keyword phrase each goal is matched against. Both English and Russian keywords are
// present so that catalogs in either language rank sensibly.
var goalQueries = map[Goal]string{ //nolint:gochecknoglobals // lookup table
	GoalWeightLoss: "похудение жир кардио ходьба бег низкая ударная нагрузка " +
		"cardio fat loss walking running low impact",
	GoalMuscleGain: "мышечная масса сила присед жим тяга " +
		"hypertrophy strength muscle squat press row deadlift",
	GoalMaintenance: "поддержание формы общее здоровье силовые кардио mobility " +
		"general fitness strength cardio mobility",
	GoalEndurance: "выносливость длительное кардио бег велосипед эллипс " +
		"endurance running cycling long cardio",
	GoalBackHealth: "спина поясница реабилитация ЛФК стабилизация кора " +
		"rehab back pain core stability mobility",
	GoalGeneralHealth: "общее здоровье ходьба умеренное кардио лёгкие силовые mobility " +
		"general health walking light cardio",
}

const defaultGoalQuery = "общее здоровье фитнес кардио силовые ходьба упражнения " +
	"general health fitness cardio strength"

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func goalQuery(goal Goal) string {
	if q, ok := goalQueries[goal]; ok {
		return q
	}
	return defaultGoalQuery
}

func exerciseDocument(e Exercise) string {
	parts := make([]string, 0, 3+len(e.MuscleGroups)+len(e.Equipment)) //nolint:mnd // name, description, type
	parts = append(parts, e.Name)
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	parts = append(parts, e.MuscleGroups...)
	parts = append(parts, e.Equipment...)
	parts = append(parts, string(e.Type))
	return strings.Join(parts, " ")
}

// termVector maps terms to weights. Sums iterate terms in sorted order so equal inputs always produce
// bit-identical scores.
type termVector map[string]float64

func (v termVector) terms() []string {
	terms := make([]string, 0, len(v))
	for t := range v {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// tfidf weights raw term counts with the smoothed idf and scales the result to unit length.
func tfidf(tokens []string, idf map[string]float64) termVector {
	v := make(termVector)
	for _, t := range tokens {
		if w, ok := idf[t]; ok {
			v[t] += w
		}
	}
	var norm float64
	for _, t := range v.terms() {
		norm += v[t] * v[t]
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for t := range v {
		v[t] /= norm
	}
	return v
}

func (v termVector) dot(o termVector) float64 {
	var sum float64
	for _, t := range v.terms() {
		sum += v[t] * o[t]
	}
	return sum
}

// Scores returns the relevance of each exercise to the goal, index-aligned with exercises.
//
// The vocabulary and inverse document frequencies are fitted on the exercise documents only. Query terms
// outside that vocabulary are ignored. The score is the dot product of the normalised vectors.
func Scores(goal Goal, exercises []Exercise) []float64 {
	docs := make([][]string, len(exercises))
	df := make(map[string]int)
	for i, e := range exercises {
		docs[i] = tokenize(exerciseDocument(e))
		seen := make(map[string]struct{}, len(docs[i]))
		for _, t := range docs[i] {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	n := float64(len(exercises))
	idf := make(map[string]float64, len(df))
	for t, count := range df {
		idf[t] = math.Log((1+n)/(1+float64(count))) + 1
	}

	query := tfidf(tokenize(goalQuery(goal)), idf)
	scores := make([]float64, len(exercises))
	for i, tokens := range docs {
		scores[i] = query.dot(tfidf(tokens, idf))
	}
	return scores
}

// RankForGoal orders exercises by descending relevance to the goal. Ties keep their input order. A positive
// maxItems truncates the result; zero or negative means no limit. A corpus of zero or one exercise is returned
// as is.
func RankForGoal(goal Goal, exercises []Exercise, maxItems int) []Exercise {
	if len(exercises) <= 1 {
		return exercises
	}

	scores := Scores(goal, exercises)
	order := make([]int, len(exercises))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return scores[order[i]] > scores[order[j]] })

	if maxItems > 0 && maxItems < len(order) {
		order = order[:maxItems]
	}
	ranked := make([]Exercise, len(order))
	for i, idx := range order {
		ranked[i] = exercises[idx]
	}
	return ranked
}
