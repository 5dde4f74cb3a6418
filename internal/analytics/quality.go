package analytics

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// Factor weights of the quality prediction. They sum to exactly 1.0.
var qualityWeights = map[string]float64{
	"hour":     0.25,
	"day":      0.15,
	"preset":   0.20,
	"category": 0.15,
	"fatigue":  0.15,
	"recovery": 0.10,
}

// Default preset scores used when a preset has no history at all.
var defaultPresetScores = map[session.Preset]float64{
	session.PresetDeepWork:   75.0,
	session.PresetLearning:   70.0,
	session.PresetQuickTasks: 65.0,
	session.PresetFlowMode:   72.0,
}

// QualityInput is the context a next-session prediction is made for.
type QualityInput struct {
	Hour     int
	Day      int
	Preset   session.Preset
	Category string

	// SessionsToday is the number of sessions already completed today.
	SessionsToday int

	// MinutesSinceLast is nil for the first session of the day.
	MinutesSinceLast *int
}

// QualityPredictor forecasts the productivity of the next session from six
// weighted factors over completed-session history.
type QualityPredictor struct {
	completed []session.Session
}

// NewQualityPredictor keeps only completed sessions from the snapshot.
func NewQualityPredictor(sessions []session.Session) *QualityPredictor {
	completed := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed {
			completed = append(completed, s)
		}
	}
	return &QualityPredictor{completed: completed}
}

// hourScore is the mean rating at the exact hour, else the circadian default.
func (q *QualityPredictor) hourScore(hour int) (float64, float64) {
	var ratings []float64
	matched := false
	for _, s := range q.completed {
		if s.Hour != hour {
			continue
		}
		matched = true
		if r, ok := s.Rating(); ok {
			ratings = append(ratings, r)
		}
	}

	if !matched {
		return defaultCircadianScore(hour), 0.1
	}
	if len(ratings) == 0 {
		return defaultCircadianScore(hour), 0.2
	}
	return mean(ratings), minF(1.0, float64(len(ratings))/10)
}

// defaultCircadianScore is the fixed hour-of-day default table.
func defaultCircadianScore(hour int) float64 {
	switch {
	case hour >= 8 && hour <= 11:
		return 80.0
	case hour >= 12 && hour <= 13:
		return 65.0
	case hour >= 14 && hour <= 17:
		return 75.0
	case hour >= 18 && hour <= 20:
		return 70.0
	case hour >= 21 && hour <= 23:
		return 55.0
	case hour >= 6 && hour <= 7:
		return 65.0
	default:
		return 50.0
	}
}

// dayScore is the mean rating for the day of week, else a flat default.
func (q *QualityPredictor) dayScore(day int) (float64, float64) {
	var ratings []float64
	matched := false
	for _, s := range q.completed {
		if s.DayOfWeek != day {
			continue
		}
		matched = true
		if r, ok := s.Rating(); ok {
			ratings = append(ratings, r)
		}
	}

	if !matched {
		return 70.0, 0.1
	}
	if len(ratings) == 0 {
		return 70.0, 0.2
	}
	return mean(ratings), minF(1.0, float64(len(ratings))/15)
}

// presetScore prefers the (preset, hour) pair, falls back to the preset
// overall (confidence capped at 0.7), then to a fixed per-preset default.
func (q *QualityPredictor) presetScore(preset session.Preset, hour int) (float64, float64) {
	var pairRatings, overallRatings []float64
	for _, s := range q.completed {
		if s.Preset != preset {
			continue
		}
		r, ok := s.Rating()
		if !ok {
			continue
		}
		overallRatings = append(overallRatings, r)
		if s.Hour == hour {
			pairRatings = append(pairRatings, r)
		}
	}

	if len(pairRatings) > 0 {
		return mean(pairRatings), minF(1.0, float64(len(pairRatings))/5)
	}
	if len(overallRatings) > 0 {
		return mean(overallRatings), minF(0.7, float64(len(overallRatings))/10)
	}
	if score, ok := defaultPresetScores[preset]; ok {
		return score, 0.1
	}
	return 70.0, 0.1
}

// categoryScore mirrors presetScore for the category dimension.
func (q *QualityPredictor) categoryScore(category string, hour int) (float64, float64) {
	if category == "" {
		return 70.0, 0.1
	}

	var pairRatings, overallRatings []float64
	for _, s := range q.completed {
		if s.Category != category {
			continue
		}
		r, ok := s.Rating()
		if !ok {
			continue
		}
		overallRatings = append(overallRatings, r)
		if s.Hour == hour {
			pairRatings = append(pairRatings, r)
		}
	}

	if len(pairRatings) > 0 {
		return mean(pairRatings), minF(1.0, float64(len(pairRatings))/5)
	}
	if len(overallRatings) > 0 {
		return mean(overallRatings), minF(0.7, float64(len(overallRatings))/8)
	}
	return 70.0, 0.1
}

// fatigueScore is the mean historical rating at the same ordinal position
// within a day, else a fixed decreasing curve.
func (q *QualityPredictor) fatigueScore(sessionsToday int) (float64, float64) {
	byDate := make(map[string][]session.Session)
	for _, s := range q.completed {
		if date := s.DateString(); date != "" {
			byDate[date] = append(byDate[date], s)
		}
	}

	nthRatings := make(map[int][]float64)
	for _, daySessions := range byDate {
		sort.SliceStable(daySessions, func(i, j int) bool { return daySessions[i].Hour < daySessions[j].Hour })
		for i, s := range daySessions {
			if r, ok := s.Rating(); ok {
				nthRatings[i+1] = append(nthRatings[i+1], r)
			}
		}
	}

	next := sessionsToday + 1
	if ratings := nthRatings[next]; len(ratings) > 0 {
		return mean(ratings), minF(1.0, float64(len(ratings))/5)
	}

	fatigueDefaults := map[int]float64{1: 75, 2: 80, 3: 78, 4: 72, 5: 68, 6: 62, 7: 55, 8: 50}
	if score, ok := fatigueDefaults[next]; ok {
		return score, 0.1
	}
	return maxF(45.0, 80-float64(next)*5), 0.1
}

// recoveryScore is a step function of the break length before this session.
func (q *QualityPredictor) recoveryScore(minutesSinceLast *int) (float64, float64) {
	if minutesSinceLast == nil {
		return 75.0, 0.1 // first session of the day
	}
	m := *minutesSinceLast
	switch {
	case m < 5:
		return 55.0, 0.5
	case m < 15:
		return 68.0, 0.5
	case m <= 30:
		return 82.0, 0.6 // optimal
	case m <= 60:
		return 80.0, 0.5
	case m <= 120:
		return 75.0, 0.4
	case m <= 240:
		return 70.0, 0.3
	default:
		return 65.0, 0.2
	}
}

// Predict computes the weighted six-factor forecast.
func (q *QualityPredictor) Predict(in QualityInput) QualityPrediction {
	hourScore, hourConf := q.hourScore(in.Hour)
	dayScore, dayConf := q.dayScore(in.Day)
	presetScore, presetConf := q.presetScore(in.Preset, in.Hour)
	categoryScore, categoryConf := q.categoryScore(in.Category, in.Hour)
	fatigueScore, fatigueConf := q.fatigueScore(in.SessionsToday)
	recoveryScore, recoveryConf := q.recoveryScore(in.MinutesSinceLast)

	scores := map[string]float64{
		"hour":     hourScore,
		"day":      dayScore,
		"preset":   presetScore,
		"category": categoryScore,
		"fatigue":  fatigueScore,
		"recovery": recoveryScore,
	}
	confidences := map[string]float64{
		"hour":     hourConf,
		"day":      dayConf,
		"preset":   presetConf,
		"category": categoryConf,
		"fatigue":  fatigueConf,
		"recovery": recoveryConf,
	}

	var predicted, confidence float64
	factorScores := make(map[string]FactorScore, len(scores))
	for factor, weight := range qualityWeights {
		predicted += scores[factor] * weight
		confidence += confidences[factor] * weight
		factorScores[factor] = FactorScore{
			Score:      round1(scores[factor]),
			Confidence: round2(confidences[factor]),
			Weight:     weight,
		}
	}

	return QualityPrediction{
		PredictedProductivity: round1(predicted),
		Confidence:            round2(confidence),
		Context: QualityContext{
			Hour:             in.Hour,
			DayOfWeek:        in.Day,
			DayName:          session.DayName(in.Day),
			Preset:           in.Preset,
			PresetName:       in.Preset.DisplayName(),
			Category:         in.Category,
			SessionsToday:    in.SessionsToday,
			MinutesSinceLast: in.MinutesSinceLast,
		},
		FactorScores:          factorScores,
		Factors:               q.factors(scores, in),
		Recommendation:        q.recommendation(predicted, scores, in),
		TotalSessionsAnalyzed: len(q.completed),
	}
}

// factors derives up to 5 ranked explanatory factors from threshold rules.
func (q *QualityPredictor) factors(scores map[string]float64, in QualityInput) []QualityFactor {
	factors := []QualityFactor{}

	if scores["hour"] >= 75 {
		impact := "medium"
		if scores["hour"] >= 80 {
			impact = "high"
		}
		factors = append(factors, QualityFactor{
			Type:        "positive",
			Name:        "Vhodná denní doba",
			Description: fmt.Sprintf("Obvykle %.0f%% produktivita v tuto hodinu", scores["hour"]),
			Impact:      impact,
		})
	}

	if scores["preset"] >= 75 {
		factors = append(factors, QualityFactor{
			Type:        "positive",
			Name:        fmt.Sprintf("Dobré výsledky s %s", in.Preset.DisplayName()),
			Description: fmt.Sprintf("Průměrně %.0f%% produktivita", scores["preset"]),
			Impact:      "medium",
		})
	}

	if scores["recovery"] >= 80 {
		factors = append(factors, QualityFactor{
			Type:        "positive",
			Name:        "Optimální pauza",
			Description: "Dobré zotavení od poslední session",
			Impact:      "medium",
		})
	}

	if scores["hour"] < 60 {
		factors = append(factors, QualityFactor{
			Type:        "negative",
			Name:        "Nevhodná denní doba",
			Description: fmt.Sprintf("Obvykle nižší produktivita (%.0f%%)", scores["hour"]),
			Impact:      "high",
		})
	}

	if scores["fatigue"] < 65 {
		impact := "medium"
		if scores["fatigue"] < 55 {
			impact = "high"
		}
		factors = append(factors, QualityFactor{
			Type:        "negative",
			Name:        "Únava z předchozích sessions",
			Description: fmt.Sprintf("Session č. %d - očekávaná únava", in.SessionsToday+1),
			Impact:      impact,
		})
	}

	if scores["recovery"] < 65 && in.MinutesSinceLast != nil {
		factors = append(factors, QualityFactor{
			Type:        "negative",
			Name:        "Nedostatečná pauza",
			Description: fmt.Sprintf("Pouze %d minut od poslední session", *in.MinutesSinceLast),
			Impact:      "medium",
		})
	}

	if scores["day"] < 60 {
		factors = append(factors, QualityFactor{
			Type:        "negative",
			Name:        "Méně produktivní den",
			Description: "Historicky nižší výkon v tento den",
			Impact:      "low",
		})
	}

	impactOrder := map[string]int{"high": 0, "medium": 1, "low": 2}
	sort.SliceStable(factors, func(i, j int) bool {
		return impactOrder[factors[i].Impact] < impactOrder[factors[j].Impact]
	})
	if len(factors) > 5 {
		factors = factors[:5]
	}
	return factors
}

// recommendation walks the priority-ordered decision tree.
func (q *QualityPredictor) recommendation(predicted float64, scores map[string]float64, in QualityInput) QualityRecommendation {
	if predicted >= 75 {
		return QualityRecommendation{Type: "positive", Message: "Ideální čas pro práci!", Icon: "🚀"}
	}

	if predicted >= 60 {
		if scores["fatigue"] < 65 {
			return QualityRecommendation{
				Type:    "warning",
				Message: "Zvyš si motivaci - máš za sebou několik sessions",
				Action:  "Zkus kratší preset nebo si dej delší pauzu",
				Icon:    "💪",
			}
		}
		if scores["recovery"] < 70 {
			return QualityRecommendation{
				Type:    "warning",
				Message: "Odpočiň si ještě chvíli",
				Action:  "Doporučená pauza: ještě 10-15 minut",
				Icon:    "☕",
			}
		}
		return QualityRecommendation{Type: "neutral", Message: "Průměrná očekávaná produktivita", Icon: "👍"}
	}

	if scores["hour"] < 60 {
		return QualityRecommendation{
			Type:    "negative",
			Message: "Tato hodina není tvůj peak time",
			Action:  "Zkus naplánovat práci na jiný čas",
			Icon:    "⚠️",
		}
	}

	if in.SessionsToday >= 6 {
		return QualityRecommendation{
			Type:    "negative",
			Message: "Možná je čas na delší odpočinek",
			Action:  "Doporučuji přestávku nebo dokončit den",
			Icon:    "🛑",
		}
	}

	if scores["preset"] < 60 {
		var best session.Preset
		bestScore := scores["preset"]
		for _, p := range session.AllPresets {
			if p == in.Preset {
				continue
			}
			if score, _ := q.presetScore(p, in.Hour); score > bestScore {
				best = p
				bestScore = score
			}
		}
		if best != "" {
			return QualityRecommendation{
				Type:    "suggestion",
				Message: "Zkus změnit preset",
				Action:  fmt.Sprintf("Doporučuji: %s", best.DisplayName()),
				Icon:    "💡",
			}
		}
	}

	return QualityRecommendation{
		Type:    "neutral",
		Message: "Nižší očekávaná produktivita",
		Action:  "Přizpůsob očekávání nebo změň podmínky",
		Icon:    "📊",
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
