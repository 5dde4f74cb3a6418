package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

const (
	burnoutPeriodDays  = 14
	nightHourThreshold = 21
	minBurnoutSessions = 5
)

// burnoutRecommendations holds ordered suggestions per risk factor. Only the
// first entry of each triggered factor makes it into the assessment.
var burnoutRecommendations = map[string][]string{
	"declining_productivity": {
		"Zkuste kratší work sessions (25 min standard místo 52 min deep work)",
		"Naplánujte si 2-3 dny s menším počtem sessions",
		"Změňte kategorii práce pro oživení motivace",
	},
	"overwork": {
		"Snižte denní počet sessions",
		"Dodržujte plánované přestávky",
		"Stanovte si pevný konec pracovního dne",
	},
	"night_sessions": {
		"Vyhněte se práci po 21:00 - narušuje spánkový cyklus",
		"Přesuňte večerní úkoly na ranní hodiny",
		"Nastavte si 'digital sunset' v 21:00",
	},
	"weekend_work": {
		"Rezervujte si alespoň jeden víkendový den bez práce",
		"Víkendová práce zvyšuje riziko vyhoření o 40%",
		"Plánujte víkendy předem jako čas odpočinku",
	},
	"variability": {
		"Zkuste standardizovat denní rutinu",
		"Zaměřte se na konzistentní pracovní bloky",
		"Sledujte, co způsobuje výkyvy produktivity",
	},
	"continuous_days": {
		"Naplánujte si den odpočinku",
		"Každých 5-6 dní si dejte volno",
		"Odpočinek zvyšuje dlouhodobou produktivitu",
	},
}

var burnoutFactorNames = map[string]string{
	"declining_productivity": "Klesající produktivita",
	"overwork":               "Přepracování",
	"night_sessions":         "Noční práce",
	"weekend_work":           "Víkendová práce",
	"variability":            "Nestabilní produktivita",
	"continuous_days":        "Nepřetržitá práce",
}

// burnoutFactorOrder fixes the factor evaluation and tie-break order.
var burnoutFactorOrder = []string{
	"declining_productivity",
	"overwork",
	"night_sessions",
	"weekend_work",
	"variability",
	"continuous_days",
}

type burnoutFactor struct {
	score    int
	severity string
	value    float64
	details  string
}

// BurnoutPredictor scores burnout risk over the last 14 days of sessions.
type BurnoutPredictor struct {
	all       []session.Session
	recent    []session.Session
	dailyProd map[string][]float64
	allDates  map[string]struct{}
	today     time.Time
}

// NewBurnoutPredictor keeps the full history for baselines and pre-buckets
// the 14-day window ending at today.
func NewBurnoutPredictor(sessions []session.Session, today time.Time) *BurnoutPredictor {
	p := &BurnoutPredictor{
		all:       sessions,
		dailyProd: make(map[string][]float64),
		allDates:  make(map[string]struct{}),
		today:     today,
	}

	cutoff := today.AddDate(0, 0, -burnoutPeriodDays).Format(session.DateLayout)
	todayStr := today.Format(session.DateLayout)

	for _, s := range sessions {
		date := s.DateString()
		if date == "" || date < cutoff || date > todayStr {
			continue
		}
		p.recent = append(p.recent, s)
		p.allDates[date] = struct{}{}
		if r, ok := s.Rating(); ok {
			p.dailyProd[date] = append(p.dailyProd[date], r)
		}
	}
	return p
}

// Assess returns the complete risk assessment.
func (p *BurnoutPredictor) Assess() BurnoutAssessment {
	period := fmt.Sprintf("%d days", burnoutPeriodDays)

	if len(p.recent) < minBurnoutSessions {
		return BurnoutAssessment{
			RiskScore:   0,
			RiskLevel:   "unknown",
			RiskFactors: []RiskFactor{},
			Recommendations: []string{
				"Sbírejte více dat pro analýzu rizika vyhoření (minimum 5 sessions)",
			},
			Confidence:            0.0,
			AnalyzedPeriod:        period,
			TotalSessionsAnalyzed: len(p.recent),
			Message:               "Nedostatek dat pro predikci",
		}
	}

	factors := map[string]burnoutFactor{
		"declining_productivity": p.productivityTrend(),
		"overwork":               p.overwork(),
		"night_sessions":         p.nightSessions(),
		"weekend_work":           p.weekendWork(),
		"variability":            p.variability(),
		"continuous_days":        p.continuousDays(),
	}

	total := 0
	for _, f := range factors {
		total += f.score
	}
	if total > 100 {
		total = 100
	}

	return BurnoutAssessment{
		RiskScore:             total,
		RiskLevel:             riskLevel(total),
		RiskFactors:           formatRiskFactors(factors),
		Recommendations:       riskRecommendations(factors),
		Confidence:            sampleConfidence(len(p.recent)),
		AnalyzedPeriod:        period,
		TotalSessionsAnalyzed: len(p.recent),
	}
}

// productivityTrend compares the last 7 days of ratings against the 7 days
// before them. Max 25 points.
func (p *BurnoutPredictor) productivityTrend() burnoutFactor {
	if len(p.dailyProd) == 0 {
		return burnoutFactor{severity: "none", details: "Žádná data o produktivitě"}
	}

	weekAgo := p.today.AddDate(0, 0, -7).Format(session.DateLayout)
	twoWeeksAgo := p.today.AddDate(0, 0, -14).Format(session.DateLayout)

	var recent, older []float64
	for date, ratings := range p.dailyProd {
		switch {
		case date >= weekAgo:
			recent = append(recent, ratings...)
		case date >= twoWeeksAgo:
			older = append(older, ratings...)
		}
	}

	if len(recent) == 0 || len(older) == 0 {
		return burnoutFactor{severity: "none", details: "Nedostatek dat pro trend"}
	}

	olderAvg := mean(older)
	if olderAvg == 0 {
		return burnoutFactor{severity: "none", details: "Nedostatek historických dat"}
	}
	decline := (olderAvg - mean(recent)) / olderAvg

	var score int
	severity := "none"
	switch {
	case decline > 0.20:
		score, severity = 25, "high"
	case decline > 0.10:
		score, severity = 15, "medium"
	case decline > 0.05:
		score, severity = 8, "low"
	}

	details := "Produktivita je stabilní"
	if decline > 0.05 {
		details = fmt.Sprintf("Produktivita klesla o %.0f%% za poslední týden", decline*100)
	}
	return burnoutFactor{score: score, severity: severity, value: round1(decline * 100), details: details}
}

// overwork compares last-7-days daily session count against the lifetime
// daily average. Max 20 points.
func (p *BurnoutPredictor) overwork() burnoutFactor {
	var completed []session.Session
	for _, s := range p.all {
		if s.Completed {
			completed = append(completed, s)
		}
	}
	if len(completed) < 10 {
		return burnoutFactor{severity: "none", value: 1.0, details: "Nedostatek historických dat"}
	}

	allDates := make(map[string]struct{})
	for _, s := range completed {
		if date := s.DateString(); date != "" {
			allDates[date] = struct{}{}
		}
	}
	if len(allDates) == 0 {
		return burnoutFactor{severity: "none", value: 1.0, details: "Žádná data"}
	}
	historicalAvg := float64(len(completed)) / float64(len(allDates))

	weekAgo := p.today.AddDate(0, 0, -7).Format(session.DateLayout)
	recentCount := 0
	recentDates := make(map[string]struct{})
	for _, s := range p.recent {
		if date := s.DateString(); date >= weekAgo {
			recentCount++
			recentDates[date] = struct{}{}
		}
	}
	if len(recentDates) == 0 {
		return burnoutFactor{severity: "none", value: 1.0, details: "Žádné nedávné sessions"}
	}

	ratio := (float64(recentCount) / float64(len(recentDates))) / historicalAvg

	var score int
	severity := "none"
	switch {
	case ratio > 2.0:
		score, severity = 20, "high"
	case ratio > 1.5:
		score, severity = 12, "medium"
	case ratio > 1.2:
		score, severity = 6, "low"
	}

	details := "Pracovní zátěž je normální"
	if ratio > 1.2 {
		details = fmt.Sprintf("Pracujete %.0f%% oproti vašemu průměru", ratio*100)
	}
	return burnoutFactor{score: score, severity: severity, value: round2(ratio), details: details}
}

// nightSessions scores the share of sessions at or after 21:00. Max 15 points.
func (p *BurnoutPredictor) nightSessions() burnoutFactor {
	night := 0
	for _, s := range p.recent {
		if s.Hour >= nightHourThreshold {
			night++
		}
	}
	ratio := float64(night) / float64(len(p.recent))

	var score int
	severity := "none"
	switch {
	case ratio > 0.30:
		score, severity = 15, "high"
	case ratio > 0.20:
		score, severity = 10, "medium"
	case ratio > 0.10:
		score, severity = 5, "low"
	}

	details := "Málo nočních sessions"
	if ratio > 0.10 {
		details = fmt.Sprintf("%.0f%% sessions po 21:00", ratio*100)
	}
	return burnoutFactor{score: score, severity: severity, value: round1(ratio * 100), details: details}
}

// weekendWork scores the share of Saturday and Sunday sessions. Max 15 points.
func (p *BurnoutPredictor) weekendWork() burnoutFactor {
	weekend := 0
	for _, s := range p.recent {
		if s.DayOfWeek == 5 || s.DayOfWeek == 6 {
			weekend++
		}
	}
	ratio := float64(weekend) / float64(len(p.recent))

	var score int
	severity := "none"
	switch {
	case ratio > 0.40:
		score, severity = 15, "high"
	case ratio > 0.25:
		score, severity = 10, "medium"
	case ratio > 0.10:
		score, severity = 5, "low"
	}

	details := "Minimální víkendová práce"
	if ratio > 0.10 {
		details = fmt.Sprintf("%.0f%% sessions o víkendu", ratio*100)
	}
	return burnoutFactor{score: score, severity: severity, value: round1(ratio * 100), details: details}
}

// variability scores the population standard deviation of recent ratings.
// Max 15 points.
func (p *BurnoutPredictor) variability() burnoutFactor {
	var ratings []float64
	for _, dayRatings := range p.dailyProd {
		ratings = append(ratings, dayRatings...)
	}
	if len(ratings) < 3 {
		return burnoutFactor{severity: "none", details: "Nedostatek dat"}
	}

	stdDev := popStdDev(ratings)

	var score int
	severity := "none"
	switch {
	case stdDev > 25:
		score, severity = 15, "high"
	case stdDev > 15:
		score, severity = 10, "medium"
	case stdDev > 8:
		score, severity = 5, "low"
	}

	details := "Stabilní produktivita"
	if stdDev > 8 {
		details = fmt.Sprintf("Variabilita produktivity: %.1f", stdDev)
	}
	return burnoutFactor{score: score, severity: severity, value: round1(stdDev), details: details}
}

// continuousDays scores the longest run of consecutive work days. Max 10
// points.
func (p *BurnoutPredictor) continuousDays() burnoutFactor {
	if len(p.allDates) == 0 {
		return burnoutFactor{severity: "none", details: "Žádná data"}
	}

	dates := make([]string, 0, len(p.allDates))
	for d := range p.allDates {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	maxStreak, streak := 1, 1
	for i := 1; i < len(dates); i++ {
		prev, err1 := time.Parse(session.DateLayout, dates[i-1])
		curr, err2 := time.Parse(session.DateLayout, dates[i])
		if err1 != nil || err2 != nil {
			continue
		}
		if int(curr.Sub(prev).Hours()/24) == 1 {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 1
		}
	}

	var score int
	severity := "none"
	switch {
	case maxStreak > 14:
		score, severity = 10, "high"
	case maxStreak > 10:
		score, severity = 7, "medium"
	case maxStreak > 7:
		score, severity = 4, "low"
	}

	details := "Odpočíváte pravidelně"
	if maxStreak > 7 {
		details = fmt.Sprintf("%d dní bez pauzy", maxStreak)
	}
	return burnoutFactor{score: score, severity: severity, value: float64(maxStreak), details: details}
}

func riskLevel(score int) string {
	switch {
	case score <= 25:
		return "low"
	case score <= 50:
		return "medium"
	case score <= 75:
		return "high"
	default:
		return "critical"
	}
}

// formatRiskFactors returns non-zero factors sorted by score descending,
// stable on the fixed factor order.
func formatRiskFactors(factors map[string]burnoutFactor) []RiskFactor {
	formatted := []RiskFactor{}
	for _, key := range burnoutFactorOrder {
		f := factors[key]
		if f.score == 0 {
			continue
		}
		formatted = append(formatted, RiskFactor{
			Factor:   key,
			Name:     burnoutFactorNames[key],
			Severity: f.severity,
			Score:    f.score,
			Value:    f.value,
			Message:  f.details,
		})
	}
	sort.SliceStable(formatted, func(i, j int) bool { return formatted[i].Score > formatted[j].Score })
	return formatted
}

// riskRecommendations picks the lead suggestion of up to 3 triggered factors.
func riskRecommendations(factors map[string]burnoutFactor) []string {
	type scored struct {
		key   string
		score int
	}
	var triggered []scored
	for _, key := range burnoutFactorOrder {
		if factors[key].score > 0 {
			triggered = append(triggered, scored{key, factors[key].score})
		}
	}
	sort.SliceStable(triggered, func(i, j int) bool { return triggered[i].score > triggered[j].score })

	recs := []string{}
	for _, t := range triggered {
		recs = append(recs, burnoutRecommendations[t.key][0])
		if len(recs) >= 3 {
			break
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Pokračujte v dobrém pracovním rytmu!")
	}
	return recs
}
