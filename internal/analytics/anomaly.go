package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

const (
	baselineDays   = 14
	recentDays     = 3
	minAnomalyDays = 7
)

// Z-score severity thresholds.
const (
	zLow      = 1.5
	zMedium   = 2.0
	zHigh     = 2.5
	zCritical = 3.0
)

var anomalyNames = map[string]string{
	"productivity_drop": "Pokles produktivity",
	"unusual_hours":     "Neobvykle hodiny",
	"category_shift":    "Zmena kategorii",
	"streak_break":      "Preruseny streak",
	"overwork_spike":    "Narust intenzity",
	"quality_decline":   "Pokles kvality",
}

var anomalyIcons = map[string]string{
	"productivity_drop": "📉",
	"unusual_hours":     "🌙",
	"category_shift":    "🔄",
	"streak_break":      "💔",
	"overwork_spike":    "🔥",
	"quality_decline":   "⚠️",
}

// anomalyTips holds per-type suggestions. The first is the anomaly's own
// recommendation, the rest feed the proactive tips list.
var anomalyTips = map[string][]string{
	"productivity_drop": {
		"Zvaz delsi prestavky mezi sessions",
		"Zkus zmenit prostredi",
		"Mozna potrebujes odpocinek",
	},
	"unusual_hours": {
		"Udrzuj pravidelny rozvrh",
		"Nocni prace snizuje produktivitu",
		"Zkus se vratit ke svym obvyklym hodinam",
	},
	"category_shift": {
		"Sleduj, zda ti nova kategorie vyhovuje",
		"Mozna je cas diverzifikovat ukoly",
	},
	"streak_break": {
		"Nevadi, kazdy potrebuje pauzu",
		"Zkus zacit s kratkou session",
		"Nastav si maly cil pro dnesek",
	},
	"overwork_spike": {
		"Dej si pozor na vycerpani",
		"Kvalita je dulezitejsi nez kvantita",
		"Nezapomen na prestavky",
	},
	"quality_decline": {
		"Mozna je cas na zmenu",
		"Zkus kratsi sessions",
		"Zvaz jiny typ ukolu",
	},
}

// anomalyBaseline carries the 14-day reference statistics.
type anomalyBaseline struct {
	avgProductivity   float64
	stdProductivity   float64
	avgSessionsPerDay float64
	stdSessionsPerDay float64
	typicalHours      TypicalHours
	categoryDist      map[string]float64
	topCategory       string
	totalSessions     int
	uniqueDays        int
}

// AnomalyDetector finds unusual behavior patterns against a rolling baseline.
type AnomalyDetector struct {
	sessions []session.Session
	today    time.Time
	baseline *anomalyBaseline
}

// NewAnomalyDetector builds the baseline over the last 14 days. With fewer
// than 5 baseline sessions the baseline stays nil and the Z-score detectors
// sit out.
func NewAnomalyDetector(sessions []session.Session, today time.Time) *AnomalyDetector {
	d := &AnomalyDetector{sessions: sessions, today: today}
	d.buildBaseline()
	return d
}

func (d *AnomalyDetector) buildBaseline() {
	baseline := d.lastNDays(baselineDays)
	if len(baseline) < 5 {
		return
	}

	var ratings, hours []float64
	var categories []string
	perDay := make(map[string]int)
	for _, s := range baseline {
		if r, ok := s.Rating(); ok {
			ratings = append(ratings, r)
		}
		hours = append(hours, float64(s.Hour))
		cat := s.Category
		if cat == "" {
			cat = "Unknown"
		}
		categories = append(categories, cat)
		if date := s.DateString(); date != "" {
			perDay[date]++
		}
	}

	b := &anomalyBaseline{
		avgProductivity:   70.0,
		stdProductivity:   10.0,
		avgSessionsPerDay: 3.0,
		stdSessionsPerDay: 1.0,
		typicalHours:      hourIQR(hours),
		categoryDist:      distribution(categories),
		topCategory:       topCategory(categories),
		totalSessions:     len(baseline),
		uniqueDays:        len(perDay),
	}
	if len(ratings) > 0 {
		b.avgProductivity = mean(ratings)
	}
	if len(ratings) > 1 {
		b.stdProductivity = sampleStdDev(ratings)
	}
	if len(perDay) > 0 {
		counts := make([]float64, 0, len(perDay))
		for _, c := range perDay {
			counts = append(counts, float64(c))
		}
		b.avgSessionsPerDay = mean(counts)
		if len(counts) > 1 {
			b.stdSessionsPerDay = sampleStdDev(counts)
		}
	}
	d.baseline = b
}

// hourIQR derives the typical working window from the hour distribution.
func hourIQR(hours []float64) TypicalHours {
	if len(hours) == 0 {
		return TypicalHours{Q1: 8, Q3: 18, Min: 6, Max: 22, Median: 13}
	}

	sorted := append([]float64(nil), hours...)
	sort.Float64s(sorted)
	n := len(sorted)

	q1 := sorted[n/4]
	q3 := sorted[(3*n)/4]
	iqr := q3 - q1

	var med float64
	if n%2 == 1 {
		med = sorted[n/2]
	} else {
		med = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return TypicalHours{
		Q1:     q1,
		Q3:     q3,
		Min:    maxF(0, q1-1.5*iqr),
		Max:    minF(23, q3+1.5*iqr),
		Median: med,
	}
}

func distribution(values []string) map[string]float64 {
	if len(values) == 0 {
		return map[string]float64{}
	}
	dist := make(map[string]float64, len(values))
	for _, v := range values {
		dist[v]++
	}
	total := float64(len(values))
	for k := range dist {
		dist[k] /= total
	}
	return dist
}

// topCategory is the modal category, ties broken alphabetically.
func topCategory(categories []string) string {
	counts := make(map[string]int)
	for _, c := range categories {
		counts[c]++
	}
	best, bestCount := "", -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

func (d *AnomalyDetector) lastNDays(n int) []session.Session {
	cutoff := d.today.AddDate(0, 0, -n).Format(session.DateLayout)
	var result []session.Session
	for _, s := range d.sessions {
		if date := s.DateString(); date != "" && date >= cutoff {
			result = append(result, s)
		}
	}
	return result
}

func severityFromZ(z float64) string {
	abs := z
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= zCritical:
		return "critical"
	case abs >= zHigh:
		return "high"
	case abs >= zMedium:
		return "medium"
	case abs >= zLow:
		return "low"
	default:
		return ""
	}
}

// Detect runs all detectors and assembles the full report.
func (d *AnomalyDetector) Detect() AnomalyReport {
	uniqueDays := make(map[string]struct{})
	for _, s := range d.sessions {
		if date := s.DateString(); date != "" {
			uniqueDays[date] = struct{}{}
		}
	}

	if len(uniqueDays) < minAnomalyDays {
		return AnomalyReport{
			AnomaliesDetected:     0,
			OverallStatus:         "insufficient_data",
			Anomalies:             []Anomaly{},
			ProactiveTips:         []ProactiveTip{},
			Message:               fmt.Sprintf("Potrebuji alespon %d dni dat pro analyzu", minAnomalyDays),
			Confidence:            0.0,
			TotalSessionsAnalyzed: len(d.sessions),
			UniqueDays:            len(uniqueDays),
		}
	}

	var anomalies []Anomaly
	detectors := []func() *Anomaly{
		d.productivityDrop,
		d.unusualHours,
		d.categoryShift,
		d.streakBreak,
		d.overworkSpike,
		d.qualityDecline,
	}
	for _, detect := range detectors {
		if a := detect(); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	if anomalies == nil {
		anomalies = []Anomaly{}
	}

	confidence := minF(0.9, 0.3+(float64(len(uniqueDays))/30)*0.4+(float64(len(d.sessions))/100)*0.2)

	return AnomalyReport{
		AnomaliesDetected:     len(anomalies),
		OverallStatus:         overallStatus(anomalies),
		Anomalies:             anomalies,
		ProactiveTips:         proactiveTips(anomalies),
		BaselineSummary:       d.baselineSummary(),
		Patterns:              d.patterns(),
		Confidence:            round2(confidence),
		TotalSessionsAnalyzed: len(d.sessions),
		UniqueDays:            len(uniqueDays),
	}
}

// productivityDrop fires when the 3-day rating mean sits more than 1.5
// baseline deviations below the 14-day mean.
func (d *AnomalyDetector) productivityDrop() *Anomaly {
	if d.baseline == nil {
		return nil
	}

	var ratings []float64
	for _, s := range d.lastNDays(recentDays) {
		if r, ok := s.Rating(); ok {
			ratings = append(ratings, r)
		}
	}
	if len(ratings) < 2 {
		return nil
	}

	recentAvg := mean(ratings)
	z := zScore(recentAvg, d.baseline.avgProductivity, d.baseline.stdProductivity)
	if z >= -zLow {
		return nil
	}

	change := (recentAvg - d.baseline.avgProductivity) / d.baseline.avgProductivity * 100
	absChange := change
	if absChange < 0 {
		absChange = -absChange
	}

	points := ratings
	if len(points) > 5 {
		points = points[len(points)-5:]
	}
	rounded := make([]float64, len(points))
	for i, r := range points {
		rounded[i] = round1(r)
	}

	return &Anomaly{
		Type:           "productivity_drop",
		Name:           anomalyNames["productivity_drop"],
		Severity:       severityFromZ(z),
		ZScore:         floatPtr(round2(z)),
		CurrentValue:   floatPtr(round1(recentAvg)),
		BaselineValue:  floatPtr(round1(d.baseline.avgProductivity)),
		ChangePercent:  floatPtr(round1(change)),
		Description:    fmt.Sprintf("Produktivita klesla o %.0f%% za posledni %d dny", absChange, recentDays),
		Recommendation: anomalyTips["productivity_drop"][0],
		Icon:           anomalyIcons["productivity_drop"],
		Evidence: AnomalyEvidence{
			Period:     fmt.Sprintf("last_%d_days", recentDays),
			DataPoints: rounded,
		},
	}
}

// unusualHours fires on 2+ recent sessions outside the IQR fence.
func (d *AnomalyDetector) unusualHours() *Anomaly {
	if d.baseline == nil {
		return nil
	}

	recent := d.lastNDays(recentDays)
	if len(recent) == 0 {
		return nil
	}

	typical := d.baseline.typicalHours
	var unusual []string
	for _, s := range recent {
		h := float64(s.Hour)
		if h < typical.Min || h > typical.Max {
			unusual = append(unusual, fmt.Sprintf("%02d:00", s.Hour))
		}
	}
	if len(unusual) < 2 {
		return nil
	}

	severity := "medium"
	if len(unusual) == 2 {
		severity = "low"
	}
	normalRange := fmt.Sprintf("%d:00 - %d:00", int(typical.Q1), int(typical.Q3))
	if len(unusual) > 5 {
		unusual = unusual[:5]
	}

	return &Anomaly{
		Type:           "unusual_hours",
		Name:           anomalyNames["unusual_hours"],
		Severity:       severity,
		Description:    fmt.Sprintf("Pracujes mimo svuj obvykly rozvrh (%s)", normalRange),
		Recommendation: anomalyTips["unusual_hours"][0],
		Icon:           anomalyIcons["unusual_hours"],
		Evidence: AnomalyEvidence{
			NormalRange:     normalRange,
			UnusualSessions: unusual,
		},
	}
}

// categoryShift fires when any category's 7-day share moved more than 30
// points from its baseline share.
func (d *AnomalyDetector) categoryShift() *Anomaly {
	if d.baseline == nil || len(d.baseline.categoryDist) == 0 {
		return nil
	}

	var recentCategories []string
	for _, s := range d.lastNDays(7) {
		if s.Category != "" {
			recentCategories = append(recentCategories, s.Category)
		}
	}
	if len(recentCategories) < 3 {
		return nil
	}

	recentDist := distribution(recentCategories)

	keys := make(map[string]struct{})
	for k := range recentDist {
		keys[k] = struct{}{}
	}
	for k := range d.baseline.categoryDist {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var maxShift float64
	var shifted string
	for _, cat := range sorted {
		shift := recentDist[cat] - d.baseline.categoryDist[cat]
		if shift < 0 {
			shift = -shift
		}
		if shift > maxShift {
			maxShift, shifted = shift, cat
		}
	}
	if maxShift <= 0.30 {
		return nil
	}

	evidenceDist := make(map[string]float64, len(recentDist))
	for k, v := range recentDist {
		evidenceDist[k] = round1(v * 100)
	}

	return &Anomaly{
		Type:           "category_shift",
		Name:           anomalyNames["category_shift"],
		Severity:       "low",
		Category:       shifted,
		ChangePercent:  floatPtr(round1(maxShift * 100)),
		Description:    fmt.Sprintf("Zmena v preferenci kategorii: %s (%.0f%%)", shifted, maxShift*100),
		Recommendation: anomalyTips["category_shift"][0],
		Icon:           anomalyIcons["category_shift"],
		Evidence: AnomalyEvidence{
			BaselineTop:        d.baseline.topCategory,
			RecentDistribution: evidenceDist,
		},
	}
}

// streakBreak fires when a 7+ day streak ended with a 2+ day gap within the
// last week. The reported gap is the actual gap length, not a floor.
func (d *AnomalyDetector) streakBreak() *Anomaly {
	if len(d.sessions) < 7 {
		return nil
	}

	dateSet := make(map[string]struct{})
	for _, s := range d.sessions {
		if date := s.DateString(); date != "" {
			dateSet[date] = struct{}{}
		}
	}
	if len(dateSet) == 0 {
		return nil
	}

	var dates []time.Time
	for ds := range dateSet {
		if t, err := time.Parse(session.DateLayout, ds); err == nil {
			dates = append(dates, t)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	streak := 0
	var streakBeforeGap, gapDays int
	var gapStart time.Time
	for i := 0; i < len(dates)-1; i++ {
		diff := int(dates[i+1].Sub(dates[i]).Hours() / 24)
		if diff == 1 {
			streak++
			continue
		}
		if streak >= 6 && diff-1 >= 2 {
			streakBeforeGap = streak + 1
			gapDays = diff - 1
			gapStart = dates[i].AddDate(0, 0, 1)
		}
		streak = 0
	}
	if streakBeforeGap < 7 {
		return nil
	}

	daysSinceGap := int(d.today.Sub(gapStart).Hours() / 24)
	if daysSinceGap > 7 {
		return nil
	}

	severity := "low"
	if streakBeforeGap >= 10 {
		severity = "medium"
	}

	return &Anomaly{
		Type:           "streak_break",
		Name:           anomalyNames["streak_break"],
		Severity:       severity,
		StreakDays:     streakBeforeGap,
		GapDays:        gapDays,
		Description:    fmt.Sprintf("Vynechano %d dnu po %d-dennim streaku", gapDays, streakBeforeGap),
		Recommendation: anomalyTips["streak_break"][0],
		Icon:           anomalyIcons["streak_break"],
		Evidence: AnomalyEvidence{
			StreakLength: streakBeforeGap,
			GapStart:     gapStart.Format(session.DateLayout),
		},
	}
}

// overworkSpike fires when the 3-day daily session count exceeds 150% of
// baseline.
func (d *AnomalyDetector) overworkSpike() *Anomaly {
	if d.baseline == nil {
		return nil
	}

	perDay := make(map[string]int)
	for _, s := range d.lastNDays(recentDays) {
		if date := s.DateString(); date != "" {
			perDay[date]++
		}
	}
	if len(perDay) == 0 {
		return nil
	}

	counts := make([]float64, 0, len(perDay))
	for _, c := range perDay {
		counts = append(counts, float64(c))
	}
	recentAvg := mean(counts)

	ratio := 1.0
	if d.baseline.avgSessionsPerDay > 0 {
		ratio = recentAvg / d.baseline.avgSessionsPerDay
	}
	if ratio <= 1.5 {
		return nil
	}

	severity := "low"
	if ratio > 2.0 {
		severity = "medium"
	}

	return &Anomaly{
		Type:           "overwork_spike",
		Name:           anomalyNames["overwork_spike"],
		Severity:       severity,
		Ratio:          int(ratio*100 + 0.5),
		CurrentValue:   floatPtr(round1(recentAvg)),
		BaselineValue:  floatPtr(round1(d.baseline.avgSessionsPerDay)),
		Description:    fmt.Sprintf("Pracujes %.0f%% vice nez obvykle", ratio*100),
		Recommendation: anomalyTips["overwork_spike"][0],
		Icon:           anomalyIcons["overwork_spike"],
		Evidence: AnomalyEvidence{
			RecentSessionsPerDay:   floatPtr(round1(recentAvg)),
			BaselineSessionsPerDay: floatPtr(round1(d.baseline.avgSessionsPerDay)),
		},
	}
}

// qualityDecline fires on 3+ consecutive below-baseline ratings at the tail
// of the last 7 days.
func (d *AnomalyDetector) qualityDecline() *Anomaly {
	if d.baseline == nil {
		return nil
	}

	var rated []session.Session
	for _, s := range d.lastNDays(7) {
		if s.Rated() {
			rated = append(rated, s)
		}
	}
	if len(rated) < 3 {
		return nil
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].DateString() != rated[j].DateString() {
			return rated[i].DateString() < rated[j].DateString()
		}
		return rated[i].Hour < rated[j].Hour
	})

	baselineAvg := d.baseline.avgProductivity
	consecutive := 0
	for i := len(rated) - 1; i >= 0; i-- {
		r, _ := rated[i].Rating()
		if r >= baselineAvg {
			break
		}
		consecutive++
	}
	if consecutive < 3 {
		return nil
	}

	tail := rated[len(rated)-consecutive:]
	ratings := make([]float64, len(tail))
	for i, s := range tail {
		r, _ := s.Rating()
		ratings[i] = round1(r)
	}

	severity := "low"
	if consecutive >= 5 {
		severity = "medium"
	}

	return &Anomaly{
		Type:             "quality_decline",
		Name:             anomalyNames["quality_decline"],
		Severity:         severity,
		ConsecutiveCount: consecutive,
		CurrentValue:     floatPtr(round1(mean(ratings))),
		BaselineValue:    floatPtr(round1(baselineAvg)),
		Description:      fmt.Sprintf("%d sessions za sebou pod prumerem", consecutive),
		Recommendation:   anomalyTips["quality_decline"][0],
		Icon:             anomalyIcons["quality_decline"],
		Evidence: AnomalyEvidence{
			ConsecutiveRatings: ratings,
			BaselineThreshold:  floatPtr(round1(baselineAvg)),
		},
	}
}

func overallStatus(anomalies []Anomaly) string {
	if len(anomalies) == 0 {
		return "healthy"
	}
	has := make(map[string]bool, len(anomalies))
	for _, a := range anomalies {
		has[a.Severity] = true
	}
	switch {
	case has["critical"]:
		return "critical"
	case has["high"]:
		return "alert"
	case has["medium"]:
		return "warning"
	default:
		return "info"
	}
}

// proactiveTips surfaces the follow-up suggestions of detected anomalies,
// max 3. A clean report gets a single positive tip.
func proactiveTips(anomalies []Anomaly) []ProactiveTip {
	tips := []ProactiveTip{}
	for _, a := range anomalies {
		for _, rec := range anomalyTips[a.Type][1:] {
			tips = append(tips, ProactiveTip{
				Type:           "suggestion",
				Icon:           "💡",
				Message:        rec,
				RelatedAnomaly: a.Type,
			})
		}
	}
	if len(anomalies) == 0 {
		tips = append(tips, ProactiveTip{
			Type:    "positive",
			Icon:    "✨",
			Message: "Zadne anomalie detekovany. Skvela prace!",
		})
	}
	if len(tips) > 3 {
		tips = tips[:3]
	}
	return tips
}

func (d *AnomalyDetector) baselineSummary() *BaselineSummary {
	if d.baseline == nil {
		return nil
	}
	return &BaselineSummary{
		AvgProductivity: round1(d.baseline.avgProductivity),
		TypicalHours: BaselineHours{
			Start: int(d.baseline.typicalHours.Q1),
			End:   int(d.baseline.typicalHours.Q3),
		},
		TopCategory:        d.baseline.topCategory,
		AvgSessionsPerDay:  round1(d.baseline.avgSessionsPerDay),
		CurrentStreak:      d.currentStreak(),
		AnalysisPeriodDays: baselineDays,
	}
}

// currentStreak counts consecutive work days ending today, or ending
// yesterday when today has no session yet.
func (d *AnomalyDetector) currentStreak() int {
	dates := make(map[string]struct{})
	for _, s := range d.sessions {
		if date := s.DateString(); date != "" {
			dates[date] = struct{}{}
		}
	}

	start := d.today
	if _, ok := dates[start.Format(session.DateLayout)]; !ok {
		start = start.AddDate(0, 0, -1)
		if _, ok := dates[start.Format(session.DateLayout)]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := dates[start.Format(session.DateLayout)]; !ok {
			break
		}
		streak++
		start = start.AddDate(0, 0, -1)
	}
	return streak
}

// patterns summarizes the recent week against the baseline.
func (d *AnomalyDetector) patterns() *PatternsSummary {
	if d.baseline == nil {
		return &PatternsSummary{
			ProductivityTrend:  "unknown",
			WorkIntensity:      "unknown",
			ScheduleRegularity: "unknown",
		}
	}

	recent := d.lastNDays(7)

	var ratings []float64
	for _, s := range recent {
		if r, ok := s.Rating(); ok {
			ratings = append(ratings, r)
		}
	}
	trend := "unknown"
	if len(ratings) >= 3 {
		diff := mean(ratings) - d.baseline.avgProductivity
		switch {
		case diff > 5:
			trend = "improving"
		case diff < -5:
			trend = "declining"
		default:
			trend = "stable"
		}
	}

	perDay := make(map[string]int)
	for _, s := range recent {
		if date := s.DateString(); date != "" {
			perDay[date]++
		}
	}
	intensity := "unknown"
	if len(perDay) > 0 {
		counts := make([]float64, 0, len(perDay))
		for _, c := range perDay {
			counts = append(counts, float64(c))
		}
		ratio := 1.0
		if d.baseline.avgSessionsPerDay > 0 {
			ratio = mean(counts) / d.baseline.avgSessionsPerDay
		}
		switch {
		case ratio > 1.3:
			intensity = "high"
		case ratio < 0.7:
			intensity = "low"
		default:
			intensity = "normal"
		}
	}

	hours := make([]float64, 0, len(recent))
	for _, s := range recent {
		hours = append(hours, float64(s.Hour))
	}
	regularity := "unknown"
	if len(hours) >= 3 {
		hourStd := sampleStdDev(hours)
		switch {
		case hourStd <= 2:
			regularity = "regular"
		case hourStd <= 4:
			regularity = "moderate"
		default:
			regularity = "irregular"
		}
	}

	return &PatternsSummary{
		ProductivityTrend:  trend,
		WorkIntensity:      intensity,
		ScheduleRegularity: regularity,
	}
}
