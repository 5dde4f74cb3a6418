package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// Default working-hour window considered for scheduling.
const (
	defaultWorkHourStart = 6
	defaultWorkHourEnd   = 22
)

// dayNamesCS are Czech weekday names indexed Monday-first, kept for report
// output alongside the English names.
var dayNamesCS = [7]string{"Pondělí", "Úterý", "Středa", "Čtvrtek", "Pátek", "Sobota", "Neděle"}

// focusCell aggregates one day/hour bucket of completed sessions.
type focusCell struct {
	ratings   []float64
	presets   map[session.Preset][]float64
	completed int
	total     int
}

// hourStats is the scored view of one cell.
type hourStats struct {
	score           float64
	avgProductivity *float64
	completionRate  *float64
	sessionCount    int
	confidence      float64
	dataSource      string
}

// FocusOptimizer derives optimal daily schedules from a 7x24 productivity
// matrix built from completed sessions only.
type FocusOptimizer struct {
	matrix    [7][24]*focusCell
	startHour int
	endHour   int
}

// NewFocusOptimizer builds the time matrix with the default working-hour
// window. Sessions that were not completed are ignored; out-of-range day/hour
// values are clamped per record.
func NewFocusOptimizer(sessions []session.Session) *FocusOptimizer {
	return NewFocusOptimizerWindow(sessions, defaultWorkHourStart, defaultWorkHourEnd)
}

// NewFocusOptimizerWindow is NewFocusOptimizer with an explicit working-hour
// window. An invalid window (start < 0, end > 23, or start >= end) falls back
// to the default.
func NewFocusOptimizerWindow(sessions []session.Session, startHour, endHour int) *FocusOptimizer {
	if startHour < 0 || endHour > 23 || startHour >= endHour {
		startHour = defaultWorkHourStart
		endHour = defaultWorkHourEnd
	}
	o := &FocusOptimizer{startHour: startHour, endHour: endHour}
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			o.matrix[day][hour] = &focusCell{presets: make(map[session.Preset][]float64)}
		}
	}

	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		day := clampInt(s.DayOfWeek, 0, 6)
		hour := clampInt(s.Hour, 0, 23)
		preset := s.Preset
		if preset == "" {
			preset = session.PresetDeepWork
		}

		cell := o.matrix[day][hour]
		cell.total++
		cell.completed++
		if r, ok := s.Rating(); ok {
			cell.ratings = append(cell.ratings, r)
			cell.presets[preset] = append(cell.presets[preset], r)
		}
	}
	return o
}

// defaultHourScore is the fixed circadian curve used for cells with no data.
func defaultHourScore(hour int) float64 {
	switch {
	case hour >= 8 && hour <= 12:
		return 75.0 // morning peak
	case hour >= 13 && hour <= 15:
		return 55.0 // post-lunch dip
	case hour >= 16 && hour <= 18:
		return 70.0
	case hour >= 19 && hour <= 21:
		return 60.0
	case hour >= 6 && hour <= 7:
		return 65.0
	default:
		return 45.0
	}
}

// hourScore scores one day/hour cell:
// 0.6*meanProductivity + 0.3*completionRate + 0.1*(confidence*100).
func (o *FocusOptimizer) hourScore(day, hour int) hourStats {
	cell := o.matrix[day][hour]

	if len(cell.ratings) == 0 {
		return hourStats{
			score:      defaultHourScore(hour),
			confidence: 0.1,
			dataSource: "default",
		}
	}

	avgProductivity := mean(cell.ratings)
	completionRate := 100.0
	if cell.total > 0 {
		completionRate = float64(cell.completed) / float64(cell.total) * 100
	}

	var confidence float64
	switch n := len(cell.ratings); {
	case n >= 6:
		confidence = 1.0
	case n >= 3:
		confidence = 0.7
	default:
		confidence = 0.4
	}

	score := 0.6*avgProductivity + 0.3*completionRate + 0.1*(confidence*100)

	return hourStats{
		score:           round1(score),
		avgProductivity: floatPtr(round1(avgProductivity)),
		completionRate:  floatPtr(round1(completionRate)),
		sessionCount:    len(cell.ratings),
		confidence:      round2(confidence),
		dataSource:      "historical",
	}
}

// expected returns the headline productivity figure for a cell: the mean
// when history exists, otherwise the default-curve score.
func (s hourStats) expected() float64 {
	if s.avgProductivity != nil {
		return *s.avgProductivity
	}
	return s.score
}

// bestPresetForHour picks the preset with the highest mean rating in the
// cell, with a time-of-day default when the cell is empty.
func (o *FocusOptimizer) bestPresetForHour(day, hour int) (session.Preset, *float64) {
	cell := o.matrix[day][hour]

	if len(cell.presets) == 0 {
		return session.DefaultPresetForHour(hour), nil
	}

	presets := make([]session.Preset, 0, len(cell.presets))
	for preset := range cell.presets {
		presets = append(presets, preset)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i] < presets[j] })

	var best session.Preset
	bestAvg := 0.0
	for _, preset := range presets {
		ratings := cell.presets[preset]
		if len(ratings) == 0 {
			continue
		}
		if avg := mean(ratings); best == "" || avg > bestAvg {
			best = preset
			bestAvg = avg
		}
	}
	if best == "" {
		return session.PresetDeepWork, nil
	}
	return best, floatPtr(round1(bestAvg))
}

// lowProductivityReason explains why an hour scores poorly.
func lowProductivityReason(hour int, stats hourStats) string {
	switch {
	case hour >= 12 && hour <= 14:
		return "Polední útlum"
	case hour >= 15 && hour <= 16:
		return "Odpolední únava"
	case hour >= 21:
		return "Večerní únava"
	case hour < 8:
		return "Ranní rozjezd"
	case stats.completionRate != nil && *stats.completionRate < 70:
		return "Nízká míra dokončení"
	default:
		return "Nižší produktivita dle historie"
	}
}

// PeakHours returns the top-N hours of the working window by score.
func (o *FocusOptimizer) PeakHours(day, topN int) []HourScore {
	scores := make([]HourScore, 0, o.endHour-o.startHour+1)
	for hour := o.startHour; hour <= o.endHour; hour++ {
		stats := o.hourScore(day, hour)
		preset, presetRating := o.bestPresetForHour(day, hour)
		scores = append(scores, HourScore{
			Hour:                 hour,
			Time:                 fmt.Sprintf("%02d:00", hour),
			ExpectedProductivity: stats.expected(),
			Score:                stats.score,
			RecommendedPreset:    preset,
			PresetName:           preset.DisplayName(),
			PresetRating:         presetRating,
			SessionCount:         stats.sessionCount,
			Confidence:           stats.confidence,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}

// AvoidHours returns the bottom-N hours of the working window, worst first.
func (o *FocusOptimizer) AvoidHours(day, bottomN int) []AvoidHour {
	scores := make([]AvoidHour, 0, o.endHour-o.startHour+1)
	for hour := o.startHour; hour <= o.endHour; hour++ {
		stats := o.hourScore(day, hour)
		scores = append(scores, AvoidHour{
			Hour:                 hour,
			Time:                 fmt.Sprintf("%02d:00", hour),
			ExpectedProductivity: stats.expected(),
			Score:                stats.score,
			Reason:               lowProductivityReason(hour, stats),
			SessionCount:         stats.sessionCount,
			Confidence:           stats.confidence,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score < scores[j].Score })
	if len(scores) > bottomN {
		scores = scores[:bottomN]
	}
	return scores
}

// HourlyBreakdown returns the full 24-hour view for one day.
func (o *FocusOptimizer) HourlyBreakdown(day int) map[int]HourBreakdown {
	breakdown := make(map[int]HourBreakdown, 24)
	for hour := 0; hour < 24; hour++ {
		stats := o.hourScore(day, hour)
		preset, presetRating := o.bestPresetForHour(day, hour)
		breakdown[hour] = HourBreakdown{
			Hour:              hour,
			Time:              fmt.Sprintf("%02d:00", hour),
			Productivity:      stats.avgProductivity,
			Score:             stats.score,
			RecommendedPreset: preset,
			PresetName:        preset.DisplayName(),
			PresetRating:      presetRating,
			SessionCount:      stats.sessionCount,
			CompletionRate:    stats.completionRate,
			Confidence:        stats.confidence,
			DataSource:        stats.dataSource,
		}
	}
	return breakdown
}

// OptimalSchedule greedily selects the top-scoring hours for numSessions
// sessions, enforcing a preset-dependent minimum gap (2 hours when the
// best-matching preset works longer than 30 minutes, else 1), then orders
// the selection chronologically. day clamps to [0,6], numSessions to [1,12].
func (o *FocusOptimizer) OptimalSchedule(day, numSessions int) Schedule {
	day = clampInt(day, 0, 6)
	numSessions = clampInt(numSessions, 1, 12)

	type candidate struct {
		hour         int
		score        float64
		preset       session.Preset
		productivity float64
		confidence   float64
	}

	candidates := make([]candidate, 0, o.endHour-o.startHour)
	for hour := o.startHour; hour < o.endHour; hour++ {
		stats := o.hourScore(day, hour)
		preset, _ := o.bestPresetForHour(day, hour)
		candidates = append(candidates, candidate{
			hour:         hour,
			score:        stats.score,
			preset:       preset,
			productivity: stats.expected(),
			confidence:   stats.confidence,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	var selected []candidate
	used := make(map[int]bool)
	for _, c := range candidates {
		if len(selected) >= numSessions {
			break
		}

		minGap := 1
		if c.preset.Info().WorkMinutes > 30 {
			minGap = 2
		}

		tooClose := false
		for hour := range used {
			diff := c.hour - hour
			if diff < 0 {
				diff = -diff
			}
			if diff < minGap {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		selected = append(selected, c)
		used[c.hour] = true
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].hour < selected[j].hour })

	schedule := Schedule{Sessions: []ScheduledSession{}}
	var totalProductivity float64
	for i, slot := range selected {
		info := slot.preset.Info()
		schedule.Sessions = append(schedule.Sessions, ScheduledSession{
			Slot:                 i + 1,
			Hour:                 slot.hour,
			Time:                 fmt.Sprintf("%02d:00", slot.hour),
			Preset:               slot.preset,
			PresetName:           info.Name,
			WorkMinutes:          info.WorkMinutes,
			BreakMinutes:         info.BreakMinutes,
			ExpectedProductivity: round1(slot.productivity),
			Confidence:           slot.confidence,
		})
		schedule.TotalWorkMinutes += info.WorkMinutes
		schedule.TotalBreakMinutes += info.BreakMinutes
		totalProductivity += slot.productivity
	}

	schedule.TotalTimeMinutes = schedule.TotalWorkMinutes + schedule.TotalBreakMinutes
	schedule.SessionsCount = len(schedule.Sessions)
	if len(selected) > 0 {
		schedule.AvgExpectedProductivity = round1(totalProductivity / float64(len(selected)))
	}
	return schedule
}

// dayConfidence weighs total sample count (70%) against hour coverage (30%)
// for the working window of one day.
func (o *FocusOptimizer) dayConfidence(day int) float64 {
	totalSessions := 0
	hoursWithData := 0
	for hour := o.startHour; hour <= o.endHour; hour++ {
		if n := len(o.matrix[day][hour].ratings); n > 0 {
			hoursWithData++
			totalSessions += n
		}
	}

	workingHours := o.endHour - o.startHour + 1
	sessionConfidence := float64(totalSessions) / 50
	if sessionConfidence > 1 {
		sessionConfidence = 1
	}
	coverageConfidence := float64(hoursWithData) / float64(workingHours)

	return round2(0.7*sessionConfidence + 0.3*coverageConfidence)
}

// totalSessionsAnalyzed counts rated cells across the whole matrix.
func (o *FocusOptimizer) totalSessionsAnalyzed() int {
	total := 0
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			total += len(o.matrix[day][hour].ratings)
		}
	}
	return total
}

// Analyze produces the complete focus report for one day. today is used only
// for the report date stamp; day clamps to [0,6].
func (o *FocusOptimizer) Analyze(today time.Time, day, numSessions int) FocusAnalysis {
	day = clampInt(day, 0, 6)

	peakHours := o.PeakHours(day, 5)
	avoidHours := o.AvoidHours(day, 5)
	schedule := o.OptimalSchedule(day, numSessions)
	totalSessions := o.totalSessionsAnalyzed()

	bestRange := "09:00 - 12:00"
	if len(peakHours) > 0 {
		top := peakHours
		if len(top) > 3 {
			top = top[:3]
		}
		hours := make([]int, 0, len(top))
		for _, h := range top {
			hours = append(hours, h.Hour)
		}
		sort.Ints(hours)
		bestRange = fmt.Sprintf("%02d:00 - %02d:00", hours[0], hours[len(hours)-1]+1)
	}

	breakTimes := []int{12, 15}
	if len(avoidHours) > 0 {
		breakTimes = []int{}
		for i, h := range avoidHours {
			if i >= 2 {
				break
			}
			breakTimes = append(breakTimes, h.Hour)
		}
	}

	basis := "Výchozí doporučení (zatím žádná data)"
	if totalSessions > 0 {
		basis = fmt.Sprintf("Založeno na %d sessions", totalSessions)
	}

	return FocusAnalysis{
		Date:            today.Format(session.DateLayout),
		DayOfWeek:       dayNamesCS[day],
		DayOfWeekEN:     session.DayName(day),
		DayOfWeekNum:    day,
		PeakHours:       peakHours,
		AvoidHours:      avoidHours,
		HourlyBreakdown: o.HourlyBreakdown(day),
		OptimalSchedule: schedule,
		Summary: FocusSummary{
			BestTimeRange:           bestRange,
			RecommendedBreakTimes:   breakTimes,
			RecommendedSessions:     clampInt(numSessions, 1, 12),
			TotalWorkMinutes:        schedule.TotalWorkMinutes,
			TotalBreakMinutes:       schedule.TotalBreakMinutes,
			TotalTimeMinutes:        schedule.TotalTimeMinutes,
			ExpectedAvgProductivity: schedule.AvgExpectedProductivity,
		},
		Confidence:            o.dayConfidence(day),
		TotalSessionsAnalyzed: totalSessions,
		RecommendationBasis:   basis,
	}
}
