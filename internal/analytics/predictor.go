package analytics

import (
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// Fallbacks when no history backs a prediction.
const (
	defaultSessionsPerDay = 6
	neutralProductivity   = 70.0
)

// SessionPredictor forecasts session counts and productivity from
// day-of-week historical averages.
type SessionPredictor struct {
	sessions   []session.Session
	dailyCount map[string]int       // date -> sessions logged
	dowRatings map[int][]float64    // day of week -> normalized ratings
}

// NewSessionPredictor builds per-date and per-day-of-week sample sets.
func NewSessionPredictor(sessions []session.Session) *SessionPredictor {
	p := &SessionPredictor{
		sessions:   sessions,
		dailyCount: make(map[string]int),
		dowRatings: make(map[int][]float64),
	}
	for _, s := range sessions {
		if date := s.DateString(); date != "" {
			p.dailyCount[date]++
		}
		if r, ok := s.Rating(); ok {
			p.dowRatings[s.DayOfWeek] = append(p.dowRatings[s.DayOfWeek], r)
		}
	}
	return p
}

// PredictToday forecasts the current day: expected total sessions, expected
// productivity, and the remaining sessions given today's progress.
func (p *SessionPredictor) PredictToday(now time.Time) TodayPrediction {
	today := now.Format(session.DateLayout)
	currentHour := now.Hour()
	dayOfWeek := session.Weekday(now)

	completed := p.dailyCount[today]
	predicted := p.predictSessionCount(dayOfWeek)
	remaining := predicted - completed
	if remaining < 0 {
		remaining = 0
	}

	return TodayPrediction{
		Date:                  today,
		CurrentHour:           currentHour,
		CompletedSessions:     completed,
		PredictedSessions:     predicted,
		RemainingSessions:     remaining,
		PredictedProductivity: p.predictProductivity(dayOfWeek),
		RecommendedSchedule:   p.schedule(dayOfWeek, currentHour),
		Confidence:            p.Confidence(),
		EnergyForecast:        energyForecast(currentHour),
	}
}

// PredictWeek applies the per-day-of-week model to the next 7 calendar days.
func (p *SessionPredictor) PredictWeek(today time.Time) WeekPrediction {
	predictions := make([]DayPrediction, 0, 7)
	totalSessions := 0
	var totalProductivity float64

	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i)
		dayOfWeek := session.Weekday(date)

		dp := DayPrediction{
			Date:                  date.Format(session.DateLayout),
			DayName:               session.DayName(dayOfWeek),
			PredictedSessions:     p.predictSessionCount(dayOfWeek),
			PredictedProductivity: p.predictProductivity(dayOfWeek),
		}
		predictions = append(predictions, dp)
		totalSessions += dp.PredictedSessions
		totalProductivity += dp.PredictedProductivity
	}

	return WeekPrediction{
		Predictions:              predictions,
		TotalPredictedSessions:   totalSessions,
		AvgPredictedProductivity: round2(totalProductivity / 7),
	}
}

// predictSessionCount is the mean sessions-per-date for dates matching the
// day of week, falling back to the global mean-per-date, falling back to a
// constant.
func (p *SessionPredictor) predictSessionCount(dayOfWeek int) int {
	if len(p.dailyCount) == 0 {
		return defaultSessionsPerDay
	}

	var matching []float64
	for date, count := range p.dailyCount {
		d, err := time.Parse(session.DateLayout, date)
		if err != nil {
			continue
		}
		if session.Weekday(d) == dayOfWeek {
			matching = append(matching, float64(count))
		}
	}

	if len(matching) == 0 {
		total := 0
		for _, count := range p.dailyCount {
			total += count
		}
		return int(float64(total)/float64(len(p.dailyCount)) + 0.5)
	}

	return int(mean(matching) + 0.5)
}

// predictProductivity is the mean rating for the day of week, falling back
// to the global mean, falling back to neutral.
func (p *SessionPredictor) predictProductivity(dayOfWeek int) float64 {
	if ratings := p.dowRatings[dayOfWeek]; len(ratings) > 0 {
		return round1(mean(ratings))
	}

	var all []float64
	for _, ratings := range p.dowRatings {
		all = append(all, ratings...)
	}
	if len(all) == 0 {
		return neutralProductivity
	}
	return round1(mean(all))
}

// schedule recommends up to 6 slots for the rest of the day: historically
// strong hours at high priority, the lunch window as quick-task filler.
func (p *SessionPredictor) schedule(dayOfWeek, currentHour int) []ScheduleSlot {
	best := p.bestHoursForDay(dayOfWeek)
	topFive := make(map[int]bool, 5)
	for i, hour := range best {
		if i >= 5 {
			break
		}
		topFive[hour] = true
	}

	slots := []ScheduleSlot{}
	for hour := currentHour; hour < 19; hour++ {
		switch {
		case topFive[hour]:
			slots = append(slots, ScheduleSlot{
				Hour:              hour,
				RecommendedPreset: session.DefaultPresetForHour(hour),
				Priority:          "high",
			})
		case hour >= 12 && hour <= 14:
			slots = append(slots, ScheduleSlot{
				Hour:              hour,
				RecommendedPreset: session.PresetQuickTasks,
				Priority:          "medium",
			})
		}
		if len(slots) >= 6 {
			break
		}
	}
	return slots
}

// bestHoursForDay ranks the day's hours by mean rating, best first, with a
// fixed default when the day has no rated history.
func (p *SessionPredictor) bestHoursForDay(dayOfWeek int) []int {
	hourRatings := make(map[int][]float64)
	for _, s := range p.sessions {
		if s.DayOfWeek != dayOfWeek {
			continue
		}
		if r, ok := s.Rating(); ok {
			hourRatings[s.Hour] = append(hourRatings[s.Hour], r)
		}
	}

	if len(hourRatings) == 0 {
		return []int{8, 9, 10, 11, 14, 15}
	}

	hours := make([]int, 0, len(hourRatings))
	for hour := range hourRatings {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool {
		ai, aj := mean(hourRatings[hours[i]]), mean(hourRatings[hours[j]])
		if ai != aj {
			return ai > aj
		}
		return hours[i] < hours[j]
	})
	return hours
}

// Confidence scales with total historical session count.
func (p *SessionPredictor) Confidence() float64 {
	return sampleConfidence(len(p.sessions))
}

// sampleConfidence is the shared 4-tier confidence step function.
func sampleConfidence(total int) float64 {
	switch {
	case total < 10:
		return 0.3
	case total < 30:
		return 0.5
	case total < 100:
		return 0.7
	default:
		return 0.85
	}
}

// Trends splits the trailing window in half and compares mean ratings.
func (p *SessionPredictor) Trends(today time.Time, days int) TrendReport {
	cutoff := today.AddDate(0, 0, -days)

	totalRecent := 0
	var ratings []float64
	for _, s := range p.sessions {
		day, ok := s.Day()
		if !ok || day.Before(cutoff) {
			continue
		}
		totalRecent++
		if r, ok := s.Rating(); ok {
			ratings = append(ratings, r)
		}
	}

	if len(ratings) < 3 {
		return TrendReport{
			SessionTrend:      "insufficient_data",
			ProductivityTrend: "insufficient_data",
			TotalSessions:     totalRecent,
		}
	}

	mid := len(ratings) / 2
	diff := mean(ratings[mid:]) - mean(ratings[:mid])

	trend := TrendStable
	switch {
	case diff > trendDeadBand:
		trend = "improving"
	case diff < -trendDeadBand:
		trend = "declining"
	}

	return TrendReport{
		SessionTrend:      TrendStable,
		ProductivityTrend: trend,
		TotalSessions:     totalRecent,
		AvgProductivity:   round2(mean(ratings)),
	}
}

// energyForecast is the fixed time-of-day energy banding.
func energyForecast(hour int) EnergyForecast {
	switch {
	case hour >= 15:
		return EnergyForecast{Level: "declining", Message: "Energie klesá po 15:00 - naplánuj pauzu nebo lehčí úkoly."}
	case hour >= 12 && hour < 14:
		return EnergyForecast{Level: "low", Message: "Po obědě je energie nižší - ideál pro Quick Tasks."}
	case hour >= 8 && hour < 12:
		return EnergyForecast{Level: "high", Message: "Ranní hodiny - ideální pro Deep Work!"}
	default:
		return EnergyForecast{Level: "moderate", Message: "Standardní úroveň energie."}
	}
}
