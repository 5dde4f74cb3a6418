package analytics

import (
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// trendDeadBand is the mean-rating difference (canonical 0-100 scale) below
// which the trend is reported as stable.
const trendDeadBand = 6.0

// ProductivityAnalyzer computes descriptive productivity statistics from
// rated sessions. Unrated sessions are discarded at construction.
type ProductivityAnalyzer struct {
	sessions []session.Session
}

// NewProductivityAnalyzer builds an analyzer over the given snapshot,
// keeping only sessions with a productivity rating.
func NewProductivityAnalyzer(sessions []session.Session) *ProductivityAnalyzer {
	rated := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Rated() {
			rated = append(rated, s)
		}
	}
	return &ProductivityAnalyzer{sessions: rated}
}

// Analyze runs the full analysis. today anchors the 7-day trend window.
// Empty input yields empty aggregates and a stable trend, never an error.
func (a *ProductivityAnalyzer) Analyze(today time.Time) ProductivityAnalysis {
	if len(a.sessions) == 0 {
		return ProductivityAnalysis{
			BestHours:  []int{},
			WorstHours: []int{},
			ByHour:     map[int]float64{},
			ByDay:      map[string]float64{},
			ByCategory: map[string]GroupStats{},
			ByPreset:   map[session.Preset]GroupStats{},
			Trend:      TrendStable,
		}
	}

	byHour := a.hourlyProductivity()
	byDay := a.dailyProductivity()

	return ProductivityAnalysis{
		BestHours:             topHours(byHour, 3, true),
		WorstHours:            topHours(byHour, 3, false),
		BestDay:               bestKey(byDay),
		ByHour:                byHour,
		ByDay:                 byDay,
		ByCategory:            a.categoryProductivity(),
		ByPreset:              a.presetProductivity(),
		Trend:                 a.trend(today, 7),
		TotalSessionsAnalyzed: len(a.sessions),
	}
}

func (a *ProductivityAnalyzer) hourlyProductivity() map[int]float64 {
	hourly := make(map[int][]float64)
	for _, s := range a.sessions {
		if r, ok := s.Rating(); ok {
			hourly[s.Hour] = append(hourly[s.Hour], r)
		}
	}
	out := make(map[int]float64, len(hourly))
	for hour, ratings := range hourly {
		out[hour] = round2(mean(ratings))
	}
	return out
}

func (a *ProductivityAnalyzer) dailyProductivity() map[string]float64 {
	daily := make(map[string][]float64)
	for _, s := range a.sessions {
		if r, ok := s.Rating(); ok {
			daily[session.DayName(s.DayOfWeek)] = append(daily[session.DayName(s.DayOfWeek)], r)
		}
	}
	out := make(map[string]float64, len(daily))
	for day, ratings := range daily {
		out[day] = round2(mean(ratings))
	}
	return out
}

func (a *ProductivityAnalyzer) categoryProductivity() map[string]GroupStats {
	groups := make(map[string][]float64)
	for _, s := range a.sessions {
		if r, ok := s.Rating(); ok {
			cat := s.Category
			if cat == "" {
				cat = "Other"
			}
			groups[cat] = append(groups[cat], r)
		}
	}
	out := make(map[string]GroupStats, len(groups))
	for cat, ratings := range groups {
		out[cat] = GroupStats{AvgRating: round2(mean(ratings)), SessionCount: len(ratings)}
	}
	return out
}

func (a *ProductivityAnalyzer) presetProductivity() map[session.Preset]GroupStats {
	groups := make(map[session.Preset][]float64)
	for _, s := range a.sessions {
		if r, ok := s.Rating(); ok {
			preset := s.Preset
			if preset == "" {
				preset = session.PresetDeepWork
			}
			groups[preset] = append(groups[preset], r)
		}
	}
	out := make(map[session.Preset]GroupStats, len(groups))
	for preset, ratings := range groups {
		out[preset] = GroupStats{AvgRating: round2(mean(ratings)), SessionCount: len(ratings)}
	}
	return out
}

// trend compares the mean rating of the last `days` days against everything
// older. Fewer than 5 rated sessions, or an empty side, reads as stable.
func (a *ProductivityAnalyzer) trend(today time.Time, days int) string {
	if len(a.sessions) < 5 {
		return TrendStable
	}

	cutoff := today.AddDate(0, 0, -days)
	var recent, older []float64
	for _, s := range a.sessions {
		day, ok := s.Day()
		if !ok {
			continue
		}
		r, ok := s.Rating()
		if !ok {
			continue
		}
		if !day.Before(cutoff) {
			recent = append(recent, r)
		} else {
			older = append(older, r)
		}
	}

	if len(recent) == 0 || len(older) == 0 {
		return TrendStable
	}

	diff := mean(recent) - mean(older)
	switch {
	case diff > trendDeadBand:
		return TrendUp
	case diff < -trendDeadBand:
		return TrendDown
	default:
		return TrendStable
	}
}

// HourlyHeatmap returns the 7x24 sessions/avg-rating grid, zero-filled where
// no rated sessions exist.
func (a *ProductivityAnalyzer) HourlyHeatmap() Heatmap {
	type acc struct {
		count int
		total float64
	}
	grid := make(map[string]map[int]*acc, 7)
	for _, name := range session.DayNames {
		grid[name] = make(map[int]*acc, 24)
		for hour := 0; hour < 24; hour++ {
			grid[name][hour] = &acc{}
		}
	}

	for _, s := range a.sessions {
		r, ok := s.Rating()
		if !ok {
			continue
		}
		cell := grid[session.DayName(s.DayOfWeek)][clampInt(s.Hour, 0, 23)]
		cell.count++
		cell.total += r
	}

	heatmap := make(Heatmap, 7)
	for _, name := range session.DayNames {
		heatmap[name] = make(map[int]HeatmapCell, 24)
		for hour := 0; hour < 24; hour++ {
			cell := grid[name][hour]
			out := HeatmapCell{Sessions: cell.count}
			if cell.count > 0 {
				out.AvgRating = round2(cell.total / float64(cell.count))
			}
			heatmap[name][hour] = out
		}
	}
	return heatmap
}

// topHours returns up to n hours ordered by mean rating; best=true sorts
// highest first. Ties break on hour for stable output.
func topHours(byHour map[int]float64, n int, best bool) []int {
	hours := make([]int, 0, len(byHour))
	for hour := range byHour {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool {
		hi, hj := hours[i], hours[j]
		if byHour[hi] != byHour[hj] {
			if best {
				return byHour[hi] > byHour[hj]
			}
			return byHour[hi] < byHour[hj]
		}
		return hi < hj
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// bestKey returns the map key with the highest value, empty for an empty map.
func bestKey(m map[string]float64) string {
	best := ""
	bestVal := 0.0
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if best == "" || m[k] > bestVal {
			best = k
			bestVal = m[k]
		}
	}
	return best
}
