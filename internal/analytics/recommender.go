package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

// neutralPresetScore is the 0-5 score assigned to a preset with no history.
const neutralPresetScore = 3.0

// Tier weights for the preset score. Tiers without data are dropped and the
// remaining weights renormalized.
const (
	presetHourWeight     = 0.4
	presetCategoryWeight = 0.4
	presetOverallWeight  = 0.2
)

// PresetRecommender scores the four presets for the current moment from
// historical ratings. Ratings are aggregated on the canonical 0-100 scale
// and converted to this component's legacy 0-5 score at the boundary.
type PresetRecommender struct {
	hasSessions  bool
	byPresetHour map[session.Preset]map[int][]float64
	byPresetCat  map[session.Preset]map[string][]float64
	byPreset     map[session.Preset][]float64
}

// NewPresetRecommender builds the per-preset rating indices.
func NewPresetRecommender(sessions []session.Session) *PresetRecommender {
	r := &PresetRecommender{
		hasSessions:  len(sessions) > 0,
		byPresetHour: make(map[session.Preset]map[int][]float64),
		byPresetCat:  make(map[session.Preset]map[string][]float64),
		byPreset:     make(map[session.Preset][]float64),
	}
	for _, s := range sessions {
		rating, ok := s.Rating()
		if !ok {
			continue
		}
		preset := s.Preset
		if preset == "" {
			preset = session.PresetDeepWork
		}
		cat := s.Category
		if cat == "" {
			cat = "Other"
		}
		if r.byPresetHour[preset] == nil {
			r.byPresetHour[preset] = make(map[int][]float64)
			r.byPresetCat[preset] = make(map[string][]float64)
		}
		r.byPresetHour[preset][s.Hour] = append(r.byPresetHour[preset][s.Hour], rating)
		r.byPresetCat[preset][cat] = append(r.byPresetCat[preset][cat], rating)
		r.byPreset[preset] = append(r.byPreset[preset], rating)
	}
	return r
}

// Recommend scores all presets for the given moment and optional category.
func (r *PresetRecommender) Recommend(now time.Time, category string) PresetRecommendation {
	currentTime := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())
	hour := now.Hour()

	if !r.hasSessions {
		return PresetRecommendation{
			CurrentTime:       currentTime,
			RecommendedPreset: session.DefaultPresetForHour(hour),
			Reason:            "Zatím nemáme dost dat. Doporučeno podle času.",
			Confidence:        0.3,
		}
	}

	scores := make(map[session.Preset]float64, len(session.AllPresets))
	for _, preset := range session.AllPresets {
		scores[preset] = r.presetScore(preset, hour, category)
	}

	ranked := make([]session.Preset, len(session.AllPresets))
	copy(ranked, session.AllPresets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	best := ranked[0]
	confidence := scores[best] / 5.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	rounded := make(map[session.Preset]float64, len(scores))
	for preset, score := range scores {
		rounded[preset] = round2(score)
	}

	return PresetRecommendation{
		CurrentTime:       currentTime,
		RecommendedPreset: best,
		Reason:            r.reason(best, hour, category, confidence),
		Alternative:       ranked[1],
		Confidence:        round2(confidence),
		AllScores:         rounded,
	}
}

// presetScore computes the 3-tier weighted average for one preset, returned
// on the 0-5 scale. Presets with no data in any tier score neutral.
func (r *PresetRecommender) presetScore(preset session.Preset, hour int, category string) float64 {
	var scores, weights []float64

	if ratings := r.byPresetHour[preset][hour]; len(ratings) > 0 {
		scores = append(scores, mean(ratings))
		weights = append(weights, presetHourWeight)
	}
	if category != "" {
		if ratings := r.byPresetCat[preset][category]; len(ratings) > 0 {
			scores = append(scores, mean(ratings))
			weights = append(weights, presetCategoryWeight)
		}
	}
	if ratings := r.byPreset[preset]; len(ratings) > 0 {
		scores = append(scores, mean(ratings))
		weights = append(weights, presetOverallWeight)
	}

	if len(scores) == 0 {
		return neutralPresetScore
	}

	var weighted, totalWeight float64
	for i := range scores {
		weighted += scores[i] * weights[i]
		totalWeight += weights[i]
	}
	// Canonical 0-100 internally, legacy 0-5 at the boundary.
	return weighted / totalWeight / 20.0
}

// reason picks the justification by data availability: category-specific,
// then hour-specific, then overall, then generic.
func (r *PresetRecommender) reason(preset session.Preset, hour int, category string, confidence float64) string {
	name := preset.DisplayName()

	if confidence < 0.5 {
		return fmt.Sprintf("Zatím málo dat. %s by měl být vhodný pro tuto dobu.", name)
	}

	if category != "" {
		if ratings := r.byPresetCat[preset][category]; len(ratings) > 0 {
			avg := round1(mean(ratings) / 20.0)
			return fmt.Sprintf("Pro %s máš s %s průměrný rating %.1f/5.", category, name, avg)
		}
	}

	if ratings := r.byPresetHour[preset][hour]; len(ratings) > 0 {
		avg := round1(mean(ratings) / 20.0)
		return fmt.Sprintf("Mezi %d:00-%d:00 máš s %s průměrný rating %.1f/5.", hour, hour+1, name, avg)
	}

	if ratings := r.byPreset[preset]; len(ratings) > 0 {
		avg := round1(mean(ratings) / 20.0)
		return fmt.Sprintf("Tvůj celkový průměr s %s je %.1f/5.", name, avg)
	}

	return fmt.Sprintf("%s je doporučený pro tuto dobu.", name)
}

// Stats summarizes each preset with history: mean rating (0-100), sample
// count, and the best-performing hour and category.
func (r *PresetRecommender) Stats() map[session.Preset]PresetStats {
	stats := make(map[session.Preset]PresetStats)
	for preset, ratings := range r.byPreset {
		if len(ratings) == 0 {
			continue
		}
		stats[preset] = PresetStats{
			AvgRating:    round2(mean(ratings)),
			SessionCount: len(ratings),
			BestHour:     r.bestHour(preset),
			BestCategory: r.bestCategory(preset),
		}
	}
	return stats
}

func (r *PresetRecommender) bestHour(preset session.Preset) *int {
	var best *int
	bestAvg := 0.0
	hours := make([]int, 0, len(r.byPresetHour[preset]))
	for hour := range r.byPresetHour[preset] {
		hours = append(hours, hour)
	}
	sort.Ints(hours)
	for _, hour := range hours {
		ratings := r.byPresetHour[preset][hour]
		if avg := mean(ratings); len(ratings) > 0 && avg > bestAvg {
			h := hour
			best = &h
			bestAvg = avg
		}
	}
	return best
}

func (r *PresetRecommender) bestCategory(preset session.Preset) string {
	best := ""
	bestAvg := 0.0
	cats := make([]string, 0, len(r.byPresetCat[preset]))
	for cat := range r.byPresetCat[preset] {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		ratings := r.byPresetCat[preset][cat]
		if avg := mean(ratings); len(ratings) > 0 && avg > bestAvg {
			best = cat
			bestAvg = avg
		}
	}
	return best
}
