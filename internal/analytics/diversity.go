package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/session"
)

const (
	// DefaultDiversityDays is the lookback window for overload detection.
	DefaultDiversityDays = 2

	// DefaultDiversityThreshold is the concentration share above which a
	// category counts as overloaded.
	DefaultDiversityThreshold = 0.70
)

// diversityPriorities orders categories for alternative suggestions.
var diversityPriorities = []string{
	"Job Hunting",
	"Skill Building",
	"Learning",
	"Coding",
	"Database",
	"Other",
}

// defaultDiversityCategories apply when no user categories are configured.
var defaultDiversityCategories = []string{
	"Job Hunting",
	"Skill Building",
	"Learning",
	"Coding",
	"Database",
}

var noteWordPattern = regexp.MustCompile(`\b[a-z]{2,}\b`)

var noteStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "been": {}, "there": {},
	"use": {}, "any": {}, "this": {}, "that": {}, "with": {}, "they": {},
	"from": {}, "have": {},
}

type consecutiveRepeat struct {
	category string
	count    int
	date     string
}

type topicBurnout struct {
	topic string
	count int
}

// DiversityDetector flags over-concentration on a single category or topic so
// that task suggestions can rotate away from it.
type DiversityDetector struct {
	categories []string
}

// NewDiversityDetector takes the user's configured categories, falling back
// to a default set when empty.
func NewDiversityDetector(categories []string) *DiversityDetector {
	if len(categories) == 0 {
		categories = defaultDiversityCategories
	}
	return &DiversityDetector{categories: categories}
}

// Detect analyzes sessions within the lookback window ending at today.
func (d *DiversityDetector) Detect(sessions []session.Session, today time.Time, days int, threshold float64) DiversityReport {
	if days <= 0 {
		days = DefaultDiversityDays
	}
	if threshold <= 0 {
		threshold = DefaultDiversityThreshold
	}

	if len(sessions) == 0 {
		return d.noDataReport(days)
	}

	cutoff := today.AddDate(0, 0, -days).Format(session.DateLayout)
	var recent []session.Session
	for _, s := range sessions {
		if s.DateString() >= cutoff {
			recent = append(recent, s)
		}
	}
	if len(recent) == 0 {
		return d.noDataReport(days)
	}

	counts := make(map[string]int)
	for _, s := range recent {
		cat := s.Category
		if cat == "" {
			cat = "Unknown"
		}
		counts[cat]++
	}
	total := len(recent)

	type overload struct {
		category      string
		count         int
		concentration float64
	}
	var overloaded []overload
	cats := make([]string, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		concentration := float64(counts[cat]) / float64(total)
		if concentration > threshold {
			overloaded = append(overloaded, overload{cat, counts[cat], concentration})
		}
	}

	consecutive := detectConsecutiveRepeats(recent)
	topic := detectTopicBurnout(recent)

	if len(overloaded) == 0 && consecutive == nil && topic == nil {
		return DiversityReport{
			OverloadedCategories:    []string{},
			AvoidCategories:         []string{},
			RecommendedAlternatives: []string{},
			Confidence:              0.0,
			Reasoning:               "No category burnout detected",
			CategoryDistribution:    counts,
			AnalysisDays:            days,
			TotalSessionsAnalyzed:   total,
		}
	}

	var avoid []string
	var reasons []string
	for _, o := range overloaded {
		avoid = append(avoid, o.category)
		reasons = append(reasons, fmt.Sprintf("%d/%d sessions na %s (%d%%)",
			o.count, total, o.category, int(o.concentration*100)))
	}
	if consecutive != nil && !contains(avoid, consecutive.category) {
		avoid = append(avoid, consecutive.category)
		reasons = append(reasons, fmt.Sprintf("%dx po sobě na %s v %s",
			consecutive.count, consecutive.category, consecutive.date))
	}
	if topic != nil {
		reasons = append(reasons, fmt.Sprintf("Topic '%s' se opakuje %dx v notes", topic.topic, topic.count))
	}

	var reasoning []string
	if len(overloaded) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("Detekován category burnout: Včera %s", reasons[0]))
	}
	if consecutive != nil {
		reasoning = append(reasoning, fmt.Sprintf("Consecutive repeats: %s %dx v řadě",
			consecutive.category, consecutive.count))
	}
	if topic != nil {
		reasoning = append(reasoning, fmt.Sprintf("Topic burnout: '%s' se opakuje", topic.topic))
	}

	return DiversityReport{
		OverloadedCategories:    avoid,
		OverloadReason:          strings.Join(reasons, " | "),
		AvoidCategories:         avoid,
		RecommendedAlternatives: d.alternatives(avoid),
		Confidence:              0.9,
		Reasoning:               strings.Join(reasoning, " | "),
		CategoryDistribution:    counts,
		AnalysisDays:            days,
		TotalSessionsAnalyzed:   total,
	}
}

// detectConsecutiveRepeats flags any run of 3 same-category sessions within a
// day, sessions ordered by hour.
func detectConsecutiveRepeats(sessions []session.Session) *consecutiveRepeat {
	if len(sessions) < 3 {
		return nil
	}

	byDate := make(map[string][]session.Session)
	for _, s := range sessions {
		byDate[s.DateString()] = append(byDate[s.DateString()], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		daySessions := byDate[date]
		if len(daySessions) < 3 {
			continue
		}
		sort.SliceStable(daySessions, func(i, j int) bool { return daySessions[i].Hour < daySessions[j].Hour })

		run := 1
		for i := 1; i < len(daySessions); i++ {
			if category(daySessions[i]) == category(daySessions[i-1]) {
				run++
				if run >= 3 {
					return &consecutiveRepeat{
						category: category(daySessions[i]),
						count:    3,
						date:     date,
					}
				}
			} else {
				run = 1
			}
		}
	}
	return nil
}

func category(s session.Session) string {
	if s.Category == "" {
		return "Unknown"
	}
	return s.Category
}

// detectTopicBurnout counts note keywords after stop-word filtering and flags
// the top keyword when it appears 3 or more times.
func detectTopicBurnout(sessions []session.Session) *topicBurnout {
	keywords := make(map[string]int)
	for _, s := range sessions {
		if s.Notes == "" {
			continue
		}
		for _, w := range noteWordPattern.FindAllString(strings.ToLower(s.Notes), -1) {
			if _, stop := noteStopWords[w]; stop || len(w) <= 2 {
				continue
			}
			keywords[w]++
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)

	top, topCount := "", 0
	for _, w := range words {
		if keywords[w] > topCount {
			top, topCount = w, keywords[w]
		}
	}
	if topCount < 3 {
		return nil
	}
	return &topicBurnout{topic: top, count: topCount}
}

// alternatives picks up to 3 priority-ordered configured categories outside
// the avoid list.
func (d *DiversityDetector) alternatives(avoid []string) []string {
	available := make(map[string]struct{})
	for _, cat := range d.categories {
		if !contains(avoid, cat) {
			available[cat] = struct{}{}
		}
	}

	result := []string{}
	for _, cat := range diversityPriorities {
		if _, ok := available[cat]; ok {
			result = append(result, cat)
			if len(result) == 3 {
				break
			}
		}
	}
	return result
}

func (d *DiversityDetector) noDataReport(days int) DiversityReport {
	return DiversityReport{
		OverloadedCategories:    []string{},
		AvoidCategories:         []string{},
		RecommendedAlternatives: diversityPriorities[:3],
		Confidence:              0.0,
		Reasoning:               fmt.Sprintf("Insufficient data for analysis (need sessions from last %d days)", days),
		CategoryDistribution:    map[string]int{},
		AnalysisDays:            days,
		TotalSessionsAnalyzed:   0,
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
