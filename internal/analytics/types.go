// Package analytics provides the stateless statistical models behind
// focuswatch: productivity patterns, preset recommendations, session
// forecasts, schedule optimization, burnout risk, behavioral anomalies, and
// category diversity. Every analyzer is a pure computation over an in-memory
// snapshot of session records; none performs I/O or reads the clock.
package analytics

import "github.com/blackwell-systems/focuswatch/internal/session"

// Trend directions reported by the productivity analyzer.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// GroupStats is a mean rating plus its sample size for one grouping key.
type GroupStats struct {
	AvgRating    float64 `json:"avg_rating"`
	SessionCount int     `json:"session_count"`
}

// ProductivityAnalysis is the full descriptive-statistics report.
type ProductivityAnalysis struct {
	// BestHours are the top 3 hours by mean rating, best first.
	BestHours []int `json:"best_hours"`

	// WorstHours are the bottom 3 hours by mean rating, worst first.
	WorstHours []int `json:"worst_hours"`

	// BestDay is the weekday name with the highest mean rating, empty when
	// no rated sessions exist.
	BestDay string `json:"best_day,omitempty"`

	// ByHour maps hour of day to mean rating (0-100).
	ByHour map[int]float64 `json:"productivity_by_hour"`

	// ByDay maps weekday name to mean rating.
	ByDay map[string]float64 `json:"productivity_by_day"`

	// ByCategory maps category label to mean rating and count.
	ByCategory map[string]GroupStats `json:"productivity_by_category"`

	// ByPreset maps preset to mean rating and count.
	ByPreset map[session.Preset]GroupStats `json:"productivity_by_preset"`

	// Trend is "up", "down", or "stable" comparing the last 7 days against
	// everything before them.
	Trend string `json:"trend"`

	// TotalSessionsAnalyzed is the number of rated sessions considered.
	TotalSessionsAnalyzed int `json:"total_sessions_analyzed"`
}

// HeatmapCell is one day/hour bucket of the productivity heatmap.
type HeatmapCell struct {
	Sessions  int     `json:"sessions"`
	AvgRating float64 `json:"avg_rating"`
}

// Heatmap maps weekday name to a zero-filled hour -> cell grid.
type Heatmap map[string]map[int]HeatmapCell

// PresetRecommendation is the preset recommender's result. Scores are on the
// legacy 0-5 scale this component has always exposed; internally they are
// computed from canonical 0-100 ratings and divided by 20 at this boundary.
type PresetRecommendation struct {
	// CurrentTime is the HH:MM the recommendation was computed for.
	CurrentTime string `json:"current_time"`

	RecommendedPreset session.Preset `json:"recommended_preset"`

	// Reason is a one-line human-readable justification.
	Reason string `json:"reason"`

	// Alternative is the second-best preset, empty when scores are absent.
	Alternative session.Preset `json:"alternative,omitempty"`

	// Confidence is min(topScore/5, 1).
	Confidence float64 `json:"confidence"`

	// AllScores maps each preset to its 0-5 score; omitted on the no-data
	// path.
	AllScores map[session.Preset]float64 `json:"all_scores,omitempty"`
}

// PresetStats summarizes historical performance of one preset.
type PresetStats struct {
	AvgRating    float64 `json:"avg_rating"`
	SessionCount int     `json:"session_count"`
	BestHour     *int    `json:"best_hour"`
	BestCategory string  `json:"best_category,omitempty"`
}

// ScheduleSlot is one recommended slot in the session predictor's day plan.
type ScheduleSlot struct {
	Hour              int            `json:"hour"`
	RecommendedPreset session.Preset `json:"recommended_preset"`
	Priority          string         `json:"priority"`
}

// EnergyForecast is a coarse time-of-day energy estimate.
type EnergyForecast struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// TodayPrediction forecasts the remainder of the current day.
type TodayPrediction struct {
	Date                  string         `json:"date"`
	CurrentHour           int            `json:"current_hour"`
	CompletedSessions     int            `json:"completed_sessions"`
	PredictedSessions     int            `json:"predicted_sessions"`
	RemainingSessions     int            `json:"remaining_sessions"`
	PredictedProductivity float64        `json:"predicted_productivity"`
	RecommendedSchedule   []ScheduleSlot `json:"recommended_schedule"`
	Confidence            float64        `json:"confidence"`
	EnergyForecast        EnergyForecast `json:"energy_forecast"`
}

// DayPrediction is one day of the weekly forecast.
type DayPrediction struct {
	Date                  string  `json:"date"`
	DayName               string  `json:"day_name"`
	PredictedSessions     int     `json:"predicted_sessions"`
	PredictedProductivity float64 `json:"predicted_productivity"`
}

// WeekPrediction forecasts the next 7 calendar days.
type WeekPrediction struct {
	Predictions              []DayPrediction `json:"predictions"`
	TotalPredictedSessions   int             `json:"total_predicted_sessions"`
	AvgPredictedProductivity float64         `json:"avg_predicted_productivity"`
}

// TrendReport compares the halves of a recent window.
type TrendReport struct {
	SessionTrend      string  `json:"session_trend"`
	ProductivityTrend string  `json:"productivity_trend"`
	TotalSessions     int     `json:"total_sessions"`
	AvgProductivity   float64 `json:"avg_productivity"`
}

// HourScore describes one candidate hour in the focus optimizer's ranking.
type HourScore struct {
	Hour                 int            `json:"hour"`
	Time                 string         `json:"time"`
	ExpectedProductivity float64        `json:"expected_productivity"`
	Score                float64        `json:"score"`
	RecommendedPreset    session.Preset `json:"recommended_preset"`
	PresetName           string         `json:"preset_name"`
	PresetRating         *float64       `json:"preset_rating"`
	SessionCount         int            `json:"session_count"`
	Confidence           float64        `json:"confidence"`
}

// AvoidHour describes a low-scoring hour plus the likely reason.
type AvoidHour struct {
	Hour                 int     `json:"hour"`
	Time                 string  `json:"time"`
	ExpectedProductivity float64 `json:"expected_productivity"`
	Score                float64 `json:"score"`
	Reason               string  `json:"reason"`
	SessionCount         int     `json:"session_count"`
	Confidence           float64 `json:"confidence"`
}

// HourBreakdown is the full per-hour cell of the focus analysis.
type HourBreakdown struct {
	Hour              int            `json:"hour"`
	Time              string         `json:"time"`
	Productivity      *float64       `json:"productivity"`
	Score             float64        `json:"score"`
	RecommendedPreset session.Preset `json:"recommended_preset"`
	PresetName        string         `json:"preset_name"`
	PresetRating      *float64       `json:"preset_rating"`
	SessionCount      int            `json:"session_count"`
	CompletionRate    *float64       `json:"completion_rate"`
	Confidence        float64        `json:"confidence"`
	DataSource        string         `json:"data_source"`
}

// ScheduledSession is one slot in the optimal daily schedule.
type ScheduledSession struct {
	Slot                 int            `json:"slot"`
	Hour                 int            `json:"hour"`
	Time                 string         `json:"time"`
	Preset               session.Preset `json:"preset"`
	PresetName           string         `json:"preset_name"`
	WorkMinutes          int            `json:"work_minutes"`
	BreakMinutes         int            `json:"break_minutes"`
	ExpectedProductivity float64        `json:"expected_productivity"`
	Confidence           float64        `json:"confidence"`
}

// Schedule is a gap-constrained, chronologically ordered day plan.
type Schedule struct {
	Sessions                []ScheduledSession `json:"sessions"`
	TotalWorkMinutes        int                `json:"total_work_minutes"`
	TotalBreakMinutes       int                `json:"total_break_minutes"`
	TotalTimeMinutes        int                `json:"total_time_minutes"`
	AvgExpectedProductivity float64            `json:"avg_expected_productivity"`
	SessionsCount           int                `json:"sessions_count"`
}

// FocusSummary condenses the focus analysis into headline numbers.
type FocusSummary struct {
	BestTimeRange           string  `json:"best_time_range"`
	RecommendedBreakTimes   []int   `json:"recommended_break_times"`
	RecommendedSessions     int     `json:"recommended_sessions"`
	TotalWorkMinutes        int     `json:"total_work_minutes"`
	TotalBreakMinutes       int     `json:"total_break_minutes"`
	TotalTimeMinutes        int     `json:"total_time_minutes"`
	ExpectedAvgProductivity float64 `json:"expected_avg_productivity"`
}

// FocusAnalysis is the focus optimizer's complete report for one day.
type FocusAnalysis struct {
	Date                  string                `json:"date"`
	DayOfWeek             string                `json:"day_of_week"`
	DayOfWeekEN           string                `json:"day_of_week_en"`
	DayOfWeekNum          int                   `json:"day_of_week_num"`
	PeakHours             []HourScore           `json:"peak_hours"`
	AvoidHours            []AvoidHour           `json:"avoid_hours"`
	HourlyBreakdown       map[int]HourBreakdown `json:"hourly_breakdown"`
	OptimalSchedule       Schedule              `json:"optimal_schedule"`
	Summary               FocusSummary          `json:"summary"`
	Confidence            float64               `json:"confidence"`
	TotalSessionsAnalyzed int                   `json:"total_sessions_analyzed"`
	RecommendationBasis   string                `json:"recommendation_basis"`
}

// FactorScore is one weighted factor of the quality prediction.
type FactorScore struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Weight     float64 `json:"weight"`
}

// QualityFactor is one ranked explanatory factor.
type QualityFactor struct {
	// Type is "positive" or "negative".
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Impact is "high", "medium", or "low".
	Impact string `json:"impact"`
}

// QualityRecommendation is the single actionable recommendation chosen by
// the priority-ordered decision tree.
type QualityRecommendation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Icon    string `json:"icon"`
}

// QualityContext echoes the inputs the prediction was made for.
type QualityContext struct {
	Hour             int            `json:"hour"`
	DayOfWeek        int            `json:"day_of_week"`
	DayName          string         `json:"day_name"`
	Preset           session.Preset `json:"preset"`
	PresetName       string         `json:"preset_name"`
	Category         string         `json:"category,omitempty"`
	SessionsToday    int            `json:"sessions_today"`
	MinutesSinceLast *int           `json:"minutes_since_last"`
}

// QualityPrediction is the six-factor next-session forecast.
type QualityPrediction struct {
	PredictedProductivity float64                `json:"predicted_productivity"`
	Confidence            float64                `json:"confidence"`
	Context               QualityContext         `json:"context"`
	FactorScores          map[string]FactorScore `json:"factor_scores"`
	Factors               []QualityFactor        `json:"factors"`
	Recommendation        QualityRecommendation  `json:"recommendation"`
	TotalSessionsAnalyzed int                    `json:"total_sessions_analyzed"`
}

// RiskFactor is one non-zero burnout driver.
type RiskFactor struct {
	Factor   string  `json:"factor"`
	Name     string  `json:"name"`
	Severity string  `json:"severity"`
	Score    int     `json:"score"`
	Value    float64 `json:"value"`
	Message  string  `json:"message"`
}

// BurnoutAssessment is the 14-day burnout risk report.
type BurnoutAssessment struct {
	// RiskScore is the clamped 0-100 sum of all factor scores.
	RiskScore int `json:"risk_score"`

	// RiskLevel is "low", "medium", "high", "critical", or "unknown" on the
	// insufficient-data path.
	RiskLevel string `json:"risk_level"`

	// RiskFactors lists non-zero factors sorted by score descending.
	RiskFactors []RiskFactor `json:"risk_factors"`

	// Recommendations are up to 3 distinct-factor suggestions.
	Recommendations []string `json:"recommendations"`

	Confidence            float64 `json:"confidence"`
	AnalyzedPeriod        string  `json:"analyzed_period"`
	TotalSessionsAnalyzed int     `json:"total_sessions_analyzed"`
	Message               string  `json:"message,omitempty"`
}

// TypicalHours is the IQR-derived usual working-hour range of the baseline.
type TypicalHours struct {
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// AnomalyEvidence carries detector-specific supporting data; only the fields
// relevant to the anomaly's type are populated.
type AnomalyEvidence struct {
	Period                 string             `json:"period,omitempty"`
	DataPoints             []float64          `json:"data_points,omitempty"`
	NormalRange            string             `json:"normal_range,omitempty"`
	UnusualSessions        []string           `json:"unusual_sessions,omitempty"`
	BaselineTop            string             `json:"baseline_top,omitempty"`
	RecentDistribution     map[string]float64 `json:"recent_distribution,omitempty"`
	StreakLength           int                `json:"streak_length,omitempty"`
	GapStart               string             `json:"gap_start,omitempty"`
	RecentSessionsPerDay   *float64           `json:"recent_sessions_per_day,omitempty"`
	BaselineSessionsPerDay *float64           `json:"baseline_sessions_per_day,omitempty"`
	ConsecutiveRatings     []float64          `json:"consecutive_ratings,omitempty"`
	BaselineThreshold      *float64           `json:"baseline_threshold,omitempty"`
}

// Anomaly is one detected behavior deviation. Optional fields are populated
// per anomaly type.
type Anomaly struct {
	Type             string          `json:"type"`
	Name             string          `json:"name"`
	Severity         string          `json:"severity"`
	Description      string          `json:"description"`
	Recommendation   string          `json:"recommendation"`
	Icon             string          `json:"icon"`
	ZScore           *float64        `json:"z_score,omitempty"`
	CurrentValue     *float64        `json:"current_value,omitempty"`
	BaselineValue    *float64        `json:"baseline_value,omitempty"`
	ChangePercent    *float64        `json:"change_percent,omitempty"`
	Category         string          `json:"category,omitempty"`
	StreakDays       int             `json:"streak_days,omitempty"`
	GapDays          int             `json:"gap_days,omitempty"`
	Ratio            int             `json:"ratio,omitempty"`
	ConsecutiveCount int             `json:"consecutive_count,omitempty"`
	Evidence         AnomalyEvidence `json:"evidence"`
}

// ProactiveTip is a follow-up suggestion derived from detected anomalies.
type ProactiveTip struct {
	Type           string `json:"type"`
	Icon           string `json:"icon"`
	Message        string `json:"message"`
	RelatedAnomaly string `json:"related_anomaly,omitempty"`
}

// BaselineHours is the start/end of the typical working window.
type BaselineHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BaselineSummary condenses the 14-day baseline for reporting.
type BaselineSummary struct {
	AvgProductivity    float64       `json:"avg_productivity"`
	TypicalHours       BaselineHours `json:"typical_hours"`
	TopCategory        string        `json:"top_category,omitempty"`
	AvgSessionsPerDay  float64       `json:"avg_sessions_per_day"`
	CurrentStreak      int           `json:"current_streak"`
	AnalysisPeriodDays int           `json:"analysis_period_days"`
}

// PatternsSummary classifies recent behavior against the baseline.
type PatternsSummary struct {
	ProductivityTrend  string `json:"productivity_trend"`
	WorkIntensity      string `json:"work_intensity"`
	ScheduleRegularity string `json:"schedule_regularity"`
}

// AnomalyReport is the full anomaly detection result.
type AnomalyReport struct {
	AnomaliesDetected     int              `json:"anomalies_detected"`
	OverallStatus         string           `json:"overall_status"`
	Anomalies             []Anomaly        `json:"anomalies"`
	ProactiveTips         []ProactiveTip   `json:"proactive_tips"`
	Message               string           `json:"message,omitempty"`
	BaselineSummary       *BaselineSummary `json:"baseline_summary"`
	Patterns              *PatternsSummary `json:"patterns"`
	Confidence            float64          `json:"confidence"`
	TotalSessionsAnalyzed int              `json:"total_sessions_analyzed"`
	UniqueDays            int              `json:"unique_days"`
}

// DiversityReport flags category/topic concentration in recent sessions.
type DiversityReport struct {
	OverloadedCategories    []string       `json:"overloaded_categories"`
	OverloadReason          string         `json:"overload_reason"`
	AvoidCategories         []string       `json:"avoid_categories"`
	RecommendedAlternatives []string       `json:"recommended_alternatives"`
	Confidence              float64        `json:"confidence"`
	Reasoning               string         `json:"reasoning"`
	CategoryDistribution    map[string]int `json:"category_distribution"`
	AnalysisDays            int            `json:"analysis_days"`
	TotalSessionsAnalyzed   int            `json:"total_sessions_analyzed"`
}
