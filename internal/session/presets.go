package session

// Preset names a fixed work/break duration pair.
type Preset string

// The four work-mode presets.
const (
	PresetDeepWork   Preset = "deep_work"
	PresetLearning   Preset = "learning"
	PresetQuickTasks Preset = "quick_tasks"
	PresetFlowMode   Preset = "flow_mode"
)

// PresetInfo describes a preset's display name and durations.
type PresetInfo struct {
	Name         string `json:"name"`
	WorkMinutes  int    `json:"work_minutes"`
	BreakMinutes int    `json:"break_minutes"`
}

// Presets maps each preset to its definition.
var Presets = map[Preset]PresetInfo{
	PresetDeepWork:   {Name: "Deep Work", WorkMinutes: 52, BreakMinutes: 17},
	PresetLearning:   {Name: "Learning", WorkMinutes: 45, BreakMinutes: 15},
	PresetQuickTasks: {Name: "Quick Tasks", WorkMinutes: 25, BreakMinutes: 5},
	PresetFlowMode:   {Name: "Flow Mode", WorkMinutes: 90, BreakMinutes: 20},
}

// AllPresets lists the presets in a stable order for iteration and output.
var AllPresets = []Preset{PresetDeepWork, PresetLearning, PresetQuickTasks, PresetFlowMode}

// Valid reports whether p is one of the four known presets.
func (p Preset) Valid() bool {
	_, ok := Presets[p]
	return ok
}

// Info returns the preset definition, falling back to Quick Tasks durations
// for unknown preset names so that a single bad record cannot break
// schedule math.
func (p Preset) Info() PresetInfo {
	if info, ok := Presets[p]; ok {
		return info
	}
	return PresetInfo{Name: string(p), WorkMinutes: 25, BreakMinutes: 5}
}

// DisplayName returns the human-readable preset name.
func (p Preset) DisplayName() string {
	return p.Info().Name
}

// DefaultPresetForHour returns the time-of-day default preset used when no
// historical data backs a recommendation.
func DefaultPresetForHour(hour int) Preset {
	switch {
	case hour >= 6 && hour < 12:
		return PresetDeepWork
	case hour >= 12 && hour < 14:
		return PresetQuickTasks
	case hour >= 14 && hour < 17:
		return PresetLearning
	case hour >= 17 && hour < 20:
		return PresetQuickTasks
	default:
		return PresetLearning
	}
}
