package status

// CrowdLevel is the canonical 3-level scale produced by the scorer and
// persisted with each prediction.
type CrowdLevel string

const (
	LevelLow      CrowdLevel = "low"
	LevelModerate CrowdLevel = "moderate"
	LevelBusy     CrowdLevel = "busy"
)

// Valid reports whether the level is one of the canonical values.
func (l CrowdLevel) Valid() bool {
	switch l {
	case LevelLow, LevelModerate, LevelBusy:
		return true
	}
	return false
}

// DisplayLevel is the finer 5-level scale used only on display surfaces.
// It is derived from the canonical level plus live signals; see
// service.displayLevel for the mapping.
type DisplayLevel string

const (
	DisplayDead   DisplayLevel = "dead"
	DisplayQuiet  DisplayLevel = "quiet"
	DisplayActive DisplayLevel = "active"
	DisplayBusy   DisplayLevel = "busy"
	DisplayPacked DisplayLevel = "packed"
)

// Display metadata per canonical level.
const (
	LabelLow      = "Quiet"
	LabelModerate = "Active"
	LabelBusy     = "Busy"

	ColorLow      = "#4CAF50"
	ColorModerate = "#FFC107"
	ColorBusy     = "#F44336"

	WaitLow      = "No wait"
	WaitModerate = "5-15 min wait"
	WaitBusy     = "20-40 min wait"
)

// Label returns the display label for the level.
func (l CrowdLevel) Label() string {
	switch l {
	case LevelBusy:
		return LabelBusy
	case LevelModerate:
		return LabelModerate
	default:
		return LabelLow
	}
}

// Color returns the display hex color for the level.
func (l CrowdLevel) Color() string {
	switch l {
	case LevelBusy:
		return ColorBusy
	case LevelModerate:
		return ColorModerate
	default:
		return ColorLow
	}
}

// EstimatedWait returns the wait-time string for the level.
func (l CrowdLevel) EstimatedWait() string {
	switch l {
	case LevelBusy:
		return WaitBusy
	case LevelModerate:
		return WaitModerate
	default:
		return WaitLow
	}
}
