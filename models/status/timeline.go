package status

// TimelineSlot is one hour of a venue's daily forecast, used by the
// best-time-to-go timeline bars.
type TimelineSlot struct {
	Hour  int        `json:"hour"`
	Score int        `json:"score"`
	Level CrowdLevel `json:"level"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}
