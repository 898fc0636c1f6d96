package tracking

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MoveEvent is a cursor position sampled during capture. X and Y are
// normalized to [0, 1] relative to the full capture surface; Time is
// seconds since recording start.
type MoveEvent struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Time float64 `json:"time"`
}

// ClickEvent is a button press or release sampled during capture.
type ClickEvent struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Button  string  `json:"button"`
	Pressed bool    `json:"pressed"`
	Time    float64 `json:"time"`
}

// EventLog is the mouse trace recorded alongside a capture. Both sequences
// are ordered by capture time and are read-only once loaded.
type EventLog struct {
	Move  []MoveEvent  `json:"move"`
	Click []ClickEvent `json:"click"`
}

// LoadEventLog reads a mouse-event log from disk. A missing or unreadable
// file is not an error: the pipeline simply draws no cursor.
func LoadEventLog(path string) *EventLog {
	log := &EventLog{}
	if path == "" {
		return log
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return log
	}
	if err := json.Unmarshal(data, log); err != nil {
		return &EventLog{}
	}
	return log
}

// Save writes the log as JSON at the given path.
func (l *EventLog) Save(path string) error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// StartTime returns the time of the first recorded move event, or 0 when
// the log is empty.
func (l *EventLog) StartTime() float64 {
	if len(l.Move) == 0 {
		return 0
	}
	return l.Move[0].Time
}

// LatestMoveBefore returns the most recent move event with Time <= t.
// Move events are time-ordered, so a binary search finds the insertion
// point directly. The second return is false when no event qualifies.
func (l *EventLog) LatestMoveBefore(t float64) (MoveEvent, bool) {
	i := sort.Search(len(l.Move), func(i int) bool {
		return l.Move[i].Time > t
	})
	if i == 0 {
		return MoveEvent{}, false
	}
	return l.Move[i-1], true
}

// DataPath returns the conventional location of the mouse-event log for a
// recording: <tempdir>/<video-stem>.json.
func DataPath(videoPath string) string {
	name := filepath.Base(videoPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(os.TempDir(), stem+".json")
}
