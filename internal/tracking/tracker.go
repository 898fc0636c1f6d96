package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// Tracker samples the mouse during a recording. Move events are polled at
// the capture frame rate; click events come from a global input hook. All
// coordinates are normalized against the full capture surface so the log
// stays valid for any record region.
type Tracker struct {
	screenWidth  int
	screenHeight int
	targetFPS    int

	mu  sync.Mutex
	log EventLog
}

func NewTracker(screenWidth, screenHeight, targetFPS int) *Tracker {
	return &Tracker{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		targetFPS:    targetFPS,
	}
}

// Start begins sampling until ctx is cancelled. It blocks while the input
// hook runs, so callers run it in a goroutine.
func (t *Tracker) Start(ctx context.Context, startTime time.Time) {
	go t.pollPositions(ctx, startTime)

	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		t.recordClick(int(e.X), int(e.Y), "left", true, startTime)
	})
	hook.Register(hook.MouseUp, []string{}, func(e hook.Event) {
		t.recordClick(int(e.X), int(e.Y), "left", false, startTime)
	})

	evChan := hook.Start()
	go func() {
		<-ctx.Done()
		hook.End()
	}()
	<-hook.Process(evChan)
}

// pollPositions samples the cursor location once per target frame.
func (t *Tracker) pollPositions(ctx context.Context, startTime time.Time) {
	interval := time.Second / time.Duration(t.targetFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			x, y := robotgo.Location()
			elapsed := time.Since(startTime).Seconds()

			t.mu.Lock()
			t.log.Move = append(t.log.Move, MoveEvent{
				X:    float64(x) / float64(t.screenWidth),
				Y:    float64(y) / float64(t.screenHeight),
				Time: elapsed,
			})
			t.mu.Unlock()
		}
	}
}

func (t *Tracker) recordClick(x, y int, button string, pressed bool, startTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Click = append(t.log.Click, ClickEvent{
		X:       float64(x) / float64(t.screenWidth),
		Y:       float64(y) / float64(t.screenHeight),
		Button:  button,
		Pressed: pressed,
		Time:    time.Since(startTime).Seconds(),
	})
}

// Log returns a snapshot of the events recorded so far.
func (t *Tracker) Log() *EventLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	snapshot := EventLog{
		Move:  append([]MoveEvent(nil), t.log.Move...),
		Click: append([]ClickEvent(nil), t.log.Click...),
	}
	return &snapshot
}
