package recording

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/screenkit/screenkit/internal/config"
	"github.com/screenkit/screenkit/internal/tracking"
)

// Recorder captures the screen with ffmpeg while sampling the mouse through
// a tracking side-channel. The resulting raw video and mouse-event log feed
// the enhancement pipeline.
type Recorder struct {
	record  config.Record
	region  config.Region
	tracker *tracking.Tracker

	mu          sync.Mutex
	isRecording bool
	isDone      bool
	outputPath  string
	startTime   time.Time
	stopChan    chan struct{}
	doneChan    chan struct{}
	cancel      context.CancelFunc
}

func NewRecorder(record config.Record) *Recorder {
	return &Recorder{
		record:   record,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// ScreenBounds reports the full size of the given display.
func ScreenBounds(display int) (width, height int, err error) {
	if display < 0 || display >= screenshot.NumActiveDisplays() {
		return 0, 0, fmt.Errorf("display %d not available", display)
	}
	bounds := screenshot.GetDisplayBounds(display)
	return bounds.Dx(), bounds.Dy(), nil
}

// Start launches ffmpeg and the mouse tracker. region selects the portion
// of the display to capture; a zero region captures the whole display.
func (r *Recorder) Start(region config.Region) error {
	r.mu.Lock()
	if r.isRecording {
		r.mu.Unlock()
		return fmt.Errorf("recording already in progress")
	}
	r.mu.Unlock()

	screenWidth, screenHeight, err := ScreenBounds(0)
	if err != nil {
		return fmt.Errorf("failed to probe display: %w", err)
	}
	if region.Width == 0 || region.Height == 0 {
		region = config.Region{Top: 0, Left: 0, Width: screenWidth, Height: screenHeight}
	}

	timestamp := time.Now().Format("20060102-150405")
	videoPath := filepath.Join(os.TempDir(), fmt.Sprintf("ScreenKit-%s.mp4", timestamp))

	r.mu.Lock()
	r.region = region
	r.outputPath = videoPath
	r.isRecording = true
	r.isDone = false
	r.startTime = time.Now()
	r.stopChan = make(chan struct{})
	r.doneChan = make(chan struct{})
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.tracker = tracking.NewTracker(screenWidth, screenHeight, r.record.FPS)
	go r.tracker.Start(ctx, r.startTime)

	go func() {
		r.runFFmpeg(videoPath, region)
		cancel()
	}()

	return nil
}

func (r *Recorder) runFFmpeg(outputPath string, region config.Region) {
	defer close(r.doneChan)

	cmd, err := captureCommand(outputPath, region, r.record.FPS)
	if err != nil {
		fmt.Printf("Unable to configure capture: %v\n", err)
		r.finish()
		return
	}

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		fmt.Printf("Failed to get stdin pipe: %v\n", err)
		r.finish()
		return
	}
	defer stdinPipe.Close()

	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		fmt.Printf("Failed to start ffmpeg: %v\n", err)
		r.finish()
		return
	}

	// ffmpeg treats "q" on stdin as a clean stop request.
	go func() {
		<-r.stopChan
		stdinPipe.Write([]byte("q\n"))
		stdinPipe.Close()
	}()

	if err := cmd.Wait(); err != nil {
		// ffmpeg exits non-zero on interrupt; that's a normal stop.
		fmt.Printf("FFmpeg process finished with status: %v\n", err)
	}

	r.finish()
}

func (r *Recorder) finish() {
	r.mu.Lock()
	r.isRecording = false
	r.isDone = true
	r.mu.Unlock()
}

// Stop signals ffmpeg to finish, waits for the file to be flushed, and
// writes the mouse-event log next to the video in the temp directory.
func (r *Recorder) Stop() (videoPath, dataPath string, err error) {
	r.mu.Lock()
	if !r.isRecording {
		r.mu.Unlock()
		return "", "", fmt.Errorf("no recording in progress")
	}
	r.mu.Unlock()

	close(r.stopChan)
	<-r.doneChan
	if r.cancel != nil {
		r.cancel()
	}

	dataPath = tracking.DataPath(r.outputPath)
	if err := r.tracker.Log().Save(dataPath); err != nil {
		return r.outputPath, "", fmt.Errorf("failed to save mouse events: %w", err)
	}
	return r.outputPath, dataPath, nil
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isRecording
}

func (r *Recorder) IsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isDone
}

func (r *Recorder) OutputPath() string {
	return r.outputPath
}

func (r *Recorder) Region() config.Region {
	return r.region
}

func (r *Recorder) StartTime() time.Time {
	return r.startTime
}

// captureCommand builds the platform-specific ffmpeg capture invocation.
func captureCommand(outputPath string, region config.Region, fps int) (*exec.Cmd, error) {
	framerate := strconv.Itoa(fps)
	size := fmt.Sprintf("%dx%d", region.Width, region.Height)

	switch runtime.GOOS {
	case "darwin":
		index, err := findScreenDeviceIndex()
		if err != nil {
			return nil, err
		}
		return exec.Command("ffmpeg",
			"-f", "avfoundation",
			"-framerate", framerate,
			"-i", index+":none",
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-preset", "ultrafast",
			"-y",
			outputPath), nil
	case "linux":
		display := os.Getenv("DISPLAY")
		if display == "" {
			display = ":0.0"
		}
		return exec.Command("ffmpeg",
			"-f", "x11grab",
			"-framerate", framerate,
			"-video_size", size,
			"-i", fmt.Sprintf("%s+%d,%d", display, region.Left, region.Top),
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-y",
			outputPath), nil
	case "windows":
		return exec.Command("ffmpeg",
			"-f", "gdigrab",
			"-framerate", framerate,
			"-offset_x", strconv.Itoa(region.Left),
			"-offset_y", strconv.Itoa(region.Top),
			"-video_size", size,
			"-i", "desktop",
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-y",
			outputPath), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// findScreenDeviceIndex parses ffmpeg's avfoundation device listing for the
// main capture screen. macOS only.
func findScreenDeviceIndex() (string, error) {
	cmd := exec.Command("ffmpeg", "-f", "avfoundation", "-list_devices", "true", "-i", "")

	outputBytes, err := cmd.CombinedOutput()
	if err != nil && len(outputBytes) == 0 {
		return "", fmt.Errorf("failed to run ffmpeg list_devices command: %v", err)
	}

	inVideoDevices := false
	videoDeviceIndex := 0
	for _, line := range strings.Split(string(outputBytes), "\n") {
		if strings.Contains(line, "AVFoundation video devices:") {
			inVideoDevices = true
			continue
		}
		if strings.Contains(line, "AVFoundation audio devices:") {
			break
		}
		if !inVideoDevices {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "Capture screen 0") {
			return strconv.Itoa(videoDeviceIndex), nil
		}
		if strings.Contains(trimmed, "]") && len(trimmed) > 0 {
			videoDeviceIndex++
		}
	}

	return "", errors.New("could not find 'Capture screen 0' in ffmpeg device list")
}
