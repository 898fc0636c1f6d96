package video

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
)

// Trim re-encodes the frames of inputPath between startTime and endTime
// (seconds) into a temp file and returns its path. A negative endTime means
// end of stream. Trimming is frame-accurate: frames are decoded and
// conditionally re-written rather than cut at keyframes.
func Trim(ctx context.Context, inputPath string, startTime, endTime float64) (string, error) {
	video, err := vidio.NewVideo(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to open input video %s: %w", inputPath, err)
	}
	defer video.Close()

	fps := video.FPS()
	startFrame := int(startTime * fps)
	endFrame := video.Frames()
	if endTime >= 0 {
		endFrame = int(math.Min(float64(endFrame), endTime*fps))
	}
	if startFrame > endFrame {
		return "", fmt.Errorf("trim start %.2fs is past trim end", startTime)
	}

	outputPath := filepath.Join(os.TempDir(), "screenkit-trim.mp4")
	options := vidio.Options{FPS: fps, Bitrate: video.Bitrate()}
	writer, err := vidio.NewVideoWriter(outputPath, video.Width(), video.Height(), &options)
	if err != nil {
		return "", fmt.Errorf("failed to open trim output: %w", err)
	}
	defer writer.Close()

	for frame := 0; video.Read(); frame++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if frame > endFrame {
			break
		}
		if frame < startFrame {
			continue
		}
		if err := writer.Write(video.FrameBuffer()); err != nil {
			return "", fmt.Errorf("failed to write frame %d: %w", frame, err)
		}
	}

	return outputPath, nil
}
