// Package audio shells out to ffmpeg/ffprobe for the conversions needed
// before speech-to-text upload.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// GetDuration returns the audio duration in whole seconds via ffprobe.
func GetDuration(ctx context.Context, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return int(math.Round(durationFloat)), nil
}

// ConvertToMP3 transcodes the input file to MP3 next to it and returns the
// new path. Whisper accepts mp3 directly; browser recordings arrive as webm.
func ConvertToMP3(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".mp3"
	if _, err := os.Stat(outputPath); err == nil {
		return outputPath, nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", inputPath, "-vn", "-acodec", "libmp3lame", outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg error: %v, stderr: %s", err, stderr.String())
	}
	return outputPath, nil
}

// whisperNativeExts are formats the transcription API accepts without
// transcoding.
var whisperNativeExts = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
	".mpga": true,
	".mpeg": true,
}

// NeedsConversion reports whether the file must be transcoded before upload.
func NeedsConversion(filePath string) bool {
	return !whisperNativeExts[strings.ToLower(filepath.Ext(filePath))]
}
