package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"slidecast/internal/config"
)

// ProbeError reports a failed duration probe. Callers recover by falling
// back to the manifest-declared duration.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe %s: %v", e.Path, e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }

// RenderError reports a non-zero renderer exit, carrying the captured
// diagnostic output.
type RenderError struct {
	Output string
	Err    error
}

func (e *RenderError) Error() string {
	out := strings.TrimSpace(e.Output)
	if len(out) > 2048 {
		out = "..." + out[len(out)-2048:]
	}
	return fmt.Sprintf("ffmpeg: %v\n%s", e.Err, out)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer drives the external encoder for single slides and the final
// concatenation.
type Renderer interface {
	RenderSegment(ctx context.Context, imagePath, audioPath, filter string, p config.SlideParams, outPath string) error
	Concatenate(ctx context.Context, segmentPaths []string, tmpDir, finalPath string) error
}

// FFmpegRenderer invokes ffmpeg as a black box: it hands over the compiled
// filter graph and interprets nothing but the exit status.
type FFmpegRenderer struct {
	Encoder string
	Quality int
}

// RenderSegment encodes one slide: a looped still image animated by the
// filter graph, muxed with its voice-over track.
func (r *FFmpegRenderer) RenderSegment(ctx context.Context, imagePath, audioPath, filter string, p config.SlideParams, outPath string) error {
	imageIn := ffmpeg.Input(imagePath, ffmpeg.KwArgs{
		"loop": 1,
		"t":    fmt.Sprintf("%.3f", p.Duration),
	})

	// Slides without narration (the QR outro) get a silent track so every
	// segment stays concat-compatible.
	var audioIn *ffmpeg.Stream
	if audioPath == "" {
		audioIn = ffmpeg.Input("anullsrc=channel_layout=stereo:sample_rate=44100", ffmpeg.KwArgs{
			"f": "lavfi",
			"t": fmt.Sprintf("%.3f", p.Duration),
		})
	} else {
		audioIn = ffmpeg.Input(audioPath)
	}

	kwargs := ffmpeg.KwArgs{
		"vf":      filter,
		"t":       fmt.Sprintf("%.3f", p.Duration),
		"r":       p.FPS,
		"pix_fmt": "yuv420p",
		"c:v":     r.Encoder,
		"c:a":     "aac",
		"b:a":     "128k",
	}
	for k, v := range r.qualityArgs() {
		kwargs[k] = v
	}

	cmd := ffmpeg.Output([]*ffmpeg.Stream{imageIn, audioIn}, outPath, kwargs).
		OverWriteOutput().
		Compile()
	return run(ctx, cmd)
}

// qualityArgs maps the quality knob onto the selected encoder's native flag.
func (r *FFmpegRenderer) qualityArgs() map[string]interface{} {
	switch r.Encoder {
	case "h264_videotoolbox":
		return map[string]interface{}{"b:v": fmt.Sprintf("%dk", r.Quality*100)}
	case "h264_nvenc":
		return map[string]interface{}{"cq": r.Quality}
	default:
		return map[string]interface{}{"crf": r.Quality, "preset": "fast"}
	}
}

// Concatenate joins finished segments with the concat demuxer. Segments
// share encode settings, so streams are copied without re-encoding.
func (r *FFmpegRenderer) Concatenate(ctx context.Context, segmentPaths []string, tmpDir, finalPath string) error {
	listPath := filepath.Join(tmpDir, "segments.txt")
	var list strings.Builder
	for _, p := range segmentPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		fmt.Fprintf(&list, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return err
	}

	cmd := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(finalPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		Compile()
	return run(ctx, cmd)
}

// ProbeDuration measures a media file's real duration via ffprobe.
func ProbeDuration(path string) (float64, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, &ProbeError{Path: path, Err: err}
	}
	d, err := parseProbeDuration(raw)
	if err != nil {
		return 0, &ProbeError{Path: path, Err: err}
	}
	return d, nil
}

// parseProbeDuration extracts format.duration from ffprobe JSON output.
func parseProbeDuration(raw string) (float64, error) {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return 0, err
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("no duration in probe output")
	}
	return strconv.ParseFloat(probe.Format.Duration, 64)
}

// run executes a compiled ffmpeg command, killing it when the context
// expires and keeping stderr for diagnostics.
func run(ctx context.Context, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return &RenderError{Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		cmd.Process.Kill()
		<-done
		return &RenderError{Output: stderr.String(), Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			return &RenderError{Output: stderr.String(), Err: err}
		}
		return nil
	}
}
