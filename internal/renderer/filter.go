package renderer

import (
	"fmt"
	"strings"

	"slidecast/internal/config"
	"slidecast/internal/director"
)

// ZoomPanFilter compiles a keyframe list into a zoompan filter animating
// zoom, x and y over the slide's frame range.
func ZoomPanFilter(keyframes []director.Keyframe, p config.SlideParams) string {
	totalFrames := p.TotalFrames()

	var zExpr, xExpr, yExpr string
	if len(keyframes) < 2 {
		// Static framing: hold whatever single state we were given.
		state := director.Keyframe{Zoom: 1.0}
		if len(keyframes) == 1 {
			state = keyframes[0]
		}
		zExpr = ConstExpr(state.Zoom)
		xExpr = ConstExpr(state.X)
		yExpr = ConstExpr(state.Y)
	} else {
		zExpr = NewTimeline(keyframes, ZoomAttr).Expr()
		xExpr = NewTimeline(keyframes, XAttr).Expr()
		yExpr = NewTimeline(keyframes, YAttr).Expr()
	}

	if totalFrames < 1 {
		totalFrames = 1
	}
	return fmt.Sprintf("zoompan=z='%s':x='%s':y='%s':d=%d:s=%dx%d:fps=%d",
		zExpr, xExpr, yExpr, totalFrames, p.Width, p.Height, p.FPS)
}

// SlideFilter assembles the full per-slide filter graph: an
// aspect-preserving prescale to 2x the canvas (cheaper zoom blur), the
// compiled zoompan motion, and the caption overlay.
func SlideFilter(keyframes []director.Keyframe, p config.SlideParams, assPath string) string {
	prescale := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		p.InputWidth(), p.InputHeight(), p.InputWidth(), p.InputHeight())

	parts := []string{prescale}
	if p.TotalFrames() <= 0 {
		// No frames to animate: just bring the image to canvas size.
		parts = append(parts, fmt.Sprintf("scale=%d:%d", p.Width, p.Height))
	} else {
		parts = append(parts, ZoomPanFilter(keyframes, p))
	}
	if assPath != "" {
		parts = append(parts, fmt.Sprintf("ass=%s", escapeFilterPath(assPath)))
	}
	return strings.Join(parts, ",")
}

// escapeFilterPath quotes the characters ffmpeg's filter parser treats
// specially inside option values.
func escapeFilterPath(path string) string {
	r := strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`)
	return r.Replace(path)
}
