package caption

import (
	"fmt"
	"os"
	"strings"
)

// TrackStyle describes the single visual style of a caption track.
type TrackStyle struct {
	PlayResX int
	PlayResY int
	FontName string
	FontSize int
}

const (
	marginL = 60
	marginR = 60
	marginV = 350
)

// FormatTime renders seconds as the ASS H:MM:SS.CC form. Centiseconds are
// truncated, not rounded, so boundaries shared by two events stay identical.
func FormatTime(t float64) string {
	h := int(t) / 3600
	m := (int(t) % 3600) / 60
	s := int(t) % 60
	cs := int(t*100) % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

// BuildASS serializes timed pages into an ASS subtitle document. Every page
// becomes one Dialogue event; event N starts where event N-1 ended.
func BuildASS(pages []Page, style TrackStyle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[Script Info]\n")
	fmt.Fprintf(&b, "Title: Subtitle\n")
	fmt.Fprintf(&b, "ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", style.PlayResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", style.PlayResY)
	fmt.Fprintf(&b, "ScaledBorderAndShadow: yes\n\n")

	fmt.Fprintf(&b, "[V4+ Styles]\n")
	fmt.Fprintf(&b, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	// White fill over a semi-transparent black box, anchored bottom-center
	// with a raised vertical margin.
	fmt.Fprintf(&b, "Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,0,0,0,0,100,100,0,0,1,2,2,2,%d,%d,%d,1\n\n",
		style.FontName, style.FontSize, marginL, marginR, marginV)

	fmt.Fprintf(&b, "[Events]\n")
	fmt.Fprintf(&b, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, p := range pages {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,%d,%d,%d,,%s\n",
			FormatTime(p.Start), FormatTime(p.End), marginL, marginR, marginV,
			strings.Join(p.Lines, `\N`))
	}

	return b.String()
}

// WriteASS builds the subtitle document and writes it to path.
func WriteASS(path string, pages []Page, style TrackStyle) error {
	return os.WriteFile(path, []byte(BuildASS(pages, style)), 0644)
}
