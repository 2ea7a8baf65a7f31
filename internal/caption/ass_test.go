package caption

import (
	"strings"
	"testing"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00:00.00"},
		{5.0, "0:00:05.00"},
		{5.2, "0:00:05.20"},
		{65.4, "0:01:05.40"},
		{3725.25, "1:02:05.25"},
		// Centiseconds truncate rather than round.
		{5.999, "0:00:05.99"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func testStyle() TrackStyle {
	return TrackStyle{PlayResX: 1080, PlayResY: 1920, FontName: "Arial Unicode MS", FontSize: 70}
}

func TestBuildASSHeader(t *testing.T) {
	doc := BuildASS(BuildTrack("短い字幕", 13, 2, 5.0), testStyle())

	for _, want := range []string{
		"[Script Info]",
		"PlayResX: 1080",
		"PlayResY: 1920",
		"[V4+ Styles]",
		"Style: Default,Arial Unicode MS,70,&H00FFFFFF,",
		"&H80000000",
		"[Events]",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestBuildASSEvents(t *testing.T) {
	// 40 wide chars wrap to 4 lines of 13,13,13,1 -> 2 pages.
	text := strings.Repeat("一", 40)
	doc := BuildASS(BuildTrack(text, 13, 2, 10.0), testStyle())

	var events []string
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "Dialogue:") {
			events = append(events, line)
		}
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d:\n%s", len(events), doc)
	}
	if !strings.Contains(events[0], `\N`) {
		t.Errorf("multi-line page should join lines with \\N: %s", events[0])
	}

	// Event N starts where event N-1 ended.
	end0 := strings.Split(events[0], ",")[2]
	start1 := strings.Split(events[1], ",")[1]
	if end0 != start1 {
		t.Errorf("gap between events: %q vs %q", end0, start1)
	}
	if !strings.Contains(events[1], "0:00:10.00") {
		t.Errorf("last event should end at the slide duration: %s", events[1])
	}
	t.Logf("events:\n%s", strings.Join(events, "\n"))
}

func TestBuildASSSinglePage(t *testing.T) {
	doc := BuildASS(BuildTrack("Short text", 13, 2, 5.0), testStyle())
	if n := strings.Count(doc, "Dialogue:"); n != 1 {
		t.Fatalf("expected 1 event, got %d", n)
	}
	if !strings.Contains(doc, "0:00:05.00") {
		t.Errorf("event should end at 0:00:05.00:\n%s", doc)
	}
}
