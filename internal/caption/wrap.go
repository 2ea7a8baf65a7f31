package caption

// RuneWidth returns the display-width weight of a rune: 1.0 for anything
// outside basic Latin (CJK and other full-width scripts), 0.5 otherwise.
func RuneWidth(r rune) float64 {
	if r > 127 {
		return 1.0
	}
	return 0.5
}

// Wrap splits text into lines whose accumulated rune widths stay within
// maxWidth. Wrapping is greedy: a line is closed as soon as the next rune
// would overflow it. A rune wider than maxWidth still gets a line of its own
// rather than being dropped. Empty input yields no lines.
func Wrap(text string, maxWidth float64) []string {
	var lines []string
	var current []rune
	width := 0.0

	for _, r := range text {
		w := RuneWidth(r)
		if width+w > maxWidth && len(current) > 0 {
			lines = append(lines, string(current))
			current = []rune{r}
			width = w
		} else {
			current = append(current, r)
			width += w
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
