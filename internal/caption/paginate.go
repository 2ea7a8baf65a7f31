package caption

import "unicode/utf8"

// Page is one caption display unit: up to LinesPerPage wrapped lines shown
// for the [Start, End) window.
type Page struct {
	Lines []string
	Start float64
	End   float64
}

// RuneCount is the page's raw character load. Window allocation uses plain
// rune counts, not wrap weights, so timing stays decoupled from the
// width-budget heuristic.
func (p Page) RuneCount() int {
	n := 0
	for _, line := range p.Lines {
		n += utf8.RuneCountInString(line)
	}
	return n
}

// Paginate groups wrapped lines into pages of up to perPage consecutive
// lines. The last page may be short.
func Paginate(lines []string, perPage int) []Page {
	if perPage <= 0 {
		perPage = 2
	}
	var pages []Page
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, Page{Lines: lines[start:end]})
	}
	return pages
}

// AllocateWindows assigns each page a contiguous time window proportional to
// its rune count so that caption changes track narration pacing. The final
// page's end is forced to total exactly, absorbing floating-point drift.
func AllocateWindows(pages []Page, total float64) []Page {
	totalRunes := 0
	for _, p := range pages {
		totalRunes += p.RuneCount()
	}
	if totalRunes == 0 {
		totalRunes = 1
	}

	current := 0.0
	for i := range pages {
		pages[i].Start = current
		if i == len(pages)-1 {
			pages[i].End = total
		} else {
			pages[i].End = current + float64(pages[i].RuneCount())/float64(totalRunes)*total
		}
		if pages[i].Start > pages[i].End {
			pages[i].Start = pages[i].End
		}
		current = pages[i].End
	}
	return pages
}

// BuildTrack wraps, paginates and times caption text in one pass.
func BuildTrack(text string, maxWidth float64, perPage int, duration float64) []Page {
	lines := Wrap(text, maxWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return AllocateWindows(Paginate(lines, perPage), duration)
}
