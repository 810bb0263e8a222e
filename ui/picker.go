package ui

import (
	"strings"

	"github.com/drake/armory/loadout"
)

// pickerRow is one selectable entry in the picker overlay.
type pickerRow struct {
	Label string
	Desc  string
	Hash  loadout.Hash
	ID    string
}

// picker is a fuzzy-filtering selector rendered as an overlay. The hosting
// model feeds it keystrokes while it is open and reads the selection back on
// enter.
type picker struct {
	header    string
	rows      []pickerRow
	filtered  []pickerRow
	matches   []fuzzyMatch
	query     string
	selected  int
	scrollOff int
	maxRows   int
	width     int
	styles    Styles
}

func newPicker(header string, rows []pickerRow, styles Styles) *picker {
	p := &picker{
		header:  header,
		rows:    rows,
		maxRows: 10,
		width:   60,
		styles:  styles,
	}
	p.filter("")
	return p
}

// filter re-ranks rows against query.
func (p *picker) filter(query string) {
	p.query = query

	labels := make([]string, len(p.rows))
	for i, r := range p.rows {
		labels[i] = r.Label
	}
	p.matches = fuzzyFilter(query, labels)
	p.filtered = make([]pickerRow, len(p.matches))
	for i, m := range p.matches {
		p.filtered[i] = p.rows[m.Index]
	}

	if p.selected >= len(p.filtered) {
		p.selected = max(0, len(p.filtered)-1)
	}
	p.scrollOff = 0
	p.adjustScroll()
}

// Type appends a rune to the query.
func (p *picker) Type(r rune) {
	p.filter(p.query + string(r))
}

// Backspace removes the last query rune.
func (p *picker) Backspace() {
	if p.query == "" {
		return
	}
	runes := []rune(p.query)
	p.filter(string(runes[:len(runes)-1]))
}

// SelectUp moves selection up with wraparound.
func (p *picker) SelectUp() {
	if len(p.filtered) == 0 {
		return
	}
	p.selected--
	if p.selected < 0 {
		p.selected = len(p.filtered) - 1
	}
	p.adjustScroll()
}

// SelectDown moves selection down with wraparound.
func (p *picker) SelectDown() {
	if len(p.filtered) == 0 {
		return
	}
	p.selected++
	if p.selected >= len(p.filtered) {
		p.selected = 0
	}
	p.adjustScroll()
}

func (p *picker) adjustScroll() {
	if p.selected < p.scrollOff {
		p.scrollOff = p.selected
	} else if p.selected >= p.scrollOff+p.maxRows {
		p.scrollOff = p.selected - p.maxRows + 1
	}
}

// Selected returns the currently selected row.
func (p *picker) Selected() (pickerRow, bool) {
	if len(p.filtered) == 0 || p.selected < 0 || p.selected >= len(p.filtered) {
		return pickerRow{}, false
	}
	return p.filtered[p.selected], true
}

// View renders the picker overlay.
func (p *picker) View() string {
	var lines []string
	lines = append(lines, p.styles.Muted.Render(p.header+" ")+p.query+"█")

	if len(p.filtered) == 0 {
		lines = append(lines, p.styles.Muted.Render("  no matches"))
		return p.styles.OverlayBorder.Width(p.width).Render(strings.Join(lines, "\n"))
	}

	end := p.scrollOff + p.maxRows
	if end > len(p.filtered) {
		end = len(p.filtered)
	}
	for i := p.scrollOff; i < end; i++ {
		lines = append(lines, p.renderRow(i))
	}
	return p.styles.OverlayBorder.Width(p.width).Render(strings.Join(lines, "\n"))
}

func (p *picker) renderRow(i int) string {
	row := p.filtered[i]
	selected := i == p.selected

	prefix := "  "
	if selected {
		prefix = "> "
	}

	matchSet := make(map[int]bool)
	if i < len(p.matches) {
		for _, pos := range p.matches[i].Positions {
			matchSet[pos] = true
		}
	}

	var b strings.Builder
	b.WriteString(prefix)
	for idx, r := range []rune(row.Label) {
		ch := string(r)
		switch {
		case matchSet[idx] && selected:
			b.WriteString(p.styles.OverlayMatchSelected.Render(ch))
		case matchSet[idx]:
			b.WriteString(p.styles.OverlayMatch.Render(ch))
		case selected:
			b.WriteString(p.styles.OverlaySelected.Render(ch))
		default:
			b.WriteString(p.styles.OverlayNormal.Render(ch))
		}
	}
	if row.Desc != "" {
		b.WriteString(p.styles.Muted.Render("  " + row.Desc))
	}
	return b.String()
}
