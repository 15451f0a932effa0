package tui

import (
	"fmt"
	"strings"

	"github.com/pie-314/trx/math"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/search"
	"github.com/pie-314/trx/searcher"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

type detailsEntry struct {
	details provider.Details
	err     error
	loading bool
}

// model is the UI state. It is not safe for concurrent use, App guards it.
type model struct {
	query   string
	results searcher.Results
	cursor  int
	offset  int
	details map[string]detailsEntry
}

func newModel() *model {
	return &model{
		results: searcher.Results{Packages: []searcher.Result{}},
		details: make(map[string]detailsEntry),
	}
}

// apply replaces the result list, keeping the cursor on the same package when it is still listed
func (m *model) apply(results searcher.Results) {
	var currentKey string
	if current, ok := m.current(); ok {
		currentKey = current.Key()
	}
	m.results = results
	m.cursor, m.offset = 0, 0
	for i, r := range results.Packages {
		if r.Key() == currentKey {
			m.cursor = i
			break
		}
	}
}

func (m *model) move(delta int) {
	if len(m.results.Packages) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = math.ClampInt(m.cursor+delta, 0, len(m.results.Packages)-1)
}

func (m *model) current() (searcher.Result, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results.Packages) {
		return searcher.Result{}, false
	}
	return m.results.Packages[m.cursor], true
}

// window returns the range of rows to draw in a view height rows tall, scrolled so the cursor is visible
func (m *model) window(height int) (start, end int) {
	height = math.MaxInt(height, 1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	m.offset = math.ClampInt(m.offset, 0, math.MaxInt(len(m.results.Packages)-height, 0))
	return m.offset, math.MinInt(m.offset+height, len(m.results.Packages))
}

// renderRows renders the visible rows of the result list
func (m *model) renderRows(height int, selected func(provider.Package) bool) []string {
	start, end := m.window(height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := m.results.Packages[i]
		rows = append(rows, renderRow(r, i == m.cursor, selected(r.Package)))
	}
	return rows
}

func renderRow(r searcher.Result, isCursor, isSelected bool) string {
	var buf strings.Builder
	if isCursor {
		buf.WriteString("> ")
	} else {
		buf.WriteString("  ")
	}
	if isSelected {
		buf.WriteString(colorGreen + "[x]" + colorReset + " ")
	} else {
		buf.WriteString("[ ] ")
	}
	if r.Repository != "" {
		buf.WriteString(colorDim + r.Repository + "/" + colorReset)
	}
	buf.WriteString(highlight(r.Name, r.Positions))
	if r.Version != "" {
		buf.WriteString(" " + colorCyan + r.Version + colorReset)
	}
	if r.Installed {
		buf.WriteString(" [installed]")
	}
	if r.Description != "" {
		buf.WriteString(" " + r.Description)
	}
	return buf.String()
}

// highlight colors the runes of name at positions
func highlight(name string, positions search.Positions) string {
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}
	var buf strings.Builder
	for i, r := range []rune(name) {
		if matched[i] {
			buf.WriteString(colorYellow)
			buf.WriteRune(r)
			buf.WriteString(colorReset)
		} else {
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

func (m *model) renderDetails() string {
	current, ok := m.current()
	if !ok {
		return ""
	}
	entry, found := m.details[current.Key()]
	switch {
	case !found || entry.loading:
		return "Loading details for " + current.FullName()
	case entry.err != nil:
		return colorRed + "Error: " + entry.err.Error() + colorReset
	}
	var buf strings.Builder
	for _, f := range entry.details.Fields {
		fmt.Fprintf(&buf, "%s%s%s: %s\n", colorCyan, f.Key, colorReset, f.Value)
	}
	return buf.String()
}

func (m *model) renderStatus(searching bool, selectedCount int) string {
	var parts []string
	if searching {
		parts = append(parts, "Searching")
	}
	parts = append(parts,
		fmt.Sprintf("%d results", len(m.results.Packages)),
		fmt.Sprintf("%d selected", selectedCount),
	)
	status := strings.Join(parts, " | ")
	if m.results.Err != nil {
		status += " | " + colorRed + strings.Replace(m.results.Err.Error(), "\n", "; ", -1) + colorReset
	}
	return status
}
