package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

// Print dumps the table as fixed-width columns, missing cells shown as "-".
func Print(w io.Writer, t *points.Table) {
	header := Header(t.Weeks)
	lines := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := []string{r.Player, r.Team, r.Position}
		for _, c := range r.Weeks {
			line = append(line, consoleCell(formatCell(c)))
		}
		lines = append(lines, append(line, consoleCell(formatCell(r.Total))))
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, l := range lines {
		for i, v := range l {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	printLine := func(vals []string) {
		parts := make([]string, len(vals))
		for i, v := range vals {
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v))
			if i < 3 {
				parts[i] = v + pad
			} else {
				parts[i] = pad + v
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printLine(header)
	seps := make([]string, len(widths))
	for i, n := range widths {
		seps[i] = strings.Repeat("-", n)
	}
	printLine(seps)
	for _, l := range lines {
		printLine(l)
	}
	fmt.Fprintf(w, "\n[%d rows x %d columns]\n", len(t.Rows), len(header))
}

func consoleCell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
