package fpros

import (
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

var (
	wsRe       = regexp.MustCompile(`\s+`)
	teamSuffix = regexp.MustCompile(`\s*\([A-Z]{2,4}\)$`)
	trimPts    = strings.NewReplacer(",", "", "\u00A0", "", "\u2009", "")
)

type leadersHeaderMap struct {
	idxPlayer int
	idxTeam   int
	idxPos    int
	idxPoints int
}

func normHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.ReplaceAll(s, ".", "")
	return strings.TrimSpace(s)
}

func mapLeadersHeader(table *goquery.Selection) (leadersHeaderMap, bool) {
	h := leadersHeaderMap{-1, -1, -1, -1}
	thead := table.Find("thead tr").Last()
	if thead.Length() == 0 {
		return h, false
	}
	thead.Find("th,td").Each(func(i int, cell *goquery.Selection) {
		switch normHeader(cell.Text()) {
		case "player", "name":
			h.idxPlayer = i
		case "team", "tm":
			h.idxTeam = i
		case "pos", "position":
			h.idxPos = i
		case "points", "pts", "fpts", "fantasy points":
			h.idxPoints = i
		}
	})
	ok := h.idxPlayer >= 0 && h.idxTeam >= 0 && h.idxPos >= 0 && h.idxPoints >= 0
	return h, ok
}

func findLeadersTable(doc *goquery.Document) (*goquery.Selection, leadersHeaderMap, bool) {
	if t := doc.Find("table#data").First(); t.Length() > 0 {
		if h, ok := mapLeadersHeader(t); ok {
			return t, h, true
		}
	}
	var (
		chosen *goquery.Selection
		hdr    leadersHeaderMap
	)
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if h, ok := mapLeadersHeader(t); ok {
			chosen, hdr = t, h
			return false
		}
		return true
	})
	return chosen, hdr, chosen != nil
}

func cleanPlayer(s string) string {
	s = wsRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return teamSuffix.ReplaceAllString(s, "")
}

func parsePoints(s string) (float64, error) {
	s = trimPts.Replace(strings.TrimSpace(s))
	if s == "" || s == "-" || s == "\u2014" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(ErrParse, "non-finite points %q", s)
	}
	return f, nil
}

// ParseLeaders reads the leaders report HTML for one week.
func ParseLeaders(r io.Reader, week int) ([]points.WeeklyRecord, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	// some report tables ship inside HTML comments
	clean := strings.ReplaceAll(string(b), "<!--", "")
	clean = strings.ReplaceAll(clean, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}

	table, hdr, ok := findLeadersTable(doc)
	if !ok {
		return nil, errors.Wrap(ErrParse, "no table with player, team, position and points columns")
	}

	rows := table.Find("tbody tr")
	out := make([]points.WeeklyRecord, 0, rows.Length())
	var rowErr error
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if strings.Contains(tr.AttrOr("class", ""), "thead") {
			return true
		}
		cells := tr.Find("th,td")
		get := func(idx int) string {
			if idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		player := cleanPlayer(get(hdr.idxPlayer))
		if player == "" {
			return true
		}
		pts, err := parsePoints(get(hdr.idxPoints))
		if err != nil {
			rowErr = errors.Wrapf(ErrParse, "points for %q: %v", player, err)
			return false
		}
		out = append(out, points.WeeklyRecord{
			Week:     week,
			Player:   player,
			Team:     strings.ToUpper(get(hdr.idxTeam)),
			Position: strings.ToUpper(get(hdr.idxPos)),
			Points:   pts,
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}
