package points

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	// ErrAmbiguousPlayer means a player name shows up more than once in one week's records.
	ErrAmbiguousPlayer = errors.New("ambiguous player lookup")
	ErrUnknownWeek     = errors.New("record for week outside requested range")
)

// Align pivots a flat list of weekly records into one row per unique
// (player, team, position), with one value per week in weeks.
// Identities keep first-seen order; a missing player-week is 0.
func Align(weeks []int, records []WeeklyRecord) ([]PlayerWeeklyRow, error) {
	col := make(map[int]int, len(weeks))
	for i, w := range weeks {
		col[w] = i
	}

	type weekName struct {
		week   int
		player string
	}
	seen := make(map[weekName]float64, len(records))
	for _, r := range records {
		if _, ok := col[r.Week]; !ok {
			return nil, errors.Wrapf(ErrUnknownWeek, "week %d (%s)", r.Week, r.Player)
		}
		k := weekName{r.Week, r.Player}
		if prev, dup := seen[k]; dup {
			return nil, errors.Wrapf(ErrAmbiguousPlayer, "week %d: %q listed more than once (%.2f and %.2f)", r.Week, r.Player, prev, r.Points)
		}
		seen[k] = r.Points
	}

	ids := lo.Map(lo.UniqBy(records, WeeklyRecord.Identity), func(r WeeklyRecord, _ int) PlayerIdentity {
		return r.Identity()
	})
	byID := lo.GroupBy(records, WeeklyRecord.Identity)

	rows := make([]PlayerWeeklyRow, 0, len(ids))
	for _, id := range ids {
		pts := make([]float64, len(weeks))
		for _, r := range byID[id] {
			pts[col[r.Week]] = r.Points
		}
		rows = append(rows, PlayerWeeklyRow{PlayerIdentity: id, Points: pts})
	}
	return rows, nil
}
