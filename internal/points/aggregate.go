package points

import (
	"sort"

	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"
)

type AggregateOptions struct {
	// MarkMissing turns every exact 0.0 weekly or total value into a missing cell.
	MarkMissing bool
}

// Aggregate totals each row, applies the zero-to-missing policy and sorts by
// total descending with missing totals last. Ties keep alignment order.
func Aggregate(rows []PlayerWeeklyRow, weeks []int, opts AggregateOptions) *Table {
	cell := func(v float64) null.Float {
		if opts.MarkMissing && v == 0 {
			return null.Float{}
		}
		return null.FloatFrom(v)
	}

	out := make([]Row, 0, len(rows))
	for i := range rows {
		rows[i].Total = lo.Sum(rows[i].Points)
		out = append(out, Row{
			PlayerIdentity: rows[i].PlayerIdentity,
			Weeks:          lo.Map(rows[i].Points, func(v float64, _ int) null.Float { return cell(v) }),
			Total:          cell(rows[i].Total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Total, out[j].Total
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Float64 > b.Float64
	})

	return &Table{Weeks: append([]int(nil), weeks...), Rows: out}
}
