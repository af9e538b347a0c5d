package export

import (
	"encoding/csv"
	"io"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

func writeCSV(w io.Writer, t *points.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(t.Weeks)); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := make([]string, 0, len(r.Weeks)+4)
		rec = append(rec, r.Player, r.Team, r.Position)
		for _, c := range r.Weeks {
			rec = append(rec, formatCell(c))
		}
		rec = append(rec, formatCell(r.Total))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
