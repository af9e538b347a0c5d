package export

import (
	"io"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

// WeekPointsRow is the long parquet layout: one row per player-week.
// Missing cells are written as nulls.
type WeekPointsRow struct {
	Player   string   `parquet:"player"`
	Team     string   `parquet:"team"`
	Position string   `parquet:"position"`
	Week     int32    `parquet:"week"`
	Points   *float64 `parquet:"points,optional"`
	Total    *float64 `parquet:"total,optional"`
}

func writeParquet(w io.Writer, t *points.Table) error {
	pw := parquet.NewWriter(w, parquet.SchemaOf(new(WeekPointsRow)), parquet.Compression(&parquet.Snappy))
	for _, r := range t.Rows {
		total := r.Total.Ptr()
		for i, c := range r.Weeks {
			row := WeekPointsRow{
				Player:   r.Player,
				Team:     r.Team,
				Position: r.Position,
				Week:     int32(t.Weeks[i]),
				Points:   c.Ptr(),
				Total:    total,
			}
			if err := pw.Write(row); err != nil {
				_ = pw.Close()
				return err
			}
		}
	}
	return pw.Close()
}
