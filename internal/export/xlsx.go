package export

import (
	"io"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

const defaultSheet = "Sheet1"

func writeXLSX(w io.Writer, t *points.Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	}

	header := lo.Map(Header(t.Weeks), func(h string, _ int) interface{} { return h })
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range t.Rows {
		row := i + 2
		vals := []interface{}{r.Player, r.Team, r.Position}
		if err := f.SetSheetRow(sheet, cellName(1, row), &vals); err != nil {
			return err
		}
		// missing cells stay empty
		for j, c := range append(append([]null.Float(nil), r.Weeks...), r.Total) {
			if !c.Valid {
				continue
			}
			if err := f.SetCellFloat(sheet, cellName(4+j, row), c.Float64, -1, 64); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
