package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	parquet "github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/points"
)

func sampleTable() *points.Table {
	return &points.Table{
		Weeks: []int{1, 2},
		Rows: []points.Row{
			{
				PlayerIdentity: points.PlayerIdentity{Player: "Lamar Jackson", Team: "BAL", Position: "QB"},
				Weeks:          []null.Float{null.FloatFrom(33.7), null.Float{}},
				Total:          null.FloatFrom(33.7),
			},
			{
				PlayerIdentity: points.PlayerIdentity{Player: "Backup Kicker", Team: "MIA", Position: "K"},
				Weeks:          []null.Float{null.Float{}, null.Float{}},
				Total:          null.Float{},
			},
		},
	}
}

func TestHeader(t *testing.T) {
	assert.Equal(t,
		[]string{"Player", "Team", "Position", "Wk3", "Wk4", "Total"},
		Header([]int{3, 4}))
}

func TestRender_CSV(t *testing.T) {
	b, err := RenderBytes(config.FormatCSV, sampleTable(), "")
	require.NoError(t, err)

	want := strings.Join([]string{
		"Player,Team,Position,Wk1,Wk2,Total",
		"Lamar Jackson,BAL,QB,33.7,,33.7",
		"Backup Kicker,MIA,K,,,",
		"",
	}, "\n")
	assert.Equal(t, want, string(b))
}

func TestRender_XLSX(t *testing.T) {
	b, err := RenderBytes(config.FormatXLSX, sampleTable(), "2020 half-ppr")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2020 half-ppr"}, f.GetSheetList())

	rows, err := f.GetRows("2020 half-ppr", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, []string{"Player", "Team", "Position", "Wk1", "Wk2", "Total"}, rows[0])
	require.Len(t, rows[1], 6)
	assert.Equal(t, "Lamar Jackson", rows[1][0])
	assert.Equal(t, "33.7", rows[1][3])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "33.7", rows[1][5])
	assert.Equal(t, []string{"Backup Kicker", "MIA", "K"}, rows[2][:3])
}

func TestRender_Parquet(t *testing.T) {
	b, err := RenderBytes(config.FormatParquet, sampleTable(), "")
	require.NoError(t, err)

	got, err := parquet.Read[WeekPointsRow](bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Lamar Jackson", got[0].Player)
	assert.Equal(t, int32(1), got[0].Week)
	require.NotNil(t, got[0].Points)
	assert.Equal(t, 33.7, *got[0].Points)
	require.NotNil(t, got[0].Total)
	assert.Equal(t, 33.7, *got[0].Total)

	assert.Equal(t, int32(2), got[1].Week)
	assert.Nil(t, got[1].Points)

	assert.Equal(t, "Backup Kicker", got[3].Player)
	assert.Nil(t, got[3].Total)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := RenderBytes(config.Format("json"), sampleTable(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "half-ppr_2020_by_week.csv")

	require.NoError(t, WriteFile(path, []byte("x")))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))
}

func TestWriteFile_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// parent is a regular file
	err := WriteFile(filepath.Join(blocker, "out.xlsx"), []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, sampleTable())
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "Player"))
	assert.Contains(t, lines[2], "Lamar Jackson")
	assert.Contains(t, lines[2], "33.7")
	assert.Contains(t, lines[3], "Backup Kicker")
	assert.True(t, strings.HasSuffix(lines[3], "-"))
	assert.Contains(t, out, "[2 rows x 6 columns]")
}
