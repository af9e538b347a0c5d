package points

import (
	"gopkg.in/guregu/null.v3"
)

// WeeklyRecord is one player's scoring line for a single week.
type WeeklyRecord struct {
	Week     int
	Player   string
	Team     string
	Position string
	Points   float64
}

func (r WeeklyRecord) Identity() PlayerIdentity {
	return PlayerIdentity{Player: r.Player, Team: r.Team, Position: r.Position}
}

// PlayerIdentity is the dedup key for a player across weeks.
type PlayerIdentity struct {
	Player   string
	Team     string
	Position string
}

// Key is a stable string form, e.g. "Derrick Henry#TEN#RB".
func (p PlayerIdentity) Key() string {
	return p.Player + "#" + p.Team + "#" + p.Position
}

// PlayerWeeklyRow holds one points value per requested week; absent weeks are 0.
type PlayerWeeklyRow struct {
	PlayerIdentity
	Points []float64
	Total  float64
}

// Row is a display row: weekly and total cells may be missing.
type Row struct {
	PlayerIdentity
	Weeks []null.Float
	Total null.Float
}

// Table is the aggregated season artifact.
type Table struct {
	Weeks []int
	Rows  []Row
}
