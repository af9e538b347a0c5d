package weekly

import (
	"context"
	"encoding/json"
	"io"

	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/points"
	"github.com/tyler180/fantasypros-weekly/internal/store"
)

// Event is the Lambda payload. Unset fields fall back to WEEKLY_POINTS_* env.
type Event struct {
	Scoring   string `json:"scoring"`  // ppr | half-ppr | standard
	Year      *int   `json:"year"`     // e.g. 2020
	WeekBeg   *int   `json:"week_beg"` // inclusive
	WeekEnd   *int   `json:"week_end"` // inclusive
	Format    string `json:"format"`   // xlsx | csv | parquet
	KeepZeros *bool  `json:"keep_zeros"`
}

// Raw is used by Lambda entrypoint to avoid tight coupling to the event type at the edge.
type Raw = json.RawMessage

// Fetcher returns the leaders records of one week.
type Fetcher interface {
	Fetch(ctx context.Context, scoring config.Scoring, year, week int) ([]points.WeeklyRecord, error)
}

// Deps carries the collaborators of a run. Nil sinks are skipped.
type Deps struct {
	Fetcher Fetcher
	S3      store.S3API
	DDB     store.DynamoDBAPI
	Stdout  io.Writer
}

// Result summarizes a finished run.
type Result struct {
	OutputPath string
	S3Key      string
	Rows       int
	Weeks      int
	Records    int
}
