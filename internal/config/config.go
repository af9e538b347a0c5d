package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// ErrInvalid marks a configuration that cannot drive a run.
var ErrInvalid = errors.New("invalid configuration")

// Scoring is the fantasy-points formula variant requested from the source.
type Scoring string

const (
	ScoringPPR      Scoring = "ppr"
	ScoringHalfPPR  Scoring = "half-ppr"
	ScoringStandard Scoring = "standard"
)

func (s Scoring) Valid() bool {
	switch s {
	case ScoringPPR, ScoringHalfPPR, ScoringStandard:
		return true
	}
	return false
}

// Format is the artifact encoding and doubles as the output file extension.
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

func (f Format) Valid() bool {
	switch f {
	case FormatXLSX, FormatCSV, FormatParquet:
		return true
	}
	return false
}

type Config struct {
	// Scoring selects the FantasyPros leaders report: ppr, half-ppr or standard.
	Scoring Scoring `default:"half-ppr"`

	Year int `default:"2020"`

	// WeekBeg and WeekEnd bound the inclusive range of weeks fetched.
	WeekBeg int `split_words:"true" default:"1"`
	WeekEnd int `split_words:"true" default:"16"`

	// OutputDir receives <scoring>_<year>_by_week.<format>. A leading ~/ expands to the home directory.
	OutputDir string `split_words:"true" default:"~/Downloads"`
	Format    Format `default:"xlsx"`

	// MarkMissing replaces exact-zero weekly and total cells with an empty (null) cell.
	// A genuine zero-point week cannot be told apart from "no record" when this is on.
	MarkMissing bool `split_words:"true" default:"true"`

	BaseURL      string        `split_words:"true" default:"https://www.fantasypros.com"`
	HTTPTimeout  time.Duration `split_words:"true" default:"30s"`
	RequestDelay time.Duration `split_words:"true" default:"300ms"`

	// optional sinks; empty disables them
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Prefix    string `envconfig:"S3_PREFIX" default:"weekly_points"`
	DynamoTable string `split_words:"true"`

	// Print dumps the final table to stdout.
	Print bool `default:"true"`
	Debug bool
}

// Parse reads WEEKLY_POINTS_* environment variables over the defaults.
func Parse() (*Config, error) {
	var c Config
	if err := envconfig.Process("weekly_points", &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}
	c.Scoring = Scoring(strings.ToLower(strings.TrimSpace(string(c.Scoring))))
	c.Format = Format(strings.ToLower(strings.TrimSpace(string(c.Format))))
	return &c, nil
}

func (c *Config) Validate() error {
	if !c.Scoring.Valid() {
		return errors.Wrapf(ErrInvalid, "scoring %q must be one of ppr, half-ppr, standard", c.Scoring)
	}
	if !c.Format.Valid() {
		return errors.Wrapf(ErrInvalid, "format %q must be one of xlsx, csv, parquet", c.Format)
	}
	if c.Year <= 0 {
		return errors.Wrapf(ErrInvalid, "year %d must be positive", c.Year)
	}
	if c.WeekBeg < 1 {
		return errors.Wrapf(ErrInvalid, "week_beg %d must be at least 1", c.WeekBeg)
	}
	if c.WeekBeg > c.WeekEnd {
		return errors.Wrapf(ErrInvalid, "week_beg %d is after week_end %d", c.WeekBeg, c.WeekEnd)
	}
	return nil
}

// Weeks returns WeekBeg..WeekEnd in order.
func (c *Config) Weeks() []int {
	if c.WeekEnd < c.WeekBeg {
		return nil
	}
	out := make([]int, 0, c.WeekEnd-c.WeekBeg+1)
	for w := c.WeekBeg; w <= c.WeekEnd; w++ {
		out = append(out, w)
	}
	return out
}

func (c *Config) OutputName() string {
	return fmt.Sprintf("%s_%d_by_week.%s", c.Scoring, c.Year, c.Format)
}

// SheetName is the single sheet label, e.g. "2020 half-ppr".
func (c *Config) SheetName() string {
	return fmt.Sprintf("%d %s", c.Year, c.Scoring)
}

func (c *Config) OutputPath() (string, error) {
	dir := c.OutputDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "getting home directory")
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Join(dir, c.OutputName()), nil
}
