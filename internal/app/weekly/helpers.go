package weekly

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/export"
	"github.com/tyler180/fantasypros-weekly/internal/fpros"
	"github.com/tyler180/fantasypros-weekly/internal/points"
)

// Process exit codes.
const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitFetch     = 2
	ExitIntegrity = 3
	ExitWrite     = 4
)

// ExitCode maps a run error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, fpros.ErrFetch), errors.Is(err, fpros.ErrParse):
		return ExitFetch
	case errors.Is(err, points.ErrAmbiguousPlayer), errors.Is(err, points.ErrUnknownWeek):
		return ExitIntegrity
	case errors.Is(err, export.ErrWrite):
		return ExitWrite
	default:
		return ExitError
	}
}

// applyEvent overlays non-empty event fields onto cfg.
func applyEvent(cfg *config.Config, raw Raw) error {
	var e Event
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &e); err != nil {
			return errors.Wrapf(config.ErrInvalid, "decode event: %v", err)
		}
	}
	if s := strings.TrimSpace(e.Scoring); s != "" {
		cfg.Scoring = config.Scoring(strings.ToLower(s))
	}
	if s := strings.TrimSpace(e.Format); s != "" {
		cfg.Format = config.Format(strings.ToLower(s))
	}
	if e.Year != nil {
		cfg.Year = *e.Year
	}
	if e.WeekBeg != nil {
		cfg.WeekBeg = *e.WeekBeg
	}
	if e.WeekEnd != nil {
		cfg.WeekEnd = *e.WeekEnd
	}
	if e.KeepZeros != nil {
		cfg.MarkMissing = !*e.KeepZeros
	}
	return nil
}
