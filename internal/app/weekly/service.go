package weekly

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/export"
	"github.com/tyler180/fantasypros-weekly/internal/fpros"
	"github.com/tyler180/fantasypros-weekly/internal/logger"
	"github.com/tyler180/fantasypros-weekly/internal/points"
	"github.com/tyler180/fantasypros-weekly/internal/store"
)

// Run fetches every week in the configured range, builds the aggregated
// table and publishes it. Fetch, alignment and render failures abort before
// anything is written. A sink failure aborts too, but the local file and any
// DynamoDB batches already committed stay in place. An empty OutputDir skips
// the local file.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	weeks := cfg.Weeks()
	log.Info().
		Str("scoring", string(cfg.Scoring)).
		Int("year", cfg.Year).
		Int("week_beg", cfg.WeekBeg).
		Int("week_end", cfg.WeekEnd).
		Msg("weekly points run started")

	var records []points.WeeklyRecord
	for i, w := range weeks {
		if i > 0 && cfg.RequestDelay > 0 {
			if err := sleep(ctx, cfg.RequestDelay); err != nil {
				return nil, errors.Wrap(fpros.ErrFetch, err.Error())
			}
		}
		recs, err := deps.Fetcher.Fetch(ctx, cfg.Scoring, cfg.Year, w)
		if err != nil {
			return nil, errors.WithMessagef(err, "week %d", w)
		}
		log.Info().Int("week", w).Int("records", len(recs)).Msg("week fetched")
		records = append(records, recs...)
	}

	rows, err := points.Align(weeks, records)
	if err != nil {
		return nil, err
	}
	table := points.Aggregate(rows, weeks, points.AggregateOptions{MarkMissing: cfg.MarkMissing})

	data, err := export.RenderBytes(cfg.Format, table, cfg.SheetName())
	if err != nil {
		return nil, err
	}

	res := &Result{Rows: len(table.Rows), Weeks: len(weeks), Records: len(records)}

	if cfg.OutputDir == "" {
		log.Debug().Msg("no output dir, local artifact skipped")
	} else {
		p, err := cfg.OutputPath()
		if err != nil {
			return nil, errors.Wrap(export.ErrWrite, err.Error())
		}
		if err := export.WriteFile(p, data); err != nil {
			return nil, err
		}
		res.OutputPath = p
		log.Info().Str("path", p).Int("bytes", len(data)).Msg("artifact written")
	}

	if deps.S3 != nil && cfg.S3Bucket != "" {
		u := store.NewUploader(deps.S3, cfg.S3Bucket, cfg.S3Prefix)
		key, err := u.Put(ctx, cfg.OutputName(), export.ContentType(cfg.Format), data)
		if err != nil {
			return nil, errors.Wrap(export.ErrWrite, err.Error())
		}
		res.S3Key = key
	}

	if deps.DDB != nil && cfg.DynamoTable != "" {
		if err := store.PutRows(ctx, deps.DDB, cfg.DynamoTable, cfg.Year, string(cfg.Scoring), weeks, table.Rows); err != nil {
			return nil, errors.Wrap(export.ErrWrite, err.Error())
		}
	}

	if cfg.Print && deps.Stdout != nil {
		export.Print(deps.Stdout, table)
	}

	log.Info().
		Int("rows", res.Rows).
		Int("weeks", res.Weeks).
		Int("records", res.Records).
		Msg("weekly points run finished")
	return res, nil
}

// LambdaEntrypoint is the single Lambda handler exported from this package.
// The artifact goes to S3 (and optionally DynamoDB) instead of local disk.
func LambdaEntrypoint(ctx context.Context, raw Raw) (string, error) {
	cfg, err := config.Parse()
	if err != nil {
		return "", err
	}
	logger.Configure(cfg.Debug, true)
	if err := applyEvent(cfg, raw); err != nil {
		return "", err
	}
	cfg.OutputDir = ""
	cfg.Print = false
	if cfg.S3Bucket == "" && cfg.DynamoTable == "" {
		return "", errors.Wrap(config.ErrInvalid, "lambda run needs WEEKLY_POINTS_S3_BUCKET or WEEKLY_POINTS_DYNAMO_TABLE")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", errors.Wrap(err, "aws config")
	}
	deps := Deps{Fetcher: fpros.New(cfg.BaseURL, cfg.HTTPTimeout)}
	if cfg.S3Bucket != "" {
		deps.S3 = s3.NewFromConfig(awsCfg)
	}
	if cfg.DynamoTable != "" {
		deps.DDB = dynamodb.NewFromConfig(awsCfg)
	}

	res, err := Run(ctx, cfg, deps)
	if err != nil {
		log.Error().Stack().Err(err).Msg("weekly points run failed")
		return "", err
	}
	return fmt.Sprintf("rows=%d weeks=%d key=%s", res.Rows, res.Weeks, res.S3Key), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
