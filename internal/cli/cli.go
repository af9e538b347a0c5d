package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tyler180/fantasypros-weekly/internal/app/weekly"
	"github.com/tyler180/fantasypros-weekly/internal/config"
	"github.com/tyler180/fantasypros-weekly/internal/fpros"
	"github.com/tyler180/fantasypros-weekly/internal/logger"
)

// NewRootCmd creates the root command. Flag defaults come from cfg, so
// WEEKLY_POINTS_* environment values apply unless a flag overrides them.
func NewRootCmd(cfg *config.Config, stdout io.Writer) *cobra.Command {
	var (
		scoring   = string(cfg.Scoring)
		format    = string(cfg.Format)
		keepZeros = !cfg.MarkMissing
	)

	cmd := &cobra.Command{
		Use:   "weekly-points",
		Short: "Build a season table of weekly FantasyPros fantasy points",
		Long: `Fetches the FantasyPros weekly leaders report for every week in a range,
aligns players across weeks and writes one row per player with a column per
week and a season total, sorted by total.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Scoring = config.Scoring(strings.ToLower(strings.TrimSpace(scoring)))
			cfg.Format = config.Format(strings.ToLower(strings.TrimSpace(format)))
			cfg.MarkMissing = !keepZeros
			logger.Configure(cfg.Debug, false)
			if strings.TrimSpace(cfg.OutputDir) == "" {
				return errors.Wrap(config.ErrInvalid, "--out-dir must not be empty")
			}

			deps, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			deps.Stdout = stdout

			res, err := weekly.Run(cmd.Context(), cfg, deps)
			if err != nil {
				return err
			}
			if res.OutputPath != "" {
				fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", res.Rows, res.OutputPath)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&scoring, "scoring", scoring, "Scoring format: ppr, half-ppr or standard")
	f.IntVar(&cfg.Year, "year", cfg.Year, "Season year")
	f.IntVar(&cfg.WeekBeg, "week-beg", cfg.WeekBeg, "First week (inclusive)")
	f.IntVar(&cfg.WeekEnd, "week-end", cfg.WeekEnd, "Last week (inclusive)")
	f.StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "Directory for <scoring>_<year>_by_week.<format>")
	f.StringVar(&format, "format", format, "Output format: xlsx, csv or parquet")
	f.BoolVar(&keepZeros, "keep-zeros", keepZeros, "Write 0 instead of an empty cell for zero-point weeks and totals")
	f.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "FantasyPros base URL")
	f.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "Per-request HTTP timeout")
	f.DurationVar(&cfg.RequestDelay, "delay", cfg.RequestDelay, "Pause between week requests")
	f.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "Also upload the artifact to this S3 bucket")
	f.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "Key prefix for the S3 upload")
	f.StringVar(&cfg.DynamoTable, "dynamo-table", cfg.DynamoTable, "Also mirror rows into this DynamoDB table")
	f.BoolVar(&cfg.Print, "print", cfg.Print, "Print the table to stdout")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")

	return cmd
}

func buildDeps(ctx context.Context, cfg *config.Config) (weekly.Deps, error) {
	deps := weekly.Deps{Fetcher: fpros.New(cfg.BaseURL, cfg.HTTPTimeout)}
	if cfg.S3Bucket == "" && cfg.DynamoTable == "" {
		return deps, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return deps, errors.Wrap(err, "aws config")
	}
	if cfg.S3Bucket != "" {
		deps.S3 = s3.NewFromConfig(awsCfg)
	}
	if cfg.DynamoTable != "" {
		deps.DDB = dynamodb.NewFromConfig(awsCfg)
	}
	return deps, nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		logger.Configure(false, false)
		log.Error().Err(err).Msg("configuration")
		return weekly.ExitError
	}
	logger.Configure(cfg.Debug, false)

	cmd := NewRootCmd(cfg, os.Stdout)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	code := weekly.ExitCode(err)
	if err != nil {
		log.Error().Stack().Err(err).Int("exit_code", code).Msg("weekly points failed")
	}
	return code
}
