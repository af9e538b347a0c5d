package store

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// SeasonScoring is the partition key value, e.g. "2020#half-ppr".
func SeasonScoring(year int, scoring string) string {
	return strconv.Itoa(year) + "#" + scoring
}

// PutRows mirrors the output rows of one run.
// PK=SeasonScoring (S), SK=PlayerKey (S). Missing cells are omitted.
func PutRows(ctx context.Context, ddb DynamoDBAPI, tableName string, year int, scoring string, weeks []int, rows []points.Row) error {
	if len(rows) == 0 {
		return nil
	}
	const maxBatch = 25
	pk := SeasonScoring(year, scoring)
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(rows); i += maxBatch {
		end := i + maxBatch
		if end > len(rows) {
			end = len(rows)
		}

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, r := range rows[i:end] {
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: rowItem(pk, now, weeks, r)},
			})
		}
		if err := batchWriteWithRetry(ctx, ddb, tableName, reqs); err != nil {
			return errors.Wrap(err, "batch write weekly rows")
		}
	}
	log.Debug().Str("table", tableName).Str("pk", pk).Int("rows", len(rows)).Msg("dynamodb rows written")
	return nil
}

func rowItem(pk, now string, weeks []int, r points.Row) map[string]types.AttributeValue {
	wk := make(map[string]types.AttributeValue, len(weeks))
	for j, c := range r.Weeks {
		if !c.Valid {
			continue
		}
		wk["Wk"+strconv.Itoa(weeks[j])] = &types.AttributeValueMemberN{Value: formatNum(c.Float64)}
	}
	item := map[string]types.AttributeValue{
		"SeasonScoring": &types.AttributeValueMemberS{Value: pk},
		"PlayerKey":     &types.AttributeValueMemberS{Value: r.Key()},
		"Player":        &types.AttributeValueMemberS{Value: r.Player},
		"Team":          &types.AttributeValueMemberS{Value: r.Team},
		"Position":      &types.AttributeValueMemberS{Value: r.Position},
		"Weeks":         &types.AttributeValueMemberM{Value: wk},
		"UpdatedAt":     &types.AttributeValueMemberN{Value: now},
	}
	if r.Total.Valid {
		item["Total"] = &types.AttributeValueMemberN{Value: formatNum(r.Total.Float64)}
	}
	return item
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := 120 * time.Millisecond

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff += 120 * time.Millisecond
		}
	}
	return errors.Errorf("unprocessed items remained after retries for table %s", table)
}
