package store

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/tyler180/fantasypros-weekly/internal/points"
)

// fake client implementing DynamoDBAPI
type fakeDDB struct {
	calls int
	// first attempt of every batch echoes everything back as unprocessed
	failFirst bool
	items     []map[string]types.AttributeValue
	err       error
}

func (f *fakeDDB) BatchWriteItem(ctx context.Context, in *ddb.BatchWriteItemInput, _ ...func(*ddb.Options)) (*ddb.BatchWriteItemOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.failFirst && f.calls%2 == 1 {
		return &ddb.BatchWriteItemOutput{UnprocessedItems: in.RequestItems}, nil
	}
	for _, reqs := range in.RequestItems {
		for _, r := range reqs {
			f.items = append(f.items, r.PutRequest.Item)
		}
	}
	return &ddb.BatchWriteItemOutput{}, nil
}

func row(player string, total null.Float, weeks ...null.Float) points.Row {
	return points.Row{
		PlayerIdentity: points.PlayerIdentity{Player: player, Team: "KC", Position: "QB"},
		Weeks:          weeks,
		Total:          total,
	}
}

func TestPutRows_BatchingAndRetry(t *testing.T) {
	// 30 rows: 25 + 5
	var rows []points.Row
	for i := 0; i < 30; i++ {
		rows = append(rows, row(fmt.Sprintf("P%02d", i), null.FloatFrom(1), null.FloatFrom(1)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fc := &fakeDDB{failFirst: true}
	require.NoError(t, PutRows(ctx, fc, "tbl", 2020, "half-ppr", []int{1}, rows))

	// 2 batches x 2 attempts
	assert.Equal(t, 4, fc.calls)
	assert.Len(t, fc.items, 30)
}

func TestPutRows_ItemShape(t *testing.T) {
	fc := &fakeDDB{}
	rows := []points.Row{
		row("Player A", null.FloatFrom(15), null.FloatFrom(10), null.Float{}, null.FloatFrom(5)),
		row("Player B", null.Float{}, null.Float{}, null.Float{}, null.Float{}),
	}
	require.NoError(t, PutRows(context.Background(), fc, "tbl", 2020, "ppr", []int{1, 2, 3}, rows))
	require.Len(t, fc.items, 2)

	a := fc.items[0]
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2020#ppr"}, a["SeasonScoring"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Player A#KC#QB"}, a["PlayerKey"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "15"}, a["Total"])

	wk, ok := a["Weeks"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Len(t, wk.Value, 2)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "10"}, wk.Value["Wk1"])
	assert.NotContains(t, wk.Value, "Wk2")
	assert.Equal(t, &types.AttributeValueMemberN{Value: "5"}, wk.Value["Wk3"])

	b := fc.items[1]
	assert.NotContains(t, b, "Total")
	assert.Empty(t, b["Weeks"].(*types.AttributeValueMemberM).Value)
}

func TestPutRows_Empty(t *testing.T) {
	fc := &fakeDDB{}
	require.NoError(t, PutRows(context.Background(), fc, "tbl", 2020, "ppr", []int{1}, nil))
	assert.Zero(t, fc.calls)
}

func TestPutRows_ClientError(t *testing.T) {
	fc := &fakeDDB{err: fmt.Errorf("throttled")}
	err := PutRows(context.Background(), fc, "tbl", 2020, "ppr", []int{1}, []points.Row{row("A", null.FloatFrom(1), null.FloatFrom(1))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func TestUploader_Put(t *testing.T) {
	fs := &fakeS3{}
	u := NewUploader(fs, "bkt", "/weekly_points/")

	key, err := u.Put(context.Background(), "half-ppr_2020_by_week.csv", "text/csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "weekly_points/half-ppr_2020_by_week.csv", key)
	assert.Equal(t, "bkt", aws.ToString(fs.in.Bucket))
	assert.Equal(t, key, aws.ToString(fs.in.Key))
	assert.Equal(t, "text/csv", aws.ToString(fs.in.ContentType))
	assert.Equal(t, "a,b\n", string(fs.body))
}

func TestUploader_NoPrefix(t *testing.T) {
	u := NewUploader(&fakeS3{}, "bkt", "")
	assert.Equal(t, "x.parquet", u.Key("x.parquet"))
}

func TestUploader_Error(t *testing.T) {
	u := NewUploader(&fakeS3{err: fmt.Errorf("denied")}, "bkt", "p")
	_, err := u.Put(context.Background(), "x.csv", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bkt/p/x.csv")
}
