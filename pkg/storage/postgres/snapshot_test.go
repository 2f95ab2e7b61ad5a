package postgres_test

import (
	"context"
	"testing"
	"time"

	"optionflow/internal/flow"
	"optionflow/pkg/storage/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func sampleModel(generated time.Time) flow.Model {
	exp := generated.Add(48 * time.Hour)
	return flow.Model{
		GeneratedAt: generated,
		Currency:    "BTC",
		State:       flow.StateReady,
		Rows: []flow.AnnotatedRow{
			flow.Annotate(
				flow.Instrument{Name: "BTC-TEST-70000-C", Currency: "BTC", Strike: 70000, OptionType: flow.Call, ExpirationTimestamp: exp.UnixMilli()},
				flow.BookSummary{Last: fp(-5), IV: fp(-2), OpenInterest: fp(10)},
			),
			flow.Annotate(
				flow.Instrument{Name: "BTC-TEST-60000-P", Strike: 60000, OptionType: flow.Put, ExpirationTimestamp: exp.UnixMilli()},
				flow.BookSummary{},
			),
		},
	}
}

// go test -v --run TestToSnapshotRecords
func TestToSnapshotRecords(t *testing.T) {
	generated := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	records := postgres.ToSnapshotRecords(sampleModel(generated))
	require.Len(t, records, 2)

	assert.Equal(t, "BTC-TEST-70000-C", records[0].Instrument)
	assert.Equal(t, generated, records[0].GeneratedAt)
	assert.Equal(t, generated.Add(48*time.Hour), records[0].Expiration)
	assert.Equal(t, "Call Writers (IV Falling)", records[0].WriterType)
	assert.Equal(t, 10.0, *records[0].OpenInterest)

	// currency falls back to the model, absent values stay nil
	assert.Equal(t, "BTC", records[1].Currency)
	assert.Nil(t, records[1].LastPrice)
	assert.Nil(t, records[1].OpenInterest)
	assert.Equal(t, "Neutral", records[1].WriterType)
}

// go test -v --run TestSnapshotCRUD
func TestSnapshotCRUD(t *testing.T) {
	client, err := postgres.NewClient(testDSN(t))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.AutoMigrateSnapshotRecord())

	generated := time.Now().UTC().Truncate(time.Second)
	m := sampleModel(generated)

	n, err := client.InsertSnapshot(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// same snapshot again is skipped
	n, err = client.InsertSnapshot(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	var got []postgres.SnapshotRecord
	require.NoError(t, client.DB.WithContext(ctx).Where("generated_at = ?", generated).Order("id").Find(&got).Error)
	require.Len(t, got, 2)
	assert.Equal(t, "BTC-TEST-70000-C", got[0].Instrument)

	deleted, err := client.DeleteSnapshotsBefore(ctx, generated.Add(time.Second))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(2))

	got = nil
	require.NoError(t, client.DB.WithContext(ctx).Where("generated_at = ?", generated).Find(&got).Error)
	assert.Empty(t, got)
}
