package postgres

import (
	"context"
	"time"

	"optionflow/internal/flow"

	"gorm.io/gorm/clause"
)

// InsertSnapshot stores every row of one model. Rows already stored for the
// same instrument and generation time are skipped. Returns the number of
// rows inserted.
func (p *PostgresClient) InsertSnapshot(ctx context.Context, m flow.Model) (int64, error) {
	records := ToSnapshotRecords(m)
	if len(records) == 0 {
		return 0, nil
	}

	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "instrument"},
			{Name: "generated_at"},
		},
		DoNothing: true,
	}).CreateInBatches(&records, 200)

	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// DeleteSnapshotsBefore removes snapshots generated before the cutoff and
// returns the number of rows deleted.
func (p *PostgresClient) DeleteSnapshotsBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := p.DB.WithContext(ctx).
		Where("generated_at < ?", before).
		Delete(&SnapshotRecord{})
	return tx.RowsAffected, tx.Error
}

// ToSnapshotRecords converts a model's rows into records for insertion.
func ToSnapshotRecords(m flow.Model) []SnapshotRecord {
	out := make([]SnapshotRecord, 0, len(m.Rows))
	for _, r := range m.Rows {
		currency := r.Currency
		if currency == "" {
			currency = m.Currency
		}
		out = append(out, SnapshotRecord{
			Instrument:   r.Name,
			GeneratedAt:  m.GeneratedAt.UTC(),
			Currency:     currency,
			Expiration:   r.Expiration(),
			Strike:       r.Strike,
			OptionType:   string(r.OptionType),
			LastPrice:    r.Summary.Last,
			IV:           r.Summary.IV,
			OpenInterest: r.Summary.OpenInterest,
			WriterType:   string(r.Label),
		})
	}
	return out
}
