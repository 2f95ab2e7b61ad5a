package postgres

import "time"

// SnapshotRecord is one annotated option row of a dashboard snapshot.
// Nullable market fields stay NULL when the exchange did not report them.
type SnapshotRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Instrument  string    `gorm:"type:text;not null;index:idx_snapshot_instrument;index:idx_instrument_generated,unique"`
	GeneratedAt time.Time `gorm:"not null;index:idx_instrument_generated,unique;index:idx_snapshot_generated"`

	Currency   string    `gorm:"type:varchar(10);not null"`
	Expiration time.Time `gorm:"not null"`
	Strike     float64   `gorm:"type:numeric;not null"`
	OptionType string    `gorm:"type:varchar(4);not null"`

	LastPrice    *float64 `gorm:"type:numeric"`
	IV           *float64 `gorm:"type:numeric"`
	OpenInterest *float64 `gorm:"type:numeric"`

	WriterType string `gorm:"type:varchar(32);not null;index:idx_snapshot_writer_type"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (SnapshotRecord) TableName() string {
	return "option_flow_snapshot"
}
