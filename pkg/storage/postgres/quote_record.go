package postgres

import "time"

// QuoteRecord is one asset's USD quote within an archived listings snapshot.
type QuoteRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Symbol     string    `gorm:"type:text;not null;index:idx_quote_symbol;index:idx_symbol_snapshot_at,unique"`
	SnapshotAt time.Time `gorm:"not null;index:idx_symbol_snapshot_at,unique;index:idx_quote_snapshot_at"`

	AssetID uint64 `gorm:"not null"`
	Rank    uint32 `gorm:"not null"`

	Price            float64 `gorm:"type:numeric;not null"`
	PercentChange24h float64 `gorm:"type:numeric;not null"`
	PercentChange7d  float64 `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (QuoteRecord) TableName() string {
	return "quote_record"
}
