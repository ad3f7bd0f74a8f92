package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picon/internal/model"

	"gorm.io/gorm/clause"
)

var ErrNoSnapshotTime = errors.New("snapshot has no status timestamp")

// InsertQuotes stores records, skipping any (symbol, snapshot_at) already archived.
// It returns the number of rows written.
func (p *PostgresClient) InsertQuotes(ctx context.Context, records []QuoteRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"},
			{Name: "snapshot_at"},
		},
		DoNothing: true,
	}).Create(&records)

	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// ArchiveSnapshot converts snap to quote records, inserts them and applies retention.
func (p *PostgresClient) ArchiveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	records, err := ToQuoteRecords(snap)
	if err != nil {
		return err
	}

	if _, err := p.InsertQuotes(ctx, records); err != nil {
		return fmt.Errorf("insert quotes: %w", err)
	}

	if p.retention > 0 {
		if err := p.DeleteOldQuotes(ctx, time.Now().Add(-p.retention)); err != nil {
			return fmt.Errorf("apply retention: %w", err)
		}
	}
	return nil
}

func (p *PostgresClient) GetQuotes(ctx context.Context, symbol string) ([]QuoteRecord, error) {
	var quotes []QuoteRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("snapshot_at").
		Find(&quotes).Error

	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (p *PostgresClient) DeleteOldQuotes(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("snapshot_at < ?", before).
		Delete(&QuoteRecord{}).Error
}

// ToQuoteRecords converts a listings snapshot into QuoteRecords for DB insertion.
func ToQuoteRecords(snap *model.Snapshot) ([]QuoteRecord, error) {
	at := snap.Time()
	if at.IsZero() {
		return nil, ErrNoSnapshotTime
	}

	records := make([]QuoteRecord, 0, len(snap.Assets))
	for _, a := range snap.Assets {
		records = append(records, QuoteRecord{
			Symbol:           a.Symbol,
			SnapshotAt:       at,
			AssetID:          a.ID,
			Rank:             a.Rank,
			Price:            a.Price(),
			PercentChange24h: a.Change24h(),
			PercentChange7d:  a.Change7d(),
		})
	}
	return records, nil
}
