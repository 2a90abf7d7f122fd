package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/boardlens/boardlens/internal/core"
)

// HistoryEntry is one persisted terminal resolution.
type HistoryEntry struct {
	ID           int64
	ResolutionID string
	Query        string
	Outcome      core.Outcome
	Name         string
	CNName       string
	CatalogID    string
	NameSource   string
	DataSource   string
	ResolvedAt   time.Time
}

// InsertResolution persists one terminal resolution.
func (s *Store) InsertResolution(ctx context.Context, res *core.Resolution) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if res == nil {
		return errors.New("resolution is nil")
	}

	var (
		prov      core.Provenance
		name      string
		cnName    string
		catalogID string
	)
	switch {
	case res.Game != nil:
		prov = res.Game.Provenance
		name = res.Game.Name
		cnName = res.Game.CNName
		catalogID = res.Game.CatalogID
	case res.Failure != nil:
		prov = res.Failure.Provenance
		name = res.Failure.Name
		cnName = res.Failure.CNName
		catalogID = res.Failure.CatalogID
	}

	resolutionID := prov.ResolutionID
	resolvedAt := prov.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO resolution_history
			(resolution_id, query, outcome, name, cn_name, catalog_id, name_source, data_source, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(resolution_id) DO NOTHING`,
		resolutionID, res.Query, string(res.Outcome), name, cnName, catalogID,
		string(prov.NameSource), string(prov.DataSource), resolvedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert resolution history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent entries, newest first.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, resolution_id, query, outcome, name, cn_name, catalog_id, name_source, data_source, resolved_at
		FROM resolution_history
		ORDER BY resolved_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query resolution history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry      HistoryEntry
			outcome    string
			name       sql.NullString
			cnName     sql.NullString
			catalogID  sql.NullString
			nameSource sql.NullString
			dataSource sql.NullString
			resolvedAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.ResolutionID, &entry.Query, &outcome,
			&name, &cnName, &catalogID, &nameSource, &dataSource, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Outcome = core.Outcome(outcome)
		entry.Name = name.String
		entry.CNName = cnName.String
		entry.CatalogID = catalogID.String
		entry.NameSource = nameSource.String
		entry.DataSource = dataSource.String
		entry.ResolvedAt = time.Unix(resolvedAt, 0).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read resolution history: %w", err)
	}
	return entries, nil
}
