// Package repo holds the database stores.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mdload/internal/domain/consts"
	"mdload/internal/models"

	"github.com/Masterminds/squirrel"
)

// HistoryStore persists per-entry download outcomes.
type HistoryStore struct {
	DB *sql.DB
}

// NewHistoryStore returns a history store instance with injected database.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{
		DB: db,
	}
}

// Record inserts one entry outcome. CreatedAt defaults to now.
func (hs *HistoryStore) Record(ctx context.Context, rec *models.HistoryRecord) error {
	if rec == nil {
		return fmt.Errorf("history record passed in nil")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := squirrel.
		Insert(consts.DBDownloads).
		Columns(
			consts.QDLRunID,
			consts.QDLEntryID,
			consts.QDLURL,
			consts.QDLTitle,
			consts.QDLKind,
			consts.QDLFilePath,
			consts.QDLFileSize,
			consts.QDLStatus,
			consts.QDLError,
			consts.QDLCreatedAt,
		).
		Values(
			rec.RunID,
			rec.EntryID,
			rec.URL,
			rec.Title,
			rec.Kind,
			rec.FilePath,
			rec.FileSize,
			rec.Status,
			rec.Error,
			rec.CreatedAt,
		).
		RunWith(hs.DB)

	result, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to record history for %q: %w", rec.URL, err)
	}
	if id, err := result.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// Completed reports whether url (or entryID, when url is empty) was downloaded successfully before.
func (hs *HistoryStore) Completed(ctx context.Context, entryID, url string) (bool, error) {
	match := squirrel.Eq{consts.QDLURL: url}
	if url == "" {
		if entryID == "" {
			return false, nil
		}
		match = squirrel.Eq{consts.QDLEntryID: entryID}
	}

	var count int
	err := squirrel.
		Select("COUNT(1)").
		From(consts.DBDownloads).
		Where(match).
		Where(squirrel.Eq{consts.QDLStatus: models.StatusCompleted}).
		RunWith(hs.DB).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query history for %q: %w", url, err)
	}
	return count > 0, nil
}

// Recent returns up to limit records, newest first.
func (hs *HistoryStore) Recent(ctx context.Context, limit int) ([]*models.HistoryRecord, error) {
	if limit <= 0 {
		limit = consts.DefaultHistoryLimit
	}

	rows, err := squirrel.
		Select(
			consts.QDLID,
			consts.QDLRunID,
			consts.QDLEntryID,
			consts.QDLURL,
			consts.QDLTitle,
			consts.QDLKind,
			consts.QDLFilePath,
			consts.QDLFileSize,
			consts.QDLStatus,
			consts.QDLError,
			consts.QDLCreatedAt,
		).
		From(consts.DBDownloads).
		OrderBy(consts.QDLID + " DESC").
		Limit(uint64(limit)).
		RunWith(hs.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []*models.HistoryRecord
	for rows.Next() {
		var (
			rec                                      models.HistoryRecord
			entryID, title, kind, filePath, errorMsg sql.NullString
			fileSize                                 sql.NullInt64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&entryID,
			&rec.URL,
			&title,
			&kind,
			&filePath,
			&fileSize,
			&rec.Status,
			&errorMsg,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.EntryID = entryID.String
		rec.Title = title.String
		rec.Kind = kind.String
		rec.FilePath = filePath.String
		rec.FileSize = fileSize.Int64
		rec.Error = errorMsg.String
		records = append(records, &rec)
	}
	return records, rows.Err()
}
