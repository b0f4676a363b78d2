package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores a new résumé for a user and returns it
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title, template string, content json.RawMessage) (*Resume, error) {
	r := Resume{UserID: userID, Title: title, Template: template, Content: content}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		userID, title, template, []byte(content),
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// GetResume retrieves a résumé owned by userID.
// It returns nil, nil when the résumé does not exist or belongs to someone else.
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*Resume, error) {
	var r Resume
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, template, content, created_at, updated_at
		 FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&r.ID, &r.UserID, &r.Title, &r.Template, &content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	r.Content = content
	return &r, nil
}

// ListResumes lists a user's résumés, most recently updated first
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Template, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume replaces title, template and content of a résumé owned by userID
func (db *DB) UpdateResume(ctx context.Context, userID, id uuid.UUID, title, template string, content json.RawMessage) (*Resume, error) {
	r := Resume{ID: id, UserID: userID, Title: title, Template: template, Content: content}
	err := db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $1, template = $2, content = $3, updated_at = NOW()
		 WHERE id = $4 AND user_id = $5
		 RETURNING created_at, updated_at`,
		title, template, []byte(content), id, userID,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return &r, nil
}

// DeleteResume deletes a résumé owned by userID
func (db *DB) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}
