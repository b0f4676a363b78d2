package db

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id, err := db.CreateUser(ctx, "Resume Tester", "resume-"+uuid.New().String()+"@example.com", "hash")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DeleteUser(ctx, id) })
	return id
}

func TestIntegration_ResumeCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := createTestUser(t, db)

	content := json.RawMessage(`{"personal":{"name":"Ada"},"skills":["Go"]}`)

	// 1. Create
	created, err := db.CreateResume(ctx, userID, "Main", "modern", content)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	// 2. Get
	got, err := db.GetResume(ctx, userID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Main", got.Title)
	assert.Equal(t, "modern", got.Template)
	assert.JSONEq(t, string(content), string(got.Content))

	// 3. Update
	time.Sleep(10 * time.Millisecond)
	updated, err := db.UpdateResume(ctx, userID, created.ID, "Renamed", "ats", json.RawMessage(`{"summary":"x"}`))
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// 4. List
	second, err := db.CreateResume(ctx, userID, "Second", "classic", json.RawMessage(`{}`))
	require.NoError(t, err)
	list, err := db.ListResumes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "Renamed", list[1].Title)

	// 5. Delete
	require.NoError(t, db.DeleteResume(ctx, userID, created.ID))
	gone, err := db.GetResume(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.ErrorIs(t, db.DeleteResume(ctx, userID, created.ID), ErrNotFound)
}

func TestIntegration_ResumeScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	r, err := db.CreateResume(ctx, owner, "Mine", "classic", json.RawMessage(`{}`))
	require.NoError(t, err)

	got, err := db.GetResume(ctx, other, r.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = db.UpdateResume(ctx, other, r.ID, "Stolen", "classic", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteResume(ctx, other, r.ID), ErrNotFound)

	list, err := db.ListResumes(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)
}
