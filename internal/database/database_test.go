package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway database file. A file (not :memory:) keeps
// the schema visible across pooled connections.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "lodge-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserLifecycle(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.CreateUser("admin", "admin", "admin@example.com", "admin"))

	t.Run("GetUserByUsername finds the user", func(t *testing.T) {
		user, err := db.GetUserByUsername("admin")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "admin", user.Username)
		assert.Equal(t, "admin", user.Role)
		assert.NotEqual(t, "admin", user.PasswordHash, "password must be stored hashed")
	})

	t.Run("unknown user returns nil without error", func(t *testing.T) {
		user, err := db.GetUserByUsername("nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("VerifyUserPassword accepts the right password", func(t *testing.T) {
		assert.NoError(t, db.VerifyUserPassword("admin", "admin"))
	})

	t.Run("VerifyUserPassword rejects the wrong password", func(t *testing.T) {
		assert.ErrorIs(t, db.VerifyUserPassword("admin", "wrong"), ErrInvalidPassword)
	})

	t.Run("VerifyUserPassword rejects unknown users", func(t *testing.T) {
		assert.ErrorIs(t, db.VerifyUserPassword("nobody", "admin"), ErrNotFound)
	})

	t.Run("duplicate usernames are rejected", func(t *testing.T) {
		assert.Error(t, db.CreateUser("admin", "other", "", "editor"))
	})

	t.Run("GetUsers and DeleteUser", func(t *testing.T) {
		require.NoError(t, db.CreateUser("editor", "secret", "", "editor"))

		users, err := db.GetUsers()
		require.NoError(t, err)
		require.Len(t, users, 2)

		var editorID int
		for _, u := range users {
			if u.Username == "editor" {
				editorID = u.ID
			}
		}
		require.NotZero(t, editorID)

		require.NoError(t, db.DeleteUser(editorID))
		assert.ErrorIs(t, db.DeleteUser(editorID), ErrNotFound)
	})
}

func TestAPIKeys(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateUser("admin", "admin", "", "admin"))
	admin, err := db.GetUserByUsername("admin")
	require.NoError(t, err)

	fullKey, err := db.CreateAPIKey("ci", admin.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fullKey, "lodge_"))

	t.Run("stored record hides the key", func(t *testing.T) {
		keys, err := db.GetAPIKeys()
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "ci", keys[0].Name)
		assert.NotContains(t, keys[0].KeyHash, fullKey)
		assert.True(t, strings.HasSuffix(keys[0].KeyPrefix, "..."))
		assert.False(t, keys[0].LastUsedAt.Valid)
	})

	t.Run("ValidateAPIKey round-trips and touches last_used_at", func(t *testing.T) {
		key, err := db.ValidateAPIKey(fullKey)
		require.NoError(t, err)
		require.NotNil(t, key)
		assert.Equal(t, "ci", key.Name)

		keys, err := db.GetAPIKeys()
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.True(t, keys[0].LastUsedAt.Valid)
	})

	t.Run("ValidateAPIKey returns nil for unknown keys", func(t *testing.T) {
		key, err := db.ValidateAPIKey("lodge_bogus")
		require.NoError(t, err)
		assert.Nil(t, key)
	})

	t.Run("DeleteAPIKey", func(t *testing.T) {
		keys, err := db.GetAPIKeys()
		require.NoError(t, err)
		require.NoError(t, db.DeleteAPIKey(keys[0].ID))
		assert.ErrorIs(t, db.DeleteAPIKey(keys[0].ID), ErrNotFound)
	})
}

func TestCollectionsAndFields(t *testing.T) {
	db := newTestDB(t)

	col, err := db.CreateCollection("Blog Posts", "posts", "All posts")
	require.NoError(t, err)
	require.NotNil(t, col)
	assert.Equal(t, "posts", col.Slug)
	assert.Equal(t, "All posts", col.Description.String)

	t.Run("lookup by id and slug", func(t *testing.T) {
		byID, err := db.GetCollectionByID(col.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)

		bySlug, err := db.GetCollectionBySlug("posts")
		require.NoError(t, err)
		require.NotNil(t, bySlug)
		assert.Equal(t, byID.ID, bySlug.ID)

		missing, err := db.GetCollectionBySlug("nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("fields keep sort order", func(t *testing.T) {
		_, err := db.CreateCollectionField(col.ID, "body", "Body", "markdown", false, "", "", 2)
		require.NoError(t, err)
		_, err = db.CreateCollectionField(col.ID, "title", "Title", "text", true, "Post title", "", 1)
		require.NoError(t, err)

		fields, err := db.GetCollectionFields(col.ID)
		require.NoError(t, err)
		require.Len(t, fields, 2)
		assert.Equal(t, "title", fields[0].Name)
		assert.Equal(t, "body", fields[1].Name)
		assert.True(t, fields[0].Required)
	})

	t.Run("update and delete field", func(t *testing.T) {
		fields, err := db.GetCollectionFields(col.ID)
		require.NoError(t, err)

		require.NoError(t, db.UpdateCollectionField(fields[0].ID, "title", "Headline", "text", true, "", "", 1))
		updated, err := db.GetCollectionFieldByID(fields[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Headline", updated.Label)

		require.NoError(t, db.DeleteCollectionField(fields[0].ID))
		assert.ErrorIs(t, db.DeleteCollectionField(fields[0].ID), ErrNotFound)
	})

	t.Run("update missing collection", func(t *testing.T) {
		assert.ErrorIs(t, db.UpdateCollection(9999, "x", "x", ""), ErrNotFound)
	})
}

func TestItems(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateUser("admin", "admin", "", "admin"))
	admin, err := db.GetUserByUsername("admin")
	require.NoError(t, err)

	col, err := db.CreateCollection("Pages", "pages", "")
	require.NoError(t, err)

	item, err := db.CreateItem(col.ID, "home", `{"title":"Home"}`, "published", admin.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "home", item.Slug.String)
	assert.Equal(t, "published", item.Status)
	assert.Equal(t, int64(admin.ID), item.CreatedBy.Int64)

	t.Run("empty slug stored as NULL", func(t *testing.T) {
		noSlug, err := db.CreateItem(col.ID, "", `{}`, "draft", admin.ID)
		require.NoError(t, err)
		assert.False(t, noSlug.Slug.Valid)
	})

	t.Run("listing and pagination", func(t *testing.T) {
		all, err := db.GetItemsByCollection(col.ID)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		page, err := db.GetItemsByCollectionWithPagination(col.ID, 1, 0)
		require.NoError(t, err)
		assert.Len(t, page, 1)

		rest, err := db.GetItemsByCollectionWithPagination(col.ID, 10, 1)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("update and delete", func(t *testing.T) {
		require.NoError(t, db.UpdateItem(item.ID, "home", `{"title":"Welcome"}`, "published"))
		got, err := db.GetItem(item.ID)
		require.NoError(t, err)
		assert.Contains(t, got.Data, "Welcome")

		require.NoError(t, db.DeleteItem(item.ID))
		assert.ErrorIs(t, db.DeleteItem(item.ID), ErrNotFound)

		gone, err := db.GetItem(item.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateUser("admin", "admin", "", "admin"))
	col, err := db.CreateCollection("Pages", "pages", "")
	require.NoError(t, err)
	_, err = db.CreateItem(col.ID, "", `{}`, "draft", 1)
	require.NoError(t, err)

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["users"])
	assert.Equal(t, 1, stats["collections"])
	assert.Equal(t, 1, stats["items"])
	assert.Equal(t, 0, stats["apiKeys"])
}
