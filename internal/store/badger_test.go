// Agora - Social Network REST Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/models"
)

func openTestBadger(t *testing.T) *BadgerBackend {
	t.Helper()
	b, err := OpenBadger(config.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

func openTestCollections(t *testing.T) *Collections {
	t.Helper()
	cols, err := OpenCollections(context.Background(), openTestBadger(t))
	require.NoError(t, err)
	return cols
}

func newUser(username, email string) models.User {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.User{
		ID:          models.NewID(),
		Username:    username,
		Email:       email,
		DateOfBirth: "1990-04-12",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	t.Parallel()
	_, err := OpenBadger(config.BadgerConfig{})
	require.Error(t, err)
}

func TestOpenBadger_OnDisk(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	b, err := OpenBadger(config.BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	cols, err := OpenCollections(ctx, b)
	require.NoError(t, err)

	u := newUser("persisted", "p@example.com")
	require.NoError(t, cols.Users.Insert(ctx, u))
	require.NoError(t, b.Close(ctx))

	b, err = OpenBadger(config.BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer b.Close(ctx)
	cols, err = OpenCollections(ctx, b)
	require.NoError(t, err)

	got, err := cols.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
}

func TestBadger_InsertGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	u := newUser("ada_l", "ada@example.com")
	u.Profile.Bio = "Analytical engines"
	require.NoError(t, cols.Users.Insert(ctx, u))

	got, err := cols.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestBadger_GetMissing(t *testing.T) {
	t.Parallel()
	cols := openTestCollections(t)

	_, err := cols.Users.Get(context.Background(), models.NewID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadger_UniqueIndexes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	require.NoError(t, cols.Users.Insert(ctx, newUser("grace", "grace@example.com")))

	tests := []struct {
		name string
		user models.User
	}{
		{"same username", newUser("grace", "other@example.com")},
		{"same email", newUser("hopper", "grace@example.com")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cols.Users.Insert(ctx, tt.user)
			assert.ErrorIs(t, err, ErrDuplicate)

			_, err = cols.Users.Get(ctx, tt.user.ID)
			assert.ErrorIs(t, err, ErrNotFound, "failed insert must not leave a document behind")
		})
	}
}

func TestBadger_DuplicateID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	p := models.Post{ID: models.NewID(), AuthorID: models.NewID(), Content: "hi", Visibility: models.VisibilityPublic}
	require.NoError(t, cols.Posts.Insert(ctx, p))
	assert.ErrorIs(t, cols.Posts.Insert(ctx, p), ErrDuplicate)
}

func TestBadger_Replace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	a := newUser("alice", "alice@example.com")
	b := newUser("bob", "bob@example.com")
	require.NoError(t, cols.Users.Insert(ctx, a))
	require.NoError(t, cols.Users.Insert(ctx, b))

	// Renaming frees the old unique value.
	a.Username = "alice2"
	require.NoError(t, cols.Users.Replace(ctx, a))
	c := newUser("alice", "carol@example.com")
	require.NoError(t, cols.Users.Insert(ctx, c))

	// Taking another user's value is rejected and leaves the document intact.
	a.Email = "bob@example.com"
	assert.ErrorIs(t, cols.Users.Replace(ctx, a), ErrDuplicate)
	got, err := cols.Users.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "alice2", got.Username)

	// Keeping its own values is fine.
	got.Profile.Bio = "updated"
	require.NoError(t, cols.Users.Replace(ctx, got))

	missing := newUser("nobody", "nobody@example.com")
	assert.ErrorIs(t, cols.Users.Replace(ctx, missing), ErrNotFound)
}

func TestBadger_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	author := models.NewID()
	other := models.NewID()
	var ids []string
	for i := range 5 {
		p := models.Post{ID: models.NewID(), AuthorID: author, Content: fmt.Sprintf("post %d", i), Visibility: models.VisibilityPublic}
		require.NoError(t, cols.Posts.Insert(ctx, p))
		ids = append(ids, p.ID)
	}
	require.NoError(t, cols.Posts.Insert(ctx, models.Post{ID: models.NewID(), AuthorID: other, Content: "x", Visibility: models.VisibilityPrivate}))

	postIDs := func(ps []models.Post) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}

	all, err := cols.Posts.List(ctx, ListOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	page, err := cols.Posts.List(ctx, ListOptions{Limit: 2, Offset: 1, Field: "authorId", Value: author})
	require.NoError(t, err)
	assert.Equal(t, ids[1:3], postIDs(page))

	tail, err := cols.Posts.List(ctx, ListOptions{Limit: 10, Offset: 4, Field: "authorId", Value: author})
	require.NoError(t, err)
	assert.Equal(t, ids[4:], postIDs(tail))

	none, err := cols.Posts.List(ctx, ListOptions{Field: "authorId", Value: models.NewID()})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = cols.Posts.List(ctx, ListOptions{Field: "content", Value: "x"})
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestBadger_ListUniqueField(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	u := newUser("linus", "linus@example.com")
	require.NoError(t, cols.Users.Insert(ctx, u))

	found, err := cols.Users.List(ctx, ListOptions{Field: "email", Value: "linus@example.com"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, u.ID, found[0].ID)

	found, err = cols.Users.List(ctx, ListOptions{Field: "email", Value: "linus@example.com", Offset: 1})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestBadger_IndexValueEscaping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	// A slash in a value must not let one key prefix match another.
	require.NoError(t, cols.Events.Insert(ctx, models.Event{ID: models.NewID(), Title: "a", GroupID: "g/1"}))
	require.NoError(t, cols.Events.Insert(ctx, models.Event{ID: models.NewID(), Title: "b", GroupID: "g"}))

	got, err := cols.Events.List(ctx, ListOptions{Field: "groupId", Value: "g"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Title)
}

func TestBadger_EmptyUniqueValuesNotIndexed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cols := openTestCollections(t)

	require.NoError(t, cols.Payments.Insert(ctx, models.Payment{ID: models.NewID(), PayerID: models.NewID()}))
	require.NoError(t, cols.Payments.Insert(ctx, models.Payment{ID: models.NewID(), PayerID: models.NewID()}))
}

func TestBadger_Ping(t *testing.T) {
	t.Parallel()
	b, err := OpenBadger(config.BadgerConfig{InMemory: true})
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, b.Ping(ctx))
	assert.Equal(t, BackendBadger, b.Name())
	require.NoError(t, b.Close(ctx))
	assert.Error(t, b.Ping(ctx))
}

func TestBadger_RunGC(t *testing.T) {
	t.Parallel()

	mem := openTestBadger(t)
	assert.NoError(t, mem.RunGC(0.5))

	disk, err := OpenBadger(config.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	defer disk.Close(context.Background())
	cols, err := OpenCollections(context.Background(), disk)
	require.NoError(t, err)
	require.NoError(t, cols.Users.Insert(context.Background(), newUser("gc", "gc@example.com")))
	assert.NoError(t, disk.RunGC(0.5))
}

func TestNewRepository_IndexWithoutValue(t *testing.T) {
	t.Parallel()
	_, err := NewRepository(context.Background(), openTestBadger(t), "posts", Index[models.Post]{Field: "authorId"})
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), config.StoreConfig{Backend: "postgres"})
	assert.Error(t, err)
}

func TestOpen_Badger(t *testing.T) {
	t.Parallel()
	b, err := Open(context.Background(), config.StoreConfig{Backend: BackendBadger, Badger: config.BadgerConfig{InMemory: true}})
	require.NoError(t, err)
	defer b.Close(context.Background())
	assert.Equal(t, BackendBadger, b.Name())
}

func TestErrors_HTTPMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    *Error
		status int
		code   string
		key    string
	}{
		{ErrNotFound, http.StatusNotFound, "NOT_FOUND", "errors.NOT_FOUND"},
		{ErrDuplicate, http.StatusConflict, "CONFLICT", "errors.CONFLICT"},
		{ErrUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "errors.SERVICE_UNAVAILABLE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode())
		assert.Equal(t, tt.code, tt.err.ErrorCode())
		assert.Equal(t, tt.key, tt.err.TranslationKey())

		wrapped := fmt.Errorf("%w: detail", tt.err)
		var target *Error
		require.True(t, errors.As(wrapped, &target))
		assert.Same(t, tt.err, target)
	}
}

func TestErrorType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", errorType(nil))
	assert.Equal(t, "not_found", errorType(ErrNotFound))
	assert.Equal(t, "duplicate", errorType(fmt.Errorf("%w: x", ErrDuplicate)))
	assert.Equal(t, "unavailable", errorType(ErrUnavailable))
	assert.Equal(t, "timeout", errorType(context.DeadlineExceeded))
	assert.Equal(t, "internal", errorType(errors.New("boom")))
}
