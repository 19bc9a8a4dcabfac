package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/shared"
	"github.com/quietpage/quietpage/internal/storage"
)

type env struct {
	svc   *service
	ids   identity.Service
	kv    storage.KeyValueStore
	clock *fakeClock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func setup(t *testing.T) *env {
	t.Helper()
	kv := storage.NewMemoryStore()
	ids := identity.NewService(kv)
	clock := &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := &service{kv: kv, identity: ids, now: clock.now}

	ctx := context.Background()
	_, err := ids.Register(ctx, "a@x.com", "pw", "Ann")
	require.NoError(t, err)
	_, err = ids.Authenticate(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	return &env{svc: svc, ids: ids, kv: kv, clock: clock}
}

func TestCreateTrimsAndRejectsEmptyTitle(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	p, err := e.svc.Create(ctx, "  Draft  ")
	require.NoError(t, err)
	require.Equal(t, "Draft", p.Title)
	require.Equal(t, p.CreatedAt, p.ModifiedAt)
	require.NotEmpty(t, p.ID)

	_, err = e.svc.Create(ctx, "   ")
	require.ErrorIs(t, err, shared.ErrorValidation)
}

func TestNoSessionBehavior(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	require.NoError(t, e.ids.SignOut(ctx))

	pages, err := e.svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, pages)

	results, err := e.svc.Search(ctx, "anything")
	require.NoError(t, err)
	require.Empty(t, results)

	_, err = e.svc.Create(ctx, "Draft")
	require.ErrorIs(t, err, shared.ErrorNoSession)
	require.ErrorIs(t, e.svc.Delete(ctx, "1"), shared.ErrorNoSession)
}

func TestEditBumpsModifiedAt(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	p, err := e.svc.Create(ctx, "Draft")
	require.NoError(t, err)

	require.NoError(t, e.svc.EditContent(ctx, p.ID, "some words here"))
	got, err := e.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "some words here", got.Content)
	require.Greater(t, got.ModifiedAt, got.CreatedAt)

	require.NoError(t, e.svc.Rename(ctx, p.ID, "Draft 2"))
	renamed, err := e.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Draft 2", renamed.Title)
	require.GreaterOrEqual(t, renamed.ModifiedAt, got.ModifiedAt)
}

func TestEmptyEditsAreRejected(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	p, err := e.svc.Create(ctx, "Draft")
	require.NoError(t, err)
	require.NoError(t, e.svc.EditContent(ctx, p.ID, "keep me"))

	require.ErrorIs(t, e.svc.Rename(ctx, p.ID, "  "), shared.ErrorValidation)
	require.ErrorIs(t, e.svc.EditContent(ctx, p.ID, " \n "), shared.ErrorValidation)

	got, err := e.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Draft", got.Title)
	require.Equal(t, "keep me", got.Content)
}

func TestListSortsByLastTouched(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	first, err := e.svc.Create(ctx, "first")
	require.NoError(t, err)
	second, err := e.svc.Create(ctx, "second")
	require.NoError(t, err)
	third, err := e.svc.Create(ctx, "third")
	require.NoError(t, err)

	// Touch the oldest; it moves to the front.
	require.NoError(t, e.svc.EditContent(ctx, first.ID, "updated"))

	pages, err := e.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	require.Equal(t, first.ID, pages[0].ID)
	require.Equal(t, third.ID, pages[1].ID)
	require.Equal(t, second.ID, pages[2].ID)
}

func TestLegacyPagesBackfillTimestamps(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	user, ok, err := e.ids.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// A record from before createdAt existed: only id and title.
	legacy := []models.Page{{ID: "1600000000000", Title: "old"}}
	require.NoError(t, storage.SetJSON(ctx, e.kv, storage.PagesKey(user.ID), legacy))

	pages, err := e.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, int64(1600000000000), pages[0].CreatedAt)
	require.Equal(t, int64(1600000000000), pages[0].ModifiedAt)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	p, err := e.svc.Create(ctx, "doomed")
	require.NoError(t, err)
	keep, err := e.svc.Create(ctx, "kept")
	require.NoError(t, err)

	require.NoError(t, e.svc.Delete(ctx, p.ID))
	require.ErrorIs(t, e.svc.Delete(ctx, p.ID), shared.ErrorNotFound)

	pages, err := e.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Equal(t, keep.ID, pages[0].ID)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	a, err := e.svc.Create(ctx, "Groceries")
	require.NoError(t, err)
	require.NoError(t, e.svc.EditContent(ctx, a.ID, "apples and pears"))
	_, err = e.svc.Create(ctx, "Travel plans")
	require.NoError(t, err)

	byTitle, err := e.svc.Search(ctx, "groc")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.Equal(t, a.ID, byTitle[0].ID)

	byContent, err := e.svc.Search(ctx, "PEARS")
	require.NoError(t, err)
	require.Len(t, byContent, 1)

	all, err := e.svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	none, err := e.svc.Search(ctx, "zebra")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestPublicationFlagsDoNotTouchModifiedAt(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	p, err := e.svc.Create(ctx, "Draft")
	require.NoError(t, err)

	require.NoError(t, e.svc.SetPublished(ctx, p.ID, 42))
	got, err := e.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.IsPublished)
	require.Equal(t, int64(42), got.PublishedAt)
	require.Equal(t, p.ModifiedAt, got.ModifiedAt)

	require.NoError(t, e.svc.ClearPublished(ctx, p.ID))
	got, err = e.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, got.IsPublished)
	require.Zero(t, got.PublishedAt)
}

func TestPerUserIsolation(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	_, err := e.svc.Create(ctx, "Ann's note")
	require.NoError(t, err)

	_, err = e.ids.Register(ctx, "b@x.com", "pw", "Bob")
	require.NoError(t, err)
	_, err = e.ids.Authenticate(ctx, "b@x.com", "pw")
	require.NoError(t, err)

	pages, err := e.svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, pages)
}
