// Package notes owns the signed-in user's private page collection.
package notes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/shared"
	"github.com/quietpage/quietpage/internal/storage"
)

// Service defines page operations. Everything is scoped to the current
// session: reads return empty results and writes fail with ErrorNoSession
// when nobody is signed in.
type Service interface {
	List(ctx context.Context) ([]models.Page, error)
	Get(ctx context.Context, id string) (*models.Page, error)
	Create(ctx context.Context, title string) (*models.Page, error)
	Rename(ctx context.Context, id, title string) error
	EditContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]models.Page, error)

	// SetPublished and ClearPublished keep the page's publication flag in
	// step with the global story collection. Called by the publication
	// service, not by screens.
	SetPublished(ctx context.Context, id string, publishedAt int64) error
	ClearPublished(ctx context.Context, id string) error
}

type service struct {
	kv       storage.KeyValueStore
	identity identity.Service
	now      func() time.Time
}

// NewService constructs a notes Service bound to the given store and session.
func NewService(kv storage.KeyValueStore, ids identity.Service) Service {
	return &service{kv: kv, identity: ids, now: time.Now}
}

// List returns the user's pages, most recently touched first. The sort is
// stable, so records touched at the same instant keep their stored order.
func (s *service) List(ctx context.Context) ([]models.Page, error) {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	pages, err := s.loadPages(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Touched() > pages[j].Touched()
	})
	return pages, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Page, error) {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrorNoSession
	}

	pages, err := s.loadPages(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].ID == id {
			return &pages[i], nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (s *service) Create(ctx context.Context, title string) (*models.Page, error) {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrorNoSession
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.ErrorValidation
	}

	pages, err := s.loadPages(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now().UnixMilli()
	page := models.Page{
		ID:         s.nextID(pages),
		Title:      title,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	pages = append(pages, page)
	if err := s.savePages(ctx, user.ID, pages); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *service) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.ErrorValidation
	}
	return s.mutate(ctx, id, func(p *models.Page) {
		p.Title = title
	})
}

func (s *service) EditContent(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.ErrorValidation
	}
	return s.mutate(ctx, id, func(p *models.Page) {
		p.Content = content
	})
}

// Delete removes a page from the user's collection. Unpublishing a deleted
// page is the publication service's job; use publication.DeletePage from
// screens so the public copy goes away too.
func (s *service) Delete(ctx context.Context, id string) error {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrorNoSession
	}

	pages, err := s.loadPages(ctx, user.ID)
	if err != nil {
		return err
	}
	kept := pages[:0]
	for _, p := range pages {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(pages) {
		return shared.ErrorNotFound
	}
	return s.savePages(ctx, user.ID, kept)
}

// Search filters the sorted page list by case-insensitive substring match
// over title or content.
func (s *service) Search(ctx context.Context, query string) ([]models.Page, error) {
	pages, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)

	var results []models.Page
	for _, p := range pages {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (s *service) SetPublished(ctx context.Context, id string, publishedAt int64) error {
	return s.mutatePublication(ctx, id, func(p *models.Page) {
		p.IsPublished = true
		p.PublishedAt = publishedAt
	})
}

func (s *service) ClearPublished(ctx context.Context, id string) error {
	return s.mutatePublication(ctx, id, func(p *models.Page) {
		p.IsPublished = false
		p.PublishedAt = 0
	})
}

// mutate applies fn to the page with the given id and stamps modifiedAt.
func (s *service) mutate(ctx context.Context, id string, fn func(*models.Page)) error {
	return s.apply(ctx, id, func(p *models.Page) {
		fn(p)
		p.ModifiedAt = s.now().UnixMilli()
	})
}

// mutatePublication applies fn without touching modifiedAt: publishing is
// not an edit, so it must not reorder the private list.
func (s *service) mutatePublication(ctx context.Context, id string, fn func(*models.Page)) error {
	return s.apply(ctx, id, fn)
}

func (s *service) apply(ctx context.Context, id string, fn func(*models.Page)) error {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrorNoSession
	}

	pages, err := s.loadPages(ctx, user.ID)
	if err != nil {
		return err
	}
	for i := range pages {
		if pages[i].ID == id {
			fn(&pages[i])
			return s.savePages(ctx, user.ID, pages)
		}
	}
	return shared.ErrorNotFound
}

// loadPages reads one user's collection, backfilling timestamps on records
// written before createdAt/modifiedAt existed (the id carries the creation
// time for those).
func (s *service) loadPages(ctx context.Context, userID string) ([]models.Page, error) {
	var pages []models.Page
	if _, err := storage.GetJSON(ctx, s.kv, storage.PagesKey(userID), &pages); err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}
	for i := range pages {
		if pages[i].CreatedAt == 0 {
			pages[i].CreatedAt = models.TimestampFromID(pages[i].ID)
			pages[i].ModifiedAt = pages[i].CreatedAt
		}
	}
	return pages, nil
}

func (s *service) savePages(ctx context.Context, userID string, pages []models.Page) error {
	if pages == nil {
		pages = []models.Page{}
	}
	if err := storage.SetJSON(ctx, s.kv, storage.PagesKey(userID), pages); err != nil {
		return fmt.Errorf("failed to save pages: %w", err)
	}
	return nil
}

func (s *service) nextID(pages []models.Page) string {
	taken := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		taken[p.ID] = struct{}{}
	}
	ts := s.now().UnixMilli()
	for {
		id := models.TimeID(ts)
		if _, ok := taken[id]; !ok {
			return id
		}
		ts++
	}
}
