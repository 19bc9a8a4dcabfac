// Package publication owns the global published-story collection and its
// view counters.
package publication

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/notes"
	"github.com/quietpage/quietpage/internal/shared"
	"github.com/quietpage/quietpage/internal/storage"
)

// Sort selects the reading-screen ordering.
type Sort string

const (
	SortRecent Sort = "recent"
	SortAuthor Sort = "author"
)

// Service defines publish/unpublish transitions and public reads.
//
// A story is a copy-on-publish snapshot: republishing the same page updates
// the existing record in place (same id, same PublishedAt) instead of
// duplicating it. There is at most one story per (pageId, authorId).
type Service interface {
	Publish(ctx context.Context, pageID string) (*models.PublishedStory, error)
	Unpublish(ctx context.Context, pageID string) error
	IsPublished(ctx context.Context, pageID string) (bool, error)

	// DeletePage removes a private page and, when it is published, its
	// public story in the same operation.
	DeletePage(ctx context.Context, pageID string) error

	StoryByID(ctx context.Context, storyID string) (*models.PublishedStory, error)
	StoriesByAuthor(ctx context.Context, authorID string) ([]models.PublishedStory, error)
	AllStories(ctx context.Context, by Sort) ([]models.PublishedStory, error)

	// RecordView increments the story's counter by one and returns the new
	// count. Called once per story-detail render; authors viewing their own
	// story count too.
	RecordView(ctx context.Context, storyID string) (int64, error)
	Views(ctx context.Context, storyID string) (int64, error)
}

type service struct {
	kv       storage.KeyValueStore
	identity identity.Service
	notes    notes.Service
	now      func() time.Time
}

// NewService constructs a publication Service.
func NewService(kv storage.KeyValueStore, ids identity.Service, ns notes.Service) Service {
	return &service{kv: kv, identity: ids, notes: ns, now: time.Now}
}

func (s *service) Publish(ctx context.Context, pageID string) (*models.PublishedStory, error) {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrorNoSession
	}

	page, err := s.notes.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(page.Content) == "" {
		return nil, shared.ErrorEmptyContent
	}

	stories, err := s.loadStories(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UnixMilli()
	var story *models.PublishedStory
	for i := range stories {
		if stories[i].PageID == pageID && stories[i].AuthorID == user.ID {
			story = &stories[i]
			break
		}
	}
	if story == nil {
		stories = append(stories, models.PublishedStory{
			ID:          uuid.NewString(),
			PageID:      pageID,
			AuthorID:    user.ID,
			PublishedAt: now,
		})
		story = &stories[len(stories)-1]
	}

	// Refresh the snapshot; id and PublishedAt survive republish.
	story.Title = page.Title
	story.Content = page.Content
	story.AuthorName = user.Name
	story.LastUpdated = now

	if err := s.saveStories(ctx, stories); err != nil {
		return nil, err
	}
	if err := s.notes.SetPublished(ctx, pageID, story.PublishedAt); err != nil {
		return nil, err
	}

	result := *story
	return &result, nil
}

func (s *service) Unpublish(ctx context.Context, pageID string) error {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrorNoSession
	}

	stories, err := s.loadStories(ctx)
	if err != nil {
		return err
	}
	kept := stories[:0]
	for _, st := range stories {
		if !(st.PageID == pageID && st.AuthorID == user.ID) {
			kept = append(kept, st)
		}
	}
	if err := s.saveStories(ctx, kept); err != nil {
		return err
	}
	return s.notes.ClearPublished(ctx, pageID)
}

func (s *service) IsPublished(ctx context.Context, pageID string) (bool, error) {
	user, ok, err := s.identity.Current(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	stories, err := s.loadStories(ctx)
	if err != nil {
		return false, err
	}
	for _, st := range stories {
		if st.PageID == pageID && st.AuthorID == user.ID {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) DeletePage(ctx context.Context, pageID string) error {
	published, err := s.IsPublished(ctx, pageID)
	if err != nil {
		return err
	}
	if published {
		if err := s.Unpublish(ctx, pageID); err != nil {
			return err
		}
	}
	return s.notes.Delete(ctx, pageID)
}

func (s *service) StoryByID(ctx context.Context, storyID string) (*models.PublishedStory, error) {
	stories, err := s.loadStories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range stories {
		if stories[i].ID == storyID {
			return &stories[i], nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (s *service) StoriesByAuthor(ctx context.Context, authorID string) ([]models.PublishedStory, error) {
	stories, err := s.loadStories(ctx)
	if err != nil {
		return nil, err
	}
	var result []models.PublishedStory
	for _, st := range stories {
		if st.AuthorID == authorID {
			result = append(result, st)
		}
	}
	sortStories(result, SortRecent)
	return result, nil
}

func (s *service) AllStories(ctx context.Context, by Sort) ([]models.PublishedStory, error) {
	stories, err := s.loadStories(ctx)
	if err != nil {
		return nil, err
	}
	sortStories(stories, by)
	return stories, nil
}

func (s *service) RecordView(ctx context.Context, storyID string) (int64, error) {
	views, err := s.loadViews(ctx)
	if err != nil {
		return 0, err
	}
	views[storyID]++
	if err := storage.SetJSON(ctx, s.kv, storage.KeyStoryViews, views); err != nil {
		return 0, fmt.Errorf("failed to save story views: %w", err)
	}
	return views[storyID], nil
}

func (s *service) Views(ctx context.Context, storyID string) (int64, error) {
	views, err := s.loadViews(ctx)
	if err != nil {
		return 0, err
	}
	return views[storyID], nil
}

func sortStories(stories []models.PublishedStory, by Sort) {
	switch by {
	case SortAuthor:
		sort.SliceStable(stories, func(i, j int) bool {
			return strings.ToLower(stories[i].AuthorName) < strings.ToLower(stories[j].AuthorName)
		})
	default:
		sort.SliceStable(stories, func(i, j int) bool {
			return stories[i].LastUpdated > stories[j].LastUpdated
		})
	}
}

func (s *service) loadStories(ctx context.Context) ([]models.PublishedStory, error) {
	var stories []models.PublishedStory
	if _, err := storage.GetJSON(ctx, s.kv, storage.KeyPublishedStories, &stories); err != nil {
		return nil, fmt.Errorf("failed to load published stories: %w", err)
	}
	return stories, nil
}

func (s *service) saveStories(ctx context.Context, stories []models.PublishedStory) error {
	if stories == nil {
		stories = []models.PublishedStory{}
	}
	if err := storage.SetJSON(ctx, s.kv, storage.KeyPublishedStories, stories); err != nil {
		return fmt.Errorf("failed to save published stories: %w", err)
	}
	return nil
}

func (s *service) loadViews(ctx context.Context) (map[string]int64, error) {
	views := map[string]int64{}
	if _, err := storage.GetJSON(ctx, s.kv, storage.KeyStoryViews, &views); err != nil {
		return nil, fmt.Errorf("failed to load story views: %w", err)
	}
	return views, nil
}
