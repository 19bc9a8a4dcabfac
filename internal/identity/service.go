// Package identity owns user records, the session, and slug resolution.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/shared"
	"github.com/quietpage/quietpage/internal/storage"
	"github.com/quietpage/quietpage/internal/textx"
)

// Service defines account and session operations.
//
// Contract:
//   - Register: create an account; does not sign the new user in.
//   - Authenticate: case-insensitive email + exact password match; on
//     success the session is set and persisted.
//   - Current: the signed-in user, if any.
//   - SignOut: clear and persist the session.
//   - Update: replace a user record by id and refresh the session snapshot.
//   - Delete: remove the signed-in account and everything it owns.
//   - FindBySlug: resolve a public profile slug to its user.
type Service interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Current(ctx context.Context) (*models.User, bool, error)
	SignOut(ctx context.Context) error
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context) error
	FindBySlug(ctx context.Context, slug string) (*models.User, error)
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, on bool) error
}

type service struct {
	kv  storage.KeyValueStore
	now func() time.Time
}

// NewService constructs an identity Service over the given store.
func NewService(kv storage.KeyValueStore) Service {
	return &service{kv: kv, now: time.Now}
}

// GenerateSlug derives the URL slug for a user's display name. Pure; the
// persisted Slug field (set once at registration) wins over re-derivation
// so renames do not break public URLs.
func GenerateSlug(u models.User) string {
	return textx.Slugify(u.Name)
}

// SlugOf returns the user's effective slug: the stored one, or the derived
// one for records created before slugs were persisted.
func SlugOf(u models.User) string {
	if u.Slug != "" {
		return u.Slug
	}
	return GenerateSlug(u)
}

func (s *service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, shared.ErrorValidation
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, shared.ErrorEmailExists
		}
	}

	user := models.User{
		ID:        s.nextID(users),
		Email:     email,
		Password:  password,
		Name:      name,
		CreatedAt: s.now().UnixMilli(),
	}
	user.Slug = uniqueSlug(textx.Slugify(name), users)

	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			if err := storage.SetJSON(ctx, s.kv, storage.KeyCurrentUser, u); err != nil {
				return nil, fmt.Errorf("failed to persist session: %w", err)
			}
			return &u, nil
		}
	}
	// A failed attempt leaves any existing session untouched.
	return nil, shared.ErrorInvalidEmailPassword
}

func (s *service) Current(ctx context.Context) (*models.User, bool, error) {
	var u models.User
	ok, err := storage.GetJSON(ctx, s.kv, storage.KeyCurrentUser, &u)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

func (s *service) SignOut(ctx context.Context) error {
	return s.kv.Remove(ctx, storage.KeyCurrentUser)
}

func (s *service) Update(ctx context.Context, user models.User) error {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}

	// Keep the persisted session snapshot in step with the record.
	current, ok, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if ok && current.ID == user.ID {
		if err := storage.SetJSON(ctx, s.kv, storage.KeyCurrentUser, user); err != nil {
			return fmt.Errorf("failed to refresh session: %w", err)
		}
	}
	return nil
}

// Delete removes the signed-in account: the user record, their whole page
// collection, and every story they published. View counters stay behind,
// keyed by story ids nothing references anymore.
func (s *service) Delete(ctx context.Context) error {
	user, ok, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrorNoSession
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != user.ID {
			kept = append(kept, u)
		}
	}
	if err := s.saveUsers(ctx, kept); err != nil {
		return err
	}

	if err := s.kv.Remove(ctx, storage.PagesKey(user.ID)); err != nil {
		return fmt.Errorf("failed to remove pages: %w", err)
	}

	var stories []models.PublishedStory
	if _, err := storage.GetJSON(ctx, s.kv, storage.KeyPublishedStories, &stories); err != nil {
		return err
	}
	keptStories := stories[:0]
	for _, st := range stories {
		if st.AuthorID != user.ID {
			keptStories = append(keptStories, st)
		}
	}
	if err := storage.SetJSON(ctx, s.kv, storage.KeyPublishedStories, keptStories); err != nil {
		return err
	}

	return s.SignOut(ctx)
}

func (s *service) FindBySlug(ctx context.Context, slug string) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if SlugOf(u) == slug {
			return &u, nil
		}
	}
	return nil, shared.ErrorNotFound
}

func (s *service) DarkMode(ctx context.Context) (bool, error) {
	v, _, err := s.kv.Get(ctx, storage.KeyDarkMode)
	if err != nil {
		return false, fmt.Errorf("failed to load dark mode: %w", err)
	}
	return v == "true", nil
}

func (s *service) SetDarkMode(ctx context.Context, on bool) error {
	v := "false"
	if on {
		v = "true"
	}
	return s.kv.Set(ctx, storage.KeyDarkMode, v)
}

func (s *service) loadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := storage.GetJSON(ctx, s.kv, storage.KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *service) saveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	if err := storage.SetJSON(ctx, s.kv, storage.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// nextID mints a time-based id, bumping by a millisecond while the value
// collides with an existing record.
func (s *service) nextID(users []models.User) string {
	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[u.ID] = struct{}{}
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

// uniqueSlug appends -2, -3, … until the derived slug stops colliding with
// an existing user's. An unusable name (nothing slug-safe in it) falls back
// to "writer".
func uniqueSlug(base string, users []models.User) string {
	if base == "" {
		base = "writer"
	}
	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[SlugOf(u)] = struct{}{}
	}
	if _, ok := taken[base]; !ok {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
