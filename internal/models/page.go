package models

// Page is a private note owned by exactly one user. The ID doubles as the
// creation timestamp for records written before createdAt existed.
type Page struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedAt   int64  `json:"createdAt"`
	ModifiedAt  int64  `json:"modifiedAt"`
	IsPublished bool   `json:"isPublished,omitempty"`
	PublishedAt int64  `json:"publishedAt,omitempty"`
}

// Touched returns the best-known last-touch time: modifiedAt, falling back
// to createdAt, falling back to the id's embedded timestamp.
func (p Page) Touched() int64 {
	if p.ModifiedAt != 0 {
		return p.ModifiedAt
	}
	if p.CreatedAt != 0 {
		return p.CreatedAt
	}
	return TimestampFromID(p.ID)
}
