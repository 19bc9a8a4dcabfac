package models

// PublishedStory is the public copy-on-publish snapshot of a Page. Title,
// Content and AuthorName are frozen at publish time and only refresh when the
// author republishes. PublishedAt is the first publish time; LastUpdated
// moves on every republish.
type PublishedStory struct {
	ID          string `json:"id"`
	PageID      string `json:"pageId"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    string `json:"authorId"`
	AuthorName  string `json:"authorName"`
	PublishedAt int64  `json:"publishedAt"`
	LastUpdated int64  `json:"lastUpdated"`
}
