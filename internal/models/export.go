package models

// ExportUser is the account portion of an export document. The password is
// deliberately absent.
type ExportUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	CreatedAt int64  `json:"createdAt"`
}

// ExportDocument is the downloadable backup of one account: the user's
// profile, every private page, and their published story records.
type ExportDocument struct {
	User             ExportUser       `json:"user"`
	Stories          []Page           `json:"stories"`
	PublishedStories []PublishedStory `json:"publishedStories"`
}
