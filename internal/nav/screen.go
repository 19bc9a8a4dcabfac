// Package nav decides which screen is visible. Resolution is a pure
// function of (session present?, URL query parameters, storage lookups);
// the rendering layer consumes the resulting Screen value and nothing else.
package nav

// Kind names one of the fixed set of screens.
type Kind string

const (
	KindAuth           Kind = "auth"
	KindMain           Kind = "main"
	KindSearch         Kind = "search"
	KindNoteEditor     Kind = "editor"
	KindReading        Kind = "reading"
	KindPublishedStory Kind = "publishedStory"
	KindProfile        Kind = "profile"
	KindPublicProfile  Kind = "publicProfile"
	KindPublicStory    Kind = "publicStory"
	KindNotFound       Kind = "notFound"
)

// Screen is a resolved view state. Only the fields relevant to the Kind are
// set; the zero Screen is not a valid state.
type Screen struct {
	Kind    Kind
	Query   string // search query, KindSearch
	NoteID  string // KindNoteEditor
	StoryID string // KindPublishedStory, KindPublicStory
	Slug    string // KindPublicProfile, KindPublicStory
}

func AuthScreen() Screen           { return Screen{Kind: KindAuth} }
func MainScreen() Screen           { return Screen{Kind: KindMain} }
func SearchScreen(q string) Screen { return Screen{Kind: KindSearch, Query: q} }
func NoteEditorScreen(noteID string) Screen {
	return Screen{Kind: KindNoteEditor, NoteID: noteID}
}
func ReadingScreen() Screen { return Screen{Kind: KindReading} }
func PublishedStoryScreen(storyID string) Screen {
	return Screen{Kind: KindPublishedStory, StoryID: storyID}
}
func ProfileScreen() Screen { return Screen{Kind: KindProfile} }
func PublicProfileScreen(slug string) Screen {
	return Screen{Kind: KindPublicProfile, Slug: slug}
}
func PublicStoryScreen(slug, storyID string) Screen {
	return Screen{Kind: KindPublicStory, Slug: slug, StoryID: storyID}
}
func NotFoundScreen() Screen { return Screen{Kind: KindNotFound} }
