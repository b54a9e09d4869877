package domain

// Book represents a source work a highlight was taken from.
type Book struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	Author        *string `json:"author,omitempty"`
	Category      *string `json:"category,omitempty"`
	SourceURL     *string `json:"source_url,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
}

// UnknownBookTitle is the placeholder used when a highlight's book cannot be
// resolved. A dangling book reference degrades to this, never to a failure.
const UnknownBookTitle = "Unknown Book"

// ResolveTitle returns the title for bookID out of books, or the placeholder
// when the id is absent or the lookup misses.
func ResolveTitle(bookID *int64, books map[int64]Book) string {
	if bookID == nil {
		return UnknownBookTitle
	}
	book, ok := books[*bookID]
	if !ok || book.Title == "" {
		return UnknownBookTitle
	}
	return book.Title
}
