package newsfeed

import "time"

// ArticleStub is an article as seen on the listing page, before its detail
// page has been visited. Link, Title and Summary are always non-empty.
type ArticleStub struct {
	Link     string `json:"link"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ImageURL string `json:"image_url,omitempty"` // Empty when the listing had no usable image
}

// ArticleRecord is a stub with its resolved publication instant.
type ArticleRecord struct {
	ArticleStub
	PublishedAt time.Time `json:"published_at"`
}

// WithPublishedAt returns a record for the stub. The stub itself is not
// modified.
func (s ArticleStub) WithPublishedAt(t time.Time) ArticleRecord {
	return ArticleRecord{
		ArticleStub: s,
		PublishedAt: t,
	}
}

// HasImage reports whether the stub carries an image URL.
func (s ArticleStub) HasImage() bool {
	return s.ImageURL != ""
}
