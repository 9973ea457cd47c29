package scraper

// ScraperConfig defines how to extract articles from the publisher's pages.
// Listing selectors drive the first phase, the article selectors the
// per-item detail phase.
type ScraperConfig struct {
	ListConfig    ListConfig    `yaml:"list_config"`
	ArticleConfig ArticleConfig `yaml:"article_config"`
}

// ListConfig defines how to discover article stubs on the listing page.
type ListConfig struct {
	ContainerSelector string `yaml:"container_selector"`
	ArticleSelector   string `yaml:"article_selector"`
	TitleSelector     string `yaml:"title_selector"`
	SummarySelector   string `yaml:"summary_selector"`
	ImageSelector     string `yaml:"image_selector"`
}

// ArticleConfig defines how to extract the publication date from an
// individual article page.
type ArticleConfig struct {
	DateSelector string `yaml:"date_selector"`
}

// DefaultScraperConfig returns the selectors for the listing and article
// pages of olhardigital.com.br.
func DefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		ListConfig: ListConfig{
			ContainerSelector: "section.p-block",
			ArticleSelector:   "a.p-item",
			TitleSelector:     "div.p-title h2",
			SummarySelector:   "div.p-description",
			ImageSelector:     "div.p-img img",
		},
		ArticleConfig: ArticleConfig{
			DateSelector: "span.sng-data",
		},
	}
}
