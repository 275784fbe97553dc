package csfd

// ShowKind describes what kind of entry a search hit points to.
type ShowKind string

const (
	// KindSeries is a regular TV series (seriál).
	KindSeries ShowKind = "series"
	// KindSeason is a single season listed as its own entry (série).
	KindSeason ShowKind = "season"
	// KindMiniSeries is a mini-series (minisérie).
	KindMiniSeries ShowKind = "miniseries"
)

// SearchResult is a single hit on a search listing page.
type SearchResult struct {
	Name string `json:"name"`
	// OriginalName is the name in the original language, empty when the
	// listing doesn't show one.
	OriginalName string `json:"original_name,omitempty"`
	// Year is a year or year range as shown on the page, e.g. "2008" or
	// "2008-2013".
	Year string   `json:"year,omitempty"`
	Kind ShowKind `json:"kind"`
	// URL is the relative URL of the show on ČSFD.
	URL string `json:"url"`
	ID  int    `json:"id"`
}

// Show is the detail of a single show, including its seasons.
type Show struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	OriginalName string   `json:"original_name,omitempty"`
	YearRange    string   `json:"year_range,omitempty"`
	Genres       []string `json:"genres"`
	Countries    []string `json:"countries"`
	Seasons      []Season `json:"seasons"`
}

// Season is one season of a show.
type Season struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Year string `json:"year,omitempty"`
	// EpisodeCount is 0 when the page doesn't state it.
	EpisodeCount int    `json:"episode_count"`
	URL          string `json:"url"`
}

// Episode is a single episode of a show.
type Episode struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Code is the episode code in SxxExx format, always derived from
	// SeasonNumber and EpisodeNumber.
	Code          string `json:"code"`
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	// Rating is a percentage in [0, 100], nil when the episode has none.
	Rating *float64 `json:"rating,omitempty"`
	URL    string   `json:"url"`
}

// Page is a single page of a paginated listing.
type Page[T any] struct {
	Items []T `json:"items"`
	// CurrentPage is the page that was requested, 1-based.
	CurrentPage int  `json:"current_page"`
	HasNextPage bool `json:"has_next_page"`
}
