package csfd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Scraper is the high-level API over ČSFD.cz: search, show detail and
// episode listings. Every call is independent, nothing is cached.
type Scraper struct {
	client *Client
}

// NewScraper creates a new Scraper from cfg.
func NewScraper(cfg Config) *Scraper {
	return &Scraper{client: NewClient(cfg)}
}

// NewScraperWithClient creates a new Scraper on top of an existing client.
// Useful for tests.
func NewScraperWithClient(client *Client) *Scraper {
	return &Scraper{client: client}
}

// Search returns the first page of search results for query.
func (s *Scraper) Search(ctx context.Context, query string) (Page[SearchResult], error) {
	return s.SearchPage(ctx, query, 1)
}

// SearchPage returns one page of search results for query, 1-based.
// Fails with ErrEmptyQuery when query is empty or whitespace-only.
func (s *Scraper) SearchPage(ctx context.Context, query string, page int) (Page[SearchResult], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page[SearchResult]{}, ErrEmptyQuery
	}

	path := "/hledat/?q=" + url.QueryEscape(query)
	if page > 1 {
		path += fmt.Sprintf("&page=%d", page)
	}

	html, err := s.client.Fetch(ctx, path)
	if err != nil {
		return Page[SearchResult]{}, fmt.Errorf("fetch search page: %w", err)
	}

	result, err := ParseSearchResults(html)
	if err != nil {
		return Page[SearchResult]{}, fmt.Errorf("parse search results: %w", err)
	}

	// What the page claims about itself is informational only; the caller
	// gets back the page they asked for.
	result.CurrentPage = page
	return result, nil
}

// GetShow returns the detail of the show with the given id, seasons
// included. Fails with an InvalidIDError when id is not positive.
func (s *Scraper) GetShow(ctx context.Context, id int) (Show, error) {
	if id <= 0 {
		return Show{}, &InvalidIDError{ID: id}
	}

	html, err := s.client.Fetch(ctx, fmt.Sprintf("/film/%d/prehled/", id))
	if err != nil {
		return Show{}, fmt.Errorf("fetch show page: %w", err)
	}
	return ParseShow(html, id)
}

// GetEpisodes returns every episode of the show with the given id, across
// all seasons. Fails with an InvalidIDError when id is not positive.
func (s *Scraper) GetEpisodes(ctx context.Context, id int) ([]Episode, error) {
	if id <= 0 {
		return nil, &InvalidIDError{ID: id}
	}

	html, err := s.client.Fetch(ctx, fmt.Sprintf("/film/%d/epizody/", id))
	if err != nil {
		return nil, fmt.Errorf("fetch episodes page: %w", err)
	}
	return ParseEpisodes(html)
}

// GetSeasonEpisodes returns the episodes of one season of a show. Fails
// with an InvalidIDError when either id is not positive.
func (s *Scraper) GetSeasonEpisodes(ctx context.Context, showID, seasonID int) ([]Episode, error) {
	if showID <= 0 {
		return nil, &InvalidIDError{ID: showID}
	}
	if seasonID <= 0 {
		return nil, &InvalidIDError{ID: seasonID}
	}

	html, err := s.client.Fetch(ctx, fmt.Sprintf("/film/%d/%d/epizody/", showID, seasonID))
	if err != nil {
		return nil, fmt.Errorf("fetch season episodes page: %w", err)
	}
	return ParseEpisodes(html)
}
