package csfd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	yearParenRegex = regexp.MustCompile(`\((\d{4}(?:-\d{4})?)\)`)
	yearBareRegex  = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

// ParseSearchResults extracts the hits and pagination state from a search
// listing page. Hits that are missing a parsable id or a name are dropped.
// CurrentPage is whatever the page itself claims; the scraper overwrites
// it with the page it actually requested.
func ParseSearchResults(html string) (Page[SearchResult], error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Page[SearchResult]{}, fmt.Errorf("parse html: %w", err)
	}

	page := Page[SearchResult]{
		Items:       []SearchResult{},
		CurrentPage: 1,
	}

	// Current layout uses article.article-poster-50, the legacy one
	// .ui-film-list.
	for _, s := range doc.Find("article.article-poster-50, .ui-film-list .film-item").EachIter() {
		if hit, ok := parseSearchItem(s); ok {
			page.Items = append(page.Items, hit)
		}
	}

	page.HasNextPage = hasNextPage(doc)
	if p, ok := claimedCurrentPage(doc); ok {
		page.CurrentPage = p
	}

	return page, nil
}

func parseSearchItem(s *goquery.Selection) (SearchResult, bool) {
	link := s.Find("a.film-title-name, a.name, h3 a, .article-header a").First()
	href, ok := link.Attr("href")
	if !ok {
		return SearchResult{}, false
	}

	id, ok := ExtractShowID(href)
	if !ok {
		return SearchResult{}, false
	}

	name := strings.TrimSpace(link.Text())
	if name == "" {
		return SearchResult{}, false
	}

	return SearchResult{
		Name:         name,
		OriginalName: searchOriginalName(s),
		Year:         searchYear(s),
		Kind:         classifyKind(s.Text()),
		URL:          href,
		ID:           id,
	}, true
}

// searchOriginalName looks for the original-language name of a hit. Empty
// when no strategy matches.
func searchOriginalName(s *goquery.Selection) string {
	selectors := []string{
		".film-title-info .info",
		".origin-name",
		".original-name",
		".info span:first-child",
	}

	for _, sel := range selectors {
		text := strings.TrimSpace(s.Find(sel).First().Text())
		if text != "" && text != "-" {
			return text
		}
	}
	return ""
}

// searchYear looks for a year or year range in the auxiliary text of a
// hit. Empty when no strategy matches.
func searchYear(s *goquery.Selection) string {
	selectors := []string{
		".film-title-info .info",
		".year",
		".info-year",
		"span.year",
	}

	for _, sel := range selectors {
		el := s.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if year := yearFromText(el.Text()); year != "" {
			return year
		}
	}

	// Last resort: the whole element text.
	return yearFromText(s.Text())
}

// yearFromText extracts "2008" or "2008-2013" from free-form text,
// preferring a parenthesized year as shown on listing pages.
func yearFromText(text string) string {
	if m := yearParenRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := yearBareRegex.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// classifyKind guesses the kind of a hit from the Czech labels in its
// text. Best effort: the wording on the site changes now and then.
func classifyKind(text string) ShowKind {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "minisérie") || strings.Contains(text, "miniserie"):
		return KindMiniSeries
	case strings.Contains(text, "série") && !strings.Contains(text, "seriál"):
		return KindSeason
	default:
		return KindSeries
	}
}

func hasNextPage(doc *goquery.Document) bool {
	selectors := []string{
		".pagination .next:not(.disabled)",
		".paging a.next",
		"a[rel='next']",
		".pagination-next:not(.disabled)",
	}

	for _, sel := range selectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}

func claimedCurrentPage(doc *goquery.Document) (int, bool) {
	selectors := []string{
		".pagination .active",
		".paging .current",
		".pagination-current",
	}

	for _, sel := range selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if page, err := strconv.Atoi(text); err == nil {
			return page, true
		}
	}
	return 0, false
}
