package csfd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	yearRangeRegex     = regexp.MustCompile(`(\d{4}(?:\s*[-–]\s*\d{4})?|\d{4}\s*[-–]\s*)`)
	seasonYearRegex    = regexp.MustCompile(`\((\d{4})\)`)
	episodeCountRegex  = regexp.MustCompile(`(\d+)\s*epizod`)
	parenCountRegex    = regexp.MustCompile(`\((\d+)(?:\s*epizod[ay]?)?\)`)
	parentheticalRegex = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	yearDashCleaner    = strings.NewReplacer(" - ", "-", " – ", "-")
)

// ParseShow extracts a show's metadata and season list from its overview
// page. The name is the only mandatory field: a page without one fails
// with an ElementNotFoundError. Every other field is left empty when all
// of its strategies come up short.
func ParseShow(html string, id int) (Show, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Show{}, fmt.Errorf("parse html: %w", err)
	}

	name := showName(doc)
	if name == "" {
		return Show{}, &ElementNotFoundError{Element: "show name"}
	}

	return Show{
		ID:           id,
		Name:         name,
		OriginalName: showOriginalName(doc),
		YearRange:    showYearRange(doc),
		Genres:       showGenres(doc),
		Countries:    showCountries(doc),
		Seasons:      parseSeasons(doc),
	}, nil
}

func showName(doc *goquery.Document) string {
	selectors := []string{
		"h1.film-header-name",
		".film-header h1",
		"h1[itemprop='name']",
		".movie-title h1",
		"h1",
	}

	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func showOriginalName(doc *goquery.Document) string {
	// The first entry of the film-names list is the original name,
	// followed by a "(více)" link expanding the other localized names.
	if li := doc.Find("ul.film-names li:first-child"); li.Length() > 0 {
		var kept []string
		for _, line := range strings.Split(li.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "(více)") {
				continue
			}
			kept = append(kept, line)
		}
		if name := strings.TrimSpace(strings.Join(kept, " ")); name != "" {
			return name
		}
	}

	selectors := []string{
		".film-header-name .film-header-origin-name",
		".origin-name",
		"[itemprop='alternateName']",
	}
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func showYearRange(doc *goquery.Document) string {
	selectors := []string{
		".film-header-origin .origin span",
		".origin .year",
		"[itemprop='datePublished']",
		".film-info .origin",
	}

	for _, sel := range selectors {
		for _, el := range doc.Find(sel).EachIter() {
			if m := yearRangeRegex.FindStringSubmatch(el.Text()); m != nil {
				return yearDashCleaner.Replace(strings.TrimSpace(m[1]))
			}
		}
	}
	return ""
}

// showGenres collects every genre from the first selector that matches at
// least once, de-duplicated and in page order.
func showGenres(doc *goquery.Document) []string {
	selectors := []string{
		".film-header-origin .genre a",
		".genres a",
		"[itemprop='genre']",
		".film-info .genre a",
	}

	var genres []string
	for _, sel := range selectors {
		for _, el := range doc.Find(sel).EachIter() {
			genres = appendUnique(genres, strings.TrimSpace(el.Text()))
		}
		if len(genres) > 0 {
			break
		}
	}
	return genres
}

func showCountries(doc *goquery.Document) []string {
	selectors := []string{
		".film-header-origin .origin a",
		".origin .country a",
		"[itemprop='countryOfOrigin']",
		".film-info .origin a",
	}

	var countries []string
	for _, sel := range selectors {
		for _, el := range doc.Find(sel).EachIter() {
			countries = appendUnique(countries, strings.TrimSpace(el.Text()))
		}
		if len(countries) > 0 {
			return countries
		}
	}

	// Last resort: the origin block is "USA, 2008-2013, 62 epizod", the
	// country is everything before the first comma. A purely numeric
	// fragment is a year or count, not a country.
	origin, _, _ := strings.Cut(doc.Find("div.origin").First().Text(), ",")
	origin = strings.TrimSpace(origin)
	if origin != "" && !isAllDigits(origin) {
		countries = append(countries, origin)
	}
	return countries
}

// parseSeasons extracts the season list from an overview page. Strategies
// are tried in order and the first one that yields anything wins; results
// are never merged across strategies.
func parseSeasons(doc *goquery.Document) []Season {
	var seasons []Season

	// Current layout: one h3.film-title block per season.
	for _, h3 := range doc.Find("h3.film-title").EachIter() {
		if season, ok := parseSeasonTitle(h3); ok {
			seasons = appendSeason(seasons, season)
		}
	}
	if len(seasons) > 0 {
		return seasons
	}

	// Legacy layout: pairs of container and item selectors.
	containers := []string{
		".film-episodes-list",
		".seasons-list",
		".series-seasons",
		".box-content ul",
	}
	items := []string{
		"li a",
		".season-item a",
		"a.season-link",
	}
	for _, containerSel := range containers {
		for _, container := range doc.Find(containerSel).EachIter() {
			for _, itemSel := range items {
				for _, item := range container.Find(itemSel).EachIter() {
					if season, ok := parseSeasonLink(item); ok {
						seasons = appendSeason(seasons, season)
					}
				}
				if len(seasons) > 0 {
					return seasons
				}
			}
		}
	}

	// Last resort: any anchor that looks like a season link.
	for _, el := range doc.Find("a[href*='/film/'][href*='serie']").EachIter() {
		if season, ok := parseSeasonLink(el); ok {
			seasons = appendSeason(seasons, season)
		}
	}
	return seasons
}

// parseSeasonTitle parses one season out of a current-layout title block.
func parseSeasonTitle(h3 *goquery.Selection) (Season, bool) {
	link := h3.Find("a.film-title-name").First()
	href, ok := link.Attr("href")
	if !ok {
		return Season{}, false
	}

	id, ok := ExtractNestedID(href)
	if !ok {
		return Season{}, false
	}

	name := strings.TrimSpace(link.Text())
	if name == "" {
		return Season{}, false
	}

	// The info span looks like "(2008) - 7 epizod".
	info := h3.Find(".film-title-info").First().Text()

	season := Season{
		ID:   id,
		Name: name,
		URL:  href,
	}
	if m := seasonYearRegex.FindStringSubmatch(info); m != nil {
		season.Year = m[1]
	}
	if m := episodeCountRegex.FindStringSubmatch(info); m != nil {
		season.EpisodeCount = atoiOrZero(m[1])
	}
	return season, true
}

// parseSeasonLink parses one season out of a bare legacy anchor, where the
// year and episode count ride along in the link text.
func parseSeasonLink(el *goquery.Selection) (Season, bool) {
	href, ok := el.Attr("href")
	if !ok {
		return Season{}, false
	}

	id, ok := ExtractNestedID(href)
	if !ok {
		if id, ok = ExtractShowID(href); !ok {
			return Season{}, false
		}
	}

	name := strings.TrimSpace(el.Text())
	if name == "" {
		return Season{}, false
	}

	season := Season{
		ID:   id,
		Name: cleanSeasonName(name),
		URL:  href,
	}
	if m := seasonYearRegex.FindStringSubmatch(name); m != nil {
		season.Year = m[1]
	}
	if m := parenCountRegex.FindStringSubmatch(name); m != nil {
		season.EpisodeCount = atoiOrZero(m[1])
	}
	return season, true
}

// cleanSeasonName strips the parenthesized year and episode count out of a
// legacy season label.
func cleanSeasonName(name string) string {
	return strings.TrimSpace(parentheticalRegex.ReplaceAllString(name, " "))
}

// appendSeason appends season unless one with the same id is already
// there. First occurrence wins.
func appendSeason(seasons []Season, season Season) []Season {
	for _, s := range seasons {
		if s.ID == season.ID {
			return seasons
		}
	}
	return append(seasons, season)
}

func appendUnique(values []string, value string) []string {
	if value == "" {
		return values
	}
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
