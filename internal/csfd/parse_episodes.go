package csfd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	episodeCodeRegex    = regexp.MustCompile(`(?i)S(\d{1,2})E(\d{1,2})`)
	episodeCodeAltRegex = regexp.MustCompile(`(\d{1,2})x(\d{1,2})`)
	episodeOrdinalRegex = regexp.MustCompile(`^(\d{1,2})\.\s`)
	episodeWordRegex    = regexp.MustCompile(`(?i)(?:episode|epizoda|díl)\s*(\d{1,2})`)
	seasonNumberRegex   = regexp.MustCompile(`(?i)(?:série|season|řada|s)\s*(\d+)`)
	ratingRegex         = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
	codePrefixRegex     = regexp.MustCompile(`^(?:S\d{1,2}E\d{1,2}\s*[-:]\s*|\d{1,2}\.\s*)`)
)

// ParseEpisodes extracts the episode list from a whole-show or
// season-scoped episode listing page. Strategies are tried in order and
// the first one that yields any episode wins.
func ParseEpisodes(html string) ([]Episode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	episodes := []Episode{}

	// Current layout: one h3.film-title block per episode, same shape as
	// the season list on the overview page.
	for _, h3 := range doc.Find("h3.film-title").EachIter() {
		if ep, ok := parseEpisodeTitle(h3); ok {
			episodes = append(episodes, ep)
		}
	}
	if len(episodes) > 0 {
		return episodes, nil
	}

	// Legacy layout: a table (or list) of rows, with season header rows
	// interleaved between episode rows.
	containers := []string{
		".film-episodes table tbody",
		".episodes-list",
		"table.episodes tbody",
		".box-content table tbody",
	}
	for _, containerSel := range containers {
		for _, container := range doc.Find(containerSel).EachIter() {
			currentSeason := 1
			for _, row := range container.Find("tr").EachIter() {
				if n, ok := seasonHeader(row); ok {
					currentSeason = n
					continue
				}
				if ep, ok := parseEpisodeRow(row, currentSeason); ok {
					episodes = append(episodes, ep)
				}
			}
			if len(episodes) > 0 {
				return episodes, nil
			}
		}
	}

	// Last resort: scan anything that looks like an episode link, carrying
	// the season of each parsed episode forward as the default for the
	// next one.
	currentSeason := 1
	for _, el := range doc.Find(".episode-item, .film-episodes a[href*='/film/']").EachIter() {
		if ep, ok := parseEpisodeElement(el, currentSeason); ok {
			currentSeason = ep.SeasonNumber
			episodes = append(episodes, ep)
		}
	}
	return episodes, nil
}

// parseEpisodeTitle parses one episode out of a current-layout title
// block. The info span carries the code, e.g. "(S01E01)".
func parseEpisodeTitle(h3 *goquery.Selection) (Episode, bool) {
	link := h3.Find("a.film-title-name").First()
	href, ok := link.Attr("href")
	if !ok {
		return Episode{}, false
	}

	id, ok := ExtractNestedID(href)
	if !ok {
		return Episode{}, false
	}

	name := strings.TrimSpace(link.Text())
	if name == "" {
		return Episode{}, false
	}

	info := h3.Find(".film-title-info").First().Text()
	season, episode, ok := ParseEpisodeCode(info)
	if !ok {
		season, episode = 1, 1
	}

	return Episode{
		ID:            id,
		Name:          name,
		Code:          formatEpisodeCode(season, episode),
		SeasonNumber:  season,
		EpisodeNumber: episode,
		URL:           href,
	}, true
}

// seasonHeader reports whether row is a season header, and which season it
// opens.
func seasonHeader(row *goquery.Selection) (int, bool) {
	if row.Find("th[colspan], td.season-header, .season-title").Length() > 0 {
		return seasonNumberFromText(row.Text())
	}

	text := strings.ToLower(row.Text())
	if strings.Contains(text, "série") || strings.Contains(text, "season") || strings.Contains(text, "řada") {
		return seasonNumberFromText(text)
	}
	return 0, false
}

func seasonNumberFromText(text string) (int, bool) {
	m := seasonNumberRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n := atoiOrZero(m[1])
	return n, n > 0
}

// parseEpisodeRow parses one episode out of a legacy table row,
// defaulting the season to the last season header seen.
func parseEpisodeRow(row *goquery.Selection, defaultSeason int) (Episode, bool) {
	link := row.Find("a[href*='/film/']").First()
	href, ok := link.Attr("href")
	if !ok {
		return Episode{}, false
	}

	id, ok := ExtractShowID(href)
	if !ok {
		return Episode{}, false
	}

	name := strings.TrimSpace(link.Text())
	if name == "" {
		return Episode{}, false
	}

	season, episode, ok := ParseEpisodeCode(row.Text())
	if !ok {
		season, episode, ok = ParseEpisodeCode(name)
	}
	if !ok {
		season = defaultSeason
		episode = 0
	}
	if episode == 0 {
		episode = 1
		if n, ok := episodeNumberFromName(name); ok {
			episode = n
		}
	}

	return Episode{
		ID:            id,
		Name:          cleanEpisodeName(name),
		Code:          formatEpisodeCode(season, episode),
		SeasonNumber:  season,
		EpisodeNumber: episode,
		Rating:        ratingFromRow(row),
		URL:           href,
	}, true
}

// parseEpisodeElement parses one episode out of a generic episode-link
// element found by the last-resort scan.
func parseEpisodeElement(el *goquery.Selection, defaultSeason int) (Episode, bool) {
	href, ok := el.Attr("href")
	if !ok {
		href, ok = el.Find("a[href*='/film/']").First().Attr("href")
		if !ok {
			return Episode{}, false
		}
	}

	id, ok := ExtractShowID(href)
	if !ok {
		return Episode{}, false
	}

	name := strings.TrimSpace(el.Text())
	if name == "" {
		return Episode{}, false
	}

	season, episode, ok := ParseEpisodeCode(name)
	if !ok {
		season = defaultSeason
		episode = 1
		if n, ok := episodeNumberFromName(name); ok {
			episode = n
		}
	}

	return Episode{
		ID:            id,
		Name:          cleanEpisodeName(name),
		Code:          formatEpisodeCode(season, episode),
		SeasonNumber:  season,
		EpisodeNumber: episode,
		Rating:        ratingFromElement(el),
		URL:           href,
	}, true
}

// ParseEpisodeCode extracts a season and episode number from text holding
// an episode code. Both "S01E05" (case-insensitive) and "1x05" forms are
// accepted.
func ParseEpisodeCode(text string) (season, episode int, ok bool) {
	if m := episodeCodeRegex.FindStringSubmatch(text); m != nil {
		return atoiOrZero(m[1]), atoiOrZero(m[2]), true
	}
	if m := episodeCodeAltRegex.FindStringSubmatch(text); m != nil {
		return atoiOrZero(m[1]), atoiOrZero(m[2]), true
	}
	return 0, 0, false
}

// episodeNumberFromName extracts an episode number from a name like
// "1. Pilot" or "Epizoda 5".
func episodeNumberFromName(name string) (int, bool) {
	if m := episodeOrdinalRegex.FindStringSubmatch(name); m != nil {
		return atoiOrZero(m[1]), true
	}
	if m := episodeWordRegex.FindStringSubmatch(name); m != nil {
		return atoiOrZero(m[1]), true
	}
	return 0, false
}

// ParseRating extracts a percentage rating from text. Values outside
// [0, 100] are treated as absent, not clamped.
func ParseRating(text string) (float64, bool) {
	m := ratingRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	rating, err := strconv.ParseFloat(m[1], 64)
	if err != nil || rating < 0 || rating > 100 {
		return 0, false
	}
	return rating, true
}

func ratingFromRow(row *goquery.Selection) *float64 {
	selectors := []string{
		".rating",
		".film-rating",
		"td:last-child",
		".stars",
	}

	for _, sel := range selectors {
		el := row.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if rating, ok := ParseRating(el.Text()); ok {
			return &rating
		}
	}

	if rating, ok := ParseRating(row.Text()); ok {
		return &rating
	}
	return nil
}

func ratingFromElement(el *goquery.Selection) *float64 {
	selectors := []string{
		".rating",
		".film-rating",
		".stars",
	}

	for _, sel := range selectors {
		found := el.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		if rating, ok := ParseRating(found.Text()); ok {
			return &rating
		}
	}

	if rating, ok := ParseRating(el.Text()); ok {
		return &rating
	}
	return nil
}

// cleanEpisodeName strips a residual code or ordinal prefix, e.g.
// "S01E01 - Pilot" or "1. Pilot" both become "Pilot".
func cleanEpisodeName(name string) string {
	return strings.TrimSpace(codePrefixRegex.ReplaceAllString(name, ""))
}

func formatEpisodeCode(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}
