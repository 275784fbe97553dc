// Package watch keeps an eye on the episode lists of a set of shows and
// reports newly published episodes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/mhavel/csfd/internal/csfd"
	"github.com/mhavel/csfd/internal/o11y"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nameNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Config contains the configuration needed for the tracker.
type Config struct {
	// Shows holds the names of the shows to track, as typed by the user.
	Shows []string `env:"SHOWS,required"`
}

type trackedShow struct {
	query string
	// id and name are filled in once the show has been resolved through
	// search.
	id   int
	name string
	// seen holds the episode ids already reported (or primed on the
	// first check).
	seen   map[int]struct{}
	primed bool
}

// Tracker tracks a set of shows on ČSFD and reports every episode that
// appears after the first check. State lives in memory only.
type Tracker struct {
	scraper  *csfd.Scraper
	reporter o11y.Reporter
	shows    []*trackedShow
}

// New returns a new Tracker. reporter may be nil, in which case new
// episodes are only logged.
func New(cfg Config, scraper *csfd.Scraper, reporter o11y.Reporter) *Tracker {
	shows := make([]*trackedShow, 0, len(cfg.Shows))
	for _, query := range cfg.Shows {
		shows = append(shows, &trackedShow{query: query})
	}
	return &Tracker{
		scraper:  scraper,
		reporter: reporter,
		shows:    shows,
	}
}

// Run checks every tracked show once. The first check of a show only
// primes its seen set, so a fresh start doesn't replay the whole back
// catalog. Failing shows are logged and skipped; the first failure is
// returned after every show had its turn.
func (t *Tracker) Run(ctx context.Context) error {
	var firstErr error
	for _, show := range t.shows {
		if err := t.check(ctx, show); err != nil {
			slog.ErrorContext(ctx, "check show", "show", show.query, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (t *Tracker) check(ctx context.Context, show *trackedShow) error {
	if show.id == 0 {
		if err := t.resolve(ctx, show); err != nil {
			return fmt.Errorf("resolve show %q: %w", show.query, err)
		}
	}

	episodes, err := t.scraper.GetEpisodes(ctx, show.id)
	if err != nil {
		return fmt.Errorf("fetch episodes: %w", err)
	}

	if !show.primed {
		for _, ep := range episodes {
			show.seen[ep.ID] = struct{}{}
		}
		show.primed = true
		slog.InfoContext(ctx, "tracking show", "show", show.name, "episodes", len(episodes))
		return nil
	}

	for _, ep := range episodes {
		if _, ok := show.seen[ep.ID]; ok {
			continue
		}
		show.seen[ep.ID] = struct{}{}
		msg := fmt.Sprintf("New episode of %s: %s %s", show.name, ep.Code, ep.Name)
		if t.reporter != nil {
			t.reporter.SendMessage(ctx, msg)
		} else {
			slog.InfoContext(ctx, msg)
		}
	}
	return nil
}

// resolve finds the ČSFD id of a configured show through search. The hit
// whose name matches the configured one wins, diacritics aside, so
// "Pernikovy tata" finds "Perníkový táta"; without a match the first hit
// is used.
func (t *Tracker) resolve(ctx context.Context, show *trackedShow) error {
	page, err := t.scraper.Search(ctx, show.query)
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		return fmt.Errorf("no search result for %q", show.query)
	}

	hit := page.Items[0]
	want := normalizeName(show.query)
	for _, item := range page.Items {
		if normalizeName(item.Name) == want || normalizeName(item.OriginalName) == want {
			hit = item
			break
		}
	}

	show.id = hit.ID
	show.name = hit.Name
	show.seen = make(map[int]struct{})
	return nil
}

// normalizeName lowercases s, collapses its whitespace and strips
// diacritics.
func normalizeName(s string) string {
	if out, _, err := transform.String(nameNormalizer, s); err == nil {
		s = out
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
