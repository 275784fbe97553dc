package csfd_test

import (
	"testing"

	"github.com/mhavel/csfd/internal/csfd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingPtr(r float64) *float64 {
	return &r
}

func TestParseEpisodes(t *testing.T) {
	t.Parallel()

	episodes, err := csfd.ParseEpisodes(readFixture(t, "episodes.html"))
	require.NoError(t, err)

	expected := []csfd.Episode{
		{
			ID:            500001,
			Name:          "Pilot",
			Code:          "S01E01",
			SeasonNumber:  1,
			EpisodeNumber: 1,
			URL:           "/film/300706-pernikovy-tata/500001-pilot/",
		},
		{
			ID:            500002,
			Name:          "Kočka je v pytli",
			Code:          "S01E02",
			SeasonNumber:  1,
			EpisodeNumber: 2,
			URL:           "/film/300706-pernikovy-tata/500002-kocka-je-v-pytli/",
		},
		{
			ID:            500003,
			Name:          "Sedm třicet sedm",
			Code:          "S02E01",
			SeasonNumber:  2,
			EpisodeNumber: 1,
			URL:           "/film/300706-pernikovy-tata/500003-sedm-tricet-sedm/",
		},
		{
			// No code anywhere on the block: defaults to S01E01.
			ID:            500004,
			Name:          "Bez kódu",
			Code:          "S01E01",
			SeasonNumber:  1,
			EpisodeNumber: 1,
			URL:           "/film/300706-pernikovy-tata/500004-bez-kodu/",
		},
	}
	assert.Equal(t, expected, episodes)
}

func TestParseEpisodesLegacyTable(t *testing.T) {
	t.Parallel()

	episodes, err := csfd.ParseEpisodes(readFixture(t, "episodes_table.html"))
	require.NoError(t, err)

	expected := []csfd.Episode{
		{
			ID:            500001,
			Name:          "Pilot",
			Code:          "S01E01",
			SeasonNumber:  1,
			EpisodeNumber: 1,
			Rating:        ratingPtr(85),
			URL:           "/film/500001-pilot/",
		},
		{
			ID:            500002,
			Name:          "Kočka je v pytli",
			Code:          "S01E02",
			SeasonNumber:  1,
			EpisodeNumber: 2,
			Rating:        ratingPtr(82.5),
			URL:           "/film/500002-kocka-je-v-pytli/",
		},
		{
			// The "Série 2" header row switches the running season, and
			// the out-of-range 150% rating is dropped, not clamped.
			ID:            500010,
			Name:          "Sedm třicet sedm",
			Code:          "S02E01",
			SeasonNumber:  2,
			EpisodeNumber: 1,
			URL:           "/film/500010-sedm-tricet-sedm/",
		},
	}
	assert.Equal(t, expected, episodes)
}

func TestParseEpisodesLinkScan(t *testing.T) {
	t.Parallel()

	episodes, err := csfd.ParseEpisodes(readFixture(t, "episodes_links.html"))
	require.NoError(t, err)

	expected := []csfd.Episode{
		{
			ID:            600001,
			Name:          "Začátek",
			Code:          "S02E01",
			SeasonNumber:  2,
			EpisodeNumber: 1,
			URL:           "/film/600001-zacatek/",
		},
		{
			// No code: the season carries over from the previous episode
			// and the leading ordinal becomes the episode number.
			ID:            600002,
			Name:          "Pokračování",
			Code:          "S02E02",
			SeasonNumber:  2,
			EpisodeNumber: 2,
			URL:           "/film/600002-pokracovani/",
		},
	}
	assert.Equal(t, expected, episodes)
}

func TestParseEpisodesStrategyPrecedence(t *testing.T) {
	t.Parallel()

	episodes, err := csfd.ParseEpisodes(readFixture(t, "episodes_both.html"))
	require.NoError(t, err)

	// The title-block layout wins, the legacy table must not be parsed.
	require.Len(t, episodes, 1)
	assert.Equal(t, 500001, episodes[0].ID)
	assert.Equal(t, "Pilot", episodes[0].Name)
}

func TestParseEpisodesEmptyPage(t *testing.T) {
	t.Parallel()

	episodes, err := csfd.ParseEpisodes(readFixture(t, "empty.html"))
	require.NoError(t, err)
	assert.Empty(t, episodes)
}

func TestParseEpisodeCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text    string
		season  int
		episode int
		ok      bool
	}{
		{text: "S01E05", season: 1, episode: 5, ok: true},
		{text: "s1e1", season: 1, episode: 1, ok: true},
		{text: "Episode S02E10 - Title", season: 2, episode: 10, ok: true},
		{text: "(S12E99)", season: 12, episode: 99, ok: true},
		{text: "1x05", season: 1, episode: 5, ok: true},
		{text: "02x10", season: 2, episode: 10, ok: true},
		{text: "no code here"},
		{text: "Episode 5"},
		{text: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()

			season, episode, ok := csfd.ParseEpisodeCode(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.season, season)
			assert.Equal(t, tc.episode, episode)
		})
	}
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text   string
		rating float64
		ok     bool
	}{
		{text: "85%", rating: 85, ok: true},
		{text: "72.5%", rating: 72.5, ok: true},
		{text: "Hodnocení: 91 %", rating: 91, ok: true},
		{text: "0%", rating: 0, ok: true},
		{text: "100%", rating: 100, ok: true},
		{text: "0.5%", rating: 0.5, ok: true},
		{text: "150%"},
		{text: "no rating"},
		{text: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()

			rating, ok := csfd.ParseRating(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.rating, rating)
		})
	}
}
