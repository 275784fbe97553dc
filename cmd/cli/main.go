// Package main contains the entry point of the csfd command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mhavel/csfd/internal/csfd"
	"github.com/sethvargo/go-envconfig"
)

const usage = `usage: cli <command> [args]

commands:
  search <query>                search for shows
  show <id>                     print a show's detail and seasons
  episodes <show-id> [season-id]  list episodes, optionally for one season`

type appConfig struct {
	Csfd csfd.Config `env:",prefix=CSFD_"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cfg appConfig
	if err = envconfig.Process(ctx, &cfg); err != nil {
		return fmt.Errorf("parse the env: %w", err)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		return errors.New(usage)
	}

	scraper := csfd.NewScraper(cfg.Csfd)

	switch args[0] {
	case "search":
		if len(args) < 2 {
			return errors.New(usage)
		}
		return search(ctx, scraper, strings.Join(args[1:], " "))
	case "show":
		if len(args) != 2 {
			return errors.New(usage)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse show id %q: %w", args[1], err)
		}
		return show(ctx, scraper, id)
	case "episodes":
		if len(args) < 2 || len(args) > 3 {
			return errors.New(usage)
		}
		showID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse show id %q: %w", args[1], err)
		}
		seasonID := 0
		if len(args) == 3 {
			if seasonID, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("parse season id %q: %w", args[2], err)
			}
		}
		return episodes(ctx, scraper, showID, seasonID)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func search(ctx context.Context, scraper *csfd.Scraper, query string) error {
	page, err := scraper.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	for _, hit := range page.Items {
		line := fmt.Sprintf("%d\t%s", hit.ID, hit.Name)
		if hit.OriginalName != "" {
			line += fmt.Sprintf(" / %s", hit.OriginalName)
		}
		if hit.Year != "" {
			line += fmt.Sprintf(" (%s)", hit.Year)
		}
		fmt.Printf("%s [%s]\n", line, hit.Kind)
	}
	if page.HasNextPage {
		fmt.Println("...more results on the next page")
	}
	return nil
}

func show(ctx context.Context, scraper *csfd.Scraper, id int) error {
	detail, err := scraper.GetShow(ctx, id)
	if err != nil {
		return fmt.Errorf("get show: %w", err)
	}

	fmt.Println(detail.Name)
	if detail.OriginalName != "" {
		fmt.Printf("original name: %s\n", detail.OriginalName)
	}
	if detail.YearRange != "" {
		fmt.Printf("years: %s\n", detail.YearRange)
	}
	if len(detail.Genres) > 0 {
		fmt.Printf("genres: %s\n", strings.Join(detail.Genres, ", "))
	}
	if len(detail.Countries) > 0 {
		fmt.Printf("countries: %s\n", strings.Join(detail.Countries, ", "))
	}
	for _, season := range detail.Seasons {
		line := fmt.Sprintf("%d\t%s", season.ID, season.Name)
		if season.Year != "" {
			line += fmt.Sprintf(" (%s)", season.Year)
		}
		if season.EpisodeCount > 0 {
			line += fmt.Sprintf(", %d episodes", season.EpisodeCount)
		}
		fmt.Println(line)
	}
	return nil
}

func episodes(ctx context.Context, scraper *csfd.Scraper, showID, seasonID int) error {
	var eps []csfd.Episode
	var err error
	if seasonID > 0 {
		eps, err = scraper.GetSeasonEpisodes(ctx, showID, seasonID)
	} else {
		eps, err = scraper.GetEpisodes(ctx, showID)
	}
	if err != nil {
		return fmt.Errorf("get episodes: %w", err)
	}

	for _, ep := range eps {
		line := fmt.Sprintf("%s\t%s", ep.Code, ep.Name)
		if ep.Rating != nil {
			line += fmt.Sprintf("\t%.0f%%", *ep.Rating)
		}
		fmt.Println(line)
	}
	return nil
}
