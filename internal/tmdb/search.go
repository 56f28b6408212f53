package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/cache"
	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/media"
)

// Strategy names, used in logs, cache keys and upstream errors.
const (
	StrategyFind   = "find"
	StrategyMulti  = "search/multi"
	StrategyMovie  = "search/movie"
	StrategySeries = "search/tv"
)

// FindByExternalID looks up an IMDb id through /find. A movie hit is
// preferred over a series hit. Returns (nil, nil) when nothing matches or
// TMDB answers with a non-success status.
func (c *Client) FindByExternalID(ctx context.Context, externalID string, opts SearchOptions) (*media.Candidate, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, nil
	}

	params := localeParams(opts)
	params.Set("external_source", "imdb_id")
	endpoint := fmt.Sprintf("%s/find/%s?%s", c.baseURL, url.PathEscape(externalID), params.Encode())

	key := externalID + "|" + opts.cacheKey()
	found, fromCache, err := cache.GetOrFetch(c.cache, cache.FindTable, key, func() (*cachedFind, error) {
		var response findResponse
		if err := c.getJSON(ctx, endpoint, &response); err != nil {
			return nil, err
		}
		if len(response.MovieResults) > 0 {
			cand := c.candidate(response.MovieResults[0], media.KindMovie)
			return &cachedFind{Candidate: &cand}, nil
		}
		if len(response.TVResults) > 0 {
			cand := c.candidate(response.TVResults[0], media.KindSeries)
			return &cachedFind{Candidate: &cand}, nil
		}
		return &cachedFind{}, nil
	}, func(f *cachedFind) bool {
		return f != nil && f.Candidate != nil
	})
	if err != nil {
		return nil, c.downgradeStatus(StrategyFind, err)
	}
	if fromCache {
		c.logger.Debug("TMDB find result from cache", "imdb_id", externalID)
	}
	return found.Candidate, nil
}

// SearchMulti runs an untyped search. People are discarded. The year is not
// sent because /search/multi cannot filter by it.
func (c *Client) SearchMulti(ctx context.Context, query string, opts SearchOptions) ([]media.Candidate, error) {
	params := localeParams(opts)
	params.Set("include_adult", "false")
	return c.search(ctx, StrategyMulti, query, params, "", opts)
}

// SearchMovie runs a movie-only search, filtered by release year when given.
func (c *Client) SearchMovie(ctx context.Context, query string, opts SearchOptions) ([]media.Candidate, error) {
	params := localeParams(opts)
	if opts.Year > 0 {
		params.Set("year", strconv.Itoa(opts.Year))
	}
	return c.search(ctx, StrategyMovie, query, params, media.KindMovie, opts)
}

// SearchSeries runs a series-only search, filtered by first air year when
// given.
func (c *Client) SearchSeries(ctx context.Context, query string, opts SearchOptions) ([]media.Candidate, error) {
	params := localeParams(opts)
	if opts.Year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(opts.Year))
	}
	return c.search(ctx, StrategySeries, query, params, media.KindSeries, opts)
}

func (c *Client) search(ctx context.Context, strategy, query string, params url.Values, kind media.Kind, opts SearchOptions) ([]media.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []media.Candidate{}, nil
	}
	params.Set("query", query)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, strategy, params.Encode())

	key := fmt.Sprintf("%s|%s|%s", strategy, normalizeQuery(query), opts.cacheKey())
	results, fromCache, err := cache.GetOrFetch(c.cache, cache.SearchTable, key, func() ([]media.Candidate, error) {
		var response searchResponse
		if err := c.getJSON(ctx, endpoint, &response); err != nil {
			return nil, err
		}
		return c.candidates(response.Results, kind), nil
	}, func(results []media.Candidate) bool {
		return len(results) > 0
	})
	if err != nil {
		return []media.Candidate{}, c.downgradeStatus(strategy, err)
	}

	c.logger.Debug("TMDB search finished",
		"strategy", strategy,
		"query", query,
		"year", opts.Year,
		"results", len(results),
		"cached", fromCache,
	)
	return results, nil
}

// downgradeStatus swallows non-success HTTP responses (the strategy simply
// has no candidates) and passes every other error through.
func (c *Client) downgradeStatus(strategy string, err error) error {
	if marqueeerrors.IsStatusError(err) {
		c.logger.Warn("TMDB returned non-success status, treating as no candidates",
			"strategy", strategy,
			"error", err,
		)
		return nil
	}
	return err
}

func localeParams(opts SearchOptions) url.Values {
	params := url.Values{}
	if opts.Language != "" {
		params.Set("language", opts.Language)
	}
	if opts.Region != "" {
		params.Set("region", opts.Region)
	}
	return params
}
