package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SearchGames queries the catalog. Pages are 0-indexed; size caps the number
// of results per page.
func (c *Client) SearchGames(ctx context.Context, query string, page, size int) (*GameSearchPage, error) {
	params := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
		"size":  {strconv.Itoa(size)},
	}
	var out GameSearchPage
	if err := c.do(ctx, http.MethodGet, "/games/search", params, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGame fetches the full details of a single game.
func (c *Client) GetGame(ctx context.Context, id string) (*GameDetails, error) {
	var out GameDetails
	if err := c.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id), nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
