package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type addToWishlistRequest struct {
	GameID string `json:"gameId"`
}

// GetWishlist fetches one page of the user's wishlist. An empty token is
// rejected locally without touching the network.
func (c *Client) GetWishlist(ctx context.Context, token string, page, size int) (*WishlistPage, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	params := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var out WishlistPage
	if err := c.do(ctx, http.MethodGet, "/wishlist", params, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToWishlist puts a game on the user's wishlist.
func (c *Client) AddToWishlist(ctx context.Context, token, gameID string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "/wishlist", nil, token, addToWishlistRequest{GameID: gameID}, nil)
}

// RemoveFromWishlist deletes a game from the user's wishlist.
func (c *Client) RemoveFromWishlist(ctx context.Context, token, gameID string) error {
	if token == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(gameID), nil, token, nil, nil)
}
