package api

// AuthResponse is returned by the login endpoint and stored locally as the
// authenticated user record.
type AuthResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// RegisterResponse is returned by the registration endpoint. The account
// still requires email verification before the first login.
type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// MessageResponse is the generic acknowledgement body used by most auth
// endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// PriceSet holds the cheapest known price per listing condition.
// Nil means no listing of that condition exists.
type PriceSet struct {
	New     *float64 `json:"new,omitempty"`
	Used    *float64 `json:"used,omitempty"`
	Auction *float64 `json:"auction,omitempty"`
}

// BoardGame is a catalog entry as returned by the search endpoint.
type BoardGame struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	YearPublished int       `json:"yearPublished"`
	IsExpansion   bool      `json:"isExpansion"`
	Prices        *PriceSet `json:"prices,omitempty"`
}

// GameSearchPage is one page of catalog search results.
type GameSearchPage struct {
	Content       []BoardGame `json:"content"`
	TotalElements int         `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	Number        int         `json:"number"`
	Size          int         `json:"size"`
}

// LowestPriceListing identifies the cheapest active listing for a condition.
type LowestPriceListing struct {
	ListingID string  `json:"listingId"`
	Price     float64 `json:"price"`
	City      string  `json:"city,omitempty"`
}

// GameDetails is the full record for a single game.
type GameDetails struct {
	ID                      string                        `json:"id"`
	Name                    string                        `json:"name"`
	YearPublished           int                           `json:"yearPublished"`
	IsExpansion             bool                          `json:"isExpansion"`
	LowestPricesByCondition map[string]LowestPriceListing `json:"lowestPricesByCondition"`
}

// WishlistItem is a single entry on the user's wishlist.
type WishlistItem struct {
	ID                      string                        `json:"id"`
	GameID                  string                        `json:"gameId"`
	GameName                string                        `json:"gameName"`
	YearPublished           int                           `json:"yearPublished"`
	IsExpansion             bool                          `json:"isExpansion"`
	AddedAt                 string                        `json:"addedAt"`
	LowestPricesByCondition map[string]LowestPriceListing `json:"lowestPricesByCondition"`
}

// WishlistPage is one page of the user's wishlist.
type WishlistPage struct {
	Content       []WishlistItem `json:"content"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
	First         bool           `json:"first"`
	Last          bool           `json:"last"`
	Empty         bool           `json:"empty"`
}
