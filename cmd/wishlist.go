package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/history"
)

var (
	wishlistPage   int
	wishlistSize   int
	wishlistAll    bool
	wishlistFilter string
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage your wishlist",
}

var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games on your wishlist",
	Long: `List your wishlist one page at a time, or all of it with --all.
Use --filter to narrow the output down with a glob on game names.`,
	Args: cobra.NoArgs,
	RunE: runWishlistList,
}

var wishlistAddCmd = &cobra.Command{
	Use:   "add <game-id>",
	Short: "Add a game to your wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishlistAdd,
}

var wishlistRemoveCmd = &cobra.Command{
	Use:   "remove <game-id>",
	Short: "Remove a game from your wishlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishlistRemove,
}

func init() {
	wishlistListCmd.Flags().IntVar(&wishlistPage, "page", 0, "page (0-indexed)")
	wishlistListCmd.Flags().IntVar(&wishlistSize, "size", 0, "items per page (default from config)")
	wishlistListCmd.Flags().BoolVar(&wishlistAll, "all", false, "fetch every page")
	wishlistListCmd.Flags().StringVar(&wishlistFilter, "filter", "", "local glob filter on game names")

	wishlistCmd.AddCommand(wishlistListCmd)
	wishlistCmd.AddCommand(wishlistAddCmd)
	wishlistCmd.AddCommand(wishlistRemoveCmd)
	rootCmd.AddCommand(wishlistCmd)
}

// wishlistError turns a token rejection into a sign-out plus a friendlier
// message.
func (a *app) wishlistError(err error) error {
	switch api.CategoryOf(err) {
	case api.Unauthenticated:
		a.sessions.Invalidate(err)
		return fmt.Errorf("not logged in; run `lovelace login` first")
	default:
		return err
	}
}

func runWishlistList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	size := wishlistSize
	if size < 1 {
		size = a.cfg.PageSize
	}

	var (
		items []api.WishlistItem
		page  *api.WishlistPage
	)
	if wishlistAll {
		items, err = fetchAllWishlistPages(cmd.Context(), a, size)
	} else {
		page, err = a.client.GetWishlist(cmd.Context(), a.sessions.Token(), wishlistPage, size)
		if err == nil {
			items = page.Content
		}
	}
	if err != nil {
		return a.wishlistError(err)
	}

	if wishlistFilter != "" {
		items, err = filterWishlistItems(items, wishlistFilter)
		if err != nil {
			return err
		}
	}

	if len(items) == 0 {
		fmt.Println("Your wishlist is empty.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GAME ID\tNAME\tYEAR\tADDED")
	for _, item := range items {
		added := item.AddedAt
		if added == "" {
			added = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.GameID, item.GameName, yearString(item.YearPublished), added)
	}
	w.Flush()

	if page != nil && page.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d (%d games total)\n", page.Number+1, page.TotalPages, page.TotalElements)
	}
	return nil
}

// fetchAllWishlistPages walks every wishlist page, showing progress once the
// page count is known.
func fetchAllWishlistPages(ctx context.Context, a *app, size int) ([]api.WishlistItem, error) {
	first, err := a.client.GetWishlist(ctx, a.sessions.Token(), 0, size)
	if err != nil {
		return nil, err
	}

	items := first.Content
	if first.Last || first.TotalPages <= 1 {
		return items, nil
	}

	bar := progressbar.Default(int64(first.TotalPages), "fetching wishlist")
	bar.Add(1)
	for p := 1; p < first.TotalPages; p++ {
		page, err := a.client.GetWishlist(ctx, a.sessions.Token(), p, size)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Content...)
		bar.Add(1)
		if page.Last {
			break
		}
	}
	return items, nil
}

func filterWishlistItems(items []api.WishlistItem, pattern string) ([]api.WishlistItem, error) {
	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}

	var out []api.WishlistItem
	for _, item := range items {
		ok, err := doublestar.Match(pattern, strings.ToLower(item.GameName))
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func runWishlistAdd(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.AddToWishlist(cmd.Context(), a.sessions.Token(), args[0]); err != nil {
		return a.wishlistError(err)
	}
	a.record(cmd.Context(), history.ActionWishlistAdd, args[0], "")
	fmt.Println("Added to wishlist.")
	return nil
}

func runWishlistRemove(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.client.RemoveFromWishlist(cmd.Context(), a.sessions.Token(), args[0]); err != nil {
		return a.wishlistError(err)
	}
	a.record(cmd.Context(), history.ActionWishlistRemove, args[0], "")
	fmt.Println("Removed from wishlist.")
	return nil
}
