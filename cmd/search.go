package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/history"
)

var (
	searchPage   int
	searchSize   int
	searchFilter string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the board game catalog",
	Long: `Search the catalog by name. Results are paged; use --page to walk
through them and --filter to narrow the page down locally with a glob
pattern, e.g. --filter 'catan*'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "result page (0-indexed)")
	searchCmd.Flags().IntVar(&searchSize, "size", 0, "results per page (default from config)")
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "local glob filter on game names")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	size := searchSize
	if size < 1 {
		size = a.cfg.PageSize
	}

	page, err := a.client.SearchGames(cmd.Context(), query, searchPage, size)
	if err != nil {
		return err
	}
	a.record(cmd.Context(), history.ActionSearch, query, "")

	games := page.Content
	if searchFilter != "" {
		games, err = filterGames(games, searchFilter)
		if err != nil {
			return err
		}
	}

	if len(games) == 0 {
		fmt.Println("No games found.")
		return nil
	}

	printGameTable(cmd, games)
	fmt.Printf("\nPage %d of %d (%d games total)\n", page.Number+1, page.TotalPages, page.TotalElements)
	return nil
}

// filterGames keeps the games whose name matches the glob pattern,
// case-insensitively.
func filterGames(games []api.BoardGame, pattern string) ([]api.BoardGame, error) {
	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}

	var out []api.BoardGame
	for _, g := range games {
		ok, err := doublestar.Match(pattern, strings.ToLower(g.Name))
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func printGameTable(cmd *cobra.Command, games []api.BoardGame) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tYEAR\tTYPE\tNEW\tUSED\tAUCTION")
	for _, g := range games {
		kind := "game"
		if g.IsExpansion {
			kind = "expansion"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Name, yearString(g.YearPublished), kind,
			priceString(g.Prices, "new"),
			priceString(g.Prices, "used"),
			priceString(g.Prices, "auction"),
		)
	}
	w.Flush()
}

func yearString(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", year)
}

// priceString renders the cheapest price for a condition, "-" when no
// listing of that condition exists.
func priceString(prices *api.PriceSet, condition string) string {
	if prices == nil {
		return "-"
	}
	var p *float64
	switch condition {
	case "new":
		p = prices.New
	case "used":
		p = prices.Used
	case "auction":
		p = prices.Auction
	}
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}
