package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lovelace-project/lovelace-cli/internal/history"
)

var gameCmd = &cobra.Command{
	Use:   "game <id>",
	Short: "Show a game with its lowest prices per condition",
	Args:  cobra.ExactArgs(1),
	RunE:  runGame,
}

func init() {
	rootCmd.AddCommand(gameCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	game, err := a.client.GetGame(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	a.record(cmd.Context(), history.ActionGameView, game.ID, game.Name)

	fmt.Printf("%s", game.Name)
	if game.YearPublished != 0 {
		fmt.Printf(" (%d)", game.YearPublished)
	}
	if game.IsExpansion {
		fmt.Print(" [expansion]")
	}
	fmt.Printf("\nID: %s\n", game.ID)

	if len(game.LowestPricesByCondition) == 0 {
		fmt.Println("\nNo active listings.")
		return nil
	}

	conditions := make([]string, 0, len(game.LowestPricesByCondition))
	for c := range game.LowestPricesByCondition {
		conditions = append(conditions, c)
	}
	sort.Strings(conditions)

	fmt.Println("\nLowest prices:")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONDITION\tPRICE\tCITY\tLISTING")
	for _, c := range conditions {
		l := game.LowestPricesByCondition[c]
		city := l.City
		if city == "" {
			city = "-"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", c, l.Price, city, l.ListingID)
	}
	return w.Flush()
}
