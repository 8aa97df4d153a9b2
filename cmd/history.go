package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lovelace-project/lovelace-cli/internal/history"
)

var (
	historyAction string
	historyActor  string
	historyLimit  int
	pruneOlder    time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local activity log",
	Long: `The client keeps a local log of your activity (logins, searches,
wishlist changes) in ~/.lovelace/history.db. Nothing is ever sent
anywhere; this command inspects and prunes that log.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded activity, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old activity entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	historyListCmd.Flags().StringVar(&historyAction, "action", "", "filter by action (login, search, wishlist_add, ...)")
	historyListCmd.Flags().StringVar(&historyActor, "actor", "", "filter by username")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum entries to show")

	historyPruneCmd.Flags().DurationVar(&pruneOlder, "older-than", 30*24*time.Hour, "delete entries older than this")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.activity.List(cmd.Context(), history.Filter{
		Action: history.Action(historyAction),
		Actor:  historyActor,
		Limit:  historyLimit,
	})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No activity recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tACTOR\tSUBJECT\tDETAIL")
	for _, e := range entries {
		actor := e.Actor
		if actor == "" {
			actor = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format(time.DateTime), e.Action, actor, e.Subject, e.Detail)
	}
	return w.Flush()
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.activity.Prune(cmd.Context(), time.Now().Add(-pruneOlder))
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d entries.\n", n)
	return nil
}
