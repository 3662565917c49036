package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/flagquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()

		stats, err := repo.Stats(ctx)
		if err != nil {
			return err
		}
		if stats.Sessions == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}

		fmt.Printf("Sessions:      %d\n", stats.Sessions)
		fmt.Printf("Best score:    %d/10\n", stats.BestScore)
		fmt.Printf("Average score: %.1f/10\n", stats.AverageScore)

		player, _ := cmd.Flags().GetString("player")
		recent, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 5, Player: player})
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Println("\nRecent sessions")
			fmt.Println(strings.Repeat("─", 50))
			for _, r := range recent {
				fmt.Printf("%s  %-12s  %2d/%d\n",
					r.Timestamp.Format("2006-01-02 15:04"), r.Player, r.CorrectAnswers, r.QuestionsServed)
			}
		}

		countries, err := repo.CountryAccuracy(ctx)
		if err != nil {
			return err
		}
		if len(countries) > 0 {
			fmt.Println("\nAccuracy by country")
			fmt.Println(strings.Repeat("─", 50))
			for _, c := range countries {
				fmt.Printf("%-24s  %3d/%-3d  %3.0f%%\n", c.Country, c.Correct, c.Attempts, c.Accuracy()*100)
			}
		}
		return nil
	},
}
