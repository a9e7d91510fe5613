package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show backend request statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		d, err := openDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		repo := d.store.EventRepo()
		stats, err := repo.RequestStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		fmt.Printf("%-6s  %-36s  %6s  %6s  %8s\n", "Method", "Route", "Calls", "OK", "Avg ms")
		fmt.Println(strings.Repeat("─", 70))
		for _, s := range stats {
			fmt.Printf("%-6s  %-36s  %6d  %6d  %8.1f\n", s.Method, s.Route, s.Total, s.Succeeded, s.AvgLatencyMs)
		}

		if recent <= 0 {
			return nil
		}
		events, err := repo.RecentRequests(cmd.Context(), recent)
		if err != nil {
			return fmt.Errorf("query recent requests: %w", err)
		}
		fmt.Println()
		fmt.Printf("%-19s  %-6s  %-36s  %6s  %6s  %s\n", "Timestamp", "Method", "Route", "Status", "Ms", "Error")
		fmt.Println(strings.Repeat("─", 90))
		for _, e := range events {
			fmt.Printf("%-19s  %-6s  %-36s  %6d  %6d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Method, e.Route, e.Status, e.LatencyMs, e.ErrorMessage)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 0, "Also list the N most recent requests")
}
