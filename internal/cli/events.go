package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := client.ListEvents(cmd.Context())
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			fmt.Printf("%-6s  %-30s  %-12s  %-12s  %s\n", "ID", "NAME", "START", "END", "HOURS")
			fmt.Printf("%-6s  %-30s  %-12s  %-12s  %s\n", "--", "----", "-----", "---", "-----")
			for _, ev := range events {
				fmt.Printf("%-6d  %-30s  %-12s  %-12s  %g\n",
					ev.ID, ev.Name,
					ev.StartDate.Format("2006-01-02"),
					ev.EndDate.Format("2006-01-02"),
					ev.Workload)
			}
			return nil
		},
	}
}
