package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <code>",
		Short: "Validate a certificate by its unique code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.ValidateCertificate(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("validate certificate: %w", err)
			}

			if !result.IsValid {
				if result.Detail != "" {
					fmt.Printf("INVALID: %s\n", result.Detail)
				} else {
					fmt.Println("INVALID: code not found")
				}
				return fmt.Errorf("certificate is not valid")
			}

			fmt.Println("VALID")
			fmt.Printf("%-13s %s\n", "Participant:", result.ParticipantName)
			if result.TotalHours > 0 {
				fmt.Printf("%-13s %gh\n", "Total hours:", result.TotalHours)
			}
			if result.IssueDate != "" {
				fmt.Printf("%-13s %s\n", "Issued:", result.IssueDate)
			}
			if len(result.AttendedEvents) > 0 {
				fmt.Printf("%-13s %s\n", "Events:", strings.Join(result.AttendedEvents, ", "))
			}
			return nil
		},
	}
}
