package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/token"
	"github.com/me/smecert/pkg/model"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the SMEC API",
		Long:  "Log in and store the token pair in ~/.smecert/credentials.json.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			if username == "" {
				fmt.Print("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return fmt.Errorf("username cannot be empty")
			}

			if password == "" {
				fmt.Print("Password: ")
				if term.IsTerminal(int(os.Stdin.Fd())) {
					raw, err := term.ReadPassword(int(os.Stdin.Fd()))
					fmt.Println()
					if err != nil {
						return fmt.Errorf("read password: %w", err)
					}
					password = string(raw)
				} else {
					line, err := reader.ReadString('\n')
					if err != nil {
						return fmt.Errorf("read password: %w", err)
					}
					password = strings.TrimSpace(line)
				}
			}
			if password == "" {
				return fmt.Errorf("password cannot be empty")
			}

			if _, err := client.Login(cmd.Context(), api.Credentials{
				Username: username,
				Password: password,
			}); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			user, err := client.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}

			if fs, ok := tokens.(*token.FileSource); ok {
				fmt.Printf("Logged in as %s (%s). Credentials saved to %s\n", user.Username, user.Role, fs.Path())
			} else {
				fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Role)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted if omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tokens.Clear(); err != nil {
				return fmt.Errorf("clear credentials: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := tokens.Pair()
			if err != nil {
				return err
			}
			if pair.IsZero() {
				return fmt.Errorf("%w; run 'smecert login'", model.ErrNotAuthenticated)
			}
			// An expired access token with no refresh token cannot
			// authenticate; drop it without a round trip.
			if claims, perr := token.PeekClaims(pair.Access); perr == nil && claims.IsExpired() && pair.Refresh == "" {
				if err := tokens.Clear(); err != nil {
					return fmt.Errorf("clear credentials: %w", err)
				}
				return fmt.Errorf("stored token expired; run 'smecert login'")
			}
			user, err := client.Me(cmd.Context())
			if err != nil {
				var apiErr *api.APIError
				if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
					if cerr := tokens.Clear(); cerr != nil {
						logger.Error("clear stale credentials", "error", cerr)
					}
					return fmt.Errorf("session expired; run 'smecert login'")
				}
				return fmt.Errorf("fetch profile: %w", err)
			}
			fmt.Printf("%-10s %s\n", "Username:", user.Username)
			fmt.Printf("%-10s %s\n", "Email:", user.Email)
			fmt.Printf("%-10s %s\n", "Role:", user.Role)
			return nil
		},
	}
}
