package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/primectl/credentials"
	"github.com/s0up4200/primectl/prime"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect and maintain the OAuth token pair",
}

var authCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the access token, refreshing it when it has expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := client.Tokens()
		ok, err := tokens.Check(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("access token is not valid (state: %s)", tokens.State())
		}

		printSession(cmd.OutOrStdout(), tokens)
		return nil
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the refresh token for a new access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := client.Tokens()
		ok, err := tokens.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("token refresh failed (state: %s)", tokens.State())
		}

		printSession(cmd.OutOrStdout(), tokens)
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session without contacting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		printSession(cmd.OutOrStdout(), client.Tokens())
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Explain how to obtain a token pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := client.Tokens().CreateTokens()
		fmt.Fprintf(cmd.OutOrStdout(), "Log in to %s through the browser, then store the tokens with:\n", store.Credentials().ServerInstance)
		fmt.Fprintln(cmd.OutOrStdout(), "  primectl credentials set CAPTIVATE access_token <token>")
		fmt.Fprintln(cmd.OutOrStdout(), "  primectl credentials set CAPTIVATE refresh_token <token>")
		return err
	},
}

func init() {
	authCmd.AddCommand(authCheckCmd, authRefreshCmd, authStatusCmd, authLoginCmd)
	rootCmd.AddCommand(authCmd)
}

func printSession(w io.Writer, tokens *prime.TokenManager) {
	creds := store.Credentials()
	session := store.Session()

	fmt.Fprintf(w, "Server instance: %s\n", creds.ServerInstance)
	fmt.Fprintf(w, "Credentials:     %s\n", store.Path())
	fmt.Fprintf(w, "Token state:     %s\n", tokens.State())
	fmt.Fprintf(w, "Access token:    %s\n", maskToken(creds.AccessToken))
	fmt.Fprintf(w, "Refresh token:   %s\n", maskToken(creds.RefreshToken))
	fmt.Fprintf(w, "Account:         %s\n", orNone(session.AccountID))
	fmt.Fprintf(w, "User:            %s (%s)\n", orNone(session.UserID), orNone(session.UserRole))
	fmt.Fprintf(w, "Checked at:      %s\n", formatTime(session.CheckedAt))
	fmt.Fprintf(w, "Refreshed at:    %s\n", formatTime(session.RefreshedAt))

	expires := formatTime(session.ExpiresOn)
	if tokens.Expired(time.Now()) {
		expires += " (expired)"
	}
	fmt.Fprintf(w, "Expires on:      %s\n", expires)
}

// maskToken keeps the last four characters of a token
func maskToken(token string) string {
	if token == "" {
		return "<none>"
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format(time.RFC3339)
}

var credentialsCmd = &cobra.Command{
	Use:     "credentials",
	Aliases: []string{"creds"},
	Short:   "Read and write values in the credentials file",
	Long: fmt.Sprintf(`Read and write values in the credentials file.

Sections are %s (application credentials and tokens) and %s (session facts).`,
		credentials.SectionCaptivate, credentials.SectionApp),
}

var credentialsGetCmd = &cobra.Command{
	Use:   "get SECTION KEY",
	Short: "Print one value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := store.Get(strings.ToUpper(args[0]), args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set SECTION KEY VALUE",
	Short: "Store one value and write the file",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Set(strings.ToUpper(args[0]), args[1], args[2]); err != nil {
			return err
		}
		if err := store.Persist(); err != nil {
			return err
		}

		logger.Info().
			Str("section", strings.ToUpper(args[0])).
			Str("key", args[1]).
			Str("file", store.Path()).
			Msg("Credential stored")
		return nil
	},
}

func init() {
	credentialsCmd.AddCommand(credentialsGetCmd, credentialsSetCmd)
	rootCmd.AddCommand(credentialsCmd)
}
