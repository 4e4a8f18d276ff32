package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/dlyt"
	"github.com/s0up4200/dlyt/notify"
)

var (
	loginPhone    string
	loginPassword string
	newPassword   string
)

var errNotSignedIn = errors.New("not signed in, run 'dlyt auth login' first")

// authCmd groups session commands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign out and manage your password",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with phone number and password",
	Long: `Sign in with phone number and password and store the session locally.

The password can also be given through the DLYT_PASSWORD environment variable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("DLYT_PASSWORD")
		}
		if loginPhone == "" || password == "" {
			return fmt.Errorf("--phone and --password are required")
		}

		reply, err := client.Login(cmd.Context(), loginPhone, password)
		if err != nil {
			return err
		}
		return saveSession(reply, loginPhone)
	},
}

var loginSimpleCmd = &cobra.Command{
	Use:   "login-simple <identity>",
	Short: "Sign in with an identity only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reply, err := client.LoginSimple(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return saveSession(reply, args[0])
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Set a new password for the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.Token() == "" {
			return errNotSignedIn
		}
		if newPassword == "" {
			return fmt.Errorf("--new is required")
		}
		if err := client.ChangePassword(cmd.Context(), newPassword); err != nil {
			return err
		}
		sink.Notify("Password changed", notify.KindSuccess)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := store.Token()
		if token == "" {
			sink.Notify("Not signed in", notify.KindInfo)
			return store.Clear()
		}

		// local credentials go either way
		serverErr := client.Logout(cmd.Context(), token)
		if err := store.Clear(); err != nil {
			return err
		}
		if serverErr != nil {
			logger.Debug().Err(serverErr).Msg("Server logout failed, local session cleared")
			return serverErr
		}
		sink.Notify("Signed out", notify.KindSuccess)
		return nil
	},
}

type sessionStatus struct {
	SignedIn  bool   `json:"signed_in"`
	Identity  string `json:"identity,omitempty"`
	BaseURL   string `json:"base_url"`
	StorePath string `json:"store_path"`
	Config    string `json:"config,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := sessionStatus{
			SignedIn:  store.Token() != "",
			Identity:  store.Identity(),
			BaseURL:   client.BaseURL(),
			StorePath: cfg.Auth.StorePath,
			Config:    cfg.File,
		}
		return printResult(status, func(w io.Writer) {
			if status.SignedIn {
				fmt.Fprintf(w, "✓ Signed in as %s\n", status.Identity)
			} else {
				fmt.Fprintln(w, "Not signed in")
			}
			fmt.Fprintf(w, "- Server: %s\n", status.BaseURL)
			fmt.Fprintf(w, "- Credentials: %s\n", status.StorePath)
			if status.Config != "" {
				fmt.Fprintf(w, "- Config: %s\n", status.Config)
			}
		})
	},
}

// saveSession stores the token and identity from a login reply. The
// identity falls back to what the user signed in with.
func saveSession(reply *dlyt.LoginReply, fallbackIdentity string) error {
	if reply.Token == "" {
		return fmt.Errorf("login succeeded but the server returned no token")
	}
	identity := reply.User.Identity
	if identity == "" {
		identity = fallbackIdentity
	}

	if err := store.SetToken(reply.Token); err != nil {
		return err
	}
	if err := store.SetIdentity(identity); err != nil {
		return err
	}

	name := reply.User.DisplayName
	if name == "" {
		name = identity
	}
	sink.Notify(fmt.Sprintf("Signed in as %s", name), notify.KindSuccess)
	return nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd, loginSimpleCmd, changePasswordCmd, logoutCmd, statusCmd)

	loginCmd.Flags().StringVar(&loginPhone, "phone", "", "phone number")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	changePasswordCmd.Flags().StringVar(&newPassword, "new", "", "new password")
}
