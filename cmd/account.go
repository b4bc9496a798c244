package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jatin/qlock/internal/store"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the sync backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		email := loginEmail
		if email == "" {
			fmt.Print("Email: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read email: %w", err)
			}
			email = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		creds, err := e.client.Login(cmd.Context(), email, string(raw))
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if err := e.store.SetSetting(store.KeyAuthToken, creds.Token); err != nil {
			return fmt.Errorf("persist token: %w", err)
		}
		fmt.Printf("Logged in as %s\n", creds.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if e.client.Authenticated() {
			if err := e.client.Logout(cmd.Context()); err != nil {
				log.Warn().Err(err).Msg("remote logout")
			}
		}
		if err := e.store.DeleteSetting(store.KeyAuthToken); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		if err := e.store.DeleteSetting(store.KeySynced); err != nil {
			return fmt.Errorf("clear sync flag: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var syncFetch bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local sessions to the backend and pull the merged list",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if !e.client.Authenticated() {
			return fmt.Errorf("not logged in, run: qlock login")
		}

		var err2 error
		sessions := e.list.All()
		if syncFetch {
			sessions, err2 = e.client.FetchRemote(cmd.Context())
		} else {
			sessions, err2 = e.client.SyncLocal(cmd.Context(), sessions)
		}
		if err2 != nil {
			return fmt.Errorf("sync: %w", err2)
		}

		if err := e.list.ReplaceAll(sessions); err != nil {
			return fmt.Errorf("store synced sessions: %w", err)
		}
		if err := e.store.SetSetting(store.KeySynced, "true"); err != nil {
			return fmt.Errorf("persist sync flag: %w", err)
		}
		fmt.Printf("Synced %d session(s).\n", len(sessions))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted if omitted)")
	syncCmd.Flags().BoolVar(&syncFetch, "fetch", false, "Replace local sessions with the remote list instead of pushing")
}
