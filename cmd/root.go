package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jatin/qlock/internal/account"
	"github.com/jatin/qlock/internal/app"
	"github.com/jatin/qlock/internal/config"
	"github.com/jatin/qlock/internal/logging"
	"github.com/jatin/qlock/internal/sessionlist"
	"github.com/jatin/qlock/internal/sound"
	"github.com/jatin/qlock/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "qlock",
	Short: "Self-timed question practice in the terminal",
	Long:  "Qlock — timed practice runs over your own question sets, with answer-key review, stats, and optional cloud sync.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QLOCK_DB env var)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then QLOCK_DB env, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// env is everything a command needs: the open store, the in-memory
// list, and an API client carrying any stored token.
type env struct {
	cfg    config.Config
	store  *store.Store
	list   *sessionlist.List
	client *account.Client
	close  func()
}

// openEnv loads config, opens the store, and builds the shared deps.
// Callers must invoke close when done.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	closeLog, err := logging.Setup(store.DataDir(dbPath), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	sessions, err := st.Load()
	if err != nil {
		st.Close()
		closeLog()
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	token, err := st.GetSetting(store.KeyAuthToken)
	if err != nil {
		log.Warn().Err(err).Msg("read stored token")
	}
	if token != "" && account.TokenExpired(token, time.Now()) {
		log.Info().Msg("stored token expired, discarding")
		token = ""
		if err := st.DeleteSetting(store.KeyAuthToken); err != nil {
			log.Warn().Err(err).Msg("clear expired token")
		}
	}

	return &env{
		cfg:    cfg,
		store:  st,
		list:   sessionlist.New(st, sessions),
		client: account.New(cfg.APIURL, token),
		close: func() {
			st.Close()
			closeLog()
		},
	}, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	var sink sound.Sink = sound.Nop{}
	if e.cfg.Sound {
		sink = sound.Bell{W: os.Stderr}
	}

	return app.Run(app.Options{
		List:   e.list,
		Store:  e.store,
		Client: e.client,
		Sink:   sink,
	})
}
