package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/bucketlist/internal/config"
	"github.com/mmynk/bucketlist/pkg/logging"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configFile string
	dotEnvFile string
	env        string
}

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	flags  rootFlags
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the top-level "bucketlist" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "bucketlist",
		Short: "Bucket list backend with token-based auth",
		Long: `bucketlist serves users, their bucket lists and the items in them
over Connect RPC, backed by SQLite.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{
				ConfigFile: a.flags.configFile,
				DotEnvFile: a.flags.dotEnvFile,
				Env:        a.flags.env,
			})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.logger = logging.Setup(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "config file (default: ./config.yaml if present)")
	root.PersistentFlags().StringVar(&a.flags.dotEnvFile, "env-file", "", "dotenv file to load (default: ./.env if present)")
	root.PersistentFlags().StringVar(&a.flags.env, "env", "", "environment: production, development or testing")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newTokenCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}
