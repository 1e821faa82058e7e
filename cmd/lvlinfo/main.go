package main

import (
	"fmt"
	"os"

	"github.com/dyuri/lvlinfo/internal/config"
	"github.com/dyuri/lvlinfo/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the settings shared by all commands. It is filled in by
// the root command before any subcommand runs.
type app struct {
	cfg *config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lvlinfo",
		Short: "Inspect and edit LevelInfo.bin world and level tables",
		Long: `lvlinfo is a tool for working with LevelInfo.bin files, the table of
worlds and levels shown on a game's level-selection screen.

It can convert between the binary format and an editable YAML/JSON form,
edit worlds, levels, and comments in place, validate a file, and extract
LevelInfo.bin from disk images. Files are backed up before they are
overwritten.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/lvlinfo/lvlinfo.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().Bool("no-backup", false, "Do not back up files before overwriting them")

	rootCmd.AddCommand(a.bin2txtCmd())
	rootCmd.AddCommand(a.txt2binCmd())
	rootCmd.AddCommand(a.resaveCmd())
	rootCmd.AddCommand(a.infoCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.extractCmd())
	rootCmd.AddCommand(a.worldCmd())
	rootCmd.AddCommand(a.levelCmd())
	rootCmd.AddCommand(a.commentsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	noBackup, _ := cmd.Flags().GetBool("no-backup")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if noBackup {
		cfg.Backup.Enabled = false
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	a.log.WithField("backup", cfg.Backup.Enabled).Debug("configuration loaded")
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lvlinfo version %s\n", version)
			fmt.Fprintf(out, "commit: %s\n", commit)
			fmt.Fprintf(out, "built: %s\n", date)
		},
	}
}
