package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ynifamily3/minesweeper/config"
	"github.com/ynifamily3/minesweeper/lifecycle"
)

var (
	configPath string
	size       int
	maxSize    int
	mines      int
	logLevel   string
	seed       int64
	relocation string
)

var rootCmd = &cobra.Command{
	Use:   "minesweeper",
	Short: "Single-player minesweeper",
	Long: `Minesweeper core with a terminal front end and a local HTTP bridge.

Examples:
  minesweeper play --size 9 --mines 10
  minesweeper serve --addr :8080 --static ./static
  minesweeper play --config game.json --relocation any`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "JSON config file")
	flags.IntVarP(&size, "size", "s", 10, "Board size (size x size)")
	flags.IntVarP(&mines, "mines", "m", 10, "Number of mines")
	flags.IntVar(&maxSize, "max-size", config.DefaultMaxSize, "Largest board size a new game may request")
	flags.StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
	flags.Int64Var(&seed, "seed", 0, "Random seed (0 = time based)")
	flags.StringVar(&relocation, "relocation", "strict", "First click rule: strict|any")
}

// loadConfig は設定ファイルを読み、明示されたフラグで上書きします
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("max-size") {
		cfg.MaxSize = maxSize
	}
	if flags.Changed("mines") {
		cfg.Bombs = mines
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("relocation") {
		cfg.Relocation = relocation
	}
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("static") {
		cfg.StaticDir = staticDir
	}
	return cfg, cfg.Validate()
}

func newController(cfg config.Config) *lifecycle.Controller {
	return lifecycle.NewController(
		lifecycle.WithRand(cfg.Rand()),
		lifecycle.WithRelocation(cfg.Policy()),
		lifecycle.WithLogger(cfg.Logger()),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
