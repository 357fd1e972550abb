// potato is a single-screen platformer: reach the potato before the timer
// runs out.
//
// Usage:
//
//	potato [--level <name|path>] [--config <spec.yaml>] [--debug] [--watch] [--monitor]
//
// Controls: arrows or A/D to move, Space to jump, Esc to pause, F12 to quit.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/potato/prefabs"
	"github.com/spf13/cobra"
)

var (
	flagLevel   string
	flagConfig  string
	flagDebug   bool
	flagWatch   bool
	flagMonitor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "potato",
	Short:         "Rescue the potato before the clock runs out",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagLevel, "level", "l", "", "level file (path on disk or name in levels/)")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "game spec YAML (defaults to prefabs/game.yaml)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging and overlay")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the level and spec when they change on disk")
	rootCmd.Flags().BoolVarP(&flagMonitor, "monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "potato",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	spec, err := prefabs.LoadGameSpec(flagConfig)
	if err != nil {
		logger.Error("could not load game spec", "error", err)
		return err
	}

	game, err := NewGame(GameOptions{
		Spec:       spec,
		Level:      flagLevel,
		ConfigPath: flagConfig,
		Debug:      flagDebug,
		Watch:      flagWatch,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("could not start game", "error", err)
		return err
	}
	defer game.Close()

	if flagMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowTitle(spec.Window.Title)
	ebiten.SetTPS(spec.Window.TPS)

	logger.Info("starting", "title", spec.Window.Title, "tps", spec.Window.TPS, "time_limit", spec.Session.TimeLimit)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game stopped", "error", err)
		return err
	}
	logger.Info("bye")
	return nil
}
