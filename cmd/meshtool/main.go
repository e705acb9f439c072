// meshtool generates dynamic meshes with attribute overlays, runs edit sessions
// and transforms on them, and reports topology and overlay statistics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/config"
	"github.com/Faultbox/dynmesh/internal/logger"
	"github.com/Faultbox/dynmesh/internal/parallel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once the root pre-run has loaded it.
type app struct {
	flags config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "meshtool",
		Short: "Dynamic mesh attribute and overlay utility",
		Long: `meshtool builds a grid or box mesh with UV and normal overlays, then
reports its layers and seams, runs random topology edits, applies transforms
or compacts it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
	}

	a.flags.Register(root.PersistentFlags())

	root.AddCommand(
		a.infoCmd(),
		a.editCmd(),
		a.transformCmd(),
		a.compactCmd(),
	)
	return root
}

// setup loads config (defaults < file < flags), then starts logging and sizes the worker pool.
func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.LoadWithFlags(&a.flags)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	parallel.SetDefaultWorkers(cfg.Parallel.Workers)
	parallel.SetForceSingleThread(cfg.Parallel.ForceSingleThread)

	a.cfg = cfg
	a.log = logger.Named("meshtool")
	a.log.Debug("config loaded",
		zap.String("generator", cfg.Generator.Kind),
		zap.Int("workers", parallel.DefaultWorkers()),
		zap.Bool("single_thread", cfg.Parallel.ForceSingleThread))
	return nil
}
