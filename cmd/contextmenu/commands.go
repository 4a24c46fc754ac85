package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kingrea/singleton-contextmenu/internal/config"
	"github.com/kingrea/singleton-contextmenu/internal/logging"
	"github.com/kingrea/singleton-contextmenu/internal/metric"
	"github.com/kingrea/singleton-contextmenu/internal/tui"
)

type options struct {
	dir         string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "contextmenu",
		Short:         "Right-click context menus for terminal panels",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", "", "project directory (default: current directory)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Open the panel TUI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	runCmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides metrics.listen)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create .contextmenu/config.yaml with the default panels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := projectDir(opts)
			if err != nil {
				return err
			}
			if err := config.InitDir(dir); err != nil {
				return fmt.Errorf("init: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config ready at %s\n", filepath.Join(dir, config.Dir, "config.yaml"))
			return nil
		},
	}

	root.AddCommand(runCmd, initCmd)
	return root
}

func projectDir(opts *options) (string, error) {
	if opts.dir != "" {
		return filepath.Abs(opts.dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}

func runTUI(ctx context.Context, opts *options) error {
	dir, err := projectDir(opts)
	if err != nil {
		return err
	}
	if err := config.InitDir(dir); err != nil {
		return fmt.Errorf("initializing %s directory: %w", config.Dir, err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return err
	}
	logger, err := logging.New(dir)
	if err != nil {
		return err
	}
	defer logger.Close()

	reg := prometheus.NewRegistry()
	collector := metric.NewCollector(reg)

	p := tea.NewProgram(
		tui.NewApp(cfg, tui.WithLogger(logger), tui.WithObserver(collector)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	addr := opts.metricsAddr
	if addr == "" {
		addr = cfg.Project.Metrics.Listen
	}

	g, gCtx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gCtx)
	g.Go(func() error {
		defer stop()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-runCtx.Done()
		p.Quit()
		return nil
	})
	if addr != "" {
		logger.Printf("metrics listening on %s", addr)
		g.Go(func() error {
			return metric.Serve(runCtx, addr, reg)
		})
	}
	return g.Wait()
}
