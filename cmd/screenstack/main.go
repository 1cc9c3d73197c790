package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"screenstack/internal/config"
	"screenstack/internal/logger"
	"screenstack/internal/trace"
	"screenstack/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool
	screens    int
)

var rootCmd = &cobra.Command{
	Use:   "screenstack",
	Short: "Terminal screen stack with activity-driven eviction",
	Long: `screenstack keeps a stack of screens in a single container. The screen
marked on-top is shown, screens still transitioning stay alive underneath,
and inactive screens are evicted whenever the visual tree is refreshed.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().IntVar(&screens, "screens", 1, "Number of panel screens pushed at startup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "screenstack: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = debugMode
	}
	if cmd.Flags().Changed("screens") {
		cfg.Screens.Initial = screens
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.SetDebug(cfg.Log.Debug)
	if err := logger.Init(cfg.Log.Path); err != nil {
		return err
	}
	defer logger.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tp, err := trace.NewProvider(ctx, trace.Config{
		Endpoint:    cfg.Trace.Endpoint,
		ServiceName: cfg.Trace.ServiceName,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		return fmt.Errorf("error starting tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Logger().Warn("trace shutdown", "err", err)
		}
	}()

	container := ui.NewScreenContainer(
		ui.WithTracer(tp.Tracer()),
		ui.WithLogger(logger.Component("container")),
	)
	app := ui.NewAppModel(ui.AppOptions{
		Container:      container,
		ShellCommand:   cfg.Shell.Command,
		ShellDir:       cfg.Shell.Dir,
		Logger:         logger.Component("app"),
		InitialScreens: cfg.Screens.Initial,
	})
	defer app.Close()

	logger.Logger().Info("starting", "screens", cfg.Screens.Initial, "exporting", tp.Exporting())
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
