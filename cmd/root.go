// Package cmd holds the pagegrab command tree.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/app"
	"github.com/soocke/pagegrab-go/cmd/termui"
	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/debug"
)

// LoggerFactory builds the process logger for a level.
type LoggerFactory func(level slog.Leveler) *slog.Logger

// GUILauncher runs the desktop window until it is closed. It is injected by
// main so the command tree does not link the Tk runtime.
type GUILauncher func(c *app.Container) error

// rootOptions carries the persistent flags and the state loaded before every
// subcommand runs.
type rootOptions struct {
	configPath string
	debug      bool
	noColor    bool

	newLogger LoggerFactory
	launchGUI GUILauncher
	cfg       *config.Config
	logger    *slog.Logger
	ui        *termui.UI
}

func NewRootCmd(newLogger LoggerFactory, launchGUI GUILauncher) *cobra.Command {
	o := &rootOptions{newLogger: newLogger, launchGUI: launchGUI}
	cmd := &cobra.Command{
		Use:   "pagegrab",
		Short: "Screenshot a document page by page and turn the pages into a PDF",
		Long: `pagegrab captures a fixed screen region while stepping a document viewer
forward one page at a time, then stitches the screenshots into a PDF.

It also converts existing image folders to PDF and runs Tesseract OCR over them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return o.load()
		},
	}
	cmd.PersistentFlags().StringVar(&o.configPath, "config", config.DefaultPath(), "settings file")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "verbose logging and runtime stats")
	cmd.PersistentFlags().BoolVar(&o.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newCaptureCmd(o))
	cmd.AddCommand(newCollateCmd(o))
	cmd.AddCommand(newRunCmd(o))
	cmd.AddCommand(newMenuCmd(o))
	cmd.AddCommand(newGUICmd(o))
	cmd.AddCommand(newOCRCmd(o))
	cmd.AddCommand(newTestRegionCmd(o))
	cmd.AddCommand(newDoctorCmd(o))
	cmd.AddCommand(newConfigCmd(o))
	return cmd
}

func (o *rootOptions) load() error {
	o.ui = termui.New(o.noColor)
	cfg, err := config.Load(o.configPath)
	if err != nil {
		o.ui.Warning("Could not read %s, using defaults: %v", o.configPath, err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if o.debug {
		cfg.Debug = true
	}
	o.cfg = cfg

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	if o.newLogger != nil {
		o.logger = o.newLogger(level)
	} else {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// container builds the services for one command invocation and starts the
// runtime logger in debug mode.
func (o *rootOptions) container(cmd *cobra.Command) (*app.Container, error) {
	c, err := app.BuildContainer(o.cfg, o.configPath, o.logger)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if o.cfg.Debug {
		debug.StartRuntimeLogger(cmd.Context(), 2*time.Second, o.logger)
	}
	return c, nil
}

// saveConfig stores the settings for --save and reports a failed write.
func (o *rootOptions) saveConfig(c *app.Container) {
	if err := c.SaveConfig(); err != nil {
		o.ui.Warning("Could not save config: %v", err)
		return
	}
	o.ui.Info("Settings saved to %s", c.ConfigPath)
}
