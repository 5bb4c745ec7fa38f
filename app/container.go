package app

import (
	"fmt"
	"log/slog"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/action"
	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/ocr"
	"github.com/soocke/pagegrab-go/domain/opener"
	"github.com/soocke/pagegrab-go/domain/pipeline"
	"github.com/soocke/pagegrab-go/ui/model"
)

// Container assembles the services shared by the CLI commands and the GUI.
type Container struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Grabber      capture.Grabber
	Keys         action.KeySender
	Driver       *capture.Driver
	Collator     *collate.Collator
	Orchestrator *pipeline.Orchestrator
	OCR          *ocr.Processor
	Engine       ocr.Engine
	Opener       *opener.Opener
}

// BuildContainer constructs all services. Nothing touches the screen or the
// keyboard until a run starts.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	_ = cfg.Validate()
	grabber, err := capture.NewGrabber(cfg.CaptureBackend)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, ConfigPath: cfgPath, Logger: logger, Grabber: grabber}
	c.Keys = action.NewKeySender()
	c.Driver = capture.NewDriver(grabber, c.Keys, logger.With("component", "capture"))
	c.Collator = collate.New(collate.NewPDFWriter(), logger.With("component", "collate"))
	c.Orchestrator = pipeline.New(c.Driver, c.Collator, logger.With("component", "pipeline"))
	c.Engine = ocr.NewEngine()
	c.OCR = ocr.NewProcessor(c.Engine, logger.With("component", "ocr"))
	c.Opener = opener.New()
	return c, nil
}

// Describe names a component for diagnostics.
func Describe(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unknown"
}

// RunConfig builds a run configuration from the current settings.
func (c *Container) RunConfig(mode pipeline.Mode) pipeline.RunConfig {
	return pipeline.FromConfig(c.Config, mode)
}

// ApplyForm parses settings form text into the live config. Nothing changes
// when a field is invalid.
func (c *Container) ApplyForm(fields map[string]string) error {
	cfg, invalid := model.ApplySettings(*c.Config, fields)
	if len(invalid) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrInvalidConfiguration, model.DescribeInvalid(invalid))
	}
	*c.Config = cfg
	return nil
}

// SaveConfig persists the settings to ConfigPath.
func (c *Container) SaveConfig() error {
	if c.ConfigPath == "" {
		return nil
	}
	if err := c.Config.Save(c.ConfigPath); err != nil {
		c.Logger.Error("config save failed", "path", c.ConfigPath, "error", err)
		return err
	}
	c.Logger.Info("config saved", "path", c.ConfigPath)
	return nil
}
