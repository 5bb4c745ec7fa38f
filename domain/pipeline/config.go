package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/capture"
	"github.com/soocke/pagegrab-go/domain/collate"
	"github.com/soocke/pagegrab-go/domain/errs"
)

// Mode selects which phases a run executes.
type Mode int

const (
	ModeComplete    Mode = iota // capture then collate
	ModeCaptureOnly             // screenshots only
	ModeCollateOnly             // existing folder to document
)

func (m Mode) String() string {
	switch m {
	case ModeComplete:
		return "complete"
	case ModeCaptureOnly:
		return "capture"
	case ModeCollateOnly:
		return "collate"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// RunConfig is built once per run, handed to the worker by value and never
// mutated afterwards.
type RunConfig struct {
	Mode   Mode
	Region capture.Region
	Pages  int

	OutputRoot string
	FolderName string
	InputDir   string // collate only: folder to read instead of OutputRoot/FolderName

	DocumentName        string // defaults to <folder>.pdf
	DeleteIntermediates bool

	Countdown int
	Tick      time.Duration
	Settle    time.Duration
	Key       string
	Prefix    string
	Pattern   string
	Quality   int
}

// FromConfig copies the persisted settings into a RunConfig for mode.
func FromConfig(cfg *config.Config, mode Mode) RunConfig {
	return RunConfig{
		Mode:                mode,
		Region:              capture.RegionFromCorners(cfg.RegionX1, cfg.RegionY1, cfg.RegionX2, cfg.RegionY2),
		Pages:               cfg.Pages,
		OutputRoot:          cfg.OutputRoot,
		FolderName:          cfg.FolderName,
		DeleteIntermediates: cfg.DeleteIntermediates,
		Countdown:           cfg.CountdownSeconds,
		Tick:                time.Second,
		Settle:              time.Duration(cfg.SettleDelayMillis) * time.Millisecond,
		Key:                 cfg.NextPageKey,
		Prefix:              cfg.PagePrefix,
		Pattern:             cfg.FilePattern,
		Quality:             cfg.JPEGQuality,
	}
}

// Folder is the capture output folder and the collation input folder.
func (c RunConfig) Folder() string {
	if c.Mode == ModeCollateOnly && c.InputDir != "" {
		return c.InputDir
	}
	return filepath.Join(c.OutputRoot, c.FolderName)
}

// Document is the resolved document file name.
func (c RunConfig) Document() string {
	return collate.DocumentName(c.Folder(), c.DocumentName)
}

// Validate rejects a configuration before any side effect.
func (c RunConfig) Validate() error {
	switch c.Mode {
	case ModeComplete, ModeCaptureOnly:
		if err := c.Region.Validate(); err != nil {
			return err
		}
		if c.Pages <= 0 {
			return fmt.Errorf("%w: page count %d must be positive", errs.ErrInvalidConfiguration, c.Pages)
		}
		if strings.TrimSpace(c.FolderName) == "" {
			return fmt.Errorf("%w: output folder name is empty", errs.ErrInvalidConfiguration)
		}
		if strings.TrimSpace(c.OutputRoot) == "" {
			return fmt.Errorf("%w: output root is empty", errs.ErrInvalidConfiguration)
		}
	case ModeCollateOnly:
		if c.InputDir == "" && (strings.TrimSpace(c.FolderName) == "" || strings.TrimSpace(c.OutputRoot) == "") {
			return fmt.Errorf("%w: input folder is empty", errs.ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown mode %v", errs.ErrInvalidConfiguration, c.Mode)
	}
	if c.Countdown < 0 || c.Settle < 0 {
		return fmt.Errorf("%w: negative delay", errs.ErrInvalidConfiguration)
	}
	return nil
}

func (c RunConfig) captureOptions() capture.Options {
	return capture.Options{
		Region:    c.Region,
		Pages:     c.Pages,
		Folder:    c.Folder(),
		Prefix:    c.Prefix,
		Key:       c.Key,
		Countdown: c.Countdown,
		Tick:      c.Tick,
		Settle:    c.Settle,
	}
}

func (c RunConfig) collateOptions() collate.Options {
	return collate.Options{
		Dir:     c.Folder(),
		Pattern: c.Pattern,
		Name:    c.DocumentName,
		Quality: c.Quality,
	}
}
