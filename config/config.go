package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Capture backends accepted by CaptureBackend.
const (
	BackendNative        = "native"
	BackendScreencapture = "screencapture"
	BackendGDI           = "gdi"
)

// OCR output formats accepted by OCRFormat.
const (
	OCRFormatText     = "txt"
	OCRFormatSeparate = "separate"
	OCRFormatYAML     = "yaml"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvOutputRoot = "PAGEGRAB_OUTPUT_ROOT"
	EnvBackend    = "PAGEGRAB_BACKEND"
	EnvDebug      = "PAGEGRAB_DEBUG"
)

const defaultFileName = ".pagegrab.json"

// Config holds runtime configuration for capture, collation and OCR.
// Fields may be loaded from a JSON file and overridden by environment or flags.
type Config struct {
	Debug bool `json:"debug"`

	// Capture region corners in screen pixels.
	RegionX1 int `json:"region_x1"`
	RegionY1 int `json:"region_y1"`
	RegionX2 int `json:"region_x2"`
	RegionY2 int `json:"region_y2"`

	Pages             int    `json:"pages"`
	OutputRoot        string `json:"output_root"`
	FolderName        string `json:"folder_name"`
	CountdownSeconds  int    `json:"countdown_seconds"`
	SettleDelayMillis int    `json:"settle_delay_ms"`
	NextPageKey       string `json:"next_page_key"`
	CaptureBackend    string `json:"capture_backend"`

	// Collation
	FilePattern         string `json:"file_pattern"`
	PagePrefix          string `json:"page_prefix"`
	JPEGQuality         int    `json:"jpeg_quality"`
	DeleteIntermediates bool   `json:"delete_intermediates"`

	// OCR
	OCRLanguage string `json:"ocr_language"`
	OCREnhance  bool   `json:"ocr_enhance"`
	OCRFormat   string `json:"ocr_format"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		RegionX1:            880,
		RegionY1:            180,
		RegionX2:            1720,
		RegionY2:            1330,
		Pages:               10,
		OutputRoot:          DefaultOutputRoot(),
		FolderName:          "PDF_Screenshots",
		CountdownSeconds:    5,
		SettleDelayMillis:   500,
		NextPageKey:         "down",
		CaptureBackend:      BackendNative,
		FilePattern:         "*.png",
		PagePrefix:          "page_",
		JPEGQuality:         95,
		DeleteIntermediates: false,
		OCRLanguage:         "eng",
		OCREnhance:          true,
		OCRFormat:           OCRFormatText,
	}
}

// DefaultPath is ~/.pagegrab.json, or the working directory when no home is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultFileName
	}
	return filepath.Join(home, defaultFileName)
}

// DefaultOutputRoot is the user's Desktop, falling back to the home directory.
func DefaultOutputRoot() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	desktop := filepath.Join(home, "Desktop")
	if st, err := os.Stat(desktop); err == nil && st.IsDir() {
		return desktop
	}
	return home
}

// Validate clamps/normalizes values to safe ranges. The region is left as is;
// it is checked when a run starts so the user sees the rejection.
func (c *Config) Validate() error {
	if c.Pages <= 0 {
		c.Pages = 1
	}
	if c.CountdownSeconds < 0 {
		c.CountdownSeconds = 5
	}
	if c.SettleDelayMillis < 0 {
		c.SettleDelayMillis = 500
	}
	c.FolderName = strings.TrimSpace(c.FolderName)
	if c.FolderName == "" {
		c.FolderName = "PDF_Screenshots"
	}
	if strings.TrimSpace(c.OutputRoot) == "" {
		c.OutputRoot = DefaultOutputRoot()
	}
	if strings.TrimSpace(c.NextPageKey) == "" {
		c.NextPageKey = "down"
	}
	switch c.CaptureBackend {
	case BackendNative, BackendScreencapture, BackendGDI:
	default:
		c.CaptureBackend = BackendNative
	}
	if c.FilePattern == "" {
		c.FilePattern = "*.png"
	}
	if c.PagePrefix == "" {
		c.PagePrefix = "page_"
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = 95
	}
	if strings.TrimSpace(c.OCRLanguage) == "" {
		c.OCRLanguage = "eng"
	}
	switch c.OCRFormat {
	case OCRFormatText, OCRFormatSeparate, OCRFormatYAML:
	default:
		c.OCRFormat = OCRFormatText
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvOutputRoot); ok && strings.TrimSpace(v) != "" {
		c.OutputRoot = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvBackend); ok && strings.TrimSpace(v) != "" {
		c.CaptureBackend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Debug = b
		}
	}
	_ = c.Validate()
}

// OutputFolder joins the output root and the folder name.
func (c *Config) OutputFolder() string {
	return filepath.Join(c.OutputRoot, c.FolderName)
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
