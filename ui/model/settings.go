package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soocke/pagegrab-go/config"
)

// Settings field ids shared by the form view and ApplySettings.
const (
	FieldX1         = "x1"
	FieldY1         = "y1"
	FieldX2         = "x2"
	FieldY2         = "y2"
	FieldPages      = "pages"
	FieldFolder     = "folder"
	FieldDeletePNGs = "deletePNGs"
	FieldKey        = "key"
	FieldCountdown  = "countdown"
)

// SettingsValues renders cfg as form text keyed by field id.
func SettingsValues(cfg *config.Config) map[string]string {
	return map[string]string{
		FieldX1:         strconv.Itoa(cfg.RegionX1),
		FieldY1:         strconv.Itoa(cfg.RegionY1),
		FieldX2:         strconv.Itoa(cfg.RegionX2),
		FieldY2:         strconv.Itoa(cfg.RegionY2),
		FieldPages:      strconv.Itoa(cfg.Pages),
		FieldFolder:     cfg.FolderName,
		FieldDeletePNGs: strconv.FormatBool(cfg.DeleteIntermediates),
		FieldKey:        cfg.NextPageKey,
		FieldCountdown:  strconv.Itoa(cfg.CountdownSeconds),
	}
}

// ApplySettings parses form text into a copy of cfg. Fields that do not parse
// keep their previous value and are named in invalid.
func ApplySettings(cfg config.Config, fields map[string]string) (out config.Config, invalid []string) {
	assignInt := func(id string, dst *int) {
		s, ok := fields[id]
		if !ok {
			return
		}
		if i, ok := ParseIntField(s); ok {
			*dst = i
			return
		}
		invalid = append(invalid, id)
	}
	assignInt(FieldX1, &cfg.RegionX1)
	assignInt(FieldY1, &cfg.RegionY1)
	assignInt(FieldX2, &cfg.RegionX2)
	assignInt(FieldY2, &cfg.RegionY2)
	assignInt(FieldPages, &cfg.Pages)
	assignInt(FieldCountdown, &cfg.CountdownSeconds)
	if s, ok := fields[FieldDeletePNGs]; ok {
		if b, ok := ParseBoolLoose(s); ok {
			cfg.DeleteIntermediates = b
		} else {
			invalid = append(invalid, FieldDeletePNGs)
		}
	}
	if s := strings.TrimSpace(fields[FieldFolder]); s != "" {
		cfg.FolderName = s
	}
	if s := strings.TrimSpace(fields[FieldKey]); s != "" {
		cfg.NextPageKey = s
	}
	if cfg.Pages <= 0 {
		invalid = append(invalid, FieldPages)
	}
	_ = cfg.Validate()
	return cfg, invalid
}

// DescribeInvalid renders invalid field ids for a status line.
func DescribeInvalid(invalid []string) string {
	if len(invalid) == 0 {
		return ""
	}
	return fmt.Sprintf("Invalid value in: %s", strings.Join(invalid, ", "))
}

// ParseIntField parses a trimmed integer.
func ParseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseBoolLoose accepts the usual spellings of true and false.
func ParseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
