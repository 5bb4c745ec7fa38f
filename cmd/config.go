package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soocke/pagegrab-go/config"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or reset the saved settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Printed as yaml; the file itself stays JSON.
			out, err := yaml.Marshal(settingsView(o.cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", o.configPath, out)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultConfig().Save(o.configPath); err != nil {
				o.ui.Error("Could not write %s: %v", o.configPath, err)
				return err
			}
			o.ui.Success("Wrote %s", o.configPath)
			return nil
		},
	})
	return cmd
}

// settingsView lists the settings in a stable order.
func settingsView(c *config.Config) *yaml.Node {
	pairs := []struct {
		key string
		val any
	}{
		{"region", fmt.Sprintf("%d,%d - %d,%d", c.RegionX1, c.RegionY1, c.RegionX2, c.RegionY2)},
		{"pages", c.Pages},
		{"output_root", c.OutputRoot},
		{"folder_name", c.FolderName},
		{"countdown_seconds", c.CountdownSeconds},
		{"settle_delay_ms", c.SettleDelayMillis},
		{"next_page_key", c.NextPageKey},
		{"capture_backend", c.CaptureBackend},
		{"file_pattern", c.FilePattern},
		{"page_prefix", c.PagePrefix},
		{"jpeg_quality", c.JPEGQuality},
		{"delete_intermediates", c.DeleteIntermediates},
		{"ocr_language", c.OCRLanguage},
		{"ocr_enhance", c.OCREnhance},
		{"ocr_format", c.OCRFormat},
		{"debug", c.Debug},
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range pairs {
		var v yaml.Node
		_ = v.Encode(p.val)
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.key}, &v)
	}
	return node
}
