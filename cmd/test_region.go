package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/domain/capture"
)

// testRegionFile is written to the output root, never inside a page folder,
// so it cannot end up in a PDF.
const testRegionFile = "test_region.png"

func newTestRegionCmd(o *rootOptions) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "test-region",
		Short: "Capture the region once to check it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, o.cfg)
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			cfg := c.Config
			region := capture.RegionFromCorners(cfg.RegionX1, cfg.RegionY1, cfg.RegionX2, cfg.RegionY2)
			path := filepath.Join(cfg.OutputRoot, testRegionFile)
			if err := c.Driver.GrabOnce(region, path); err != nil {
				o.ui.Error("Test capture failed: %v", err)
				return err
			}
			if f.save {
				o.saveConfig(c)
			}
			o.ui.Success("Test image saved: %s", path)
			o.ui.Info("%s", region.Describe())
			if f.open {
				if err := c.Opener.Open(path); err != nil {
					o.ui.Warning("Could not open %s: %v", path, err)
				}
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.x1, "x1", 0, "region left edge")
	fl.IntVar(&f.y1, "y1", 0, "region top edge")
	fl.IntVar(&f.x2, "x2", 0, "region right edge")
	fl.IntVar(&f.y2, "y2", 0, "region bottom edge")
	fl.StringVar(&f.root, "root", "", "directory the test image is written to")
	fl.BoolVar(&f.save, "save", false, "store the region in the config file")
	fl.BoolVar(&f.open, "open", false, "open the image when done")
	return cmd
}
