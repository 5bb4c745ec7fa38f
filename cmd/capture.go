package cmd

import (
	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/domain/pipeline"
)

func newCaptureCmd(o *rootOptions) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Screenshot the region once per page",
		Long: `Capture saves one screenshot of the configured region per page as
<folder>/page_NN.png, pressing the next-page key between captures.

Open the document, bring its window to the front and start the command; the
countdown gives you time to switch windows.`,
		Example: `  pagegrab capture --pages 40 --folder Lecture3
  pagegrab capture -n 12 --x1 100 --y1 80 --x2 900 --y2 1200 --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, o.cfg)
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			if f.save {
				o.saveConfig(c)
			}
			rc := c.RunConfig(pipeline.ModeCaptureOnly)
			printRegion(o.ui.Out, rc)
			_, err = executeRun(cmd.Context(), c, o.ui, rc, f.open)
			return err
		},
	}
	f.register(cmd, true, false)
	return cmd
}
