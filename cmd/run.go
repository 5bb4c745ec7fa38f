package cmd

import (
	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/domain/pipeline"
)

func newRunCmd(o *rootOptions) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Capture every page, then build the PDF",
		Long: `Run performs the complete process: capture (0-50%), loading the images
(50-75%) and writing the PDF (75-100%). With --delete-pngs the page images are
removed once the PDF exists.`,
		Example: `  pagegrab run --pages 25 --folder Chapter1 --delete-pngs --open`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, o.cfg)
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			if f.save {
				o.saveConfig(c)
			}
			rc := c.RunConfig(pipeline.ModeComplete)
			rc.DocumentName = f.name
			printRegion(o.ui.Out, rc)
			_, err = executeRun(cmd.Context(), c, o.ui, rc, f.open)
			return err
		},
	}
	f.register(cmd, true, true)
	return cmd
}
