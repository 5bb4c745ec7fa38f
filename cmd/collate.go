package cmd

import (
	"github.com/spf13/cobra"

	"github.com/soocke/pagegrab-go/cmd/termui"
	"github.com/soocke/pagegrab-go/domain/pipeline"
)

func newCollateCmd(o *rootOptions) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "collate [DIR]",
		Aliases: []string{"pdf"},
		Short:   "Combine the PNG images of a folder into one PDF",
		Long: `Collate sorts the images of DIR by file name and writes one PDF page per
image, sized to the image. Images that cannot be decoded are skipped.

DIR defaults to the configured output folder.`,
		Example: `  pagegrab collate ~/Desktop/Lecture3
  pagegrab collate ~/Desktop/Scans --name scans.pdf --delete-pngs --open`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, o.cfg)
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			rc := c.RunConfig(pipeline.ModeCollateOnly)
			if len(args) == 1 {
				rc.InputDir = termui.ExpandHome(args[0])
			}
			rc.DocumentName = f.name
			_, err = executeRun(cmd.Context(), c, o.ui, rc, f.open)
			return err
		},
	}
	f.register(cmd, false, true)
	return cmd
}
