package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newGUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.launchGUI == nil {
				return errors.New("this build has no desktop window")
			}
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			return o.launchGUI(c)
		},
	}
}
