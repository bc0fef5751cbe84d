package core

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out.Structured() {
				printResult(VersionInfo.Map(), nil, nil)
				return nil
			}
			fmt.Fprintln(out.Out, VersionInfo.Full())
			return nil
		},
	}
}
