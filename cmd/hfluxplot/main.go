// Command hfluxplot renders heat flux model output into PDF reports.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newRootCmd(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "hfluxplot <command> [arguments]",
		Short:         "Render heat flux model output as PDF figures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.AddCommand(newRenderCmd(), newPreviewCmd(), newMethodsCmd())
	return root
}

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		out := termenv.NewOutput(os.Stderr)
		msg := out.String("error:").Foreground(out.Color("1")).Bold()
		fmt.Fprintf(os.Stderr, "%s %v\n", msg, err)
		os.Exit(1)
	}
}
