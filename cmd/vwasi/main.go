package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgavlin/vwasi/cmd/vwasi/cat"
	"github.com/pgavlin/vwasi/cmd/vwasi/ls"
	"github.com/pgavlin/vwasi/cmd/vwasi/stat"
	"github.com/pgavlin/vwasi/wasi"
)

var version = "<unknown>"

func configureCLI() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "vwasi",
		Short:         "vwasi virtual filesystem tools",
		Long:          "vwasi - tools for inspecting virtual filesystem images through the WASI system interface",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCommand.AddCommand(cat.Command())
	rootCommand.AddCommand(ls.Command())
	rootCommand.AddCommand(stat.Command())

	return rootCommand
}

func main() {
	rootCommand := configureCLI()

	if err := rootCommand.Execute(); err != nil {
		if exit, ok := err.(*wasi.ExitError); ok {
			os.Exit(exit.Code())
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
