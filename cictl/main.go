package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var root = &cobra.Command{
		Use:           "cictl",
		Short:         "Offline tools for the TRT intelligence feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(filterCMD(), templateCMD(), convertCMD())
	return root
}
