package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var computeOpts computeOptions

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a performance snapshot once",
	RunE:  runCompute,
}

func init() {
	bindComputeFlags(computeCmd.Flags(), &computeOpts)
	if err := computeCmd.MarkFlagRequired("records"); err != nil {
		panic(fmt.Sprintf("failed to mark records flag as required: %v", err))
	}
	rootCmd.AddCommand(computeCmd)
}

func runCompute(_ *cobra.Command, _ []string) error {
	snapshot, n, err := computeSnapshot(computeOpts)
	if err != nil {
		return err
	}
	if err := writeSnapshot(computeOpts.OutPath, snapshot); err != nil {
		return err
	}
	if computeOpts.OutPath != "" && computeOpts.OutPath != "-" {
		_, _ = fmt.Fprintf(os.Stderr, "Computed snapshot from %d records: %s\n", n, computeOpts.OutPath)
	}
	return nil
}
