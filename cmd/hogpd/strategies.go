package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/srg/hogpd/internal/hog"
)

// strategiesCmd lists the built-in compatibility strategies
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List compatibility strategies",
	Long: `List the registered compatibility strategies and the HID Information
bytes each one advertises to its host class.`,
	RunE: runStrategies,
}

func runStrategies(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd, defaultCLIConfig())
	if err != nil {
		return err
	}

	manager := hog.NewDeviceCompatibilityManager(hog.NewDeviceDetector(logger), logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE TYPE\tDEVICE NAME\tHID INFORMATION")
	for _, registered := range manager.Strategies() {
		fmt.Fprintf(w, "%s\t%s\t% X\n",
			registered.Type,
			registered.Strategy.DeviceName(),
			registered.Strategy.HIDInformation())
	}
	return w.Flush()
}
