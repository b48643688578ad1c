package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"channelhist/pkg/config"
	"channelhist/pkg/display"
	"channelhist/pkg/visualizer"
)

func main() {
	// Parse command line arguments
	params, err := visualizer.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		var usageErr *visualizer.UsageError
		if errors.As(err, &usageErr) {
			if errors.Is(err, flag.ErrHelp) {
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, usageErr)
			os.Exit(2)
		}
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if params.WriteConfig != "" {
		if err := config.CreateDefaultConfigFile(params.WriteConfig); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", params.WriteConfig)
		return
	}

	params.Display = display.Show
	verbose := params.Config.Output.Verbose

	if verbose {
		fmt.Println("================================")
		fmt.Println("PER-CHANNEL 3D INTENSITY HISTOGRAMS")
		fmt.Println("================================")
	}

	v := visualizer.NewVisualizer(params)

	startTime := time.Now()
	if err := v.Process(); err != nil {
		log.Fatalf("Visualization failed: %v", err)
	}

	if verbose {
		fmt.Printf("\nCompleted in %.2f seconds\n", time.Since(startTime).Seconds())
	}
}
