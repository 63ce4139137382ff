// The tracker is the vehicle location tracking service: it ingests position
// reports from the broker and serves the tracking query API.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/nexus-logistics/tracking-service/cmd/tracker/app"
)

func main() {
	if err := app.NewTrackerCommand().Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
