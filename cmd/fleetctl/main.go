// The fleetctl tool queries a running tracker and prints the live fleet
// view as a table.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
)

func main() {
	var (
		server  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "fleetctl [category]",
		Short:        "Inspect the live fleet of a tracking server",
		Long:         "Fetches the live fleet view and prints it as a table.\nCategory is one of all, aircraft, trucks or buses; the default is all.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			category := "all"
			if len(args) == 1 {
				category = args[0]
			}
			switch category {
			case "all", "aircraft", "trucks", "buses":
			default:
				return fmt.Errorf("unknown category %q", category)
			}

			reports, err := fetchLive(server, category, timeout)
			if err != nil {
				return err
			}

			printTable(cmd, reports)
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:3000", "Base URL of the tracking server.")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout.")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fetchLive(server, category string, timeout time.Duration) ([]model.Report, error) {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(fmt.Sprintf("%s/live/%s", server, category))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var reports []model.Report
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return reports, nil
}

func printTable(cmd *cobra.Command, reports []model.Report) {
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("VEHICLE", "TYPE", "LAT", "LON", "DETAIL", "REPORTED")

	for _, r := range reports {
		table.AddRow(
			r.VehicleID,
			string(r.Type),
			fmt.Sprintf("%.4f", r.Latitude),
			fmt.Sprintf("%.4f", r.Longitude),
			detail(r),
			time.Unix(r.Timestamp, 0).Format(time.RFC3339),
		)
	}

	cmd.Println(table)
	cmd.Printf("\n%d vehicles\n", len(reports))
}

func detail(r model.Report) string {
	switch {
	case r.Callsign != "":
		return fmt.Sprintf("%s @ %.0f ft", r.Callsign, r.Altitude)
	case r.Route != "":
		return r.Route
	case r.City != "":
		return r.City
	default:
		return "-"
	}
}
