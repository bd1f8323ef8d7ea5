package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var tripsPage int

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Trip related commands",
}

var tripsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List unassigned trips by priority",
	RunE:  runTripsLs,
}

func init() {
	tripsLsCmd.Flags().IntVar(&tripsPage, "page", 0, "result page, zero-based")
	tripsCmd.AddCommand(tripsLsCmd)
	rootCmd.AddCommand(tripsCmd)
}

func runTripsLs(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	trips, err := svc.Engine.ListUnassignedTrips(ctx, tripsPage)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Println("no unassigned trips")
		return nil
	}
	for i, t := range trips {
		urgent := ""
		if t.Urgent() {
			urgent = " URGENT"
		}
		deadline := "-"
		if !t.Deadline.IsZero() {
			deadline = t.Deadline.Format("2006-01-02")
		}
		fmt.Printf("%2d. #%d %s: %s -> %s  %dkm  %.0f EUR  due %s%s\n",
			i+1, t.ID, t.Client, t.Pickup, t.Dropoff, t.Km, t.Price, deadline, urgent)
	}
	return nil
}
