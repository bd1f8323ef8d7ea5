package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <trip-id>",
	Short: "Rank zone drivers for a trip by proximity",
	Args:  cobra.ExactArgs(1),
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	tripID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid trip id %q", args[0])
	}
	svc, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	candidates, err := svc.Engine.RankDriversForTrip(ctx, tripID)
	if err != nil {
		return err
	}
	for i, c := range candidates {
		dist := "?"
		if c.HasDistance {
			dist = fmt.Sprintf("%dkm", c.DistanceKm)
		}
		status := ""
		if c.Absent {
			status = " absent: " + c.Driver.AbsenceReason
		}
		fmt.Printf("%2d. %s (%s)  %s via %s  %d active%s\n",
			i+1, c.Driver.Name, c.Driver.TractorPlate, dist,
			c.Position.Source, c.ActiveTrips, status)
	}
	return nil
}
