package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:   "assign <trip-id> <driver-id>",
	Short: "Commit a trip to a driver",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
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
	res, err := svc.Engine.Assign(ctx, tripID, args[1])
	if err != nil {
		return err
	}
	if res.Reassigned {
		fmt.Printf("trip %d reassigned from %s to %s\n", tripID, res.PreviousDriver, args[1])
	} else {
		fmt.Printf("trip %d assigned to %s\n", tripID, args[1])
	}
	for _, serr := range res.Errors {
		fmt.Printf("warning: %v\n", serr)
	}
	return nil
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run one automatic assignment pass",
	RunE:  runAuto,
}

func init() {
	rootCmd.AddCommand(autoCmd)
}

func runAuto(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	res, err := svc.Engine.AutoAssign(ctx)
	if err != nil {
		return err
	}
	for _, a := range res.Assignments {
		chained := ""
		if a.Chained {
			chained = fmt.Sprintf(" (chained from %s)", a.From)
		}
		fmt.Printf("trip %d %s -> %s (%s)%s\n", a.TripID, a.Route, a.DriverID, a.Plate, chained)
	}
	fmt.Printf("%d pending, %d assigned, %d chained, %d left\n",
		res.Pending, res.Assigned, res.Chained, res.Unassigned)
	return nil
}
