package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/service"
)

var reconcileRepair bool

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check room availability flags against bookings",
		Long: `Lists rooms flagged booked without a booking and rooms flagged
available that a booking references.

Examples:
  hotel-booking reconcile
  hotel-booking reconcile --repair`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			rep, err := service.NewAvailabilityChecker(db, log).CheckAvailability(cmd.Context(), reconcileRepair)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
	cmd.Flags().BoolVar(&reconcileRepair, "repair", false, "fix mismatched rooms instead of only reporting them")
	return cmd
}
