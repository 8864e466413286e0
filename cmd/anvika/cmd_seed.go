package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anvikawear/anvika/config"
	"github.com/anvikawear/anvika/database/seeders"
	"github.com/anvikawear/anvika/pkg/database"
)

// anvika seed — run the idempotent seeders (sample catalogue + admin user).
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the sample catalogue and provision the admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.Connect(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background()) //nolint:errcheck

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB())
	},
}
