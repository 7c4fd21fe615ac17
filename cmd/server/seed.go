package main

import (
	"github.com/board-game-reviews-api/internal/repository"
	"github.com/board-game-reviews-api/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the bundled test dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close()

		ds, err := seed.TestData()
		if err != nil {
			return err
		}

		return seed.New(db, repository.New(db), log).Run(cmd.Context(), ds)
	},
}
