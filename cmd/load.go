package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/foodgram-backend/internal/app"
	"github.com/yungbote/foodgram-backend/internal/data/fixtures"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func loadIngredientsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "load-ingredients",
		Short: "Load the ingredient catalog from a JSON fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()
			rows, err := fixtures.ParseIngredients(f)
			if err != nil {
				return err
			}

			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			pg, err := app.OpenDB(log, cfg, true)
			if err != nil {
				return err
			}
			defer pg.Close()

			repo := repos.NewIngredientRepo(pg.DB(), log)
			n, err := repo.CreateIgnoreDuplicates(dbctx.Context{Ctx: cmd.Context()}, rows)
			if err != nil {
				return fmt.Errorf("insert ingredients: %w", err)
			}
			log.Info("Ingredients loaded", "file", file, "parsed", len(rows), "inserted", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "data/ingredients.json", "Fixture path")
	return cmd
}

func loadTagsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "load-tags",
		Short: "Load recipe tags from a JSON fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()
			rows, err := fixtures.ParseTags(f)
			if err != nil {
				return err
			}

			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			pg, err := app.OpenDB(log, cfg, true)
			if err != nil {
				return err
			}
			defer pg.Close()

			repo := repos.NewTagRepo(pg.DB(), log)
			n, err := repo.CreateIgnoreDuplicates(dbctx.Context{Ctx: cmd.Context()}, rows)
			if err != nil {
				return fmt.Errorf("insert tags: %w", err)
			}
			log.Info("Tags loaded", "file", file, "parsed", len(rows), "inserted", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "data/tags.json", "Fixture path")
	return cmd
}
