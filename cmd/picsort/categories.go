package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/picsort/internal/cli"
	"github.com/Veraticus/picsort/internal/config"
	"github.com/Veraticus/picsort/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect the category definition file",
		Long:  `List or validate the categories that images are sorted into.`,
	}

	cmd.PersistentFlags().String("categories", config.DefaultCategoriesFile, "category definition file (.json, .yaml)")

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(validateCategoriesCmd())

	return cmd
}

// bindCategoriesFlag points sort.categories at the flag of the running
// command. sort binds the same key, so this happens at run time.
func bindCategoriesFlag(cmd *cobra.Command) {
	if flag := cmd.Flags().Lookup("categories"); flag != nil && flag.Changed {
		viper.Set("sort.categories", flag.Value.String())
	}
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display every category with its description and destination folder.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindCategoriesFlag(cmd)

			set, path, err := loadCategories()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%d categories from %s", set.Len(), path)))
			fmt.Fprintln(out, cli.RenderCategoriesTable(set.Categories()))
			fmt.Fprintln(out, cli.MutedStyle.Render("Unmatched images go to "+model.FailedFolder+"/"))
			return nil
		},
	}
}

func validateCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the category definition file",
		Long:  `Parse the definition file and report duplicate names, missing fields or invalid folder names.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindCategoriesFlag(cmd)

			set, path, err := loadCategories()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"%s is valid: %d categories, %d folders (including %s)",
				path, set.Len(), len(set.Folders()), model.FailedFolder)))
			return nil
		},
	}
}
