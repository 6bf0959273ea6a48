package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkctl/internal/domain/validation"
	"github.com/inkpress/inkctl/internal/service"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage catalog categories",
}

var (
	categoryPage        int
	categoryLimit       int
	categoryActive      bool
	categoryParent      string
	categoryName        string
	categoryDescription string
	categoryImage       string
)

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		params := service.CategoryListParams{
			Page:           categoryPage,
			Limit:          categoryLimit,
			ParentCategory: categoryParent,
		}
		if cmd.Flags().Changed("active") {
			params.IsActive = &categoryActive
		}
		list, err := app.categories.List(cmd.Context(), params)
		if err != nil {
			return err
		}
		return printResult(list, func() {
			for _, c := range list.Categories {
				state := "active"
				if !c.IsActive {
					state = "inactive"
				}
				fmt.Fprintf(os.Stdout, "%-26s %-30s %s\n", c.ID, c.Name, state)
			}
			printPagination(list.Pagination)
		})
	},
}

var categoryGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		cat, err := app.categories.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cat, func() {
			fmt.Fprintf(os.Stdout, "ID:          %s\n", cat.ID)
			fmt.Fprintf(os.Stdout, "Name:        %s\n", cat.Name)
			fmt.Fprintf(os.Stdout, "Slug:        %s\n", cat.Slug)
			if cat.Description != "" {
				fmt.Fprintf(os.Stdout, "Description: %s\n", cat.Description)
			}
			if cat.ParentCategory != "" {
				fmt.Fprintf(os.Stdout, "Parent:      %s\n", cat.ParentCategory)
			}
			fmt.Fprintf(os.Stdout, "Active:      %t\n", cat.IsActive)
		})
	},
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		in := validation.CategoryInput{
			Name:           categoryName,
			Description:    categoryDescription,
			Image:          categoryImage,
			ParentCategory: categoryParent,
			IsActive:       categoryActive,
		}
		cat, err := app.categories.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printResult(cat, func() {
			fmt.Fprintf(os.Stdout, "Created category %s (%s)\n", cat.Name, cat.ID)
		})
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		in := validation.CategoryInput{
			Name:           categoryName,
			Description:    categoryDescription,
			Image:          categoryImage,
			ParentCategory: categoryParent,
			IsActive:       categoryActive,
		}
		cat, err := app.categories.Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		return printResult(cat, func() {
			fmt.Fprintf(os.Stdout, "Updated category %s (%s)\n", cat.Name, cat.ID)
		})
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.categories.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Deleted.")
		return nil
	},
}

func init() {
	categoryListCmd.Flags().IntVar(&categoryPage, "page", 0, "page number")
	categoryListCmd.Flags().IntVar(&categoryLimit, "limit", 0, "items per page")
	categoryListCmd.Flags().BoolVar(&categoryActive, "active", false, "filter by active state")
	categoryListCmd.Flags().StringVar(&categoryParent, "parent", "", "filter by parent category ID")

	for _, c := range []*cobra.Command{categoryCreateCmd, categoryUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "category name")
		c.Flags().StringVar(&categoryDescription, "description", "", "category description")
		c.Flags().StringVar(&categoryImage, "image", "", "image URL")
		c.Flags().StringVar(&categoryParent, "parent", "", "parent category ID")
		c.Flags().BoolVar(&categoryActive, "active", true, "whether the category is active")
	}

	categoryCmd.AddCommand(categoryListCmd, categoryGetCmd, categoryCreateCmd, categoryUpdateCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}

func printPagination(p service.Pagination) {
	if p.TotalPages > 1 {
		fmt.Fprintf(os.Stdout, "Page %d of %d (%d total)\n", p.CurrentPage, p.TotalPages, p.Total)
	}
}
