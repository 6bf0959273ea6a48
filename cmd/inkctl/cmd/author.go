package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkctl/internal/domain/validation"
	"github.com/inkpress/inkctl/internal/service"
)

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Manage blog authors",
}

var (
	authorPage   int
	authorLimit  int
	authorSearch string
	authorName   string
	authorBio    string
	authorAvatar string
)

var authorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List authors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		list, err := app.authors.List(cmd.Context(), service.AuthorListParams{
			Page:   authorPage,
			Limit:  authorLimit,
			Search: authorSearch,
		})
		if err != nil {
			return err
		}
		return printResult(list, func() {
			for _, a := range list.Authors {
				fmt.Fprintf(os.Stdout, "%-26s %s\n", a.ID, a.Name)
			}
			printPagination(list.Pagination)
		})
	},
}

var authorGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		author, err := app.authors.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(author, func() {
			fmt.Fprintf(os.Stdout, "ID:   %s\n", author.ID)
			fmt.Fprintf(os.Stdout, "Name: %s\n", author.Name)
			if author.Bio != "" {
				fmt.Fprintf(os.Stdout, "Bio:  %s\n", author.Bio)
			}
		})
	},
}

var authorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an author",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		author, err := app.authors.Create(cmd.Context(), validation.AuthorInput{
			Name:   authorName,
			Bio:    authorBio,
			Avatar: authorAvatar,
		})
		if err != nil {
			return err
		}
		return printResult(author, func() {
			fmt.Fprintf(os.Stdout, "Created author %s (%s)\n", author.Name, author.ID)
		})
	},
}

var authorUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		author, err := app.authors.Update(cmd.Context(), args[0], validation.AuthorInput{
			Name:   authorName,
			Bio:    authorBio,
			Avatar: authorAvatar,
		})
		if err != nil {
			return err
		}
		return printResult(author, func() {
			fmt.Fprintf(os.Stdout, "Updated author %s (%s)\n", author.Name, author.ID)
		})
	},
}

var authorDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.authors.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Deleted.")
		return nil
	},
}

func init() {
	authorListCmd.Flags().IntVar(&authorPage, "page", 0, "page number")
	authorListCmd.Flags().IntVar(&authorLimit, "limit", 0, "items per page")
	authorListCmd.Flags().StringVar(&authorSearch, "search", "", "filter by name")

	for _, c := range []*cobra.Command{authorCreateCmd, authorUpdateCmd} {
		c.Flags().StringVar(&authorName, "name", "", "author name")
		c.Flags().StringVar(&authorBio, "bio", "", "author bio")
		c.Flags().StringVar(&authorAvatar, "avatar", "", "avatar URL")
	}

	authorCmd.AddCommand(authorListCmd, authorGetCmd, authorCreateCmd, authorUpdateCmd, authorDeleteCmd)
	rootCmd.AddCommand(authorCmd)
}
