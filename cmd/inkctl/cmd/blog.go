package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpress/inkctl/internal/domain/validation"
	"github.com/inkpress/inkctl/internal/service"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Manage blog posts",
}

var (
	blogPage       int
	blogLimit      int
	blogSearch     string
	blogTitle      string
	blogContent    string
	blogMainImage  string
	blogCoverImage string
	blogAuthor     string
)

var blogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		list, err := app.blogs.List(cmd.Context(), service.BlogListParams{
			Page:   blogPage,
			Limit:  blogLimit,
			Search: blogSearch,
		})
		if err != nil {
			return err
		}
		return printResult(list, func() {
			for _, b := range list.Blogs {
				fmt.Fprintf(os.Stdout, "%-26s %s\n", b.ID, b.Title)
			}
			printPagination(list.Pagination)
		})
	},
}

var blogGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		blog, err := app.blogs.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(blog, func() {
			fmt.Fprintf(os.Stdout, "ID:     %s\n", blog.ID)
			fmt.Fprintf(os.Stdout, "Title:  %s\n", blog.Title)
			fmt.Fprintf(os.Stdout, "Slug:   %s\n", blog.Slug)
			fmt.Fprintf(os.Stdout, "Author: %s\n", blog.Author)
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, blog.Content)
		})
	},
}

// blogInput builds the payload from flags, reading content from a file
// when the --content value starts with '@'.
func blogInput() (validation.BlogInput, error) {
	content := blogContent
	if len(content) > 1 && content[0] == '@' {
		data, err := os.ReadFile(content[1:])
		if err != nil {
			return validation.BlogInput{}, fmt.Errorf("read content file: %w", err)
		}
		content = string(data)
	}
	return validation.BlogInput{
		Title:      blogTitle,
		Content:    content,
		MainImage:  blogMainImage,
		CoverImage: blogCoverImage,
		Author:     blogAuthor,
	}, nil
}

var blogCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a blog post",
	Long: `Create a blog post.

The --content flag takes the post body inline, or reads it from a file
when prefixed with '@':
  inkctl blog create --title "Hello" --content @post.md ...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		in, err := blogInput()
		if err != nil {
			return err
		}
		blog, err := app.blogs.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		return printResult(blog, func() {
			fmt.Fprintf(os.Stdout, "Created blog %s (%s)\n", blog.Title, blog.ID)
		})
	},
}

var blogUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		in, err := blogInput()
		if err != nil {
			return err
		}
		blog, err := app.blogs.Update(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		return printResult(blog, func() {
			fmt.Fprintf(os.Stdout, "Updated blog %s (%s)\n", blog.Title, blog.ID)
		})
	},
}

var blogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a blog post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.blogs.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Deleted.")
		return nil
	},
}

func init() {
	blogListCmd.Flags().IntVar(&blogPage, "page", 0, "page number")
	blogListCmd.Flags().IntVar(&blogLimit, "limit", 0, "items per page")
	blogListCmd.Flags().StringVar(&blogSearch, "search", "", "filter by title")

	for _, c := range []*cobra.Command{blogCreateCmd, blogUpdateCmd} {
		c.Flags().StringVar(&blogTitle, "title", "", "post title")
		c.Flags().StringVar(&blogContent, "content", "", "post body, or @file to read from a file")
		c.Flags().StringVar(&blogMainImage, "main-image", "", "main image URL")
		c.Flags().StringVar(&blogCoverImage, "cover-image", "", "cover image URL")
		c.Flags().StringVar(&blogAuthor, "author", "", "author ID")
	}

	blogCmd.AddCommand(blogListCmd, blogGetCmd, blogCreateCmd, blogUpdateCmd, blogDeleteCmd)
	rootCmd.AddCommand(blogCmd)
}
