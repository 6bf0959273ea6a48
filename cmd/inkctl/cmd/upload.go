package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file> [file...]",
	Short: "Upload images",
	Long: `Upload one or more images to the media store.

A single file goes to the single-upload endpoint; several files are
sent together as a batch. The returned URLs can be passed to
'blog create' and 'category create'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	handles := make([]*os.File, 0, len(args))
	defer func() {
		for _, f := range handles {
			f.Close()
		}
	}()

	files := make(map[string]io.Reader, len(args))
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		handles = append(handles, f)
		files[path] = f
	}

	if len(args) == 1 {
		res, err := app.uploads.UploadSingle(cmd.Context(), args[0], files[args[0]])
		if err != nil {
			return err
		}
		return printResult(res, func() {
			fmt.Fprintln(os.Stdout, res.URL)
		})
	}

	res, err := app.uploads.UploadMultiple(cmd.Context(), files)
	if err != nil {
		return err
	}
	return printResult(res, func() {
		for _, u := range res.URLs {
			fmt.Fprintln(os.Stdout, u)
		}
	})
}
