package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exifstudio/internal/config"
	"exifstudio/internal/session"
	"exifstudio/internal/tags"
)

func newAddCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Add image files to the workspace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				out := cmd.OutOrStdout()

				// One unreadable path must not abort the rest of the batch.
				inputs := make([]session.FileInput, 0, len(args))
				for _, arg := range args {
					input, err := loadInput(arg)
					if err != nil {
						fmt.Fprintf(out, "Skipped %s: %v\n", arg, err)
						continue
					}
					inputs = append(inputs, input)
				}

				result, err := sess.IngestBatch(ctx, inputs)
				if err != nil {
					return err
				}

				for _, skipped := range result.Skipped {
					fmt.Fprintf(out, "Skipped %s: %s\n", skipped.Name, skipped.Reason)
				}
				if len(result.Added) == 0 {
					return fmt.Errorf("no files added")
				}

				rows := make([][]string, 0, len(result.Added))
				for _, file := range result.Added {
					tagCount := 0
					if md, ok := sess.Metadata(file.ID); ok {
						tagCount = md.TagCount()
					}
					rows = append(rows, []string{
						shortID(file.ID),
						file.Name,
						tags.FormatFileSize(file.Size),
						file.MIMEType,
						fmt.Sprintf("%d", tagCount),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Size", "Type", "Tags"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				))
				fmt.Fprintf(out, "Added %d file(s)\n", len(result.Added))
				return nil
			})
		},
	}
}

func loadInput(arg string) (session.FileInput, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return session.FileInput{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return session.FileInput{}, err
	}
	if info.IsDir() {
		return session.FileInput{}, fmt.Errorf("is a directory; pass image files")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return session.FileInput{}, err
	}
	return session.FileInput{
		Name:         info.Name(),
		Content:      content,
		LastModified: info.ModTime(),
	}, nil
}
