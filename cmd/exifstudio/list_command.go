package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"exifstudio/internal/session"
	"exifstudio/internal/tags"
)

func newListCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspace files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				out := cmd.OutOrStdout()
				files := sess.Registry().List()
				if len(files) == 0 {
					fmt.Fprintln(out, "Workspace is empty. Add files with `exifstudio add <path>`.")
					return nil
				}

				selected := sess.Registry().SelectedID()
				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(files))
				for i, file := range files {
					marker := ""
					if file.ID == selected {
						marker = selectionMarker(colorize)
					}
					tagCount := 0
					if md, ok := sess.Metadata(file.ID); ok {
						tagCount = md.TagCount()
					}
					rows = append(rows, []string{
						fmt.Sprintf("%d", i+1),
						marker,
						shortID(file.ID),
						file.Name,
						tags.FormatFileSize(file.Size),
						file.MIMEType,
						fmt.Sprintf("%d", tagCount),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "", "ID", "Name", "Size", "Type", "Tags"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
