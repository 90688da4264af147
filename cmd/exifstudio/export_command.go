package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"exifstudio/internal/config"
	"exifstudio/internal/session"
)

func newExportCommand(cmdCtx *commandContext) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write a file's current content to disk",
		Long:  "Export the selected file, or the referenced file, under its download name (<base>_modified.<ext>).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				ref := ""
				if len(args) == 1 {
					ref = args[0]
				}
				file, err := resolveFile(sess, ref)
				if err != nil {
					return err
				}

				dest := destDir
				if dest != "" {
					dest, err = config.ExpandPath(dest)
					if err != nil {
						return err
					}
				}

				path, err := sess.Export(ctx, file.ID, dest)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", file.Name, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&destDir, "dir", "d", "", "Destination directory (defaults to the configured export directory)")
	return cmd
}
