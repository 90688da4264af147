package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"exifstudio/internal/session"
)

func newSelectCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "select <file>",
		Short: "Select the active file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				file, err := resolveFile(sess, args[0])
				if err != nil {
					return err
				}
				if err := sess.Select(file.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s)\n", file.Name, shortID(file.ID))
				return nil
			})
		},
	}
}

func newRemoveCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <file>",
		Short: "Remove a file from the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				file, err := resolveFile(sess, args[0])
				if err != nil {
					return err
				}
				if err := sess.Remove(ctx, file.ID); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Removed %s\n", file.Name)
				if selected, ok := sess.Registry().Selected(); ok {
					fmt.Fprintf(out, "Selection moved to %s (%s)\n", selected.Name, shortID(selected.ID))
				}
				return nil
			})
		},
	}
}

func newClearCommand(cmdCtx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every file from the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				count := sess.Registry().Len()
				if count == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Workspace is already empty.")
					return nil
				}
				if !force {
					return fmt.Errorf("this removes %d file(s) from the workspace; re-run with --force", count)
				}
				sess.Clear(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d file(s)\n", count)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation check")
	return cmd
}
