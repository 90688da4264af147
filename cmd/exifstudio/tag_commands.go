package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"exifstudio/internal/session"
	"exifstudio/internal/tags"
)

func newTagCommand(cmdCtx *commandContext) *cobra.Command {
	tagCmd := &cobra.Command{
		Use:   "tag",
		Short: "Edit metadata tags",
	}

	tagCmd.AddCommand(newTagSetCommand(cmdCtx))
	tagCmd.AddCommand(newTagRemoveCommand(cmdCtx))
	tagCmd.AddCommand(newTagClearCommand(cmdCtx))
	tagCmd.AddCommand(newTagNamesCommand())

	return tagCmd
}

func newTagSetCommand(cmdCtx *commandContext) *cobra.Command {
	var fileRef string

	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Set a tag value on the selected file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				file, err := resolveFile(sess, fileRef)
				if err != nil {
					return err
				}
				name, value := args[0], args[1]
				if err := sess.UpdateTag(ctx, file.ID, name, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s on %s\n", name, value, file.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fileRef, "file", "", "File position, id, or name (defaults to the selected file)")
	return cmd
}

func newTagRemoveCommand(cmdCtx *commandContext) *cobra.Command {
	var fileRef string

	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a tag from the selected file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				file, err := resolveFile(sess, fileRef)
				if err != nil {
					return err
				}
				if err := sess.RemoveTag(ctx, file.ID, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[0], file.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fileRef, "file", "", "File position, id, or name (defaults to the selected file)")
	return cmd
}

func newTagClearCommand(cmdCtx *commandContext) *cobra.Command {
	var fileRef string
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every tag from the selected file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withSession(cmd, func(ctx context.Context, sess *session.Session) error {
				file, err := resolveFile(sess, fileRef)
				if err != nil {
					return err
				}
				if !force {
					return fmt.Errorf("this strips all metadata from %s; re-run with --force", file.Name)
				}
				if err := sess.ClearAllTags(ctx, file.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared all tags from %s\n", file.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fileRef, "file", "", "File position, id, or name (defaults to the selected file)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation check")
	return cmd
}

func newTagNamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "names",
		Short:       "List commonly edited tag names",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(tags.CommonTags))
			for _, name := range tags.CommonTags {
				rows = append(rows, []string{name, tags.DisplayName(name), tags.Group(name)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tag", "Display Name", "Group"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
