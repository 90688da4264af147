package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"exifstudio/internal/metacache"
	"exifstudio/internal/session"
	"exifstudio/internal/tags"
)

const maxTagValueWidth = 60

func newShowCommand(cmdCtx *commandContext) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Show metadata for a file",
		Long:  "Show metadata for the selected file, or for the file referenced by position, id, or name.",
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

				md, ok := sess.Metadata(file.ID)
				if !ok {
					md = metacache.New(file.Name, file.Size, file.MIMEType)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s, %s)\n", file.Name, file.MIMEType, tags.FormatFileSize(file.Size))
				fmt.Fprintf(out, "ID: %s\n\n", file.ID)

				fmt.Fprintln(out, renderTable(
					[]string{"Group", "Tag", "Value"},
					tagRows(md, showAll),
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				if md.TagCount() == 0 {
					fmt.Fprintln(out, "No metadata tags. The file may carry no EXIF data or could not be decoded.")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include uncommon tags")
	return cmd
}

// tagRows orders metadata for display: file properties first, then engine
// tags grouped and alphabetical within each group. Without --all only the
// common tag set is shown.
func tagRows(md metacache.Metadata, showAll bool) [][]string {
	common := make(map[string]bool, len(tags.CommonTags))
	for _, name := range tags.CommonTags {
		common[name] = true
	}

	grouped := make(map[string][]string)
	for name := range md {
		if metacache.IsSynthetic(name) {
			continue
		}
		if !showAll && !common[name] {
			continue
		}
		group := tags.Group(name)
		grouped[group] = append(grouped[group], name)
	}

	rows := [][]string{
		{"File", tags.DisplayName(metacache.KeyFileName), fmt.Sprint(md[metacache.KeyFileName])},
		{"File", tags.DisplayName(metacache.KeyFileSize), formatSizeValue(md[metacache.KeyFileSize])},
		{"File", tags.DisplayName(metacache.KeyMIMEType), fmt.Sprint(md[metacache.KeyMIMEType])},
	}
	for _, group := range tags.GroupOrder {
		names := grouped[group]
		sort.Strings(names)
		for _, name := range names {
			rows = append(rows, []string{group, tags.DisplayName(name), renderValue(md[name])})
		}
	}
	return rows
}

func renderValue(value any) string {
	text := fmt.Sprint(value)
	text = tags.NormalizeExifDate(text)
	return tags.Truncate(text, maxTagValueWidth)
}

func formatSizeValue(value any) string {
	switch v := value.(type) {
	case int64:
		return tags.FormatFileSize(v)
	case float64:
		return tags.FormatFileSize(int64(v))
	default:
		return fmt.Sprint(value)
	}
}
