package commands

import (
	"github.com/spf13/cobra"

	"github.com/tmc/punchsheet/internal/render"
)

func newTagsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the projects and shift attachments of your punch clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().Data(cmd.Context(), opts.sessions(cmd))
			if err != nil {
				return err
			}

			colored := !opts.cfg.NoColor
			tags := render.NewTableSink(cmd.OutOrStdout(), colored)
			render.Tags(data.Tags, tags)
			if err := tags.Flush(); err != nil {
				return err
			}

			attachments := render.NewTableSink(cmd.OutOrStdout(), colored)
			render.Attachments(data.Attachments, attachments)
			return attachments.Flush()
		},
	}
}
