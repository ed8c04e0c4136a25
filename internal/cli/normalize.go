package cli

import (
	"content-normalizer/internal/config"
	"content-normalizer/internal/remediate"
	"github.com/spf13/cobra"
)

// NewNormalizeCmd builds the full answer-to-index canonicalization
// subcommand.
func NewNormalizeCmd(configPath *string) *cobra.Command {
	var (
		apply               bool
		category            string
		limit               int
		unpublishUnresolved bool
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite every stored answer as a canonical JSON scalar (dry-run by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			s, err := openStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.cleanup()

			runner := remediate.New(s.questions, s.topics)
			rep, err := runner.Run(ctx, remediate.Options{
				Apply:               apply,
				Canonicalize:        true,
				Category:            category,
				Limit:               limit,
				UnpublishUnresolved: unpublishUnresolved,
			})
			if err != nil {
				return err
			}
			s.publishReport(ctx, "normalize", rep)
			return printReport(rep)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "persist changes (default is dry-run)")
	cmd.Flags().StringVar(&category, "category", "", "only process questions in this category slug")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many records (0 = no limit)")
	cmd.Flags().BoolVar(&unpublishUnresolved, "unpublish-unresolved", false, "clear the published flag on records whose answer cannot be resolved")
	return cmd
}
