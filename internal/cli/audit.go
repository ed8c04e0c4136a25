package cli

import (
	"content-normalizer/internal/audit"
	"content-normalizer/internal/config"
	"content-normalizer/internal/domain"
	"github.com/spf13/cobra"
)

// NewAuditCmd builds the read-only corpus audit subcommand.
func NewAuditCmd(configPath *string) *cobra.Command {
	var maxLevel string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Scan the corpus and report structural defects (read-only)",
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

			rep, err := audit.New(s.questions, s.topics).Run(ctx, domain.QuestionFilter{MaxLevel: maxLevel})
			if err != nil {
				return err
			}
			s.publishReport(ctx, "audit", rep)
			return printReport(rep)
		},
	}

	cmd.Flags().StringVar(&maxLevel, "max-level", "", "only scan questions at or below this level code (e.g. E3)")
	return cmd
}
