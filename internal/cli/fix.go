package cli

import (
	"content-normalizer/internal/config"
	"content-normalizer/internal/remediate"
	"github.com/spf13/cobra"
)

// NewFixCmd builds the mechanical dedup/canonicalization subcommand. It
// dedupes option lists and corrects answers contradicted by their
// explanation, but never renumbers answers beyond that.
func NewFixCmd(configPath *string) *cobra.Command {
	var (
		apply             bool
		maxLevel          string
		alignLevels       bool
		ignoreExplanation bool
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Dedupe options and repair explanation contradictions (dry-run by default)",
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
				Apply:             apply,
				MaxLevel:          maxLevel,
				AlignLevels:       alignLevels,
				IgnoreExplanation: ignoreExplanation,
			})
			if err != nil {
				return err
			}
			s.publishReport(ctx, "fix", rep)
			return printReport(rep)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "persist changes (default is dry-run)")
	cmd.Flags().StringVar(&maxLevel, "max-level", "", "only process questions at or below this level code")
	cmd.Flags().BoolVar(&alignLevels, "align-levels", false, "set each question's level to its parent topic's level")
	cmd.Flags().BoolVar(&ignoreExplanation, "ignore-explanation", false, "keep the stored resolution even when the explanation contradicts it")
	return cmd
}
