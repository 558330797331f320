package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/langid/internal/identifier"
	"github.com/MeKo-Tech/langid/internal/models"
)

// identifyCmd picks the most likely language for a text.
var identifyCmd = &cobra.Command{
	Use:   "identify [text]",
	Short: "Identify the language of a text",
	Long: `Score a text under every model in the models directory and print the
language tag of the best-scoring model.

Examples:
  langid identify "Bonjour le monde"
  langid identify --all "Bonjour le monde"
  langid identify --models-dir ./models "Hello world"`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func runIdentify(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// models_dir is viper-bound to the root --models-dir flag.
	modelsDir := models.Dir(cfg.ModelsDir)

	id, err := identifier.LoadDirectory(modelsDir)
	if err != nil {
		return err
	}
	id.SetWorkers(cfg.Identify.Workers)

	text := args[0]

	if all, _ := cmd.Flags().GetBool("all"); all {
		for _, s := range id.Scores(text) {
			if !s.OK {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s n/a\n", s.Language)
				continue
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s %.6f\n", s.Language, s.Score)
		}
	}

	language, ok := id.Identify(text)
	if !ok {
		return fmt.Errorf("text yields no n-grams under any model and cannot be identified")
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), language)
	return nil
}

func init() {
	rootCmd.AddCommand(identifyCmd)

	identifyCmd.Flags().Bool("all", false, "print every model's score before the winner")
}
