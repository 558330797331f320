package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/langid/internal/langmodel"
	"github.com/MeKo-Tech/langid/internal/models"
)

// scoreCmd scores a single utterance under one trained model.
var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score an utterance under a trained model",
	Long: `Compute the length-normalized log-probability of an utterance under a
single trained model.

A bare model name is resolved inside the models directory; a path is used
as-is.

Examples:
  langid score --model fr "Bonjour le monde"
  langid score --model models/fr.json "Bonjour le monde"`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	modelPath, _ := cmd.Flags().GetString("model")
	if !strings.ContainsRune(modelPath, os.PathSeparator) {
		cfg := GetConfig()
		modelPath = models.ModelPath(models.Dir(cfg.ModelsDir), modelPath)
	}

	model, err := langmodel.Load(modelPath)
	if err != nil {
		return err
	}
	if !model.Trained() {
		return fmt.Errorf("model %s has an empty vocabulary and cannot score", modelPath)
	}

	score, ok := model.Score(args[0])
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "utterance too short: no n-grams to score")
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", score)
	return nil
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("model", "", "model name or path to a serialized model document (required)")
	_ = scoreCmd.MarkFlagRequired("model")
}
