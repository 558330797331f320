package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/langid/internal/langmodel"
)

// trainCmd trains one model from a corpus and stores it as a JSON document.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a character n-gram model from a corpus",
	Long: `Train a character n-gram language model from a corpus file containing one
utterance per line (UTF-8) and save it as a JSON model document.

Examples:
  langid train --corpus fr.txt --language fr
  langid train --corpus en.txt --language en --ngram-size 4 --smooth 1e-4
  langid train --corpus ar.txt --language ar --no-pad --output-dir ./models`,
	RunE: runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	corpus, _ := cmd.Flags().GetString("corpus")
	language, _ := cmd.Flags().GetString("language")

	ngramSize := cfg.Train.NgramSize
	if cmd.Flags().Changed("ngram-size") {
		ngramSize, _ = cmd.Flags().GetInt("ngram-size")
	}

	smooth := cfg.Train.Smooth
	if cmd.Flags().Changed("smooth") {
		smooth, _ = cmd.Flags().GetFloat64("smooth")
	}

	pad := cfg.Train.PadUtterances
	if cmd.Flags().Changed("pad") {
		pad, _ = cmd.Flags().GetBool("pad")
	}
	if noPad, _ := cmd.Flags().GetBool("no-pad"); noPad {
		pad = false
	}

	outputDir := cfg.Train.OutputDir
	if cmd.Flags().Changed("output-dir") {
		outputDir, _ = cmd.Flags().GetString("output-dir")
	}

	tag := langmodel.CanonicalTag(language)
	outputName, _ := cmd.Flags().GetString("output-name")
	if outputName == "" {
		outputName = tag
	}

	model, err := langmodel.New(langmodel.Params{
		Language:      tag,
		PadUtterances: pad,
		NgramSize:     ngramSize,
		Smooth:        smooth,
	})
	if err != nil {
		return err
	}

	f, err := os.Open(corpus)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	var bar *pb.ProgressBar
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		bar = pb.Full.Start64(info.Size())
		bar.SetWriter(cmd.ErrOrStderr())
		reader = bar.NewProxyReader(f)
	}

	slog.Info("Training model", "corpus", corpus, "language", tag,
		"ngram_size", ngramSize, "smooth", smooth, "pad_utterances", pad)
	if err := model.TrainReader(reader); err != nil {
		return fmt.Errorf("train from %s: %w", corpus, err)
	}
	if bar != nil {
		bar.Finish()
	}

	if err := model.Save(outputDir, outputName); err != nil {
		return err
	}
	slog.Info("Model saved", "dir", outputDir, "name", outputName,
		"contexts", model.ContextCount())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Model for %q saved to %s/%s%s\n",
		tag, outputDir, outputName, langmodel.Extension)
	return nil
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().String("corpus", "", "corpus file with one utterance per line (required)")
	trainCmd.Flags().String("language", "", "language tag of the corpus (required)")
	trainCmd.Flags().Int("ngram-size", langmodel.DefaultNgramSize, "size of the n-gram windows")
	trainCmd.Flags().Float64("smooth", langmodel.DefaultSmooth, "additive smoothing constant")
	trainCmd.Flags().Bool("pad", true, "pad utterances with boundary tokens")
	trainCmd.Flags().Bool("no-pad", false, "disable utterance padding")
	trainCmd.Flags().String("output-dir", "models", "directory for the saved model")
	trainCmd.Flags().String("output-name", "", "filename for the saved model (default: language tag)")

	_ = trainCmd.MarkFlagRequired("corpus")
	_ = trainCmd.MarkFlagRequired("language")
}
