package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/langid/internal/langmodel"
	"github.com/MeKo-Tech/langid/internal/models"
)

// modelEntry is one row of the models inventory.
type modelEntry struct {
	File          string  `json:"file" yaml:"file"`
	Language      string  `json:"language" yaml:"language"`
	NgramSize     int     `json:"ngram_size" yaml:"ngram_size"`
	Smooth        float64 `json:"smooth" yaml:"smooth"`
	PadUtterances bool    `json:"pad_utterances" yaml:"pad_utterances"`
	Contexts      int     `json:"contexts" yaml:"contexts"`
}

// modelsCmd lists the trained models in the models directory.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List trained models and their hyperparameters",
	Long: `List every serialized model document in the models directory together with
its hyperparameters.

Examples:
  langid models
  langid models --format yaml`,
	RunE: runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	modelsDir := models.Dir(cfg.ModelsDir)

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	paths, err := models.ListModelFiles(modelsDir)
	if err != nil {
		return err
	}

	entries := make([]modelEntry, 0, len(paths))
	for _, path := range paths {
		m, err := langmodel.Load(path)
		if err != nil {
			return err
		}
		entries = append(entries, modelEntry{
			File:          filepath.Base(path),
			Language:      m.Language(),
			NgramSize:     m.NgramSize(),
			Smooth:        m.Smooth(),
			PadUtterances: m.PadUtterances(),
			Contexts:      m.ContextCount(),
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		return yaml.NewEncoder(out).Encode(entries)
	default:
		if len(entries) == 0 {
			_, _ = fmt.Fprintf(out, "no models found in %s\n", modelsDir)
			return nil
		}
		_, _ = fmt.Fprintf(out, "%-16s %-8s %-6s %-10s %-6s %s\n",
			"FILE", "LANG", "N", "SMOOTH", "PAD", "CONTEXTS")
		for _, e := range entries {
			_, _ = fmt.Fprintf(out, "%-16s %-8s %-6d %-10g %-6t %d\n",
				e.File, e.Language, e.NgramSize, e.Smooth, e.PadUtterances, e.Contexts)
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().String("format", "text", "output format (text, json, yaml)")
}
