package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"attrition-go/internal/scoring"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newScoreCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "score <answers-file>",
		Short: "Score survey answers from a YAML or JSON file",
		Long: "Score survey answers from a YAML or JSON file. The file holds one\n" +
			"response as a mapping of survey keys to answers, or a list of them.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), args[0], mode, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(scoring.ModeCorrected), "Scoring mode: corrected or legacy")
	return cmd
}

func runScore(ctx context.Context, path, rawMode string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mode, err := scoring.ParseMode(rawMode)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}
	batch, single, err := parseAnswerFile(data)
	if err != nil {
		return err
	}

	scorer := scoring.NewScorer(mode)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if single {
		return enc.Encode(scorer.Evaluate(batch[0]))
	}
	results, err := scorer.EvaluateAll(ctx, batch)
	if err != nil {
		return err
	}
	return enc.Encode(results)
}

// parseAnswerFile accepts a single mapping or a list of mappings. JSON
// input parses as YAML.
func parseAnswerFile(data []byte) ([]scoring.Answers, bool, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, false, fmt.Errorf("parse answers: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, false, fmt.Errorf("answers file is empty")
	}

	doc := node.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		var raw map[string]string
		if err := doc.Decode(&raw); err != nil {
			return nil, false, fmt.Errorf("parse answers: %w", err)
		}
		a, err := scoring.ParseAnswers(raw)
		if err != nil {
			return nil, false, err
		}
		return []scoring.Answers{a}, true, nil
	case yaml.SequenceNode:
		var raws []map[string]string
		if err := doc.Decode(&raws); err != nil {
			return nil, false, fmt.Errorf("parse answers: %w", err)
		}
		batch := make([]scoring.Answers, len(raws))
		for i, raw := range raws {
			a, err := scoring.ParseAnswers(raw)
			if err != nil {
				return nil, false, fmt.Errorf("response %d: %w", i+1, err)
			}
			batch[i] = a
		}
		return batch, false, nil
	}
	return nil, false, fmt.Errorf("answers must be a mapping or a list of mappings")
}
