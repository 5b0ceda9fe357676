package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/internal/service/lookup"
)

type lookupOutput struct {
	Word          string              `json:"word"`
	Translation   string              `json:"translation"`
	Confidence    float64             `json:"confidence"`
	Pronunciation string              `json:"pronunciation"`
	WordType      domain.WordType     `json:"wordType"`
	Definitions   []domain.Definition `json:"definitions"`
	Examples      []domain.Example    `json:"examples"`
	Synonyms      []string            `json:"synonyms"`
	Antonyms      []string            `json:"antonyms"`
	Error         string              `json:"error,omitempty"`
}

func toLookupOutput(word string, res lookup.Result) lookupOutput {
	out := lookupOutput{
		Word:          word,
		Translation:   res.Translation,
		Confidence:    res.Confidence,
		Pronunciation: res.Pronunciation,
		WordType:      res.WordType,
		Definitions:   res.Definitions,
		Examples:      res.Examples,
		Synonyms:      res.Synonyms,
		Antonyms:      res.Antonyms,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

func newLookupCmd(g *globalFlags) *cobra.Command {
	lf := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup <word>...",
		Short: "Translate and define words against the live providers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := lf.service(g, g.logger(cmd.ErrOrStderr()))

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(len(args))*2*lf.timeout)
			defer cancel()

			out := make([]lookupOutput, 0, len(args))
			for _, arg := range args {
				word := domain.NormalizeText(arg)
				if word == "" {
					continue
				}
				out = append(out, toLookupOutput(word, svc.Lookup(ctx, word, g.source, g.target)))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	lf.register(cmd)
	return cmd
}
