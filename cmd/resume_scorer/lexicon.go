package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

func newLexiconCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:       "lexicon [keywords|technical|soft]",
		Short:     "Print the term lists used for scoring",
		Long:      "Print the fixed keyword, technical skill and soft skill lists, one term per line. With no argument all three are printed.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{lexicon.NameKeywords, lexicon.NameTechnical, lexicon.NameSoft},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexicon(cmd.OutOrStdout(), args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func runLexicon(w io.Writer, args []string, asJSON bool) error {
	if len(args) == 1 {
		lex, ok := lexicon.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown lexicon %q", args[0])
		}
		if asJSON {
			return writeJSON(w, lex.Terms())
		}
		for _, term := range lex.Terms() {
			if _, err := fmt.Fprintln(w, term); err != nil {
				return err
			}
		}
		return nil
	}

	if asJSON {
		return writeJSON(w, types.LexiconResponse{
			Keywords:  lexicon.CommonKeywords.Terms(),
			Technical: lexicon.TechnicalSkills.Terms(),
			Soft:      lexicon.SoftSkills.Terms(),
		})
	}
	for i, lex := range lexicon.Builtin() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s (%d)\n", lex.Name(), lex.Len())
		for _, term := range lex.Terms() {
			fmt.Fprintln(w, term)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
