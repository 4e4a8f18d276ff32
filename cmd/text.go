package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/dlyt/docparse"
	"github.com/s0up4200/dlyt/textutil"
)

var showText bool

// docCmd groups local text commands
var docCmd = &cobra.Command{
	Use:   "text",
	Short: "Work with local documents",
}

type countResult struct {
	File  string        `json:"file"`
	Kind  docparse.Kind `json:"kind"`
	Count int           `json:"count"`
	Text  string        `json:"text,omitempty"`
}

var countCmd = &cobra.Command{
	Use:   "count <file>",
	Short: "Count the characters a document will consume",
	Long: `Extract the text of a txt, markdown, docx, html or pdf file, normalize
line endings and surrounding whitespace, and count its characters the way the
server bills them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := docparse.ParseFile(args[0])
		if err != nil {
			return err
		}
		normalized := textutil.Normalize(raw)

		result := countResult{
			File:  args[0],
			Kind:  docparse.KindOf(args[0]),
			Count: normalized.Count,
		}
		if showText {
			result.Text = normalized.Text
		}

		return printResult(result, func(w io.Writer) {
			fmt.Fprintf(w, "%s (%s): %d characters\n", result.File, result.Kind, result.Count)
			if showText {
				fmt.Fprintf(w, "\n%s\n", result.Text)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.AddCommand(countCmd)

	countCmd.Flags().BoolVar(&showText, "show", false, "also print the normalized text")
}
