package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/garyellow/groundwater-bot-go/internal/genai"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List Gemini models that support generateContent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		models, err := genai.ListGeminiModels(cmd.Context(), cfg.LLM.GeminiAPIKey, "", nil)
		if err != nil {
			return eris.Wrap(err, "models")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDISPLAY NAME")
		for _, m := range models {
			fmt.Fprintf(w, "%s\t%s\n", m.Name, m.DisplayName)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
