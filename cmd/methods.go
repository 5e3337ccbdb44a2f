package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ArnaudCalmettes/seuil/imp"
)

// methodsCmd represents the methods command
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List thresholding methods",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 5, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION\tDETAILS\t")
		for _, m := range imp.Methods {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", m, m.Description(), m.About())
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
}
