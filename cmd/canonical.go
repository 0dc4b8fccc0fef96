package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/source"
)

var canonicalCmd = &cobra.Command{
	Use:   "canonical [magnet]...",
	Short: "Print the canonical key of each magnet link",
	Long: `Canonical prints one line per link: its kind and a key that is equal for links naming the
same content, whether the info hash was written in hex or base32.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := collectInputs(cmd, args)
		if err != nil {
			return err
		}
		for _, uri := range inputs {
			kind, key := source.CanonicalKey(uri)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", kind, key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(canonicalCmd)
	canonicalCmd.Flags().StringP("batch", "b", "", "File containing magnet links (one per line)")
	canonicalCmd.Flags().Bool("clipboard", false, "Use the magnet link on the clipboard")
}
