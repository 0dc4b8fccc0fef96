package cmd

import (
	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/magnet"
	"github.com/surge-downloader/magnet/internal/utils"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [magnet]...",
	Short: "Decode magnet links into their parts",
	Long: `Decode one or more magnet links and print the parameters they carry.

Malformed parameters are skipped rather than rejected; use 'magnet check' for a strict report.
Links can also be read from a file (--batch, "-" for stdin) or from the clipboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := collectInputs(cmd, args)
		if err != nil {
			return err
		}

		magnets := make([]*magnet.Magnet, 0, len(inputs))
		for _, uri := range inputs {
			utils.Debug("decode: %s", uri)
			magnets = append(magnets, magnet.Decode(uri))
		}
		return writeMagnets(cmd.OutOrStdout(), magnets)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("batch", "b", "", "File containing magnet links to decode (one per line)")
	decodeCmd.Flags().Bool("clipboard", false, "Decode the magnet link on the clipboard")
}
