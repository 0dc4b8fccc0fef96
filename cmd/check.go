package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/render"
	"github.com/surge-downloader/magnet/internal/torrent"
)

var checkCmd = &cobra.Command{
	Use:   "check [magnet]...",
	Short: "Strictly validate magnet links",
	Long: `Check reports every problem a strict BitTorrent client would reject a magnet link for:
malformed parameters, a missing or unknown exact topic and invalid v2 multihashes.

Exits non-zero when any link has a problem.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := collectInputs(cmd, args)
		if err != nil {
			return err
		}

		r := render.New(cmd.OutOrStdout(), globalSettings.Output.Color)
		failed := 0
		for _, uri := range inputs {
			rep := torrent.Check(uri)
			if !rep.OK() {
				failed++
			}
			fmt.Fprint(cmd.OutOrStdout(), r.Report(rep))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d magnet link(s) failed the check", failed, len(inputs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("batch", "b", "", "File containing magnet links to check (one per line)")
	checkCmd.Flags().Bool("clipboard", false, "Check the magnet link on the clipboard")
}
