package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/magnet"
	"github.com/surge-downloader/magnet/internal/source"
	"github.com/surge-downloader/magnet/internal/torrent"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.torrent>...",
	Short: "Build magnet links from .torrent files",
	Long: `Convert reads .torrent metainfo files and prints the magnet link for each one,
carrying the info hash (v1 and v2), name, length, trackers and web seeds.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		magnets := make([]*magnet.Magnet, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if source.Sniff(data) != source.KindTorrentFile {
				return fmt.Errorf("%s: not a .torrent file", path)
			}
			m, err := torrent.FromTorrent(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			magnets = append(magnets, m)
		}
		return writeMagnets(cmd.OutOrStdout(), magnets)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
