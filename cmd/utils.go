package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/clipboard"
	"github.com/surge-downloader/magnet/internal/config"
	"github.com/surge-downloader/magnet/internal/magnet"
	"github.com/surge-downloader/magnet/internal/render"
	"github.com/surge-downloader/magnet/internal/source"
	"github.com/surge-downloader/magnet/internal/torrent"
	"github.com/surge-downloader/magnet/internal/utils"
)

// readClipboard is swapped out in tests
var readClipboard = clipboard.ReadMagnet

// readInputsFromFile reads magnet links from a file, one per line.
// A bencoded .torrent file yields the single magnet it describes.
func readInputsFromFile(path string, stdin io.Reader) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if source.Sniff(data) == source.KindTorrentFile {
		m, err := torrent.FromTorrent(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []string{magnet.Encode(m)}, nil
	}

	var uris []string
	for _, line := range source.SplitLines(string(data)) {
		if source.KindOf(line) != source.KindMagnet {
			utils.Debug("skipping non-magnet line in %s: %q", path, line)
			continue
		}
		uris = append(uris, source.Normalize(line))
	}
	return uris, nil
}

func readAll(cmd *cobra.Command) ([]byte, error) {
	return io.ReadAll(cmd.InOrStdin())
}

// collectInputs gathers magnet links from args, --batch and --clipboard
func collectInputs(cmd *cobra.Command, args []string) ([]string, error) {
	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		inputs = append(inputs, source.Normalize(arg))
	}

	if batch, _ := cmd.Flags().GetString("batch"); batch != "" {
		uris, err := readInputsFromFile(batch, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, uris...)
	}

	if useClipboard, _ := cmd.Flags().GetBool("clipboard"); useClipboard {
		uri, err := readClipboard()
		if err != nil {
			return nil, fmt.Errorf("clipboard: %w", err)
		}
		inputs = append(inputs, uri)
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no magnet links given")
	}
	return inputs, nil
}

// writeMagnets prints each magnet in the configured output format
func writeMagnets(w io.Writer, magnets []*magnet.Magnet) error {
	switch globalSettings.Output.Format {
	case config.FormatURI:
		for _, m := range magnets {
			fmt.Fprintln(w, magnet.Encode(m))
		}
	case config.FormatJSON:
		for _, m := range magnets {
			out, err := render.JSON(m)
			if err != nil {
				return err
			}
			fmt.Fprint(w, out)
		}
	default:
		r := render.New(w, globalSettings.Output.Color)
		blocks := make([]string, 0, len(magnets))
		for _, m := range magnets {
			blocks = append(blocks, r.Magnet(m))
		}
		fmt.Fprint(w, strings.Join(blocks, "\n"))
	}
	return nil
}
