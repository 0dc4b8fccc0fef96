package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surge-downloader/magnet/internal/base32"
	"github.com/surge-downloader/magnet/internal/bep53"
	"github.com/surge-downloader/magnet/internal/magnet"
	"github.com/surge-downloader/magnet/internal/utils"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a magnet link from its parts",
	Long: `Encode builds a magnet link from flags, a JSON record (as printed by 'magnet decode -f json')
or both. Flags override the matching fields of the record.

The link is printed as a URI unless --format is given, in which case it is decoded again
and printed in that format.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := buildMagnet(cmd)
		if err != nil {
			return err
		}

		uri := magnet.Encode(m)
		utils.Debug("encode: %s", uri)
		if !cmd.Flags().Changed("format") {
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		}
		return writeMagnets(cmd.OutOrStdout(), []*magnet.Magnet{magnet.Decode(uri)})
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("from-json", "", "Start from a JSON magnet record (\"-\" for stdin)")
	encodeCmd.Flags().StringP("name", "n", "", "Display name (dn)")
	encodeCmd.Flags().String("hash", "", "v1 info hash, 40 hex or 32 base32 characters")
	encodeCmd.Flags().String("hash-v2", "", "v2 info hash, 64 hex characters (sha2-256 digest)")
	encodeCmd.Flags().String("public-key", "", "BEP 46 public key, 64 hex characters")
	encodeCmd.Flags().Int64("length", 0, "Exact length in bytes (xl)")
	encodeCmd.Flags().StringArrayP("tracker", "t", nil, "Tracker URL (repeatable)")
	encodeCmd.Flags().StringArrayP("webseed", "w", nil, "Web seed URL (repeatable)")
	encodeCmd.Flags().StringArray("peer", nil, "Peer address host:port (repeatable)")
	encodeCmd.Flags().StringArrayP("keyword", "k", nil, "Keyword (repeatable)")
	encodeCmd.Flags().String("select", "", "Files to select, e.g. 0,2-4")
	encodeCmd.Flags().StringArray("param", nil, "Extra key=value parameter (repeatable)")
	encodeCmd.Flags().Bool("default-trackers", false, "Append the default trackers from settings")
}

// buildMagnet assembles the record described by the encode flags
func buildMagnet(cmd *cobra.Command) (*magnet.Magnet, error) {
	flags := cmd.Flags()
	m := &magnet.Magnet{}

	if path, _ := flags.GetString("from-json"); path != "" {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = readAll(cmd)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("invalid magnet record in %s: %w", path, err)
		}
	}

	if name, _ := flags.GetString("name"); name != "" {
		m.Name = name
	}

	if hash, _ := flags.GetString("hash"); hash != "" {
		infoHash, err := normalizeInfoHash(hash)
		if err != nil {
			return nil, err
		}
		m.InfoHash = infoHash
	}
	if hash, _ := flags.GetString("hash-v2"); hash != "" {
		if err := requireHex(hash, 64, "hash-v2"); err != nil {
			return nil, err
		}
		m.InfoHashV2 = strings.ToLower(hash)
	}
	if key, _ := flags.GetString("public-key"); key != "" {
		if err := requireHex(key, 64, "public-key"); err != nil {
			return nil, err
		}
		m.PublicKey = strings.ToLower(key)
	}

	if flags.Changed("length") {
		length, _ := flags.GetInt64("length")
		if length < 0 {
			return nil, fmt.Errorf("invalid length: %d", length)
		}
		m.XL = magnet.Scalar(strconv.FormatInt(length, 10))
	}

	trackers, _ := flags.GetStringArray("tracker")
	if useDefaults, _ := flags.GetBool("default-trackers"); useDefaults {
		trackers = append(trackers, globalSettings.Encode.DefaultTrackers...)
	}
	if len(trackers) > 0 {
		set := magnet.NewOrderedSet(m.Announce...)
		set.Add(trackers...)
		m.Announce = set.Items()
	}

	if seeds, _ := flags.GetStringArray("webseed"); len(seeds) > 0 {
		set := magnet.NewOrderedSet(m.URLList...)
		set.Add(seeds...)
		m.URLList = set.Items()
	}
	if peers, _ := flags.GetStringArray("peer"); len(peers) > 0 {
		set := magnet.NewOrderedSet(m.PeerAddresses...)
		set.Add(peers...)
		m.PeerAddresses = set.Items()
	}
	if keywords, _ := flags.GetStringArray("keyword"); len(keywords) > 0 {
		m.Keywords = append(m.Keywords, keywords...)
	}

	if sel, _ := flags.GetString("select"); sel != "" {
		indices := bep53.ParseString(sel)
		if len(indices) == 0 {
			return nil, fmt.Errorf("invalid select-only ranges: %q", sel)
		}
		m.SO = magnet.Scalar(indices)
	}

	params, _ := flags.GetStringArray("param")
	for _, p := range params {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", p)
		}
		m.Extra.Push(key, val)
	}

	return m, nil
}

// normalizeInfoHash accepts a v1 hash in hex or base32 and returns lowercase hex
func normalizeInfoHash(hash string) (string, error) {
	switch len(hash) {
	case 40:
		if err := requireHex(hash, 40, "hash"); err != nil {
			return "", err
		}
		return strings.ToLower(hash), nil
	case 32:
		buf, err := base32.DecodeString(hash)
		if err != nil {
			return "", fmt.Errorf("invalid hash: %w", err)
		}
		return hex.EncodeToString(buf), nil
	default:
		return "", fmt.Errorf("invalid hash: want 40 hex or 32 base32 characters, got %d", len(hash))
	}
}

func requireHex(s string, n int, flag string) error {
	if len(s) != n {
		return fmt.Errorf("invalid %s: want %d hex characters, got %d", flag, n, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return fmt.Errorf("invalid %s: %w", flag, err)
	}
	return nil
}
