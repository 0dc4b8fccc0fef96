// Package testutil builds the .torrent and link-list fixtures shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/anacrolix/torrent/bencode"
)

// SingleFileTorrent returns a bencoded metainfo file describing one file of the given
// length, and the bencoded info dictionary its info hash is taken over.
func SingleFileTorrent(name string, length int64, announce string) (data, info []byte, err error) {
	infoDict := map[string]any{
		"name":         name,
		"piece length": int64(16384),
		"length":       length,
		"pieces":       []byte("12345678901234567890"),
	}
	info, err = bencode.Marshal(infoDict)
	if err != nil {
		return nil, nil, err
	}

	root := map[string]any{"info": infoDict}
	if announce != "" {
		root["announce"] = announce
	}
	data, err = bencode.Marshal(root)
	if err != nil {
		return nil, nil, err
	}
	return data, info, nil
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteLinkList writes one link per line, the format read by --batch.
func WriteLinkList(dir, name string, links ...string) (string, error) {
	return WriteFile(dir, name, []byte(strings.Join(links, "\n")+"\n"))
}
