package torrent

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/anacrolix/torrent/bencode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleFileTorrent(t *testing.T) (root, info []byte) {
	t.Helper()
	infoDict := map[string]any{
		"name":         "file.txt",
		"piece length": int64(16384),
		"length":       int64(5),
		"pieces":       []byte("12345678901234567890"),
	}
	infoBytes, err := bencode.Marshal(infoDict)
	require.NoError(t, err)
	rootBytes, err := bencode.Marshal(map[string]any{
		"announce": "http://tracker",
		"announce-list": []any{
			[]any{"http://tracker", "udp://backup:6969"},
			[]any{"udp://tier2:80"},
		},
		"url-list": []any{"https://seed.example/file.txt"},
		"info":     infoDict,
	})
	require.NoError(t, err)
	return rootBytes, infoBytes
}

func TestParseTorrent_InfoHash(t *testing.T) {
	rootBytes, infoBytes := singleFileTorrent(t)

	meta, err := ParseTorrent(rootBytes)
	require.NoError(t, err)

	want := sha1.Sum(infoBytes)
	assert.Equal(t, want, meta.InfoHash)
	assert.Equal(t, "file.txt", meta.Info.Name)
	assert.Nil(t, meta.InfoHashV2)
	assert.True(t, bytes.Equal(meta.InfoBytes, infoBytes))
}

func TestParseTorrent_Multifile(t *testing.T) {
	info := map[string]any{
		"name":         "dir",
		"piece length": int64(16384),
		"pieces":       []byte("1234567890123456789012345678901234567890"),
		"files": []any{
			map[string]any{
				"length": int64(3),
				"path":   []any{[]byte("a.txt")},
			},
			map[string]any{
				"length": int64(4),
				"path":   []any{[]byte("b.txt")},
			},
		},
	}
	rootBytes, err := bencode.Marshal(map[string]any{
		"announce": "http://tracker",
		"info":     info,
	})
	require.NoError(t, err)

	meta, err := ParseTorrent(rootBytes)
	require.NoError(t, err)
	assert.EqualValues(t, 7, meta.Info.TotalLength())
	assert.Equal(t, "7", func() string { v, _ := meta.Magnet().XL.First(); return v }())
}

func TestParseTorrent_Invalid(t *testing.T) {
	_, err := ParseTorrent([]byte("not bencode"))
	assert.Error(t, err)

	rootBytes, err := bencode.Marshal(map[string]any{
		"info": map[string]any{"name": "x", "piece length": int64(16384), "length": int64(1)},
	})
	require.NoError(t, err)
	_, err = ParseTorrent(rootBytes)
	assert.Error(t, err, "v1 torrent without pieces")
}

func TestFromTorrent(t *testing.T) {
	rootBytes, infoBytes := singleFileTorrent(t)

	m, err := FromTorrent(rootBytes)
	require.NoError(t, err)

	sum := sha1.Sum(infoBytes)
	assert.Equal(t, hex.EncodeToString(sum[:]), m.InfoHash)
	assert.Equal(t, "file.txt", m.Name)
	assert.Equal(t, []string{"http://tracker", "udp://backup:6969", "udp://tier2:80"}, m.Announce)
	assert.Equal(t, []string{"https://seed.example/file.txt"}, m.URLList)
	xl, ok := m.XL.First()
	assert.True(t, ok)
	assert.Equal(t, "5", xl)
}

func TestFromTorrent_Error(t *testing.T) {
	_, err := FromTorrent([]byte("d4:infoi1ee"))
	assert.Error(t, err)
}
