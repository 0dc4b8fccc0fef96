package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surge-downloader/magnet/internal/magnet"
	"github.com/surge-downloader/magnet/internal/torrent"
)

const uri = "magnet:?xt=urn:btih:0123456789abcdef0123456789abcdef01234567" +
	"&dn=Big+Buck+Bunny&tr=udp%3A%2F%2Fa%3A80&tr=udp%3A%2F%2Fb%3A80&kt=open+movie&so=0,2-3&foo=bar"

func TestRenderer_Magnet(t *testing.T) {
	r := New(&bytes.Buffer{}, false)
	out := r.Magnet(magnet.Decode(uri))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Name          Big Buck Bunny", lines[0])
	assert.Equal(t, "Info hash     0123456789abcdef0123456789abcdef01234567", lines[1])
	assert.Equal(t, "Trackers      udp://a:80", lines[2])
	assert.Equal(t, "              udp://b:80", lines[3])
	assert.Equal(t, "Keywords      open, movie", lines[4])
	assert.Equal(t, "Select only   0,2-3", lines[5])
	assert.Equal(t, "foo           bar", lines[6])
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderer_EmptyMagnet(t *testing.T) {
	r := New(&bytes.Buffer{}, false)
	assert.Equal(t, "(empty magnet)\n", r.Magnet(magnet.Decode("magnet:?")))
}

func TestRenderer_Report(t *testing.T) {
	r := New(&bytes.Buffer{}, false)

	ok := r.Report(torrent.Check(uri))
	assert.True(t, strings.HasPrefix(ok, "OK "), ok)

	bad := r.Report(torrent.Check("magnet:?dn=x&junk"))
	assert.Contains(t, bad, "problem(s)")
	assert.Contains(t, bad, "  - malformed parameter")
	assert.Contains(t, bad, "  - missing or invalid infohash")
}

func TestJSON(t *testing.T) {
	out, err := JSON(magnet.Decode(uri))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Big Buck Bunny", decoded["name"])
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", decoded["infoHash"])
	assert.Equal(t, []any{"udp://a:80", "udp://b:80"}, decoded["announce"])
	assert.Equal(t, []any{"udp://a:80", "udp://b:80"}, decoded["tr"])
	assert.Equal(t, map[string]any{"foo": "bar"}, decoded["params"])
	assert.NotContains(t, decoded, "infoHashBuffer")
}
