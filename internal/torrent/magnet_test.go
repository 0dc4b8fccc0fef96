package torrent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surge-downloader/magnet/internal/magnet"
)

const (
	testHash   = "0123456789abcdef0123456789abcdef01234567"
	testHashV2 = "caf1e1c30e81cb361b9ee167c4aa64228a7fa4fa9f6105232b28ad099f3a302e"
)

func TestCheck_Clean(t *testing.T) {
	r := Check("magnet:?xt=urn:btih:" + testHash + "&dn=test&tr=udp%3A%2F%2Ft%3A80")
	assert.True(t, r.OK(), "problems: %v", r.Problems)
	assert.Equal(t, "test", r.Magnet.Name)
}

func TestCheck_Base32(t *testing.T) {
	r := Check("magnet:?xt=urn:btih:AERUKZ4JVPG66AJDIVTYTK6N54ASGRLH")
	assert.True(t, r.OK(), "problems: %v", r.Problems)
	assert.Equal(t, testHash, r.Magnet.InfoHash)
}

func TestCheck_StreamMagnet(t *testing.T) {
	r := Check("stream-magnet:?xt=urn:btih:" + testHash)
	assert.True(t, r.OK(), "problems: %v", r.Problems)
}

func TestCheck_Problems(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want error
	}{
		{name: "no marker", uri: "https://example.com", want: ErrNoMagnetMarker},
		{name: "malformed token", uri: "magnet:?xt=urn:btih:" + testHash + "&garbage", want: ErrMalformedParam},
		{name: "missing hash", uri: "magnet:?dn=nothing", want: ErrMissingInfoHash},
		{name: "bad hex", uri: "magnet:?xt=urn:btih:zz23456789abcdef0123456789abcdef01234567", want: ErrMissingInfoHash},
		{name: "unknown topic", uri: "magnet:?xt=urn:ed2k:abc&xt=urn:btih:" + testHash, want: ErrUnknownExactTopic},
		{
			name: "two v1 hashes",
			uri:  "magnet:?xt=urn:btih:" + testHash + "&xt=urn:btih:AERUKZ4JVPG66AJDIVTYTK6N54ASGRLH",
			want: ErrRejected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Check(tt.uri)
			require.False(t, r.OK())
			found := false
			for _, p := range r.Problems {
				if errors.Is(p, tt.want) {
					found = true
				}
			}
			assert.True(t, found, "expected %v in %v", tt.want, r.Problems)
		})
	}
}

func TestToMagnetV2(t *testing.T) {
	m := magnet.Decode("magnet:?xt=urn:btih:" + testHash +
		"&xt=urn:btmh:1220" + testHashV2 +
		"&dn=name&tr=udp%3A%2F%2Fa&tr=udp%3A%2F%2Fb&ws=http%3A%2F%2Fseed&x.pe=1.2.3.4:5")

	mv2, err := ToMagnetV2(m)
	require.NoError(t, err)

	assert.True(t, mv2.InfoHash.Ok)
	assert.Equal(t, testHash, mv2.InfoHash.Value.HexString())
	assert.True(t, mv2.V2InfoHash.Ok)
	assert.Equal(t, m.InfoHashV2Buffer, mv2.V2InfoHash.Value[:])
	assert.Equal(t, "name", mv2.DisplayName)
	assert.Equal(t, []string{"udp://a", "udp://b"}, mv2.Trackers)
	assert.Equal(t, []string{"http://seed"}, mv2.Params["ws"])
	assert.Equal(t, []string{"1.2.3.4:5"}, mv2.Params["x.pe"])

	back := FromMagnetV2(mv2)
	assert.Equal(t, m.InfoHash, back.InfoHash)
	assert.Equal(t, m.InfoHashV2, back.InfoHashV2)
	assert.Equal(t, m.Name, back.Name)
	assert.ElementsMatch(t, m.Announce, back.Announce)
	assert.Equal(t, m.URLList, back.URLList)
}

func TestToMagnetV2_MissingHash(t *testing.T) {
	_, err := ToMagnetV2(magnet.Decode("magnet:?dn=x"))
	assert.ErrorIs(t, err, ErrMissingInfoHash)
}
