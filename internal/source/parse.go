package source

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/h2non/filetype"

	"github.com/surge-downloader/magnet/internal/magnet"
)

type Kind string

const (
	KindUnknown     Kind = "unknown"
	KindHTTP        Kind = "http"
	KindTorrentURL  Kind = "torrent"
	KindMagnet      Kind = "magnet"
	KindTorrentFile Kind = "torrent-file"
)

// torrentType matches bencoded metainfo: a dictionary whose first key is announce,
// announce-list, comment, created by, creation date or info.
var torrentType = filetype.NewType("torrent", "application/x-bittorrent")

func init() {
	filetype.AddMatcher(torrentType, func(buf []byte) bool {
		if len(buf) < 2 || buf[0] != 'd' {
			return false
		}
		for _, key := range []string{"8:announce", "13:announce-list", "7:comment", "10:created by", "13:creation date", "4:info"} {
			if bytes.HasPrefix(buf[1:], []byte(key)) {
				return true
			}
		}
		return false
	})
}

func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func IsTorrentURL(raw string) bool {
	if !IsHTTPURL(raw) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".torrent")
}

// IsMagnet accepts "magnet:?" and scheme variants ending in "-magnet:?" such as
// "stream-magnet:?", matching what magnet.Decode understands.
func IsMagnet(raw string) bool {
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok || !strings.HasPrefix(rest, "?") || len(rest) == 1 {
		return false
	}
	scheme = strings.ToLower(scheme)
	return scheme == "magnet" || strings.HasSuffix(scheme, "-magnet")
}

func KindOf(raw string) Kind {
	s := Normalize(raw)
	if s == "" {
		return KindUnknown
	}
	if IsMagnet(s) {
		return KindMagnet
	}
	if IsTorrentURL(s) {
		return KindTorrentURL
	}
	if IsHTTPURL(s) {
		return KindHTTP
	}
	return KindUnknown
}

// Sniff classifies file contents: bencoded metainfo, or text whose first line is a magnet.
func Sniff(data []byte) Kind {
	if filetype.Is(data, torrentType.Extension) {
		return KindTorrentFile
	}
	line, _, _ := bytes.Cut(bytes.TrimSpace(data), []byte("\n"))
	if IsMagnet(Normalize(string(line))) {
		return KindMagnet
	}
	return KindUnknown
}

// CanonicalKey returns a key that is equal for magnets naming the same content,
// whichever hash encoding they use.
func CanonicalKey(raw string) (Kind, string) {
	s := Normalize(raw)
	if s == "" {
		return KindUnknown, ""
	}
	if IsMagnet(s) {
		m := magnet.Decode(s)
		switch {
		case m.InfoHash != "":
			return KindMagnet, "btih:" + m.InfoHash
		case m.InfoHashV2 != "":
			return KindMagnet, "btmh:" + m.InfoHashV2
		}
		// Fallback to normalized magnet string.
		return KindMagnet, strings.ToLower(s)
	}
	if IsHTTPURL(s) {
		if u, err := url.Parse(s); err == nil {
			u.Fragment = ""
			u.Scheme = strings.ToLower(u.Scheme)
			u.Host = strings.ToLower(u.Host)
			return KindOf(s), u.String()
		}
	}
	return KindUnknown, s
}

// SplitLines returns the non-empty, non-comment lines of a batch file.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
