package magnet

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/surge-downloader/magnet/internal/base32"
	"github.com/surge-downloader/magnet/internal/bep53"
	"github.com/surge-downloader/magnet/internal/utils"
)

// Decode parses uri. It never fails: parameters that cannot be parsed are skipped and the
// caller must check that InfoHash and Name are present before relying on them.
//
// Anything before "magnet:?" is ignored, so "stream-magnet:?..." decodes too.
func Decode(uri string) *Magnet {
	m := &Magnet{}

	var data string
	if parts := strings.Split(uri, Prefix); len(parts) > 1 {
		data = parts[1]
	}
	if data != "" {
		for _, param := range strings.Split(data, "&") {
			m.addParam(param)
		}
	}

	m.resolveExactTopics()
	m.resolveExactSources()

	m.Name, _ = m.DN.First()
	for _, kws := range m.KT.Items() {
		m.Keywords = append(m.Keywords, kws...)
	}

	m.Announce = NewOrderedSet(m.TR.Items()...).Items()
	urls := NewOrderedSet(m.AS.Items()...)
	urls.Add(m.WS.Items()...)
	m.URLList = urls.Items()
	m.PeerAddresses = NewOrderedSet(m.XPE.Items()...).Items()

	return m
}

func (m *Magnet) addParam(param string) {
	keyval := strings.Split(param, "=")
	if len(keyval) != 2 {
		utils.Debug("magnet: skipping malformed parameter %q", param)
		return
	}
	key, val := keyval[0], keyval[1]

	switch key {
	case KeyDisplayName:
		if s, ok := unescapeParam(key, val); ok {
			m.DN.Push(strings.ReplaceAll(s, "+", " "))
		}
	case KeyTracker, KeyExactSource, KeyAcceptableSource, KeyWebSeed:
		s, ok := unescapeParam(key, val)
		if !ok {
			return
		}
		switch key {
		case KeyTracker:
			m.TR.Push(s)
		case KeyExactSource:
			m.XS.Push(s)
		case KeyAcceptableSource:
			m.AS.Push(s)
		case KeyWebSeed:
			m.WS.Push(s)
		}
	case KeyKeywords:
		if s, ok := unescapeParam(key, val); ok {
			m.KT.Push(strings.Split(s, "+"))
		}
	case KeyFileIndex:
		n, err := strconv.Atoi(val)
		if err != nil {
			utils.Debug("magnet: skipping non-numeric ix %q", val)
			return
		}
		m.IX.Push(n)
	case KeySelectOnly:
		if s, ok := unescapeParam(key, val); ok {
			m.SO.Push(bep53.ParseString(s))
		}
	case KeyExactTopic:
		m.XT.Push(val)
	case KeyExactLength:
		m.XL.Push(val)
	case KeyPeer:
		m.XPE.Push(val)
	default:
		m.Extra.Push(key, val)
	}
}

func unescapeParam(key, val string) (string, bool) {
	s, err := unescapeComponent(val)
	if err != nil {
		utils.Debug("magnet: skipping %s=%q: %v", key, val, err)
		return "", false
	}
	return s, true
}

// resolveExactTopics fills InfoHash and InfoHashV2 from every xt value. Later matches win.
func (m *Magnet) resolveExactTopics() {
	for _, xt := range m.XT.Items() {
		if encoded, ok := cutFixed(xt, btihPrefix, infoHashHexLen); ok {
			m.InfoHash, m.InfoHashBuffer = pickHex(xt, encoded, m.InfoHash, m.InfoHashBuffer)
			continue
		}
		if encoded, ok := cutFixed(xt, btihPrefix, infoHashBase32Len); ok {
			raw, err := base32.DecodeString(encoded)
			if err != nil {
				utils.Debug("magnet: skipping xt %q: %v", xt, err)
				continue
			}
			m.InfoHash, m.InfoHashBuffer = hex.EncodeToString(raw), raw
			continue
		}
		if encoded, ok := cutFixed(xt, btmhPrefix+multihashSHA256, infoHashV2HexLen); ok {
			m.InfoHashV2, m.InfoHashV2Buffer = pickHex(xt, encoded, m.InfoHashV2, m.InfoHashV2Buffer)
			continue
		}
		utils.Debug("magnet: unrecognised xt %q", xt)
	}
}

func (m *Magnet) resolveExactSources() {
	for _, xs := range m.XS.Items() {
		if encoded, ok := cutFixed(xs, btpkPrefix, publicKeyHexLen); ok {
			m.PublicKey, m.PublicKeyBuffer = pickHex(xs, encoded, m.PublicKey, m.PublicKeyBuffer)
		}
	}
}

// cutFixed returns what follows prefix in s when exactly n bytes follow it.
func cutFixed(s, prefix string, n int) (string, bool) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok || len(rest) != n {
		return "", false
	}
	return rest, true
}

// pickHex returns the lowercased candidate and its bytes, or the current pair when the
// candidate is not valid hex. A hash is never kept without its buffer.
func pickHex(param, candidate, cur string, curBuf []byte) (string, []byte) {
	candidate = strings.ToLower(candidate)
	raw, err := hex.DecodeString(candidate)
	if err != nil {
		utils.Debug("magnet: skipping %q: %v", param, err)
		return cur, curBuf
	}
	return candidate, raw
}
