package magnet

import (
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/surge-downloader/magnet/internal/bep53"
)

// Encode renders m as a magnet URI. m is not modified and may be partially filled;
// nothing is validated, so malformed hashes produce malformed output.
func Encode(m *Magnet) string {
	if m == nil {
		return Prefix
	}

	xts := NewOrderedSet(m.XT.Items()...)
	if len(m.InfoHashBuffer) > 0 {
		xts.Add(btihPrefix + hex.EncodeToString(m.InfoHashBuffer))
	}
	if m.InfoHash != "" {
		xts.Add(btihPrefix + m.InfoHash)
	}
	if len(m.InfoHashV2Buffer) > 0 {
		xts.Add(btmhPrefix + multihashSHA256 + hex.EncodeToString(m.InfoHashV2Buffer))
	}
	if m.InfoHashV2 != "" {
		xts.Add(btmhPrefix + multihashSHA256 + m.InfoHashV2)
	}
	xt := m.XT
	switch xts.Len() {
	case 0:
	case 1:
		xt = Scalar(xts.Items()[0])
	default:
		xt = Sequence(xts.Items()...)
	}

	xs := m.XS
	if len(m.PublicKeyBuffer) > 0 {
		xs = Scalar(btpkPrefix + hex.EncodeToString(m.PublicKeyBuffer))
	}
	if m.PublicKey != "" {
		xs = Scalar(btpkPrefix + m.PublicKey)
	}

	dn := m.DN
	if m.Name != "" {
		dn = Scalar(m.Name)
	}
	kt := m.KT
	if m.Keywords != nil {
		kt = Scalar(m.Keywords)
	}
	tr := m.TR
	if m.Announce != nil {
		tr = Sequence(m.Announce...)
	}
	as, ws := m.AS, m.WS
	if m.URLList != nil {
		ws = Sequence(m.URLList...)
		as = Value[string]{}
	}
	xpe := m.XPE
	if m.PeerAddresses != nil {
		xpe = Sequence(m.PeerAddresses...)
	}

	w := &uriWriter{}
	w.b.WriteString(Prefix)

	w.values(KeyExactTopic, xt, verbatim)
	w.values(KeyDisplayName, dn, escapeName)
	w.values(KeyExactLength, m.XL, verbatim)
	w.values(KeyTracker, tr, escapeComponent)
	w.values(KeyExactSource, xs, escapeExactSource)
	w.values(KeyAcceptableSource, as, escapeComponent)
	w.values(KeyWebSeed, ws, escapeComponent)

	var keywords []string
	for _, kws := range kt.Items() {
		for _, kw := range kws {
			keywords = append(keywords, escapeComponent(kw))
		}
	}
	if len(keywords) > 0 {
		w.param(KeyKeywords, strings.Join(keywords, "+"))
	}

	for _, ix := range m.IX.Items() {
		w.param(KeyFileIndex, strconv.Itoa(ix))
	}

	if m.SO.IsSet() {
		w.param(KeySelectOnly, bep53.Compose(m.SelectOnly()))
	}

	w.values(KeyPeer, xpe, verbatim)

	for _, key := range m.Extra.Keys() {
		if len(key) != 2 || isReserved(key) {
			continue
		}
		v, _ := m.Extra.Get(key)
		w.values(key, v, verbatim)
	}

	return w.b.String()
}

type uriWriter struct {
	b       strings.Builder
	written bool
}

func (w *uriWriter) param(key, val string) {
	if w.written {
		w.b.WriteByte('&')
	}
	w.written = true
	w.b.WriteString(key)
	w.b.WriteByte('=')
	w.b.WriteString(val)
}

func (w *uriWriter) values(key string, v Value[string], escape func(string) string) {
	for _, val := range v.Items() {
		w.param(key, escape(val))
	}
}

func verbatim(s string) string { return s }

// escapeComponent percent-encodes s with spaces as %20.
func escapeComponent(s string) string {
	// QueryEscape encodes a literal '+' as %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// escapeName percent-encodes a display name with spaces as '+'.
func escapeName(s string) string {
	return url.QueryEscape(s)
}

// BEP 46 public keys stay readable.
func escapeExactSource(s string) string {
	if strings.HasPrefix(s, btpkPrefix) {
		return s
	}
	return escapeComponent(s)
}

// unescapeComponent reverses percent-encoding only; '+' is left alone.
func unescapeComponent(s string) (string, error) {
	return url.PathUnescape(s)
}
