// Package magnet decodes magnet URIs into a structured record and encodes records back.
//
// Raw protocol keys (xt, dn, tr, ...) keep the shape they had on the wire: a key seen once
// is a scalar, a key seen more than once is a sequence. The convenience fields (Name,
// InfoHash, Announce, ...) are derived from them once per Decode and always have a fixed
// shape. Encode accepts either form; convenience fields win when both are set.
package magnet

const (
	Prefix = "magnet:?"

	btihPrefix = "urn:btih:"
	btmhPrefix = "urn:btmh:"
	btpkPrefix = "urn:btpk:"

	// sha2-256 multihash code and digest length, prepended to v2 info hashes.
	multihashSHA256 = "1220"

	infoHashHexLen    = 40
	infoHashBase32Len = 32
	infoHashV2HexLen  = 64
	publicKeyHexLen   = 64
)

// Protocol keys.
const (
	KeyExactTopic       = "xt"
	KeyDisplayName      = "dn"
	KeyExactLength      = "xl"
	KeyTracker          = "tr"
	KeyExactSource      = "xs"
	KeyAcceptableSource = "as"
	KeyWebSeed          = "ws"
	KeyKeywords         = "kt"
	KeyFileIndex        = "ix"
	KeySelectOnly       = "so"
	KeyPeer             = "x.pe"
)

// Magnet is a decoded magnet URI. Fields are listed in the order Encode emits them.
type Magnet struct {
	XT  Value[string]   `json:"xt,omitzero"`
	DN  Value[string]   `json:"dn,omitzero"`
	XL  Value[string]   `json:"xl,omitzero"`
	TR  Value[string]   `json:"tr,omitzero"`
	XS  Value[string]   `json:"xs,omitzero"`
	AS  Value[string]   `json:"as,omitzero"`
	WS  Value[string]   `json:"ws,omitzero"`
	KT  Value[[]string] `json:"kt,omitzero"` // one keyword list per occurrence
	IX  Value[int]      `json:"ix,omitzero"`
	SO  Value[[]int]    `json:"so,omitzero"` // one expanded index list per occurrence
	XPE Value[string]   `json:"x.pe,omitzero"`

	// Extra holds any other parameter verbatim, in first-seen order.
	Extra Params `json:"params,omitzero"`

	Name             string   `json:"name"`
	InfoHash         string   `json:"infoHash,omitempty"`
	InfoHashBuffer   []byte   `json:"-"`
	InfoHashV2       string   `json:"infoHashV2,omitempty"`
	InfoHashV2Buffer []byte   `json:"-"`
	PublicKey        string   `json:"publicKey,omitempty"`
	PublicKeyBuffer  []byte   `json:"-"`
	Keywords         []string `json:"keywords,omitempty"`
	Announce         []string `json:"announce"`
	URLList          []string `json:"urlList"`
	PeerAddresses    []string `json:"peerAddresses"`
}

// String encodes m as a magnet URI.
func (m *Magnet) String() string {
	return Encode(m)
}

// SelectOnly returns every selected file index across all so parameters.
func (m *Magnet) SelectOnly() []int {
	var out []int
	for _, indices := range m.SO.Items() {
		out = append(out, indices...)
	}
	return out
}

func isReserved(key string) bool {
	switch key {
	case KeyExactTopic, KeyDisplayName, KeyExactLength, KeyTracker, KeyExactSource,
		KeyAcceptableSource, KeyWebSeed, KeyKeywords, KeyFileIndex, KeySelectOnly, KeyPeer:
		return true
	}
	return false
}
