package torrent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/multiformats/go-multihash"

	"github.com/surge-downloader/magnet/internal/magnet"
)

var (
	ErrNoMagnetMarker    = errors.New("no \"magnet:?\" marker")
	ErrMalformedParam    = errors.New("malformed parameter")
	ErrMissingInfoHash   = errors.New("missing or invalid infohash")
	ErrUnknownExactTopic = errors.New("unrecognised xt")
	ErrInvalidMultihash  = errors.New("invalid v2 multihash")
	ErrRejected          = errors.New("rejected by strict parser")
)

// Report lists what the lenient decoder silently skipped in a URI.
type Report struct {
	URI      string
	Magnet   *magnet.Magnet
	Problems []error
}

func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Check decodes uri and then validates it strictly.
func Check(uri string) Report {
	r := Report{URI: uri, Magnet: magnet.Decode(uri)}

	_, data, found := strings.Cut(uri, magnet.Prefix)
	if !found {
		r.Problems = append(r.Problems, ErrNoMagnetMarker)
		return r
	}
	if data != "" {
		for _, param := range strings.Split(data, "&") {
			if strings.Count(param, "=") != 1 {
				r.Problems = append(r.Problems, fmt.Errorf("%w: %q", ErrMalformedParam, param))
			}
		}
	}

	for _, xt := range r.Magnet.XT.Items() {
		if !strings.HasPrefix(xt, "urn:btih:") && !strings.HasPrefix(xt, "urn:btmh:") {
			r.Problems = append(r.Problems, fmt.Errorf("%w: %q", ErrUnknownExactTopic, xt))
		}
	}

	if r.Magnet.InfoHash == "" && r.Magnet.InfoHashV2 == "" {
		r.Problems = append(r.Problems, ErrMissingInfoHash)
	}
	if r.Magnet.InfoHashV2 != "" {
		if err := checkMultihash(r.Magnet.InfoHashV2); err != nil {
			r.Problems = append(r.Problems, err)
		}
	}

	// anacrolix only accepts the plain "magnet:" scheme.
	if _, err := metainfo.ParseMagnetV2Uri(magnet.Prefix + data); err != nil {
		r.Problems = append(r.Problems, fmt.Errorf("%w: %v", ErrRejected, err))
	}
	return r
}

// checkMultihash validates the sha2-256 multihash envelope a btmh topic carries.
func checkMultihash(digestHex string) error {
	mh, err := multihash.FromHexString("1220" + digestHex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMultihash, err)
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMultihash, err)
	}
	if decoded.Code != multihash.SHA2_256 || decoded.Length != 32 {
		return fmt.Errorf("%w: code %#x length %d", ErrInvalidMultihash, decoded.Code, decoded.Length)
	}
	return nil
}

// ToMagnetV2 converts m for use with anacrolix/torrent.
func ToMagnetV2(m *magnet.Magnet) (metainfo.MagnetV2, error) {
	var out metainfo.MagnetV2
	if m.InfoHash == "" && m.InfoHashV2 == "" {
		return out, ErrMissingInfoHash
	}
	if m.InfoHash != "" {
		if err := out.InfoHash.Value.FromHexString(m.InfoHash); err != nil {
			return out, fmt.Errorf("%w: %v", ErrMissingInfoHash, err)
		}
		out.InfoHash.Ok = true
	}
	if m.InfoHashV2 != "" {
		if err := checkMultihash(m.InfoHashV2); err != nil {
			return out, err
		}
		copy(out.V2InfoHash.Value[:], m.InfoHashV2Buffer)
		out.V2InfoHash.Ok = true
	}
	out.DisplayName = m.Name
	out.Trackers = append([]string(nil), m.Announce...)

	// Everything else goes through a decode of our own encoding so escaping matches.
	rest := *m
	rest.XT, rest.DN, rest.TR = magnet.Value[string]{}, magnet.Value[string]{}, magnet.Value[string]{}
	rest.InfoHash, rest.InfoHashBuffer = "", nil
	rest.InfoHashV2, rest.InfoHashV2Buffer = "", nil
	rest.Name, rest.Announce = "", nil
	parsed, err := metainfo.ParseMagnetV2Uri(magnet.Encode(&rest))
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	out.Params = parsed.Params
	return out, nil
}

// FromMagnetV2 converts an anacrolix magnet back into a record.
func FromMagnetV2(mv2 metainfo.MagnetV2) *magnet.Magnet {
	return magnet.Decode(mv2.String())
}
