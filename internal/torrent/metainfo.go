package torrent

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/anacrolix/torrent/metainfo"

	"github.com/surge-downloader/magnet/internal/magnet"
)

func ParseTorrent(data []byte) (*TorrentMeta, error) {
	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	parsedInfo, err := mi.UnmarshalInfo()
	if err != nil {
		return nil, err
	}

	info := Info{
		Name:        parsedInfo.BestName(),
		PieceLength: parsedInfo.PieceLength,
		Pieces:      append([]byte(nil), parsedInfo.Pieces...),
		Length:      parsedInfo.Length,
		MetaVersion: parsedInfo.MetaVersion,
	}
	for _, f := range parsedInfo.UpvertedFiles() {
		info.Files = append(info.Files, FileEntry{
			Path:   append([]string(nil), f.BestPath()...),
			Length: f.Length,
		})
	}
	if info.Name == "" {
		info.Name = parsedInfo.Name
	}
	if err := validateInfo(info); err != nil {
		return nil, err
	}

	meta := &TorrentMeta{
		Info:      info,
		InfoHash:  mi.HashInfoBytes(),
		InfoBytes: append([]byte(nil), mi.InfoBytes...),
		Announce:  mi.Announce,
		URLList:   append([]string(nil), mi.UrlList...),
	}
	if info.MetaVersion == 2 {
		sum := sha256.Sum256(mi.InfoBytes)
		meta.InfoHashV2 = sum[:]
	}
	for _, tier := range mi.UpvertedAnnounceList() {
		if len(tier) == 0 {
			continue
		}
		meta.AnnounceList = append(meta.AnnounceList, append([]string(nil), tier...))
	}

	return meta, nil
}

func validateInfo(info Info) error {
	if info.PieceLength == 0 || info.Name == "" {
		return fmt.Errorf("invalid info dict")
	}
	if len(info.Pieces) == 0 && info.MetaVersion != 2 {
		return fmt.Errorf("invalid info dict: no pieces")
	}
	if info.Length == 0 && len(info.Files) == 0 {
		return fmt.Errorf("missing length/files")
	}
	return nil
}

// Magnet builds the magnet record for t. Trackers from every tier are flattened in order.
func (t *TorrentMeta) Magnet() *magnet.Magnet {
	trackers := magnet.NewOrderedSet()
	if t.Announce != "" {
		trackers.Add(t.Announce)
	}
	for _, tier := range t.AnnounceList {
		trackers.Add(tier...)
	}

	m := &magnet.Magnet{
		InfoHashBuffer: append([]byte(nil), t.InfoHash[:]...),
		Name:           t.Info.Name,
		Announce:       trackers.Items(),
		URLList:        magnet.NewOrderedSet(t.URLList...).Items(),
	}
	if total := t.Info.TotalLength(); total > 0 {
		m.XL = magnet.Scalar(strconv.FormatInt(total, 10))
	}
	if len(t.InfoHashV2) > 0 {
		m.InfoHashV2Buffer = append([]byte(nil), t.InfoHashV2...)
	}
	return m
}

// FromTorrent reads .torrent bytes and returns the equivalent magnet record, decoded
// from its own encoding so every derived field is populated.
func FromTorrent(data []byte) (*magnet.Magnet, error) {
	meta, err := ParseTorrent(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse torrent: %w", err)
	}
	return magnet.Decode(magnet.Encode(meta.Magnet())), nil
}
