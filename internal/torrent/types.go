package torrent

type FileEntry struct {
	Path   []string
	Length int64
}

type Info struct {
	Name        string
	PieceLength int64
	Pieces      []byte
	Length      int64
	Files       []FileEntry
	MetaVersion int64
}

func (i Info) TotalLength() int64 {
	if i.Length > 0 {
		return i.Length
	}
	var total int64
	for _, f := range i.Files {
		total += f.Length
	}
	return total
}

// TorrentMeta is the part of a .torrent file a magnet link can carry.
type TorrentMeta struct {
	Announce     string
	AnnounceList [][]string
	URLList      []string
	Info         Info
	InfoHash     [20]byte
	InfoHashV2   []byte // sha256 of the info dict, set for meta version 2
	InfoBytes    []byte
}
