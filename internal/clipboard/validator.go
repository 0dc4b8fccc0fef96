package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/surge-downloader/magnet/internal/source"
)

var ErrNoMagnet = errors.New("clipboard does not hold a magnet link")

var clipboardReadAll = clipboard.ReadAll

// maxMagnetLength bounds what is accepted from the clipboard. Real magnets with long
// tracker lists stay well under it.
const maxMagnetLength = 64 * 1024

type Validator struct {
	allowedSchemes map[string]bool
}

func NewValidator() *Validator {
	return &Validator{
		allowedSchemes: map[string]bool{"magnet": true, "stream-magnet": true},
	}
}

// ExtractMagnet returns text trimmed when it is a single magnet link, or "".
func (v *Validator) ExtractMagnet(text string) string {
	text = strings.TrimSpace(text)

	// Quick reject: too long, or more than one line
	if len(text) > maxMagnetLength || strings.ContainsAny(text, "\n\r") {
		return ""
	}

	if !source.IsMagnet(text) {
		return ""
	}
	scheme, _, _ := strings.Cut(text, ":")
	if !v.allowedSchemes[strings.ToLower(scheme)] {
		return ""
	}
	return text
}

// ReadMagnet reads the system clipboard and returns the magnet link it holds.
func ReadMagnet() (string, error) {
	text, err := clipboardReadAll()
	if err != nil {
		return "", err
	}
	if m := NewValidator().ExtractMagnet(text); m != "" {
		return m, nil
	}
	return "", ErrNoMagnet
}
