// Package render formats decoded magnets and check reports for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/surge-downloader/magnet/internal/bep53"
	"github.com/surge-downloader/magnet/internal/magnet"
	"github.com/surge-downloader/magnet/internal/torrent"
)

const labelWidth = 14

type Renderer struct {
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	problem lipgloss.Style
}

// New returns a Renderer for w. With color off every style is plain text.
func New(w io.Writer, color bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if !color {
		lr.SetColorProfile(termenv.Ascii)
		plain := lr.NewStyle()
		return &Renderer{
			label:   plain.Width(labelWidth),
			value:   plain,
			muted:   plain,
			ok:      plain,
			problem: plain,
		}
	}
	return &Renderer{
		label:   lr.NewStyle().Width(labelWidth).Bold(true).Foreground(NeonPurple),
		value:   lr.NewStyle().Foreground(NeonCyan),
		muted:   lr.NewStyle().Foreground(LightGray),
		ok:      lr.NewStyle().Bold(true).Foreground(StateOK),
		problem: lr.NewStyle().Foreground(StateError),
	}
}

func (r *Renderer) field(b *strings.Builder, label string, values ...string) {
	if len(values) == 0 {
		return
	}
	indent := strings.Repeat(" ", labelWidth)
	for i, v := range values {
		switch {
		case i == 0 && len(label) >= labelWidth:
			// Width would wrap long pass-through keys.
			b.WriteString(r.label.UnsetWidth().Render(label))
			b.WriteByte(' ')
		case i == 0:
			b.WriteString(r.label.Render(label))
		default:
			b.WriteString(indent)
		}
		b.WriteString(r.value.Render(v))
		b.WriteByte('\n')
	}
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// Magnet renders the convenience fields of m, then any pass-through parameters.
func (r *Renderer) Magnet(m *magnet.Magnet) string {
	var b strings.Builder
	r.field(&b, "Name", nonEmpty(m.Name)...)
	r.field(&b, "Info hash", nonEmpty(m.InfoHash)...)
	r.field(&b, "Info hash v2", nonEmpty(m.InfoHashV2)...)
	r.field(&b, "Public key", nonEmpty(m.PublicKey)...)
	if xl, ok := m.XL.First(); ok {
		r.field(&b, "Length", xl)
	}
	r.field(&b, "Trackers", m.Announce...)
	r.field(&b, "Web seeds", m.URLList...)
	r.field(&b, "Peers", m.PeerAddresses...)
	if len(m.Keywords) > 0 {
		r.field(&b, "Keywords", strings.Join(m.Keywords, ", "))
	}
	if m.SO.IsSet() {
		r.field(&b, "Select only", bep53.Compose(m.SelectOnly()))
	}
	for _, key := range m.Extra.Keys() {
		v, _ := m.Extra.Get(key)
		r.field(&b, key, v.Items()...)
	}
	if b.Len() == 0 {
		b.WriteString(r.muted.Render("(empty magnet)"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Report renders the result of a strict check.
func (r *Renderer) Report(rep torrent.Report) string {
	var b strings.Builder
	if rep.OK() {
		b.WriteString(r.ok.Render("OK"))
		b.WriteString(" ")
		b.WriteString(r.muted.Render(rep.URI))
		b.WriteByte('\n')
		return b.String()
	}
	fmt.Fprintf(&b, "%s %s\n", r.problem.Render(fmt.Sprintf("%d problem(s)", len(rep.Problems))), r.muted.Render(rep.URI))
	for _, p := range rep.Problems {
		b.WriteString("  - ")
		b.WriteString(r.problem.Render(p.Error()))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders m as indented JSON.
func JSON(m *magnet.Magnet) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal magnet: %w", err)
	}
	return string(data) + "\n", nil
}
