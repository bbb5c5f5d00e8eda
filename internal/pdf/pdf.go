// Package pdf draws schedule pages with fpdf.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/brendondgr/Mango-Apps/internal/layout"
)

// Surface is a layout.Surface backed by an fpdf document sized to
// layout.Letter in points.
type Surface struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	font layout.Font
}

// NewSurface creates an empty landscape Letter document.
func NewSurface() *Surface {
	doc := fpdf.New("L", "pt", "Letter", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	return &Surface{
		pdf: doc,
		tr:  doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (s *Surface) NewPage() {
	s.pdf.AddPage()
}

func (s *Surface) SetFont(f layout.Font) {
	s.font = f
	s.pdf.SetFont(f.Family, style(f), f.Size)
}

// SetFillColor sets the color of filled shapes and of text.
func (s *Surface) SetFillColor(c layout.RGB) {
	s.pdf.SetFillColor(c.R, c.G, c.B)
	s.pdf.SetTextColor(c.R, c.G, c.B)
}

func (s *Surface) SetStrokeColor(c layout.RGB) {
	s.pdf.SetDrawColor(c.R, c.G, c.B)
}

func (s *Surface) SetLineWidth(w float64) {
	s.pdf.SetLineWidth(w)
}

func (s *Surface) DrawRect(r layout.Rect, fill, stroke bool) {
	var op string
	switch {
	case fill && stroke:
		op = "FD"
	case fill:
		op = "F"
	case stroke:
		op = "D"
	default:
		return
	}
	s.pdf.Rect(r.X, r.Y, r.W, r.H, op)
}

func (s *Surface) DrawLine(x1, y1, x2, y2 float64) {
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *Surface) DrawText(x, y float64, text string) {
	s.pdf.Text(x, y, s.tr(text))
}

// MeasureTextWidth returns the width of text in f without changing the
// font used for drawing.
func (s *Surface) MeasureTextWidth(text string, f layout.Font) float64 {
	if f == s.font {
		return s.pdf.GetStringWidth(s.tr(text))
	}
	s.pdf.SetFont(f.Family, style(f), f.Size)
	w := s.pdf.GetStringWidth(s.tr(text))
	if s.font.Family != "" {
		s.pdf.SetFont(s.font.Family, style(s.font), s.font.Size)
	}
	return w
}

// Bytes finishes the document and returns its encoded form.
func (s *Surface) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func style(f layout.Font) string {
	if f.Bold {
		return "B"
	}
	return ""
}

// Export renders doc as a one-page PDF.
func Export(doc layout.Document) ([]byte, error) {
	s := NewSurface()
	if doc.Name != "" {
		s.pdf.SetTitle(doc.Name, true)
	}
	s.pdf.SetCreator("mango-calendar", false)
	if err := layout.Render(s, doc); err != nil {
		return nil, err
	}
	return s.Bytes()
}
