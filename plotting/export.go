package plotting

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// WritePDF renders figs as consecutive pages of one PDF document.
// With no figures it writes a valid document with zero pages.
func (p *Plotting) WritePDF(w io.Writer, figs ...*Figure) error {
	for i, f := range figs {
		if f == nil || f.Closed() {
			return newPlotError("export", errors.Wrapf(ErrFigureClosed, "figure %d", i+1))
		}
	}
	if len(figs) == 0 {
		_, err := io.WriteString(w, emptyPDF())
		return err
	}

	c := vgpdf.New(p.opts.Width, p.opts.Height)
	drawPages(c, p.opts.Width, p.opts.Height, figs)
	if _, err := c.WriteTo(w); err != nil {
		return newPlotError("export", errors.Wrap(err, "could not write pdf"))
	}
	return nil
}

// pageCanvas is a canvas that can start a new page, such as vgpdf.Canvas.
type pageCanvas interface {
	vg.Canvas
	NextPage()
}

// drawPages draws one figure per page, in order. c starts on a blank page.
func drawPages(c pageCanvas, w, h vg.Length, figs []*Figure) {
	for i, f := range figs {
		if i > 0 {
			c.NextPage()
		}
		f.Draw(draw.NewCanvas(c, w, h))
	}
}

// SavePlots writes figs as pages of the PDF at the configured path and then
// closes them. The destination directory must already exist.
func (p *Plotting) SavePlots(figs ...*Figure) error {
	path := p.opts.PDFPath
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path = filepath.Join(cwd, path)
	}
	fmt.Fprintf(p.opts.Progress, "Saving PDF to %s...\n", path)

	var buf bytes.Buffer
	if err := p.WritePDF(&buf, figs...); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return newPlotError("export", err)
	}

	for _, f := range figs {
		f.Close()
	}
	fmt.Fprintln(p.opts.Progress, "Done!")
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hflux-*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// emptyPDF returns a minimal document whose page tree has no kids.
func emptyPDF() string {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.String()
}
