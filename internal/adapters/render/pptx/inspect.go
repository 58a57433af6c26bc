package pptx

import (
	"archive/zip"
	"fmt"
	"path"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// Summary describes a presentation read back from disk. Width and Height
// are the slide size in inches.
type Summary struct {
	Path   string         `json:"path"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Charts int            `json:"charts"`
	Slides []SlideSummary `json:"slides"`
}

// SlideSummary lists the shapes and text of one slide. Chart frames are
// not read back as shapes; Summary.Charts counts the chart parts.
type SlideSummary struct {
	Index  int      `json:"index"`
	Shapes int      `json:"shapes"`
	Texts  []string `json:"texts"`
}

// Texts returns every text line of the presentation.
func (s *Summary) Texts() []string {
	var out []string
	for _, sl := range s.Slides {
		out = append(out, sl.Texts...)
	}
	return out
}

// Inspect reads a .pptx file and collects the text of its rich text
// shapes, one entry per non-empty paragraph.
func Inspect(file string) (*Summary, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInspect, file, err)
	}
	charts, err := chartParts(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInspect, file, err)
	}

	dl := pres.GetLayout()
	sum := &Summary{
		Path:   file,
		Width:  float64(dl.CX) / emuPerInch,
		Height: float64(dl.CY) / emuPerInch,
		Charts: charts,
	}
	for i, slide := range pres.GetAllSlides() {
		shapes := slide.GetShapes()
		ss := SlideSummary{Index: i + 1, Shapes: len(shapes)}
		for _, shape := range shapes {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			for _, para := range rts.GetParagraphs() {
				var b strings.Builder
				for _, elem := range para.GetElements() {
					if run, ok := elem.(*ppt.TextRun); ok {
						b.WriteString(run.GetText())
					}
				}
				if t := strings.TrimSpace(b.String()); t != "" {
					ss.Texts = append(ss.Texts, t)
				}
			}
		}
		sum.Slides = append(sum.Slides, ss)
	}
	return sum, nil
}

// chartParts counts the chart parts in the package.
func chartParts(file string) (int, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	n := 0
	for _, f := range zr.File {
		if ok, _ := path.Match("ppt/charts/chart*.xml", f.Name); ok {
			n++
		}
	}
	return n, nil
}
