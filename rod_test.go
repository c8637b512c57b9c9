package url2pdf

// Notes:
// - buildPrintParams: PDFOptions mapped onto Chrome's printToPDF parameters
// - Launch and page behavior need a real browser and are not covered here

import "testing"

func TestBuildPrintParams(t *testing.T) {
	t.Parallel()

	t.Run("capture defaults", func(t *testing.T) {
		t.Parallel()

		p := buildPrintParams(pdfOptionsFor(DefaultViewport))
		if !p.PrintBackground || !p.PreferCSSPageSize {
			t.Errorf("PrintBackground/PreferCSSPageSize = %v/%v, want true/true", p.PrintBackground, p.PreferCSSPageSize)
		}
		if p.DisplayHeaderFooter || p.Landscape {
			t.Errorf("DisplayHeaderFooter/Landscape = %v/%v, want false/false", p.DisplayHeaderFooter, p.Landscape)
		}
		if p.Scale == nil || *p.Scale != 1 {
			t.Errorf("Scale = %v, want 1", p.Scale)
		}
		if p.PaperWidth == nil || *p.PaperWidth != 20 {
			t.Errorf("PaperWidth = %v, want 20", p.PaperWidth)
		}
		if p.PaperHeight != nil {
			t.Errorf("PaperHeight = %v, want Chrome default", *p.PaperHeight)
		}
	})

	t.Run("zero values left to Chrome", func(t *testing.T) {
		t.Parallel()

		p := buildPrintParams(PDFOptions{})
		if p.Scale != nil || p.PaperWidth != nil {
			t.Errorf("Scale/PaperWidth = %v/%v, want nil/nil", p.Scale, p.PaperWidth)
		}
	})
}
