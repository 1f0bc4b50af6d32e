package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/richtext"

	"github.com/jung-kurt/gofpdf"
)

// pxToMM converts the document's pixel-based spacing values to millimeters
// at the usual 96 dpi.
const pxToMM = 25.4 / 96.0

// geometry holds the density knobs that differ between fit modes.
type geometry struct {
	nameSize    float64
	contactSize float64
	titleSize   float64
	bodySize    float64
	lineH       float64
	entryGap    float64
	sectionGap  float64
	marginScale float64
}

var geometries = map[model.FitMode]geometry{
	model.FitNormal: {
		nameSize: 18, contactSize: 10, titleSize: 12, bodySize: 10,
		lineH: 5.2, entryGap: 2.5, sectionGap: 4, marginScale: 1,
	},
	model.FitCompact: {
		nameSize: 16, contactSize: 9, titleSize: 11, bodySize: 9,
		lineH: 4.4, entryGap: 1.5, sectionGap: 2.5, marginScale: 0.6,
	},
}

// RenderPDF draws the page layout tree into PDF bytes. It is synchronous
// and pure over the already-built tree; any drawing problem surfaces as the
// returned error.
func RenderPDF(page *Page) ([]byte, error) {
	geo, ok := geometries[page.FitMode]
	if !ok {
		geo = geometries[model.FitNormal]
	}

	left := page.Margins.Horizontal * pxToMM * geo.marginScale
	top := page.Margins.Vertical * pxToMM * geo.marginScale

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(left, top, left)
	pdf.SetAutoPageBreak(true, top)
	pdf.AddPage()

	drawHeader(pdf, page, geo)
	for _, sec := range page.Sections {
		drawSection(pdf, page, sec, geo)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, page *Page, geo geometry) {
	pdf.SetFont(page.Font, "B", geo.nameSize)
	pdf.CellFormat(0, geo.lineH*1.8, page.Header.Name, "", 1, "C", false, 0, "")
	pdf.SetFont(page.Font, "", geo.contactSize)
	for _, line := range page.Header.ContactLines {
		pdf.CellFormat(0, geo.lineH, line, "", 1, "C", false, 0, "")
	}
	pdf.Ln(geo.sectionGap)
}

func drawSection(pdf *gofpdf.Fpdf, page *Page, sec Section, geo geometry) {
	pdf.SetFont(page.Font, "B", geo.titleSize)
	pdf.CellFormat(0, geo.lineH*1.3, sec.Title, "", 1, "L", false, 0, "")

	x := pdf.GetX()
	y := pdf.GetY()
	pageW, _ := pdf.GetPageSize()
	lm, _, rm, _ := pdf.GetMargins()
	pdf.Line(x, y, pageW-rm, y)
	pdf.Ln(1.5)

	contentW := pageW - lm - rm
	for i, entry := range sec.Entries {
		if i > 0 {
			pdf.Ln(geo.entryGap)
		}
		drawEntry(pdf, page, entry, geo, contentW, i, sec)
	}
	pdf.Ln(geo.sectionGap)
}

func drawEntry(pdf *gofpdf.Fpdf, page *Page, entry Entry, geo geometry, contentW float64, idx int, sec Section) {
	if entry.Primary != "" || entry.DateText != "" {
		pdf.SetFont(page.Font, "B", geo.bodySize)
		dateW := 0.0
		if entry.DateText != "" {
			dateW = pdf.GetStringWidth(entry.DateText) + 2
		}
		pdf.CellFormat(contentW-dateW, geo.lineH, entry.Primary, "", 0, "L", false, 0, "")
		if entry.DateText != "" {
			pdf.SetFont(page.Font, "", geo.bodySize)
			pdf.CellFormat(dateW, geo.lineH, entry.DateText, "", 0, "R", false, 0, "")
		}
		pdf.Ln(geo.lineH)
	}
	if entry.Secondary != "" {
		pdf.SetFont(page.Font, "I", geo.bodySize)
		pdf.CellFormat(0, geo.lineH, entry.Secondary, "", 1, "L", false, 0, "")
	}
	if entry.Detail != "" {
		pdf.SetFont(page.Font, "", geo.bodySize)
		pdf.CellFormat(0, geo.lineH, entry.Detail, "", 1, "L", false, 0, "")
	}
	for _, block := range entry.Blocks {
		drawBlock(pdf, page, block, geo)
	}
	if entry.QRCode != "" {
		drawQR(pdf, page, entry, geo, fmt.Sprintf("%s-qr-%d", sec.Type, idx))
	}
}

func drawBlock(pdf *gofpdf.Fpdf, page *Page, block richtext.Block, geo geometry) {
	pdf.SetFont(page.Font, "", geo.bodySize)
	switch block.Kind {
	case richtext.KindBullet:
		pdf.Write(geo.lineH, "- ")
	case richtext.KindNumbered:
		pdf.Write(geo.lineH, fmt.Sprintf("%d. ", block.Number))
	}
	for _, span := range block.Spans {
		style := ""
		if span.Bold {
			style += "B"
		}
		if span.Italic {
			style += "I"
		}
		pdf.SetFont(page.Font, style, geo.bodySize)
		pdf.Write(geo.lineH, span.Text)
	}
	pdf.Ln(geo.lineH)
}

// drawQR decodes the stored base64 PNG and places it inline with a caption.
// A corrupt image is skipped; the portfolio text has already been drawn.
func drawQR(pdf *gofpdf.Fpdf, page *Page, entry Entry, geo geometry, name string) {
	data := entry.QRCode
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if info == nil || pdf.Err() {
		// keep a bad image from poisoning the rest of the render
		pdf.ClearError()
		return
	}
	const size = 22.0
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	pdf.SetY(y + size + 1)
	if entry.QRCaption != "" {
		pdf.SetFont(page.Font, "", geo.bodySize-1)
		pdf.CellFormat(0, geo.lineH, entry.QRCaption, "", 1, "L", false, 0, "")
	}
}

// Render is the one-call path from document to PDF bytes.
func Render(doc *model.Document) ([]byte, error) {
	return RenderPDF(BuildPage(doc))
}
