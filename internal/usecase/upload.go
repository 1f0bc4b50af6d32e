package usecase

import (
	"bytes"
	"context"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/logger"

	"github.com/dslipak/pdf"
	"go.uber.org/zap"
)

// Upload outcome markers. Callers distinguish "no data" from "extraction
// error" through Meta.Reason, not through HTTP status.
const (
	ReasonEmptyPDF      = "empty_pdf"
	ReasonAIParseFailed = "ai_parse_failed"
)

type UploadMeta struct {
	Reason string `json:"reason,omitempty"`
}

// UploadResult always carries a usable document; on failure it is the
// empty default and Meta.Reason says why.
type UploadResult struct {
	Document *model.Document `json:"document"`
	Meta     UploadMeta      `json:"meta"`
}

// Extractor is the hosted conversational model behind the upload flow.
type Extractor interface {
	ExtractResume(ctx context.Context, messages []ai.Message) (*model.Document, error)
}

// Uploader turns an uploaded resume PDF into a document: extract the plain
// text, then hand it to the conversational extractor.
type Uploader struct {
	extractor Extractor
	log       logger.Logger
}

func NewUploader(extractor Extractor, log logger.Logger) *Uploader {
	return &Uploader{extractor: extractor, log: log}
}

// Parse extracts text from the PDF bytes and runs the extractor. An
// unreadable or textless PDF short-circuits with the empty_pdf sentinel
// before any model call is made.
func (u *Uploader) Parse(ctx context.Context, content []byte) *UploadResult {
	text := extractText(content)
	if strings.TrimSpace(text) == "" {
		return &UploadResult{Document: model.NewDocument(), Meta: UploadMeta{Reason: ReasonEmptyPDF}}
	}

	messages := []ai.Message{{Role: "user", Content: "Extract the resume data from this resume text:\n\n" + text}}
	doc, err := u.extractor.ExtractResume(ctx, messages)
	if err != nil {
		u.log.Warn("resume extraction failed", zap.Error(err))
		return &UploadResult{Document: model.NewDocument(), Meta: UploadMeta{Reason: ReasonAIParseFailed}}
	}
	return &UploadResult{Document: doc}
}

func extractText(content []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return ""
	}
	b, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return ""
	}
	return buf.String()
}
