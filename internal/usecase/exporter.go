package usecase

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Export engines.
const (
	EngineBuiltin = "builtin"
	EngineChrome  = "chrome"
)

// HTMLRenderer renders an HTML string to PDF bytes (the chromedp engine).
type HTMLRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, compact bool) ([]byte, error)
}

// Exporter runs PDF generation off the request path. Completions are
// guarded by a per-document sequence token: if a newer export was
// requested while an older one was rendering, the older result is
// discarded instead of overwriting the newer one.
type Exporter struct {
	htmlRenderer HTMLRenderer
	tplDir       string
	exportDir    string
	log          logger.Logger

	mu     sync.Mutex
	seq    uint64
	latest map[string]uint64
	jobs   map[uuid.UUID]*domain.ExportJob
}

func NewExporter(htmlRenderer HTMLRenderer, tplDir, exportDir string, log logger.Logger) *Exporter {
	return &Exporter{
		htmlRenderer: htmlRenderer,
		tplDir:       tplDir,
		exportDir:    exportDir,
		log:          log,
		latest:       map[string]uint64{},
		jobs:         map[uuid.UUID]*domain.ExportJob{},
	}
}

// StartExport registers an export request and spawns the render in the
// background. The document is cloned so later edits cannot race the
// rendering pass.
func (e *Exporter) StartExport(ctx context.Context, documentID string, doc *model.Document, engine string) *domain.ExportJob {
	if engine != EngineChrome || e.htmlRenderer == nil {
		engine = EngineBuiltin
	}

	now := time.Now()
	job := &domain.ExportJob{
		ID:         uuid.New(),
		DocumentID: documentID,
		Status:     domain.ExportPending,
		Engine:     engine,
		FileName:   render.FileName(doc.PersonalInfo.Name, now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	e.mu.Lock()
	e.seq++
	job.Seq = e.seq
	e.latest[documentID] = job.Seq
	e.jobs[job.ID] = job
	e.mu.Unlock()

	go e.process(ctx, job, doc.Clone())
	return job
}

// Job returns a snapshot of the job with the given id.
func (e *Exporter) Job(id uuid.UUID) (domain.ExportJob, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	job, ok := e.jobs[id]
	if !ok {
		return domain.ExportJob{}, false
	}
	return *job, true
}

func (e *Exporter) process(ctx context.Context, job *domain.ExportJob, doc *model.Document) {
	pdfBytes, err := e.renderWithRetry(ctx, job.Engine, doc)
	if err != nil {
		e.log.Error("export render failed", err, zap.String("jobId", job.ID.String()))
		e.finish(job, func(j *domain.ExportJob) {
			j.Status = domain.ExportFailed
			j.Error = err.Error()
		})
		return
	}

	genDir := filepath.Join(e.exportDir, "generated")
	if err := os.MkdirAll(genDir, 0o755); err != nil {
		e.finish(job, func(j *domain.ExportJob) {
			j.Status = domain.ExportFailed
			j.Error = err.Error()
		})
		return
	}
	path := filepath.Join(genDir, job.ID.String()+".pdf")
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		e.finish(job, func(j *domain.ExportJob) {
			j.Status = domain.ExportFailed
			j.Error = err.Error()
		})
		return
	}

	e.finish(job, func(j *domain.ExportJob) {
		j.Status = domain.ExportCompleted
		j.Path = path
	})
}

// finish applies the outcome under the sequence guard. A job that is no
// longer the latest request for its document is marked superseded and its
// result discarded, whatever the outcome was.
func (e *Exporter) finish(job *domain.ExportJob, apply func(*domain.ExportJob)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.latest[job.DocumentID] != job.Seq {
		job.Status = domain.ExportSuperseded
		job.UpdatedAt = time.Now()
		return
	}
	apply(job)
	job.UpdatedAt = time.Now()
}

// renderWithRetry produces PDF bytes with up to three attempts and
// exponential backoff, validating the PDF signature on each attempt.
func (e *Exporter) renderWithRetry(ctx context.Context, engine string, doc *model.Document) ([]byte, error) {
	const attempts = 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		pdfBytes, err := e.renderOnce(ctx, engine, doc)
		if err == nil {
			if len(pdfBytes) > 0 && strings.HasPrefix(string(pdfBytes), "%PDF") {
				return pdfBytes, nil
			}
			err = fmt.Errorf("invalid PDF output (len=%d)", len(pdfBytes))
		}
		lastErr = err
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (e *Exporter) renderOnce(ctx context.Context, engine string, doc *model.Document) ([]byte, error) {
	if engine == EngineChrome && e.htmlRenderer != nil {
		html, err := e.BuildHTML(doc)
		if err != nil {
			return nil, err
		}
		return e.htmlRenderer.RenderHTMLToPDF(ctx, html, doc.Styles.FitMode == model.FitCompact)
	}
	return render.Render(doc)
}

// BuildHTML executes the resume template over the same layout tree the
// builtin engine draws, so both engines agree on filtering and order.
// The qrsrc func lets the template embed QR data URIs, which the HTML
// sanitizer would otherwise strip.
func (e *Exporter) BuildHTML(doc *model.Document) (string, error) {
	tplPath := filepath.Join(e.tplDir, "resume.html")
	tpl, err := template.New("resume.html").Funcs(template.FuncMap{
		"qrsrc": func(s string) template.URL { return template.URL(s) },
	}).ParseFiles(tplPath)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, render.BuildPage(doc)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
