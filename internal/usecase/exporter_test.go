package usecase

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTplDir = "../../templates"

// blockingRenderer holds every render until release is closed, so tests
// can control completion order.
type blockingRenderer struct {
	release chan struct{}
}

func (r *blockingRenderer) RenderHTMLToPDF(_ context.Context, _ string, _ bool) ([]byte, error) {
	<-r.release
	return []byte("%PDF-1.4 stub"), nil
}

func waitForJob(t *testing.T, e *Exporter, id uuid.UUID, done func(domain.ExportJob) bool) domain.ExportJob {
	t.Helper()
	var job domain.ExportJob
	require.Eventually(t, func() bool {
		j, ok := e.Job(id)
		if !ok {
			return false
		}
		job = j
		return done(j)
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func settled(j domain.ExportJob) bool {
	return j.Status != domain.ExportPending
}

func TestStartExportBuiltinCompletes(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(nil, testTplDir, dir, logger.NewNop())

	doc := model.NewDocument()
	doc.PersonalInfo.Name = "Ada Lovelace"

	job := e.StartExport(context.Background(), "doc-1", doc, EngineBuiltin)
	assert.Equal(t, domain.ExportPending, job.Status)
	assert.True(t, strings.HasPrefix(job.FileName, "Ada_Lovelace_resume_"))
	assert.True(t, strings.HasSuffix(job.FileName, ".pdf"))

	final := waitForJob(t, e, job.ID, settled)
	require.Equal(t, domain.ExportCompleted, final.Status)

	raw, err := os.ReadFile(final.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestStartExportUnknownEngineFallsBackToBuiltin(t *testing.T) {
	e := NewExporter(nil, testTplDir, t.TempDir(), logger.NewNop())
	job := e.StartExport(context.Background(), "doc-1", model.NewDocument(), "quantum")
	assert.Equal(t, EngineBuiltin, job.Engine)

	final := waitForJob(t, e, job.ID, settled)
	assert.Equal(t, domain.ExportCompleted, final.Status)
}

func TestStartExportChromeEngineRequiresRenderer(t *testing.T) {
	e := NewExporter(nil, testTplDir, t.TempDir(), logger.NewNop())
	job := e.StartExport(context.Background(), "doc-1", model.NewDocument(), EngineChrome)
	assert.Equal(t, EngineBuiltin, job.Engine)
}

func TestLastRequestedExportWins(t *testing.T) {
	renderer := &blockingRenderer{release: make(chan struct{})}
	e := NewExporter(renderer, testTplDir, t.TempDir(), logger.NewNop())
	doc := model.NewDocument()

	first := e.StartExport(context.Background(), "doc-1", doc, EngineChrome)
	second := e.StartExport(context.Background(), "doc-1", doc, EngineChrome)
	close(renderer.release)

	finalFirst := waitForJob(t, e, first.ID, settled)
	finalSecond := waitForJob(t, e, second.ID, settled)

	assert.Equal(t, domain.ExportSuperseded, finalFirst.Status)
	assert.Equal(t, domain.ExportCompleted, finalSecond.Status)
}

func TestExportsForDifferentDocumentsDoNotInterfere(t *testing.T) {
	renderer := &blockingRenderer{release: make(chan struct{})}
	e := NewExporter(renderer, testTplDir, t.TempDir(), logger.NewNop())

	a := e.StartExport(context.Background(), "doc-a", model.NewDocument(), EngineChrome)
	b := e.StartExport(context.Background(), "doc-b", model.NewDocument(), EngineChrome)
	close(renderer.release)

	assert.Equal(t, domain.ExportCompleted, waitForJob(t, e, a.ID, settled).Status)
	assert.Equal(t, domain.ExportCompleted, waitForJob(t, e, b.ID, settled).Status)
}

func TestJobUnknownID(t *testing.T) {
	e := NewExporter(nil, testTplDir, t.TempDir(), logger.NewNop())
	_, ok := e.Job(uuid.New())
	assert.False(t, ok)
}

func TestBuildHTMLContainsDocumentContent(t *testing.T) {
	e := NewExporter(nil, testTplDir, t.TempDir(), logger.NewNop())

	doc := model.NewDocument()
	doc.PersonalInfo.Name = "Ada Lovelace"
	doc.Summary = model.Summary{Content: "<p>Engineer with <strong>ten</strong> years.</p>", Included: true}

	html, err := e.BuildHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "<strong>ten</strong>")
	assert.Contains(t, html, "Summary")
}
