package http

import (
	"context"
	"errors"
	"io"
	"strings"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	repo      repository.DocumentRepo
	mutator   *usecase.Mutator
	exporter  *usecase.Exporter
	uploader  *usecase.Uploader
	extractor usecase.Extractor
	log       logger.Logger
}

func NewHandler(repo repository.DocumentRepo, m *usecase.Mutator, e *usecase.Exporter, u *usecase.Uploader, x usecase.Extractor, log logger.Logger) *Handler {
	return &Handler{repo: repo, mutator: m, exporter: e, uploader: u, extractor: x, log: log}
}

// Register wires all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/documents", h.CreateDocument)
	app.Get("/documents/:id", h.GetDocument)
	app.Put("/documents/:id", h.PutDocument)
	app.Delete("/documents/:id", h.DeleteDocument)
	app.Post("/documents/:id/reset", h.ResetDocument)

	app.Put("/documents/:id/personal-info", h.UpdatePersonalInfo)
	app.Patch("/documents/:id/summary", h.UpdateSummary)
	app.Patch("/documents/:id/styles", h.UpdateStyles)

	app.Post("/documents/:id/entries/:collection", h.AddEntry)
	app.Patch("/documents/:id/entries/:collection/:entryId", h.UpdateEntry)
	app.Delete("/documents/:id/entries/:collection/:entryId", h.DeleteEntry)
	app.Put("/documents/:id/entries/:collection/order", h.ReorderEntries)

	app.Put("/documents/:id/modules", h.UpdateModules)
	app.Post("/documents/:id/modules/:moduleId/toggle", h.ToggleModule)

	app.Post("/documents/:id/portfolio/:entryId/qrcode", h.GenerateQRCode)

	app.Post("/documents/:id/export", h.StartExport)
	app.Get("/documents/:id/export/html", h.ExportHTML)
	app.Get("/exports/:jobId", h.ExportStatus)
	app.Get("/exports/:jobId/download", h.DownloadExport)

	app.Post("/upload", h.Upload)
	app.Post("/chat/extract", h.ChatExtract)
}

// loadDocument fetches the document or writes the 404 itself. The second
// return value reports whether a response was already sent.
func (h *Handler) loadDocument(c *fiber.Ctx) (*model.Document, bool) {
	doc, err := h.repo.Load(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
			return nil, false
		}
		h.log.Error("load document failed", err, zap.String("documentId", c.Params("id")))
		c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
		return nil, false
	}
	return doc, true
}

func (h *Handler) saveAndReply(c *fiber.Ctx, doc *model.Document, extra fiber.Map) error {
	if err := h.repo.Save(c.Context(), c.Params("id"), doc); err != nil {
		h.log.Error("save document failed", err, zap.String("documentId", c.Params("id")))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
	}
	body := fiber.Map{"document": doc}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

func (h *Handler) CreateDocument(c *fiber.Ctx) error {
	id := uuid.NewString()
	doc := model.NewDocument()
	if err := h.repo.Save(c.Context(), id, doc); err != nil {
		h.log.Error("create document failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "document": doc})
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"document": doc})
}

// PutDocument replaces the document with client-supplied JSON, e.g. a
// loaded save file. Schema failures abort with the field-by-field error
// list and leave stored state untouched.
func (h *Handler) PutDocument(c *fiber.Ctx) error {
	doc, err := model.DecodeDocument(c.Body())
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "document validation failed",
				"fields": verr.Fields,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	return h.saveAndReply(c, doc, nil)
}

func (h *Handler) DeleteDocument(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Context(), c.Params("id")); err != nil {
		h.log.Error("delete document failed", err, zap.String("documentId", c.Params("id")))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "storage unavailable"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ResetDocument(c *fiber.Ctx) error {
	return h.saveAndReply(c, h.mutator.ClearAll(), nil)
}

func (h *Handler) UpdatePersonalInfo(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var info model.PersonalInfo
	if err := c.BodyParser(&info); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	h.mutator.UpdatePersonalInfo(doc, info)
	return h.saveAndReply(c, doc, nil)
}

func (h *Handler) UpdateSummary(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var patch usecase.SummaryPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	h.mutator.UpdateSummary(doc, patch)
	return h.saveAndReply(c, doc, nil)
}

func (h *Handler) UpdateStyles(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var patch usecase.StylesPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	h.mutator.UpdateStyles(doc, patch)
	return h.saveAndReply(c, doc, nil)
}

func (h *Handler) UpdateModules(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var modules []model.Module
	if err := c.BodyParser(&modules); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	h.mutator.UpdateModules(doc, modules)
	return h.saveAndReply(c, doc, nil)
}

func (h *Handler) ToggleModule(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	changed := h.mutator.ToggleModule(doc, c.Params("moduleId"))
	return h.saveAndReply(c, doc, fiber.Map{"changed": changed})
}

func (h *Handler) GenerateQRCode(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	changed := h.mutator.GenerateQRCode(doc, c.Params("entryId"), req.URL)
	return h.saveAndReply(c, doc, fiber.Map{"changed": changed})
}

// orgCollections maps the three organization-shaped entry collections to
// their mutator selector. The remaining collections have their own types.
var orgCollections = map[string]usecase.OrgCollection{
	"leadership": usecase.Leadership,
	"projects":   usecase.Project,
	"research":   usecase.Research,
}

func badCollection(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown collection"})
}

// AddEntry appends a fresh default entry to the named collection and
// returns it alongside the updated document.
func (h *Handler) AddEntry(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var entry interface{}
	switch col := c.Params("collection"); col {
	case "experiences":
		entry = h.mutator.AddExperience(doc)
	case "education":
		entry = h.mutator.AddEducation(doc)
	case "skills":
		entry = h.mutator.AddSkill(doc)
	case "portfolio":
		entry = h.mutator.AddPortfolioItem(doc)
	default:
		oc, ok := orgCollections[col]
		if !ok {
			return badCollection(c)
		}
		entry = h.mutator.AddOrganizationExperience(doc, oc)
	}
	return h.saveAndReply(c, doc, fiber.Map{"entry": entry})
}

// UpdateEntry applies a partial patch to one entry. A missing entry id is
// not an error: the reply carries changed=false and the document as-is.
func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	id := c.Params("entryId")
	var changed bool
	switch col := c.Params("collection"); col {
	case "experiences":
		var p usecase.ExperiencePatch
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		changed = h.mutator.UpdateExperience(doc, id, p)
	case "education":
		var p usecase.EducationPatch
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		changed = h.mutator.UpdateEducation(doc, id, p)
	case "skills":
		var p usecase.SkillPatch
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		changed = h.mutator.UpdateSkill(doc, id, p)
	case "portfolio":
		var p usecase.PortfolioPatch
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		changed = h.mutator.UpdatePortfolioItem(doc, id, p)
	default:
		oc, ok := orgCollections[col]
		if !ok {
			return badCollection(c)
		}
		var p usecase.OrganizationPatch
		if err := c.BodyParser(&p); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		changed = h.mutator.UpdateOrganizationExperience(doc, oc, id, p)
	}
	return h.saveAndReply(c, doc, fiber.Map{"changed": changed})
}

func (h *Handler) DeleteEntry(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	id := c.Params("entryId")
	var changed bool
	switch col := c.Params("collection"); col {
	case "experiences":
		changed = h.mutator.DeleteExperience(doc, id)
	case "education":
		changed = h.mutator.DeleteEducation(doc, id)
	case "skills":
		changed = h.mutator.DeleteSkill(doc, id)
	case "portfolio":
		changed = h.mutator.DeletePortfolioItem(doc, id)
	default:
		oc, ok := orgCollections[col]
		if !ok {
			return badCollection(c)
		}
		changed = h.mutator.DeleteOrganizationExperience(doc, oc, id)
	}
	return h.saveAndReply(c, doc, fiber.Map{"changed": changed})
}

// ReorderEntries replaces a collection with the caller-supplied ordering.
func (h *Handler) ReorderEntries(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	switch col := c.Params("collection"); col {
	case "experiences":
		var items []model.Experience
		if err := c.BodyParser(&items); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		h.mutator.ReorderExperiences(doc, items)
	case "education":
		var items []model.Education
		if err := c.BodyParser(&items); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		h.mutator.ReorderEducation(doc, items)
	case "skills":
		var items []model.Skill
		if err := c.BodyParser(&items); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		h.mutator.ReorderSkills(doc, items)
	case "portfolio":
		var items []model.PortfolioItem
		if err := c.BodyParser(&items); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		h.mutator.ReorderPortfolio(doc, items)
	default:
		oc, ok := orgCollections[col]
		if !ok {
			return badCollection(c)
		}
		var items []model.OrganizationExperience
		if err := c.BodyParser(&items); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
		h.mutator.ReorderOrganizationExperiences(doc, oc, items)
	}
	return h.saveAndReply(c, doc, nil)
}

func (h *Handler) StartExport(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	var req struct {
		Engine string `json:"engine"`
	}
	// body is optional; default engine applies
	_ = c.BodyParser(&req)

	// Copy the param: fiber reuses its backing buffer once the handler
	// returns, and StartExport hands the id to a background goroutine.
	job := h.exporter.StartExport(context.Background(), strings.Clone(c.Params("id")), doc, req.Engine)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"jobId": job.ID.String(), "status": job.Status, "fileName": job.FileName})
}

func (h *Handler) ExportStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid jobId"})
	}
	job, ok := h.exporter.Job(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "export not found"})
	}
	return c.JSON(job)
}

func (h *Handler) DownloadExport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid jobId"})
	}
	job, ok := h.exporter.Job(id)
	if !ok || job.Status != domain.ExportCompleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "export not ready"})
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+job.FileName+`"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendFile(job.Path)
}

// ExportHTML returns the HTML rendition used by the chrome engine, handy
// as a browser preview.
func (h *Handler) ExportHTML(c *fiber.Ctx) error {
	doc, ok := h.loadDocument(c)
	if !ok {
		return nil
	}
	html, err := h.exporter.BuildHTML(doc)
	if err != nil {
		h.log.Error("html export failed", err, zap.String("documentId", c.Params("id")))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "render failed"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// Upload accepts a PDF resume, extracts its text and runs the extractor.
// Both the empty-PDF and the extraction-failure case answer 200 with an
// empty document; callers distinguish them by meta.reason.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only application/pdf is accepted"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}

	return c.JSON(h.uploader.Parse(c.Context(), content))
}

// ChatExtract turns a free-text conversation into a partial document.
// Extractor failures surface as a generic retryable message; the stored
// document is never touched by this endpoint.
func (h *Handler) ChatExtract(c *fiber.Ctx) error {
	var req struct {
		Messages []ai.Message `json:"messages"`
	}
	if err := c.BodyParser(&req); err != nil || len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc, err := h.extractor.ExtractResume(c.Context(), req.Messages)
	if err != nil {
		h.log.Warn("chat extraction failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "extraction unavailable, please try again"})
	}
	return c.JSON(fiber.Map{"document": doc})
}
