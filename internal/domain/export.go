package domain

import (
	"time"

	"github.com/google/uuid"
)

// Export job statuses.
const (
	ExportPending    = "pending"
	ExportCompleted  = "completed"
	ExportFailed     = "failed"
	ExportSuperseded = "superseded"
)

// ExportJob tracks one asynchronous PDF generation request. Seq orders
// requests per document: when a newer request exists by the time an older
// one completes, the older result is discarded (last-requested wins).
type ExportJob struct {
	ID         uuid.UUID `json:"id"`
	DocumentID string    `json:"documentId"`
	Status     string    `json:"status"`
	Engine     string    `json:"engine"`
	FileName   string    `json:"fileName"`
	Path       string    `json:"-"`
	Seq        uint64    `json:"-"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
