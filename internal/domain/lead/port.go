package lead

import (
	"context"
	"time"
)

// History port: append-only session store for completed analyses.
// List returns records newest-first.
type History interface {
	Append(ctx context.Context, rec *AnalysisRecord) error
	List(ctx context.Context) ([]*AnalysisRecord, error)
	Get(ctx context.Context, id RecordID) (*AnalysisRecord, error)
}

// Renderer port: turns an analysis into a downloadable document.
// Rendering a nil pain analysis must omit the pain sections entirely.
type Renderer interface {
	Render(companyName string, fit FitAssessment, pain *PainAnalysis, generatedAt time.Time) ([]byte, error)
}

// Archive port for pushing rendered reports to object storage.
type Archive interface {
	UploadReport(ctx context.Context, key string, report []byte) (string, error)
}
