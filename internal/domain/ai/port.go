package ai

import (
	"context"

	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

// Client is the text-completion provider boundary. Each call is one
// network round-trip returning the provider's raw reply text.
type Client interface {
	AnalyzeFit(ctx context.Context, crit lead.Criteria, companyName string) (string, error)
	AnalyzePain(ctx context.Context, profile lead.CompanyProfile) (string, error)
}
