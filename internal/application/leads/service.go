package leads

import (
	"context"
	"time"

	"github.com/google/uuid"

	domai "github.com/quirky-analytics/leadgen/internal/domain/ai"
	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

// Service implements the two-stage lead analysis use-case.
// Safe for concurrent use as long as History is.
type Service struct {
	Provider domai.Client
	History  lead.History
	Criteria lead.Criteria // defaults, overridable per command
	Clock    Clock
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

//
// ==== USE CASES ====
//

// AnalyzeCommand triggers one analysis run. Empty criteria fields fall back
// to the service defaults field-by-field.
type AnalyzeCommand struct {
	CompanyName      string
	TargetSectors    []string
	TargetIndustries []string
	Services         string
}

// AnalysisResult is the pipeline boundary: errors from either stage are
// converted into it, nothing propagates past Analyze as a Go error.
type AnalysisResult struct {
	Success  bool                `json:"success"`
	Outcome  lead.Outcome        `json:"outcome"`
	RecordID lead.RecordID       `json:"record_id,omitempty"`
	Fit      *lead.FitAssessment `json:"fit,omitempty"`
	Pain     *lead.PainAnalysis  `json:"pain,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Analyze runs fit scoring, then pain analysis when the company is a good
// fit. The pain stage is never attempted for a poor fit. Completed and
// partially-completed runs are appended to history; a stage-1 failure
// saves nothing.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) AnalysisResult {
	crit := s.criteriaFor(cmd)

	raw, err := s.Provider.AnalyzeFit(ctx, crit, cmd.CompanyName)
	if err != nil {
		return AnalysisResult{Outcome: lead.OutcomeFitFailed, Error: err.Error()}
	}
	fit, err := decodeFit(raw)
	if err != nil {
		return AnalysisResult{Outcome: lead.OutcomeFitFailed, Error: err.Error()}
	}

	if !fit.IsGoodFit {
		rec, err := s.save(ctx, cmd.CompanyName, fit, nil)
		if err != nil {
			return AnalysisResult{Outcome: lead.OutcomeFitOnly, Fit: &fit, Error: err.Error()}
		}
		return AnalysisResult{Success: true, Outcome: lead.OutcomeFitOnly, RecordID: rec.ID, Fit: &fit}
	}

	profile := lead.CompanyProfile{
		CompanyName: cmd.CompanyName,
		Overview:    fit.BriefCompanyOverview,
		Industry:    fit.Industry,
		Services:    crit.Services,
	}
	rawPain, err := s.Provider.AnalyzePain(ctx, profile)
	if err != nil {
		return s.painFailed(ctx, cmd.CompanyName, fit, err)
	}
	pain, err := decodePain(rawPain)
	if err != nil {
		return s.painFailed(ctx, cmd.CompanyName, fit, err)
	}

	rec, err := s.save(ctx, cmd.CompanyName, fit, &pain)
	if err != nil {
		return AnalysisResult{Outcome: lead.OutcomeFitAndPain, Fit: &fit, Pain: &pain, Error: err.Error()}
	}
	return AnalysisResult{Success: true, Outcome: lead.OutcomeFitAndPain, RecordID: rec.ID, Fit: &fit, Pain: &pain}
}

// painFailed is the partial-success terminal state: the fit assessment is
// retained and saved, the stage-2 error is reported.
func (s *Service) painFailed(ctx context.Context, companyName string, fit lead.FitAssessment, cause error) AnalysisResult {
	res := AnalysisResult{Outcome: lead.OutcomePainFailed, Fit: &fit, Error: cause.Error()}
	if rec, err := s.save(ctx, companyName, fit, nil); err == nil {
		res.RecordID = rec.ID
	}
	return res
}

func (s *Service) save(ctx context.Context, companyName string, fit lead.FitAssessment, pain *lead.PainAnalysis) (*lead.AnalysisRecord, error) {
	rec := &lead.AnalysisRecord{
		ID:          lead.RecordID(uuid.New().String()),
		Timestamp:   s.Clock.Now(),
		CompanyName: companyName,
		Fit:         fit,
		Pain:        pain,
	}
	if err := s.History.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) criteriaFor(cmd AnalyzeCommand) lead.Criteria {
	crit := s.Criteria
	if len(cmd.TargetSectors) > 0 {
		crit.TargetSectors = cmd.TargetSectors
	}
	if len(cmd.TargetIndustries) > 0 {
		crit.TargetIndustries = cmd.TargetIndustries
	}
	if cmd.Services != "" {
		crit.Services = cmd.Services
	}
	return crit
}
