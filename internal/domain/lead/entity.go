package lead

import (
	"time"
)

// RecordID tipe untuk AnalysisRecord
type RecordID string

// Severity enum untuk pain point
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// OpportunityValue enum
type OpportunityValue string

const (
	OpportunitySmall      OpportunityValue = "small"
	OpportunityMedium     OpportunityValue = "medium"
	OpportunityLarge      OpportunityValue = "large"
	OpportunityEnterprise OpportunityValue = "enterprise"
)

// Outcome enum: terminal states of one pipeline run
type Outcome string

const (
	// OutcomeFitFailed: stage 1 failed, nothing saved.
	OutcomeFitFailed Outcome = "fit_failed"
	// OutcomeFitOnly: fit assessed, pain stage skipped (poor fit).
	OutcomeFitOnly Outcome = "fit_only"
	// OutcomeFitAndPain: both stages completed.
	OutcomeFitAndPain Outcome = "fit_and_pain"
	// OutcomePainFailed: stage 2 failed, fit assessment retained.
	OutcomePainFailed Outcome = "pain_failed"
)

// Criteria holds the qualification profile the fit stage scores against.
type Criteria struct {
	TargetSectors    []string `json:"target_sectors"`
	TargetIndustries []string `json:"target_industries"`
	Services         string   `json:"services"`
}

// CompanyProfile is the stage-1 output slice the pain stage prompts from.
type CompanyProfile struct {
	CompanyName string
	Overview    string
	Industry    string
	Services    string
}

// FitAssessment is the stage-1 result. Field names mirror the JSON schema
// the provider is instructed to emit. Immutable after creation.
type FitAssessment struct {
	CompanyName          string `json:"company_name"`
	Industry             string `json:"industry"`
	Sector               string `json:"sector"`
	CompanySize          string `json:"company_size"`
	IsGoodFit            bool   `json:"is_good_fit"`
	FitScore             int    `json:"fit_score"`
	FitReasoning         string `json:"fit_reasoning"`
	BriefCompanyOverview string `json:"brief_company_overview"`
}

type PainPoint struct {
	PainPoint string   `json:"pain_point"`
	Severity  Severity `json:"severity"`
	Evidence  string   `json:"evidence"`
}

type Solution struct {
	OurSolution            string `json:"our_solution"`
	AddressesPainPoint     string `json:"addresses_pain_point"`
	ValueProposition       string `json:"value_proposition"`
	ImplementationApproach string `json:"implementation_approach"`
}

type EngagementStrategy struct {
	PrimaryContact       string   `json:"primary_contact"`
	KeyTalkingPoints     []string `json:"key_talking_points"`
	DifferentiationAngle string   `json:"differentiation_angle"`
}

// PainAnalysis is the stage-2 result. Only computed for good-fit companies.
type PainAnalysis struct {
	PotentialPainPoints       []PainPoint        `json:"potential_pain_points"`
	HowWeCanHelp              []Solution         `json:"how_we_can_help"`
	EngagementStrategy        EngagementStrategy `json:"engagement_strategy"`
	EstimatedOpportunityValue OpportunityValue   `json:"estimated_opportunity_value"`
	RecommendedNextSteps      []string           `json:"recommended_next_steps"`
}

// Aggregate Root: AnalysisRecord. Append-only, never mutated after save.
// Pain is nil unless Fit.IsGoodFit is true and stage 2 completed.
type AnalysisRecord struct {
	ID          RecordID      `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	CompanyName string        `json:"company_name"`
	Fit         FitAssessment `json:"fit"`
	Pain        *PainAnalysis `json:"pain,omitempty"`
}
