package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	appleads "github.com/quirky-analytics/leadgen/internal/application/leads"
	domai "github.com/quirky-analytics/leadgen/internal/domain/ai"
	"github.com/quirky-analytics/leadgen/internal/domain/lead"
	"github.com/quirky-analytics/leadgen/internal/infra/report"
	"github.com/quirky-analytics/leadgen/internal/middleware"
)

var errArchiveDisabled = errors.New("report archive is not configured")

type Router struct {
	leads    *appleads.Service
	renderer lead.Renderer
	archive  lead.Archive // nil when archiving is disabled
}

// NewRouter builds the API surface. bucket throttles analyze requests only,
// so the provider quota is protected without rate-limiting health probes;
// pass nil to disable throttling.
func NewRouter(leadsSvc *appleads.Service, renderer lead.Renderer, archive lead.Archive, providerConfigured bool, bucket *middleware.TokenBucket) http.Handler {
	r := &Router{leads: leadsSvc, renderer: renderer, archive: archive}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(providerConfigured, archive != nil))
	mux.Get("/metrics", middleware.MetricsHandler())

	mux.Route("/v1/leads", func(rt chi.Router) {
		analyze := rt
		if bucket != nil {
			analyze = rt.With(middleware.RateLimit(bucket))
		}
		analyze.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/history/{id}", r.wrap(r.handleHistoryGet))
		rt.Get("/history/{id}/report", r.wrap(r.handleReport))
		rt.Post("/history/{id}/archive", r.wrap(r.handleArchive))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var vErr *middleware.ValidationError
			switch {
			case errors.Is(err, lead.ErrRecordNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			case errors.As(err, &vErr):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, errArchiveDisabled):
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/leads/analyze
// Body: {"company_name": "...", optional criteria overrides}
// Pipeline failures are not transport errors: they come back as 200 with
// success=false so the caller can still read a partial fit result.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		CompanyName      string   `json:"company_name"`
		TargetSectors    []string `json:"target_sectors"`
		TargetIndustries []string `json:"target_industries"`
		Services         string   `json:"services"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &middleware.ValidationError{Field: "body", Reason: "must be valid JSON"}
	}
	if err := middleware.ValidateCompanyName(body.CompanyName); err != nil {
		return err
	}
	if err := middleware.ValidateCriteriaList("target_sectors", body.TargetSectors); err != nil {
		return err
	}
	if err := middleware.ValidateCriteriaList("target_industries", body.TargetIndustries); err != nil {
		return err
	}

	res := r.leads.Analyze(req.Context(), appleads.AnalyzeCommand{
		CompanyName:      body.CompanyName,
		TargetSectors:    body.TargetSectors,
		TargetIndustries: body.TargetIndustries,
		Services:         body.Services,
	})
	middleware.CountAnalysis(res.Fit != nil && res.Fit.IsGoodFit, res.Outcome == lead.OutcomeFitFailed)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(res)
}

// historySummary mirrors the history-tab line items of the original UI.
type historySummary struct {
	ID               lead.RecordID         `json:"id"`
	Timestamp        time.Time             `json:"timestamp"`
	CompanyName      string                `json:"company_name"`
	FitScore         int                   `json:"fit_score"`
	IsGoodFit        bool                  `json:"is_good_fit"`
	PainPoints       int                   `json:"pain_points_identified"`
	Solutions        int                   `json:"solutions_proposed"`
	OpportunityValue lead.OpportunityValue `json:"opportunity_value,omitempty"`
}

// GET /v1/leads/history — newest first
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	records, err := r.leads.History.List(req.Context())
	if err != nil {
		return err
	}

	summaries := make([]historySummary, 0, len(records))
	for _, rec := range records {
		s := historySummary{
			ID:          rec.ID,
			Timestamp:   rec.Timestamp,
			CompanyName: rec.CompanyName,
			FitScore:    rec.Fit.FitScore,
			IsGoodFit:   rec.Fit.IsGoodFit,
		}
		if rec.Pain != nil {
			s.PainPoints = len(rec.Pain.PotentialPainPoints)
			s.Solutions = len(rec.Pain.HowWeCanHelp)
			s.OpportunityValue = rec.Pain.EstimatedOpportunityValue
		}
		summaries = append(summaries, s)
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summaries)
}

// GET /v1/leads/history/{id}
func (r *Router) handleHistoryGet(w http.ResponseWriter, req *http.Request) error {
	rec, err := r.leads.History.Get(req.Context(), lead.RecordID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rec)
}

// GET /v1/leads/history/{id}/report
// Re-renders the stored record; no provider call is made.
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	rec, err := r.leads.History.Get(req.Context(), lead.RecordID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}

	now := time.Now()
	pdf, err := r.renderer.Render(rec.CompanyName, rec.Fit, rec.Pain, now)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(rec.CompanyName, now)+`"`)
	_, err = w.Write(pdf)
	return err
}

// POST /v1/leads/history/{id}/archive
// Renders and pushes the report to object storage. Failures here never
// touch the stored record.
func (r *Router) handleArchive(w http.ResponseWriter, req *http.Request) error {
	if r.archive == nil {
		return errArchiveDisabled
	}

	rec, err := r.leads.History.Get(req.Context(), lead.RecordID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}

	now := time.Now()
	pdf, err := r.renderer.Render(rec.CompanyName, rec.Fit, rec.Pain, now)
	if err != nil {
		return err
	}

	url, err := r.archive.UploadReport(req.Context(), report.Filename(rec.CompanyName, now), pdf)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"url": url})
}
