package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appleads "github.com/quirky-analytics/leadgen/internal/application/leads"
	"github.com/quirky-analytics/leadgen/internal/domain/lead"
	"github.com/quirky-analytics/leadgen/internal/infra/history"
	"github.com/quirky-analytics/leadgen/internal/infra/report"
	"github.com/quirky-analytics/leadgen/internal/middleware"
)

const fitReplyGood = `{
	"company_name": "Acme SaaS",
	"industry": "Software",
	"sector": "Technology",
	"company_size": "50-200",
	"is_good_fit": true,
	"fit_score": 82,
	"fit_reasoning": "Matches the target profile.",
	"brief_company_overview": "Acme builds billing software."
}`

const fitReplyPoor = `{
	"company_name": "Rusty Anchors Ltd",
	"industry": "Marine Hardware",
	"sector": "Manufacturing",
	"company_size": "10-50",
	"is_good_fit": false,
	"fit_score": 21,
	"fit_reasoning": "Outside the target profile.",
	"brief_company_overview": "Rusty Anchors forges anchors."
}`

const painReply = `{
	"potential_pain_points": [
		{"pain_point": "Manual reporting", "severity": "high", "evidence": "Hiring BI analysts"}
	],
	"how_we_can_help": [
		{"our_solution": "Power BI rollout", "addresses_pain_point": "Manual reporting", "value_proposition": "Hours saved", "implementation_approach": "Phased"}
	],
	"engagement_strategy": {
		"primary_contact": "VP of Operations",
		"key_talking_points": ["p1", "p2"],
		"differentiation_angle": "Accelerators"
	},
	"estimated_opportunity_value": "large",
	"recommended_next_steps": ["intro call"]
}`

type stubProvider struct {
	fitReply  string
	fitErr    error
	painReply string
	painErr   error
}

func (s *stubProvider) AnalyzeFit(context.Context, lead.Criteria, string) (string, error) {
	return s.fitReply, s.fitErr
}

func (s *stubProvider) AnalyzePain(context.Context, lead.CompanyProfile) (string, error) {
	return s.painReply, s.painErr
}

type stubArchive struct {
	url string
	err error
	key string
}

func (s *stubArchive) UploadReport(_ context.Context, key string, _ []byte) (string, error) {
	s.key = key
	return s.url, s.err
}

func newTestRouter(provider *stubProvider, archive lead.Archive) (http.Handler, *history.MemoryStore) {
	store := history.NewMemoryStore()
	svc := &appleads.Service{
		Provider: provider,
		History:  store,
		Criteria: lead.Criteria{
			TargetSectors:    []string{"Technology"},
			TargetIndustries: []string{"SaaS"},
			Services:         "AI consulting",
		},
		Clock: appleads.SystemClock{},
	}
	return NewRouter(svc, report.NewGenerator(), archive, true, nil), store
}

func postAnalyze(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/leads/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyze_GoodFit(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{fitReply: fitReplyGood, painReply: painReply}, nil)

	w := postAnalyze(t, router, `{"company_name": "Acme SaaS"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res appleads.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, lead.OutcomeFitAndPain, res.Outcome)
	assert.NotEmpty(t, res.RecordID)
	require.NotNil(t, res.Pain)
	assert.Len(t, res.Pain.PotentialPainPoints, 1)
}

func TestAnalyze_PoorFit(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{fitReply: fitReplyPoor}, nil)

	w := postAnalyze(t, router, `{"company_name": "Rusty Anchors Ltd"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res appleads.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, lead.OutcomeFitOnly, res.Outcome)
	assert.Nil(t, res.Pain)
}

func TestAnalyze_ProviderFailure_Returns200WithError(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{fitErr: errors.New("boom")}, nil)

	w := postAnalyze(t, router, `{"company_name": "Acme SaaS"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res appleads.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, lead.OutcomeFitFailed, res.Outcome)
	assert.Contains(t, res.Error, "boom")
}

func TestAnalyze_EmptyCompanyName(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{}, nil)

	w := postAnalyze(t, router, `{"company_name": "  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyze_InvalidBody(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{}, nil)

	w := postAnalyze(t, router, `{nope`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_NewestFirst(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{fitReply: fitReplyGood, painReply: painReply}, nil)

	postAnalyze(t, router, `{"company_name": "First Co"}`)
	postAnalyze(t, router, `{"company_name": "Second Co"}`)

	req := httptest.NewRequest(http.MethodGet, "/v1/leads/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []historySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "Second Co", summaries[0].CompanyName)
	assert.Equal(t, "First Co", summaries[1].CompanyName)
	assert.Equal(t, 1, summaries[0].PainPoints)
	assert.Equal(t, 1, summaries[0].Solutions)
	assert.Equal(t, lead.OpportunityLarge, summaries[0].OpportunityValue)
}

func TestHistoryGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/leads/history/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReport_RendersStoredRecord(t *testing.T) {
	router, store := newTestRouter(&stubProvider{fitReply: fitReplyGood, painReply: painReply}, nil)

	postAnalyze(t, router, `{"company_name": "Acme SaaS"}`)
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	req := httptest.NewRequest(http.MethodGet, "/v1/leads/history/"+string(records[0].ID)+"/report", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Lead_Analysis_Acme_SaaS_")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestArchive_DisabledReturns503(t *testing.T) {
	router, store := newTestRouter(&stubProvider{fitReply: fitReplyPoor}, nil)

	postAnalyze(t, router, `{"company_name": "Rusty Anchors Ltd"}`)
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	req := httptest.NewRequest(http.MethodPost, "/v1/leads/history/"+string(records[0].ID)+"/archive", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestArchive_UploadsRenderedReport(t *testing.T) {
	archive := &stubArchive{url: "http://minio.local/reports/x.pdf"}
	router, store := newTestRouter(&stubProvider{fitReply: fitReplyPoor}, archive)

	postAnalyze(t, router, `{"company_name": "Rusty Anchors Ltd"}`)
	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	req := httptest.NewRequest(http.MethodPost, "/v1/leads/history/"+string(records[0].ID)+"/archive", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "http://minio.local/reports/x.pdf", body["url"])
	assert.Contains(t, archive.key, "Lead_Analysis_Rusty_Anchors_Ltd_")
}

func TestAnalyze_RateLimited(t *testing.T) {
	store := history.NewMemoryStore()
	svc := &appleads.Service{
		Provider: &stubProvider{fitReply: fitReplyPoor},
		History:  store,
		Clock:    appleads.SystemClock{},
	}
	router := NewRouter(svc, report.NewGenerator(), nil, true, middleware.NewTokenBucket(1, 1))

	w1 := postAnalyze(t, router, `{"company_name": "Acme SaaS"}`)
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := postAnalyze(t, router, `{"company_name": "Acme SaaS"}`)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)

	// history reads are not throttled
	req := httptest.NewRequest(http.MethodGet, "/v1/leads/history", nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)
	assert.Equal(t, http.StatusOK, w3.Code)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"provider"`)
}
