package leads

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

var fitRequiredKeys = []string{
	"company_name",
	"industry",
	"sector",
	"company_size",
	"is_good_fit",
	"fit_score",
	"fit_reasoning",
	"brief_company_overview",
}

var painRequiredKeys = []string{
	"potential_pain_points",
	"how_we_can_help",
	"engagement_strategy",
	"estimated_opportunity_value",
	"recommended_next_steps",
}

// stripFence removes a surrounding markdown code fence from a provider
// reply. Providers occasionally wrap the JSON in ```json ... ``` even when
// told not to; a fenced reply must decode identically to a bare one.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if i := strings.LastIndex(text, "```"); i != -1 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// decodeFit parses a stage-1 reply. Required keys are validated up front so
// a bad reply surfaces as one SchemaError naming every missing field,
// rather than a lookup failure at first access.
func decodeFit(raw string) (lead.FitAssessment, error) {
	var fit lead.FitAssessment
	text := stripFence(raw)

	keys, err := objectKeys(text)
	if err != nil {
		return fit, err
	}
	if missing := missingKeys(keys, fitRequiredKeys); len(missing) > 0 {
		return fit, &lead.SchemaError{Fields: missing}
	}

	if err := json.Unmarshal([]byte(text), &fit); err != nil {
		return fit, schemaOrParseError(err)
	}
	return fit, nil
}

// decodePain parses a stage-2 reply with the same validation policy.
func decodePain(raw string) (lead.PainAnalysis, error) {
	var pain lead.PainAnalysis
	text := stripFence(raw)

	keys, err := objectKeys(text)
	if err != nil {
		return pain, err
	}
	if missing := missingKeys(keys, painRequiredKeys); len(missing) > 0 {
		return pain, &lead.SchemaError{Fields: missing}
	}

	if err := json.Unmarshal([]byte(text), &pain); err != nil {
		return pain, schemaOrParseError(err)
	}
	return pain, nil
}

func objectKeys(text string) (map[string]json.RawMessage, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, &lead.ParseError{Err: err}
	}
	return keys, nil
}

func missingKeys(keys map[string]json.RawMessage, required []string) []string {
	var missing []string
	for _, k := range required {
		if _, ok := keys[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// schemaOrParseError classifies a struct-decode failure: a type mismatch on
// a known field is a schema problem, anything else is malformed JSON.
func schemaOrParseError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &lead.SchemaError{Fields: []string{typeErr.Field}}
	}
	return &lead.ParseError{Err: err}
}
