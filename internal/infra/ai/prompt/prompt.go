package prompt

import (
	"fmt"
	"strings"

	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

// FitPrompt builds the stage-1 qualification prompt. The schema block is
// part of the contract: the decoder expects exactly these keys back.
func FitPrompt(crit lead.Criteria, companyName string) string {
	return fmt.Sprintf(`You are a lead qualification analyst for a consulting company specializing in data science, AI, and business intelligence.

Our Target Profile:
- Target Sectors: %s
- Target Industries: %s
- Our Services: %s

Company to Analyze: %s

Please analyze this company and provide a JSON response with the following structure:

{
    "company_name": "string",
    "industry": "string",
    "sector": "string",
    "company_size": "string (estimated employees)",
    "is_good_fit": true/false,
    "fit_score": 0-100,
    "fit_reasoning": "detailed explanation of why this is or isn't a good fit",
    "brief_company_overview": "2-3 sentence overview of what the company does"
}

Base your analysis on publicly available information about the company. Be thorough and honest in your assessment.

IMPORTANT: Respond ONLY with valid JSON. Do not include any text outside the JSON structure.`,
		strings.Join(crit.TargetSectors, ", "),
		strings.Join(crit.TargetIndustries, ", "),
		crit.Services,
		companyName,
	)
}

// PainPrompt builds the stage-2 deep-dive prompt from the stage-1 profile.
func PainPrompt(p lead.CompanyProfile) string {
	return fmt.Sprintf(`You are a business development analyst specializing in data science, AI, and analytics consulting.

Company Information:
- Name: %s
- Industry: %s
- Overview: %s

Our Services:
%s

Please provide a comprehensive analysis in JSON format:

{
    "potential_pain_points": [
        {
            "pain_point": "description",
            "severity": "high/medium/low",
            "evidence": "why we think this is a pain point"
        }
    ],
    "how_we_can_help": [
        {
            "our_solution": "which service/capability",
            "addresses_pain_point": "which pain point",
            "value_proposition": "specific benefit",
            "implementation_approach": "brief description"
        }
    ],
    "engagement_strategy": {
        "primary_contact": "suggested role to reach out to",
        "key_talking_points": ["point1", "point2", "point3"],
        "differentiation_angle": "what makes our approach unique for them"
    },
    "estimated_opportunity_value": "small/medium/large/enterprise",
    "recommended_next_steps": ["step1", "step2", "step3"]
}

Be specific and actionable. Base your analysis on typical challenges in their industry and company profile.

IMPORTANT: Respond ONLY with valid JSON. Do not include any text outside the JSON structure.`,
		p.CompanyName,
		p.Industry,
		p.Overview,
		p.Services,
	)
}
