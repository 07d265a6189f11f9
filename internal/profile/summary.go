// Package profile loads raw profile data and condenses it into the
// summary every later prompt is built on.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpilot/careerpilot/internal/domain"
)

// SummaryInstruction drives the one summarization pass that bounds
// prompt size for the rest of the session.
const SummaryInstruction = `
You are an expert LinkedIn profile summarizer with extensive experience in talent
assessment. Create a comprehensive, structured summary that captures a professional's
background, skills, and career trajectory from raw profile data.

Cover, in order:
1. PROFESSIONAL IDENTITY: name, headline, current role, key value proposition
2. CAREER OVERVIEW: progression, key roles, leadership positions, total experience
3. CURRENT COMPANY CONTEXT: employer, industry, scale
4. EDUCATIONAL BACKGROUND: degrees, institutions, specialized training
5. CORE COMPETENCIES: skills grouped by type, prioritized by endorsements and relevance
6. CREDENTIALS: certifications, courses, notable achievements and awards
7. ADDITIONAL ACTIVITIES: projects, publications, volunteer work
8. NETWORK & INFLUENCE: connections, followers, thought-leadership indicators

Output structure:
**EXECUTIVE SUMMARY** (2-3 sentences)
**PROFESSIONAL BACKGROUND**
**KEY STRENGTHS** (top 5-7 competencies)
**CREDENTIALS**
**PROFILE STRENGTH INDICATORS**

Quality standards: professional objective language, quantifiable achievements where
available, keyword-rich and ATS-friendly, concise but comprehensive sections.
If a field is empty or missing, skip it gracefully without mentioning the gap.
Focus on career-relevant information and leave out unnecessary personal details.
`

// Summarizer produces the condensed textual summary stored once per
// session.
type Summarizer struct {
	gen domain.Generator
}

func NewSummarizer(gen domain.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize condenses raw profile data (scraped JSON or extracted
// resume text). Empty input yields an empty summary without a remote
// call.
func (s *Summarizer) Summarize(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	summary, err := s.gen.Generate(ctx, "Raw profile data to summarize:\n"+raw)
	if err != nil {
		return "", fmt.Errorf("summarize profile: %w", err)
	}
	return summary, nil
}
