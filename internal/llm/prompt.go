package llm

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/AdamKaabyia/weekly-report-ai/internal/model"
)

const summarySystem = "You are a knowledgeable code and workflow analyst."

const overviewSystem = "You are a professional technical writer."

// buildPRPrompt formats one PR for summarization. The body is truncated to
// the token budget; the title is always kept whole.
func buildPRPrompt(pr model.PullRequest, modelName string, budget int) string {
	body := pr.Body
	if body == "" {
		body = "No description provided."
	}
	body = truncateToTokens(body, modelName, budget)

	var b strings.Builder
	b.WriteString("Summarize the following pull request in detail, highlighting its purpose, changes, and notable insights. ")
	b.WriteString("Include any actionable observations.\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n", pr.Title)
	fmt.Fprintf(&b, "Body: %s\n\n", body)
	b.WriteString("Detailed Summary:")
	return b.String()
}

// buildOverviewPrompt condenses all PRs into a title/status list and asks
// for a concise overview.
func buildOverviewPrompt(prs []model.PullRequest) string {
	var b strings.Builder
	b.WriteString("Summarize these pull requests into a concise overview of the week's activity:\n\n")
	for _, pr := range prs {
		fmt.Fprintf(&b, "- %s (%s)\n", pr.Title, pr.Status)
	}
	b.WriteString("\nOverall Summary:")
	return b.String()
}

// truncateToTokens cuts text down to at most budget tokens. When no encoding
// is available (unknown model, no cached BPE data) it falls back to a rough
// four-characters-per-token cut.
func truncateToTokens(text, modelName string, budget int) string {
	if budget <= 0 || text == "" {
		return text
	}

	enc, err := tiktoken.EncodingForModel(modelName)
	if err != nil || enc == nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil || enc == nil {
		limit := budget * 4
		if len(text) > limit {
			return text[:limit]
		}
		return text
	}

	toks := enc.Encode(text, nil, nil)
	if len(toks) <= budget {
		return text
	}
	return enc.Decode(toks[:budget])
}
