package complaint

import (
	"fmt"
	"strings"
)

// TextService is the external generative dependency used by the
// preferred strategy.
type TextService interface {
	GenerateText(prompt string) (string, error)
	SourceName() string
}

// RemoteGenerator drafts the letter with a generative-text service.
// Its output varies between calls, so reproducibility tests must target
// the template strategy instead.
type RemoteGenerator struct {
	svc TextService
}

// NewRemoteGenerator wraps a generative-text service.
func NewRemoteGenerator(svc TextService) *RemoteGenerator {
	return &RemoteGenerator{svc: svc}
}

func (g *RemoteGenerator) Name() string {
	return g.svc.SourceName()
}

// Generate prompts the service for a formal, government-addressed
// letter. Any failure is returned to the chain, which falls back to the
// template strategy.
func (g *RemoteGenerator) Generate(req Request) (string, error) {
	text, err := g.svc.GenerateText(g.prompt(req))
	if err != nil {
		return "", fmt.Errorf("generative text service failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("generative text service returned an empty letter")
	}
	return Sanitize(text), nil
}

func (g *RemoteGenerator) prompt(req Request) string {
	var b strings.Builder
	b.WriteString("Generate a professional, formal complaint letter for a civic issue with the following details:\n")
	fmt.Fprintf(&b, "- Issue Type: %s\n", displayIssueType(req.IssueType))
	fmt.Fprintf(&b, "- Description: %s\n", describeIssue(req.IssueType, req.Description, req.Address))
	fmt.Fprintf(&b, "- Location: %s\n", req.Address)
	if coords := formatCoordinates(req.Latitude, req.Longitude); coords != "" {
		fmt.Fprintf(&b, "- Coordinates: %s\n", coords)
	}
	fmt.Fprintf(&b, "- Priority: %s\n", req.Priority)
	fmt.Fprintf(&b, "- Responsible Department: %s\n", req.Department)
	fmt.Fprintf(&b, "- Reporter ID: %s\n", req.ReporterID)
	b.WriteString(`
The complaint must be:
1. Professional and formal in tone
2. Suitable for government officials
3. Include an urgency assessment and potential safety concerns
4. Request inspection, remediation, preventative measures and status updates
5. Clear and actionable

Format it as a proper government complaint letter addressed to the municipal corporation. Include the reporter id, the address and the responsible department verbatim. Do not leave any bracketed placeholder text in the letter.`)
	return b.String()
}
