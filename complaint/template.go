package complaint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"nagrik-nivedan/models"
)

// TemplateGenerator is the deterministic local strategy: given the same
// request and the same current date it always produces the same letter.
type TemplateGenerator struct {
	parser AddressParser
	now    func() time.Time
}

// NewTemplateGenerator builds the local strategy with the default
// locale parser.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		parser: NewIndianAddressParser(),
		now:    time.Now,
	}
}

// NewTemplateGeneratorWithParser builds the local strategy with a
// custom locale parser.
func NewTemplateGeneratorWithParser(parser AddressParser) *TemplateGenerator {
	return &TemplateGenerator{parser: parser, now: time.Now}
}

// WithClock overrides the date source; reproducibility tests use this.
func (g *TemplateGenerator) WithClock(now func() time.Time) *TemplateGenerator {
	g.now = now
	return g
}

func (g *TemplateGenerator) Name() string {
	return "template"
}

// referenceID derives a stable complaint reference from the request
// fields and the current date.
func referenceID(req Request, date string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%s|%s",
		req.IssueType, req.Description, req.Address,
		formatCoordinates(req.Latitude, req.Longitude),
		req.Priority, req.Department, req.ReporterID, date)
	return "NN-" + strings.ToUpper(hex.EncodeToString(h.Sum(nil)[:4]))
}

// Generate assembles the formal letter from structured fields. It
// never fails.
func (g *TemplateGenerator) Generate(req Request) (string, error) {
	date := g.now().Format("January 2, 2006")
	refID := referenceID(req, date)
	city, state := g.parser.Parse(req.Address)
	display := displayIssueType(req.IssueType)
	priority := models.ParsePriority(req.Priority)
	if string(priority) == "" {
		priority = models.PriorityNormal
	}
	coords := formatCoordinates(req.Latitude, req.Longitude)
	description := describeIssue(req.IssueType, req.Description, req.Address)

	var b strings.Builder

	fmt.Fprintf(&b, "Ref: %s\n", refID)
	fmt.Fprintf(&b, "Date: %s\n\n", date)

	fmt.Fprintf(&b, "To,\nThe Municipal Commissioner\n%s Municipal Corporation\n%s, %s\n\n", city, city, state)

	fmt.Fprintf(&b, "Subject: Formal Complaint Regarding %s at %s\n\n", display, req.Address)

	b.WriteString("Respected Sir/Madam,\n\n")

	b.WriteString("COMPLAINT DETAILS:\n")
	fmt.Fprintf(&b, "- Issue Type: %s\n", display)
	fmt.Fprintf(&b, "- Priority: %s\n", displayIssueType(string(priority)))
	fmt.Fprintf(&b, "- Location: %s\n", req.Address)
	if coords != "" {
		fmt.Fprintf(&b, "- Coordinates: %s\n", coords)
	}
	fmt.Fprintf(&b, "- Date of Report: %s\n", date)
	fmt.Fprintf(&b, "- Assigned Department: %s\n", req.Department)
	fmt.Fprintf(&b, "- Reference ID: %s\n\n", refID)

	b.WriteString("DESCRIPTION:\n")
	b.WriteString(description)
	b.WriteString("\n\n")

	b.WriteString("LOCATION:\n")
	fmt.Fprintf(&b, "The reported issue is located at %s.", req.Address)
	if coords != "" {
		fmt.Fprintf(&b, " The exact coordinates are %s.", coords)
	}
	b.WriteString("\n\n")

	b.WriteString("URGENCY ASSESSMENT:\n")
	if priority.IsElevated() {
		fmt.Fprintf(&b, "This complaint has been marked as %s priority. The reported condition poses an immediate danger to public safety and requires urgent intervention. Any delay in addressing it may result in serious accidents or injuries.\n\n", strings.ToLower(string(priority)))
	} else {
		b.WriteString("The reported condition currently causes a moderate inconvenience to residents. Timely action is requested to prevent the situation from deteriorating further.\n\n")
	}

	b.WriteString("POTENTIAL SAFETY CONCERNS:\n")
	b.WriteString("- Risk of accidents and personal injury to residents and commuters\n")
	b.WriteString("- Damage to private and public property\n")
	b.WriteString("- Escalation of the defect if left unattended\n")
	b.WriteString("- Public health impact in the affected area\n\n")

	b.WriteString("REQUESTED ACTION:\n")
	fmt.Fprintf(&b, "1. Immediate inspection of the reported site by the %s.\n", req.Department)
	fmt.Fprintf(&b, "2. Remediation of the %s issue within a reasonable timeframe.\n", strings.ToLower(display))
	b.WriteString("3. Preventative measures to avoid recurrence of similar defects.\n")
	b.WriteString("4. Status updates on this complaint through the Nagrik Nivedan tracking system.\n\n")

	b.WriteString("Sincerely,\n")
	b.WriteString("Concerned Citizen\n")
	fmt.Fprintf(&b, "Reporter ID: %s\n", req.ReporterID)
	b.WriteString("Submitted via the Nagrik Nivedan platform\n")

	return Sanitize(b.String()), nil
}
