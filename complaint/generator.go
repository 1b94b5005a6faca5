// Package complaint synthesizes formal complaint letters from
// structured report fields.
package complaint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apex/log"
)

// Request carries the structured fields a letter is synthesized from.
type Request struct {
	IssueType   string
	Description string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Priority    string
	Department  string
	ReporterID  string
}

// Generator is one letter-drafting strategy.
type Generator interface {
	// Generate returns the complaint letter text. Implementations must
	// never return text containing unresolved placeholder tokens.
	Generate(req Request) (string, error)
	// Name is a short strategy label for logging.
	Name() string
}

// Chain composes generators in fixed order. Failures from every
// strategy but the last are logged and swallowed; the last strategy is
// expected to be deterministic and local.
type Chain struct {
	generators []Generator
}

// NewChain builds a fallback chain. At least one generator is required.
func NewChain(generators ...Generator) *Chain {
	return &Chain{generators: generators}
}

// Generate runs the chain until a strategy succeeds.
func (c *Chain) Generate(req Request) (string, error) {
	if len(c.generators) == 0 {
		return "", fmt.Errorf("no complaint generators configured")
	}
	var lastErr error
	for i, g := range c.generators {
		text, err := g.Generate(req)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if i < len(c.generators)-1 {
			log.WithError(err).Warnf("complaint generator %s failed, falling back", g.Name())
		}
	}
	return "", lastErr
}

var (
	placeholderRe = regexp.MustCompile(`\[[^\[\]]*\]`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Sanitize strips bracketed placeholder-looking fragments and collapses
// runs of blank lines, as a defensive final pass over generated text.
func Sanitize(text string) string {
	text = placeholderRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text) + "\n"
}

// formatCoordinates renders an optional coordinate pair as signed
// degrees with 6 decimal places, or "" when absent.
func formatCoordinates(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	return fmt.Sprintf("%.6f, %.6f", *lat, *lon)
}
