// ABOUTME: Text generation boundary for the board: a prompt in, card text out, never an error.
// ABOUTME: Any provider failure collapses to a fixed fallback string so the insert path stays simple.
package llm

import (
	"context"
	"log"
	"strings"
)

// FallbackText is what the board receives when generation fails for any
// reason. The insert path never sees an error from this boundary.
const FallbackText = "The ribbon ran dry. Write this one yourself."

// Generator produces card text from a prompt. Implementations must absorb
// their own failures and return usable text every time.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// Static returns a fixed string for every prompt. Used in tests and as the
// offline generator when no API key is configured.
type Static struct {
	Text string
}

// Generate implements Generator.
func (s Static) Generate(_ context.Context, _ string) string {
	if s.Text == "" {
		return FallbackText
	}
	return s.Text
}

// Safe wraps any Generator and enforces the boundary contract: a panic, an
// empty result, or whitespace-only output all become the fallback string.
type Safe struct {
	Inner Generator
}

// Generate implements Generator.
func (s Safe) Generate(ctx context.Context, prompt string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("component=llm action=generate_panic err=%v", r)
			text = FallbackText
		}
	}()
	text = strings.TrimSpace(s.Inner.Generate(ctx, prompt))
	if text == "" {
		text = FallbackText
	}
	return text
}
