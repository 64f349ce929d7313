package optimizer

import (
	"fmt"

	"github.com/eternisai/listing-optimizer/internal/config"
)

const promptTemplate = `%s
Create a search‑optimized product title under %d characters and %d top-performing tags.

Brand: %s
Title: %s
Size: %s
Color: %s

Respond only in this format:
Title: <optimized title>
Tags: tag1, tag2, ...`

// BuildPrompt renders the user message for a listing. Field values are embedded
// as given.
func BuildPrompt(listing Listing, cfg config.PromptConfig) string {
	return fmt.Sprintf(promptTemplate,
		cfg.Persona,
		cfg.TitleMaxChars,
		cfg.TagCount,
		listing.Brand,
		listing.Title,
		listing.Size,
		listing.Color,
	)
}
