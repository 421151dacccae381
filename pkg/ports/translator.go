package ports

import (
	"context"
)

// Translator translates short English strings into another language.
type Translator interface {
	// Translate translates text into the language identified by the BCP 47 code target.
	// Implementations return an error for any failure; callers decide how to degrade.
	Translate(ctx context.Context, text, target string) (string, error)
}
