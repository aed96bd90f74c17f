package operations

import (
	"context"
	"strings"
	"unicode"

	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/genai"
)

type aiOperation struct {
	generator genai.Generator
}

// NewAI answers a question with a single word from the generative text service.
func NewAI(g genai.Generator) Operation {
	return &aiOperation{generator: g}
}

func (o *aiOperation) Key() string { return KeyAI }

func (o *aiOperation) Execute(ctx context.Context, value interface{}) (interface{}, error) {
	prompt, ok := value.(string)
	if !ok || trim(prompt) == "" {
		return nil, errors.NewValidationFailedError(KeyAI, []string{"(root): must be a non-blank string"})
	}
	if o.generator == nil {
		return nil, errors.NewGenAINotConfiguredError()
	}
	return genai.ExtractAnswer(ctx, o.generator, prompt)
}

// trim strips ECMAScript white space and line terminators from both ends.
// U+0085 is not in that set and is kept.
func trim(s string) string {
	return strings.TrimFunc(s, isBlank)
}

func isBlank(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
