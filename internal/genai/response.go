package genai

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"strings"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// firstCandidateText walks candidates[0].content.parts[0].text. Missing or
// empty text gives FallbackAnswer; text that is present but not a string is
// an error.
func firstCandidateText(body map[string]any) (string, error) {
	var node any = body
	for _, step := range []any{"candidates", 0, "content", "parts", 0, "text"} {
		node = descend(node, step)
		if node == nil {
			return FallbackAnswer, nil
		}
	}

	if !truthy(node) {
		return FallbackAnswer, nil
	}
	text, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("candidate text is %s, not a string", jsonKind(node))
	}
	return text, nil
}

func descend(node any, step any) any {
	switch key := step.(type) {
	case string:
		obj, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		return obj[key]
	case int:
		arr, ok := node.([]any)
		if !ok || key >= len(arr) {
			return nil
		}
		return arr[key]
	}
	return nil
}

// truthy follows JSON-value truthiness: null, false, 0 and "" are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

func errorMessage(v any) string {
	switch x := v.(type) {
	case map[string]any:
		if msg, ok := x["message"].(string); ok {
			return msg
		}
	case string:
		return x
	}
	return ""
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func isTimeout(err error) bool {
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

// redactKey strips the API key from the URL that net/http puts in its errors.
func redactKey(err error, key string) error {
	var ue *url.Error
	if key == "" || !stderrors.As(err, &ue) {
		return err
	}
	ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(key), "REDACTED")
	ue.URL = strings.ReplaceAll(ue.URL, key, "REDACTED")
	return err
}

// LastWord replaces every character that is not an ASCII letter with a space
// and returns the last remaining word, or "" when there is none.
func LastWord(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return ' '
	}, text)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// ExtractAnswer asks g and reduces the reply with LastWord.
func ExtractAnswer(ctx context.Context, g Generator, prompt string) (string, error) {
	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return LastWord(text), nil
}
