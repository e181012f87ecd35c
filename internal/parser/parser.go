// Package parser turns raw backend text into a generated result.
package parser

import (
	"fmt"
	"strings"

	"github.com/sant0-9/copysmith/internal/apperrors"
	"github.com/sant0-9/copysmith/internal/schema"
)

const fence = "```"

// ErrInvalidJSON matches every ParseError under errors.Is.
var ErrInvalidJSON = apperrors.New(apperrors.CodeParse, "LLM did not return valid JSON")

// ParseError keeps the raw backend text so it can be shown verbatim.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidJSON.Message, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrInvalidJSON }

func (e *ParseError) ErrorCode() apperrors.ErrorCode { return apperrors.CodeParse }

// StripFences removes a markdown code fence around the text. When the trimmed
// text opens with a fence, the first line (which may carry a language tag)
// goes, and so does a closing fence on the last line. Anything else is
// returned unchanged.
func StripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, fence) {
		return raw
	}

	body, _, found := cutFirstLine(trimmed)
	if !found {
		// Single line: ```json {...}```
		body = strings.TrimPrefix(trimmed, fence)
		body = strings.TrimSuffix(body, fence)
		return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(body), "json"))
	}

	body = strings.TrimRight(body, " \t\r\n")
	if i := strings.LastIndex(body, "\n"); i >= 0 && strings.HasPrefix(strings.TrimSpace(body[i+1:]), fence) {
		body = body[:i]
	} else if strings.HasPrefix(strings.TrimSpace(body), fence) {
		body = ""
	} else if strings.HasSuffix(body, fence) {
		body = strings.TrimSuffix(body, fence)
	}
	return strings.TrimSpace(body)
}

func cutFirstLine(s string) (rest, first string, found bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return "", s, false
	}
	return s[i+1:], s[:i], true
}

// Parse strips fences from raw and decodes exactly one JSON object. Any
// failure is a *ParseError carrying raw unchanged.
func Parse(raw string) (schema.Result, error) {
	text := strings.TrimSpace(StripFences(raw))
	if text == "" {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("empty output")}
	}

	result, err := schema.DecodeResult([]byte(text))
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return result, nil
}
