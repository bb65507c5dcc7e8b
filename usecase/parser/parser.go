package parser

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
)

// Directory supplies the ordered roster the parser matches against.
type Directory interface {
	Roster(ctx context.Context) ([]domain.RosterEntry, error)
}

// Result is a structured task entry resolved from free text.
type Result struct {
	Assignee    string
	Description string
}

// directives are the leading words stripped from the text once an
// assignee name has been matched ("Ask Praveen to ..." -> "...").
var directives = []string{"ask", "tell", "assign", "to", "request", "please"}

// UseCase resolves "assign to whom" from a free-text task entry.
type UseCase struct {
	directory Directory
	logger    *zap.Logger
}

func New(directory Directory, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		directory: directory,
		logger:    logger,
	}
}

// Parse scans the roster in order and assigns the task to the first
// name found as a case-insensitive substring of freeText. The matched
// name and any leading directive words are removed from the
// description. Without a match the entry is self-assigned and the text
// returned unmodified. Parse never fails: a roster lookup error
// degrades to the self-assigned result.
func (uc *UseCase) Parse(ctx context.Context, freeText, requester string) Result {
	fallback := Result{Assignee: requester, Description: freeText}

	roster, err := uc.directory.Roster(ctx)
	if err != nil {
		uc.logger.Warn("roster unavailable, self-assigning entry", zap.Error(err))
		return fallback
	}

	for _, entry := range roster {
		if entry.ShortName == "" {
			continue
		}
		start, end := foldIndex(freeText, entry.ShortName)
		if start < 0 {
			continue
		}
		remainder := freeText[:start] + freeText[end:]
		return Result{
			Assignee:    entry.Email,
			Description: stripDirectives(remainder),
		}
	}

	return fallback
}

// foldIndex reports the byte range [start, end) of the first
// case-insensitive occurrence of name in text, or (-1, -1). Lowercasing
// can change a rune's encoded length, so offsets into the lowered text
// are mapped back to the original before slicing.
func foldIndex(text, name string) (int, int) {
	lowerName := strings.ToLower(name)

	var lowered strings.Builder
	lowered.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		lowered.WriteRune(lr)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))

	idx := strings.Index(lowered.String(), lowerName)
	if idx < 0 {
		return -1, -1
	}
	return offsets[idx], offsets[idx+len(lowerName)]
}

// stripDirectives drops leading directive words and trims whitespace.
// The result may be empty; creation-time validation owns that check.
func stripDirectives(text string) string {
	text = strings.TrimSpace(text)
	for {
		word, rest, found := cutWord(text)
		if !found || !isDirective(word) {
			return text
		}
		text = strings.TrimSpace(rest)
	}
}

func cutWord(text string) (word, rest string, found bool) {
	if text == "" {
		return "", "", false
	}
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		return text[:i], text[i:], true
	}
	return text, "", true
}

func isDirective(word string) bool {
	word = strings.ToLower(strings.Trim(word, ",.:;"))
	for _, d := range directives {
		if word == d {
			return true
		}
	}
	return false
}
