package parser

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/rbsgo/taskhub/domain"
)

type stubDirectory struct {
	entries []domain.RosterEntry
	err     error
}

func (s *stubDirectory) Roster(ctx context.Context) ([]domain.RosterEntry, error) {
	return s.entries, s.err
}

func teamRoster() *stubDirectory {
	return &stubDirectory{entries: []domain.RosterEntry{
		{ShortName: "praveen", Email: "praveen@example.com"},
		{ShortName: "arjun", Email: "arjun@example.com"},
		{ShortName: "sarah", Email: "sarah@example.com"},
	}}
}

func TestParseResolvesAssigneeAndStripsDirectives(t *testing.T) {
	uc := New(teamRoster(), nil)

	result := uc.Parse(context.Background(), "Ask Praveen to update the API", "msk@example.com")
	if result.Assignee != "praveen@example.com" {
		t.Fatalf("expected praveen@example.com, got %q", result.Assignee)
	}
	if result.Description != "update the API" {
		t.Fatalf("expected %q, got %q", "update the API", result.Description)
	}
}

func TestParseNoRosterMatchSelfAssigns(t *testing.T) {
	uc := New(teamRoster(), nil)

	result := uc.Parse(context.Background(), "Review Q3 numbers", "msk@example.com")
	if result.Assignee != "msk@example.com" {
		t.Fatalf("expected requester, got %q", result.Assignee)
	}
	if result.Description != "Review Q3 numbers" {
		t.Fatalf("text should be unchanged, got %q", result.Description)
	}
}

func TestParseFirstMatchWinsInRosterOrder(t *testing.T) {
	uc := New(&stubDirectory{entries: []domain.RosterEntry{
		{ShortName: "chris", Email: "chris@example.com"},
		{ShortName: "christine", Email: "christine@example.com"},
	}}, nil)

	// "christine" contains "chris"; roster order decides, not specificity.
	result := uc.Parse(context.Background(), "tell christine the build is green", "msk@example.com")
	if result.Assignee != "chris@example.com" {
		t.Fatalf("expected first roster match, got %q", result.Assignee)
	}
}

func TestParseMatchingIsCaseInsensitive(t *testing.T) {
	uc := New(teamRoster(), nil)

	result := uc.Parse(context.Background(), "ASK SARAH to file the report", "msk@example.com")
	if result.Assignee != "sarah@example.com" {
		t.Fatalf("expected sarah@example.com, got %q", result.Assignee)
	}
	if result.Description != "file the report" {
		t.Fatalf("expected %q, got %q", "file the report", result.Description)
	}
}

func TestParseEmptyDescriptionIsNotRejected(t *testing.T) {
	uc := New(teamRoster(), nil)

	result := uc.Parse(context.Background(), "ask praveen", "msk@example.com")
	if result.Assignee != "praveen@example.com" {
		t.Fatalf("expected praveen@example.com, got %q", result.Assignee)
	}
	if result.Description != "" {
		t.Fatalf("expected empty description, got %q", result.Description)
	}
}

func TestParseSurvivesCaseFoldingThatChangesByteLength(t *testing.T) {
	uc := New(teamRoster(), nil)

	// 'Ⱥ' is two bytes; its lowercase 'ⱥ' is three. Offsets into the
	// lowered text must not be used to slice the original.
	result := uc.Parse(context.Background(), "ȺȺȺȺ praveen", "msk@example.com")
	if result.Assignee != "praveen@example.com" {
		t.Fatalf("expected praveen@example.com, got %q", result.Assignee)
	}
	if result.Description != "ȺȺȺȺ" {
		t.Fatalf("expected %q, got %q", "ȺȺȺȺ", result.Description)
	}
}

func TestParseNonASCIIPrefixKeepsDescriptionValidUTF8(t *testing.T) {
	uc := New(teamRoster(), nil)

	// 'İ' lowercases to plain 'i', shrinking the lowered text.
	result := uc.Parse(context.Background(), "İİİİİİİpraveen", "msk@example.com")
	if result.Assignee != "praveen@example.com" {
		t.Fatalf("expected praveen@example.com, got %q", result.Assignee)
	}
	if result.Description != "İİİİİİİ" {
		t.Fatalf("expected name removed cleanly, got %q", result.Description)
	}
	if !utf8.ValidString(result.Description) {
		t.Fatalf("description is not valid UTF-8: %q", result.Description)
	}
}

func TestParseDegradesWhenRosterUnavailable(t *testing.T) {
	uc := New(&stubDirectory{err: errors.New("store down")}, nil)

	result := uc.Parse(context.Background(), "Ask Praveen to update the API", "msk@example.com")
	if result.Assignee != "msk@example.com" {
		t.Fatalf("expected self-assignment on roster failure, got %q", result.Assignee)
	}
	if result.Description != "Ask Praveen to update the API" {
		t.Fatalf("text should be unchanged, got %q", result.Description)
	}
}
