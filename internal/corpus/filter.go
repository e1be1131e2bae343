package corpus

import (
	"sort"
	"strings"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// Filter holds exact-match predicates applied conjunctively: a document
// must satisfy every non-empty field to be kept. Substring matches are
// case-insensitive. Before and After compare ISO 8601 timestamps, which
// order lexicographically. No ranking is involved on this path.
type Filter struct {
	From     string // sender substring (emails only)
	To       string // any recipient substring (emails only)
	Subject  string // subject substring
	Contains string // subject or body substring
	Before   string // exclusive upper timestamp bound
	After    string // exclusive lower timestamp bound
}

// FilterEmails returns emails satisfying every predicate, in corpus order.
func FilterEmails(emails []types.Email, f Filter) []types.Email {
	out := make([]types.Email, 0)
	for _, e := range emails {
		if f.From != "" && !containsFold(e.From, f.From) {
			continue
		}
		if f.To != "" && !anyContainsFold(e.To, f.To) {
			continue
		}
		if f.Subject != "" && !containsFold(e.Subject, f.Subject) {
			continue
		}
		if f.Contains != "" && !containsFold(e.Subject, f.Contains) && !containsFold(e.Body, f.Contains) {
			continue
		}
		if f.Before != "" && e.Timestamp >= f.Before {
			continue
		}
		if f.After != "" && e.Timestamp <= f.After {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterNotes returns notes satisfying every predicate, in corpus order.
// Sender and recipient predicates exclude notes outright, since notes
// carry neither.
func FilterNotes(notes []types.Note, f Filter) []types.Note {
	if f.From != "" || f.To != "" {
		return nil
	}
	out := make([]types.Note, 0)
	for _, n := range notes {
		if f.Subject != "" && !containsFold(n.Subject, f.Subject) {
			continue
		}
		if f.Contains != "" && !containsFold(n.Subject, f.Contains) && !containsFold(n.Content, f.Contains) {
			continue
		}
		if f.Before != "" && n.LastModified >= f.Before {
			continue
		}
		if f.After != "" && n.LastModified <= f.After {
			continue
		}
		out = append(out, n)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if containsFold(h, needle) {
			return true
		}
	}
	return false
}

func sortEmailsChronologically(emails []types.Email) {
	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].Timestamp < emails[j].Timestamp
	})
}
