package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

func filterFixture() []types.Email {
	return []types.Email{
		{
			ID: "e1", From: "john@supplier.com", To: []string{"me@example.com"},
			Subject: "Invoice 1234", Body: "Payment due",
			Timestamp: "2025-03-01T10:00:00Z",
		},
		{
			ID: "e2", From: "john@supplier.com", To: []string{"me@example.com"},
			Subject: "Shipping update", Body: "Your order shipped",
			Timestamp: "2025-03-10T10:00:00Z",
		},
		{
			ID: "e3", From: "mary@other.com", To: []string{"team@example.com"},
			Subject: "Invoice reminder", Body: "Second notice",
			Timestamp: "2025-03-05T10:00:00Z",
		},
	}
}

func TestFilterEmails_PredicatesAreConjunctive(t *testing.T) {
	got := FilterEmails(filterFixture(), Filter{
		From:  "john",
		After: "2025-03-05T00:00:00Z",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)
}

func TestFilterEmails_CaseInsensitiveSubstrings(t *testing.T) {
	got := FilterEmails(filterFixture(), Filter{Subject: "INVOICE"})
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)
}

func TestFilterEmails_ContainsMatchesSubjectOrBody(t *testing.T) {
	got := FilterEmails(filterFixture(), Filter{Contains: "shipped"})
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)
}

func TestFilterEmails_BoundsAreExclusive(t *testing.T) {
	got := FilterEmails(filterFixture(), Filter{
		After:  "2025-03-01T10:00:00Z",
		Before: "2025-03-10T10:00:00Z",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "e3", got[0].ID)
}

func TestFilterEmails_RecipientMatch(t *testing.T) {
	got := FilterEmails(filterFixture(), Filter{To: "team@"})
	require.Len(t, got, 1)
	assert.Equal(t, "e3", got[0].ID)
}

func TestFilterEmails_EmptyFilterKeepsAll(t *testing.T) {
	got := FilterEmails(filterFixture(), Filter{})
	assert.Len(t, got, 3)
}

func TestFilterNotes_SenderPredicatesExcludeNotes(t *testing.T) {
	notes := []types.Note{{ID: "n1", Subject: "Anything"}}
	assert.Nil(t, FilterNotes(notes, Filter{From: "john"}))
	assert.Nil(t, FilterNotes(notes, Filter{To: "me"}))
}

func TestFilterNotes_SubjectAndTime(t *testing.T) {
	notes := []types.Note{
		{ID: "n1", Subject: "Budget draft", Content: "numbers", LastModified: "2025-01-01T00:00:00Z"},
		{ID: "n2", Subject: "Budget final", Content: "more numbers", LastModified: "2025-06-01T00:00:00Z"},
	}

	got := FilterNotes(notes, Filter{Subject: "budget", After: "2025-02-01T00:00:00Z"})
	require.Len(t, got, 1)
	assert.Equal(t, "n2", got[0].ID)
}
