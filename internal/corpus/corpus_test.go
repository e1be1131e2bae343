package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

func writeFile(t *testing.T, dir, name string, docs any) {
	t.Helper()
	data, err := json.Marshal(docs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func threadedEmails() []types.Email {
	return []types.Email{
		{ID: "e2", ThreadID: "t1", Subject: "Re: Kickoff", Timestamp: "2025-02-02T10:00:00Z"},
		{ID: "e1", ThreadID: "t1", Subject: "Kickoff", Timestamp: "2025-02-01T10:00:00Z"},
		{ID: "e3", ThreadID: "t2", Subject: "Lunch", Timestamp: "2025-02-03T10:00:00Z"},
		{ID: "e4", ThreadID: "t1", Subject: "Re: Re: Kickoff", Timestamp: "2025-02-04T10:00:00Z"},
	}
}

func TestLoadEmails_MissingFileIsEmptyCorpus(t *testing.T) {
	store := NewStore(t.TempDir())
	emails, err := store.LoadEmails()
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestLoadEmails_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EmailsFile), []byte("nope"), 0o644))

	_, err := NewStore(dir).LoadEmails()
	assert.Error(t, err)
}

func TestGetEmails_ByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, EmailsFile, threadedEmails())

	emails, err := NewStore(dir).GetEmails([]string{"e3", "missing"}, false)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "e3", emails[0].ID)
}

func TestGetEmails_ThreadExpansionChronological(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, EmailsFile, threadedEmails())

	emails, err := NewStore(dir).GetEmails([]string{"e2"}, true)
	require.NoError(t, err)
	require.Len(t, emails, 3)

	assert.Equal(t, "e1", emails[0].ID)
	assert.Equal(t, "e2", emails[1].ID)
	assert.Equal(t, "e4", emails[2].ID)
}

func TestGetEmails_ThreadExpansionNoMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, EmailsFile, threadedEmails())

	emails, err := NewStore(dir).GetEmails([]string{"missing"}, true)
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestGetNotes_ByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, NotesFile, []types.Note{
		{ID: "n1", Subject: "One"},
		{ID: "n2", Subject: "Two"},
	})

	notes, err := NewStore(dir).GetNotes([]string{"n2"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Two", notes[0].Subject)
}
