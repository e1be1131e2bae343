package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// Corpus file names within the data directory.
const (
	EmailsFile = "emails.json"
	NotesFile  = "notes.json"
)

// Store loads the corpus from durable storage. The entire corpus is read
// per request; there is no incremental or streaming load, and no
// in-process copy survives between requests.
type Store struct {
	dataDir string
}

// NewStore creates a corpus store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// LoadEmails reads the full email corpus. A missing file is an empty
// corpus, not an error, so an emails-only or notes-only deployment works
// without placeholder files.
func (s *Store) LoadEmails() ([]types.Email, error) {
	var emails []types.Email
	if err := s.loadJSON(EmailsFile, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// LoadNotes reads the full note corpus.
func (s *Store) LoadNotes() ([]types.Note, error) {
	var notes []types.Note
	if err := s.loadJSON(NotesFile, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Store) loadJSON(name string, out any) error {
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read corpus %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse corpus %s: %w", name, err)
	}
	return nil
}

// GetEmails returns the emails matching ids, in corpus order. With
// includeThread set, the selection expands to every email sharing a
// thread with a match, sorted chronologically so the conversation reads
// in order.
func (s *Store) GetEmails(ids []string, includeThread bool) ([]types.Email, error) {
	emails, err := s.LoadEmails()
	if err != nil {
		return nil, err
	}

	wanted := toSet(ids)
	matched := make([]types.Email, 0, len(ids))
	for _, e := range emails {
		if wanted[e.ID] {
			matched = append(matched, e)
		}
	}

	if !includeThread || len(matched) == 0 {
		return matched, nil
	}

	threads := make(map[string]bool, len(matched))
	for _, e := range matched {
		if e.ThreadID != "" {
			threads[e.ThreadID] = true
		}
	}

	expanded := make([]types.Email, 0, len(matched))
	for _, e := range emails {
		if wanted[e.ID] || threads[e.ThreadID] {
			expanded = append(expanded, e)
		}
	}
	sortEmailsChronologically(expanded)
	return expanded, nil
}

// GetNotes returns the notes matching ids, in corpus order.
func (s *Store) GetNotes(ids []string) ([]types.Note, error) {
	notes, err := s.LoadNotes()
	if err != nil {
		return nil, err
	}

	wanted := toSet(ids)
	matched := make([]types.Note, 0, len(ids))
	for _, n := range notes {
		if wanted[n.ID] {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
