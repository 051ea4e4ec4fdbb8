package roster

import (
	"errors"
	"fmt"

	"github.com/KeitaTsushima/multi-llm-deep-research/internal/config"
)

// ErrNotSelected is returned when resolving a backend that is not a primary model.
var ErrNotSelected = errors.New("model not selected")

// Entry binds a selected backend to its settings and credential.
type Entry struct {
	ID       config.ModelID
	Model    *config.ModelConfig
	EnvVar   string
	APIKey   string
	Chairman bool
}

// HasCredential reports whether an API key was found for the backend.
func (e Entry) HasCredential() bool {
	return e.APIKey != ""
}

// IssueKind classifies why a selected backend cannot run.
type IssueKind string

const (
	IssueDisabled          IssueKind = "disabled"
	IssueMissingCredential IssueKind = "missing_credential"
)

// Issue is a single readiness finding for a selected backend.
type Issue struct {
	ID      config.ModelID
	Kind    IssueKind
	Message string
}

// Roster resolves the primary models of a Config to runnable entries.
type Roster struct {
	entries  map[config.ModelID]Entry
	order    []config.ModelID
	chairman config.ModelID
}

// Build constructs a roster from a validated config and a credential map as
// returned by config.LoadAPIKeys.
func Build(cfg *config.Config, keys map[config.ModelID]string) (*Roster, error) {
	r := &Roster{
		entries:  make(map[config.ModelID]Entry),
		chairman: cfg.ChairmanModel(),
	}

	for _, id := range cfg.PrimaryModels() {
		if _, dup := r.entries[id]; dup {
			continue
		}
		mc, err := cfg.ModelConfig(id)
		if err != nil {
			return nil, err
		}
		envVar, err := config.EnvVarName(id)
		if err != nil {
			return nil, err
		}
		r.entries[id] = Entry{
			ID:       id,
			Model:    mc,
			EnvVar:   envVar,
			APIKey:   keys[id],
			Chairman: id == r.chairman,
		}
		r.order = append(r.order, id)
	}

	if _, err := r.Resolve(r.chairman); err != nil {
		return nil, err
	}

	return r, nil
}

// Resolve returns the entry for a selected backend.
func (r *Roster) Resolve(id config.ModelID) (Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotSelected, id)
	}
	return e, nil
}

// Chairman returns the chairman entry.
func (r *Roster) Chairman() Entry {
	return r.entries[r.chairman]
}

// Entries returns the selected backends in primary order.
func (r *Roster) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// Issues lists every selected backend that is disabled or lacks a credential.
func (r *Roster) Issues() []Issue {
	var issues []Issue
	for _, e := range r.Entries() {
		if !e.Model.Enabled {
			issues = append(issues, Issue{
				ID:      e.ID,
				Kind:    IssueDisabled,
				Message: fmt.Sprintf("%s is a primary model but is disabled", e.ID),
			})
		}
		if !e.HasCredential() {
			issues = append(issues, Issue{
				ID:      e.ID,
				Kind:    IssueMissingCredential,
				Message: fmt.Sprintf("%s has no API key (set %s)", e.ID, e.EnvVar),
			})
		}
	}
	return issues
}

// Ready reports whether every selected backend is enabled and has a credential.
func (r *Roster) Ready() bool {
	return len(r.Issues()) == 0
}
