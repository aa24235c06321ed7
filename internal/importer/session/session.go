// Package session tracks one import operation through its whole lifecycle,
// from pasted text to a committed registry write. The session drives the
// pure pipeline functions, enforces ordering through a state machine, and
// keeps a replayable log history of everything that happened.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/atlanticdynamic/mcpimport/internal/importer/session/finitestate"
	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-loglater/storage"
)

// ImportSession is the stateful wrapper around one import. It owns no I/O
// beyond logging; reading the registry and persisting the merged result
// stay with the caller.
type ImportSession struct {
	// ID is the unique identifier for this import
	ID uuid.UUID

	// CreatedAt records when the session was opened
	CreatedAt time.Time

	fsm          finitestate.Machine
	logger       *slog.Logger
	logCollector *loglater.LogCollector

	existing []string
	report   *importer.Report
	policy   importer.Policy
}

// New opens a session against a snapshot of the caller's registry names.
// The snapshot is taken once; the caller serializes imports so the
// registry cannot change underneath a session.
func New(existing []string, handler slog.Handler) (*ImportSession, error) {
	id := uuid.Must(uuid.NewV6())

	machine, err := finitestate.New(handler)
	if err != nil {
		return nil, fmt.Errorf("%s failed to create state machine: %w", id, err)
	}

	logCollector := loglater.NewLogCollector(handler)
	logger := slog.New(logCollector).With("id", id)

	names := make([]string, len(existing))
	copy(names, existing)

	return &ImportSession{
		ID:           id,
		CreatedAt:    time.Now(),
		fsm:          machine,
		logger:       logger,
		logCollector: logCollector,
		existing:     names,
	}, nil
}

// Extract splits the pasted text into blocks and servers. Per-block parse
// failures are recorded on the report, not returned; the only errors here
// are lifecycle violations.
func (s *ImportSession) Extract(text string) error {
	if err := s.fsm.Transition(finitestate.StateExtracting); err != nil {
		return err
	}

	parse := importer.ParseServers(text)
	s.report = &importer.Report{Parse: parse}

	s.logger.Debug("extraction finished",
		"servers", len(parse.Servers),
		"errors", len(parse.Errors))

	return s.fsm.Transition(finitestate.StateExtracted)
}

// Validate runs the batch checks and conflict detection. A batch with
// validation errors lands in the terminal invalid state and can no longer
// be resolved or committed.
func (s *ImportSession) Validate() error {
	if err := s.fsm.Transition(finitestate.StateValidating); err != nil {
		return err
	}

	s.report.Validation = importer.Validate(s.report.Parse.Servers)
	s.report.Conflicts = importer.DetectConflicts(s.report.Parse.Servers, s.existing)

	if !s.report.Validation.Valid {
		s.logger.Warn("batch rejected",
			"errors", len(s.report.Validation.Errors),
			"warnings", len(s.report.Validation.Warnings))
		return s.fsm.Transition(finitestate.StateInvalid)
	}

	s.logger.Debug("batch validated",
		"warnings", len(s.report.Validation.Warnings),
		"conflicts", len(s.report.Conflicts))
	return s.fsm.Transition(finitestate.StateValidated)
}

// Resolve applies the chosen policy once the user has reviewed the
// results. It fails when the batch is invalid or nothing was extracted.
func (s *ImportSession) Resolve(policy importer.Policy) ([]importer.ParsedServer, error) {
	if s.fsm.GetState() == finitestate.StateInvalid {
		return nil, ErrBatchInvalid
	}
	if err := s.fsm.Transition(finitestate.StateResolving); err != nil {
		return nil, err
	}

	if !s.report.HasServers() {
		s.setError()
		return nil, ErrNothingExtracted
	}

	if err := s.report.Resolve(s.existing, policy); err != nil {
		s.setError()
		return nil, err
	}
	s.policy = policy

	s.logger.Info("conflicts resolved",
		"policy", string(policy),
		"conflicts", len(s.report.Conflicts),
		"final", len(s.report.Resolved))

	if err := s.fsm.Transition(finitestate.StateResolved); err != nil {
		return nil, err
	}
	return s.report.Resolved, nil
}

// MarkCommitted records that the caller persisted the merged registry.
func (s *ImportSession) MarkCommitted() error {
	if err := s.fsm.Transition(finitestate.StateCommitted); err != nil {
		return fmt.Errorf("%w: %w", ErrNotResolved, err)
	}
	s.logger.Info("import committed", "servers", len(s.report.Resolved))
	return nil
}

// Report returns the pipeline results gathered so far.
func (s *ImportSession) Report() *importer.Report {
	return s.report
}

// Policy returns the resolution policy applied to this session.
func (s *ImportSession) Policy() importer.Policy {
	return s.policy
}

// GetState returns the current lifecycle state.
func (s *ImportSession) GetState() string {
	return s.fsm.GetState()
}

// IsInvalid reports whether validation rejected the batch.
func (s *ImportSession) IsInvalid() bool {
	return s.fsm.GetState() == finitestate.StateInvalid
}

// PlaybackLogs replays the session's log history to the given handler.
func (s *ImportSession) PlaybackLogs(handler slog.Handler) error {
	return s.logCollector.PlayLogs(handler)
}

// GetLogs returns the collected log records for this session.
func (s *ImportSession) GetLogs() []storage.Record {
	return s.logCollector.GetLogs()
}

func (s *ImportSession) setError() {
	if err := s.fsm.SetState(finitestate.StateError); err != nil {
		s.logger.Error("failed to enter error state", "error", err)
	}
}
