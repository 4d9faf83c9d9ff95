package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditEntry is one recorded admin action
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditService appends admin actions to a JSON-lines log file. The log
// is advisory: a failed write is logged and swallowed, never propagated,
// so an audit problem cannot abort a business operation.
type AuditService struct {
	path   string
	logger zerolog.Logger
}

// NewAuditService creates an audit service writing to the given file
func NewAuditService(path string, logger zerolog.Logger) *AuditService {
	return &AuditService{
		path:   path,
		logger: logger,
	}
}

// Record appends one action to the log
func (s *AuditService) Record(actor, action string) {
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Actor:     actor,
		Action:    action,
		Timestamp: time.Now(),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not encode audit entry")
		return
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("could not open audit log")
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, string(line)); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("could not write audit entry")
	}
}

// Entries reads the whole audit log in recorded order. Lines that do not
// parse are skipped; a hand-damaged log should not make history unreadable.
func (s *AuditService) Entries() ([]AuditEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading audit log: %w", err)
	}
	defer f.Close()

	var entries []AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry AuditEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			s.logger.Warn().Str("line", line).Msg("skipping malformed audit entry")
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading audit log: %w", err)
	}

	return entries, nil
}

// EntriesByActor filters the log down to one admin's actions
func (s *AuditService) EntriesByActor(actor string) ([]AuditEntry, error) {
	all, err := s.Entries()
	if err != nil {
		return nil, err
	}

	var entries []AuditEntry
	for _, e := range all {
		if e.Actor == actor {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
