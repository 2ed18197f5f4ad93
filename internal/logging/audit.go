package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditEventType names a reduction-pipeline event recorded to the audit
// trail. Unlike the per-category debug logs, the audit trail is a single
// append-only JSONL stream meant to be replayed or grepped after the fact.
type AuditEventType string

const (
	AuditOracleInvoke    AuditEventType = "oracle_invoke"
	AuditOracleVerdict   AuditEventType = "oracle_verdict"
	AuditReductionAccept AuditEventType = "reduction_accept"
	AuditReductionReject AuditEventType = "reduction_reject"
	AuditStageStart      AuditEventType = "stage_start"
	AuditStageComplete   AuditEventType = "stage_complete"
	AuditCancelled       AuditEventType = "cancelled"
	AuditFatalError      AuditEventType = "fatal_error"
)

// AuditEvent is one structured, JSON-serializable entry in the audit trail.
type AuditEvent struct {
	Timestamp  int64          `json:"ts"`
	EventType  AuditEventType `json:"event"`
	RunID      string         `json:"run_id"`
	Stage      string         `json:"stage,omitempty"`
	Target     string         `json:"target,omitempty"`
	Success    bool           `json:"success"`
	DurationMs int64          `json:"dur_ms,omitempty"`
	Error      string         `json:"error,omitempty"`
	Message    string         `json:"msg,omitempty"`
}

var (
	auditFile *os.File
	auditMu   sync.Mutex
)

// InitAudit opens the audit log file for a workspace. A no-op if file
// logging is disabled (mirrors Initialize's DebugMode gate).
func InitAudit(workspace string) error {
	cfgMu.RLock()
	enabled := cfg.DebugMode
	cfgMu.RUnlock()
	if !enabled {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile != nil {
		return nil
	}
	if logsDir == "" {
		logsDir = filepath.Join(workspace, ".swiftreduce", "logs")
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_audit.log", date))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	auditFile = f
	return nil
}

// CloseAudit closes the audit log file, if open.
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// LogAudit appends one event to the audit trail. Silently does nothing if
// the audit file was never opened (debug mode disabled).
func LogAudit(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditFile == nil {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	auditFile.Write(data)
	auditFile.Write([]byte("\n"))
}
