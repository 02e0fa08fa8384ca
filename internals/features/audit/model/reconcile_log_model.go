// internals/features/audit/model/reconcile_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Outcome event reconcile
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Tag anomali yang bisa muncul di kolom anomalies
const (
	AnomalyMultipleOpen    = "multiple_open_records"
	AnomalyAutoClosed      = "auto_closed"
	AnomalyAutoCloseFailed = "auto_close_failed"
)

// ReconcileLog = satu baris audit per keputusan reconciler (write-only).
type ReconcileLog struct {
	ReconcileLogID         uuid.UUID `gorm:"column:reconcile_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"reconcile_log_id"`
	ReconcileLogOperation  string    `gorm:"column:reconcile_log_operation;type:varchar(16);not null" json:"reconcile_log_operation"`
	ReconcileLogEmployeeID *int64    `gorm:"column:reconcile_log_employee_id;index" json:"reconcile_log_employee_id,omitempty"`
	ReconcileLogRecordID   *int64    `gorm:"column:reconcile_log_record_id" json:"reconcile_log_record_id,omitempty"`
	ReconcileLogAction     string    `gorm:"column:reconcile_log_action;type:varchar(48)" json:"reconcile_log_action"`
	ReconcileLogOutcome    string    `gorm:"column:reconcile_log_outcome;type:varchar(8);not null" json:"reconcile_log_outcome"`
	ReconcileLogError      *string   `gorm:"column:reconcile_log_error" json:"reconcile_log_error,omitempty"`

	ReconcileLogAnomalies pq.StringArray `gorm:"column:reconcile_log_anomalies;type:text[]" json:"reconcile_log_anomalies"`

	// snapshot Action lengkap
	ReconcileLogPayload datatypes.JSON `gorm:"column:reconcile_log_payload;type:jsonb" json:"reconcile_log_payload,omitempty"`

	ReconcileLogOccurredAt time.Time `gorm:"column:reconcile_log_occurred_at;not null" json:"reconcile_log_occurred_at"`
	ReconcileLogCreatedAt  time.Time `gorm:"column:reconcile_log_created_at;not null;default:now()" json:"reconcile_log_created_at"`
}

func (ReconcileLog) TableName() string { return "attendance_reconcile_logs" }
