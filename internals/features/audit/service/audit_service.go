// internals/features/audit/service/audit_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attModel "qrstudio_backend/internals/features/attendance/model"
	attService "qrstudio_backend/internals/features/attendance/service"
	auditModel "qrstudio_backend/internals/features/audit/model"
)

const writeTimeout = 2 * time.Second

// Writer = tujuan tulis audit (gorm di produksi, fake di test).
type Writer interface {
	Write(ctx context.Context, row *auditModel.ReconcileLog) error
}

type gormWriter struct{ db *gorm.DB }

func (w gormWriter) Write(ctx context.Context, row *auditModel.ReconcileLog) error {
	return w.db.WithContext(ctx).Create(row).Error
}

// AuditService mencatat hasil reconcile. Gagal tulis TIDAK pernah
// menggagalkan request attendance: cukup di-log.
type AuditService struct {
	w Writer
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{w: gormWriter{db: db}}
}

func NewAuditServiceWithWriter(w Writer) *AuditService {
	return &AuditService{w: w}
}

// Migrate membuat tabel audit kalau belum ada.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&auditModel.ReconcileLog{})
}

// Record memenuhi attendance service.Recorder.
func (s *AuditService) Record(ctx context.Context, ev attModel.ReconcileEvent) {
	row := BuildLog(ev)

	// request ctx bisa sudah selesai; pakai ctx sendiri yang pendek
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := s.w.Write(wctx, row); err != nil {
		log.Printf("[WARN] audit: gagal simpan reconcile log (%s employee=%d): %v", ev.Operation, ev.EmployeeID, err)
	}
}

// BuildLog: ReconcileEvent → baris audit.
func BuildLog(ev attModel.ReconcileEvent) *auditModel.ReconcileLog {
	row := &auditModel.ReconcileLog{
		ReconcileLogID:         uuid.New(),
		ReconcileLogOperation:  ev.Operation,
		ReconcileLogAction:     string(ev.Action.Kind),
		ReconcileLogOutcome:    auditModel.OutcomeOK,
		ReconcileLogAnomalies:  pq.StringArray{},
		ReconcileLogOccurredAt: ev.At,
	}
	if ev.EmployeeID > 0 {
		id := ev.EmployeeID
		row.ReconcileLogEmployeeID = &id
	}
	if ev.RecordID > 0 {
		id := ev.RecordID
		row.ReconcileLogRecordID = &id
	}
	if ev.Err != nil {
		msg := ev.Err.Error()
		row.ReconcileLogOutcome = auditModel.OutcomeError
		row.ReconcileLogError = &msg
	}

	if ev.Action.OpenRecordsFound > 1 {
		row.ReconcileLogAnomalies = append(row.ReconcileLogAnomalies, auditModel.AnomalyMultipleOpen)
	}
	if ev.Action.AutoClosed != nil {
		row.ReconcileLogAnomalies = append(row.ReconcileLogAnomalies, auditModel.AnomalyAutoClosed)
	}
	if errors.Is(ev.Err, attService.ErrAutoCloseFailed) {
		row.ReconcileLogAnomalies = append(row.ReconcileLogAnomalies, auditModel.AnomalyAutoCloseFailed)
	}

	if b, err := sonic.Marshal(ev.Action); err == nil {
		row.ReconcileLogPayload = datatypes.JSON(b)
	}
	return row
}
