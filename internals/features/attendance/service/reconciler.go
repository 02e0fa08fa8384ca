// internals/features/attendance/service/reconciler.go
package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	attModel "qrstudio_backend/internals/features/attendance/model"
	"qrstudio_backend/internals/helpers/civiltime"
)

// Record terbuka lebih lama dari ini dianggap ditinggal (perbandingan ketat >).
const AutoCloseThreshold = 24 * time.Hour

// Store = akses ke model attendance di ERP (search/create/write).
type Store interface {
	// FindOpen: employee_id = id AND check_out = false, TANPA filter tanggal.
	FindOpen(ctx context.Context, employeeID int64) ([]attModel.AttendanceRecord, error)
	Create(ctx context.Context, v attModel.CreateValues) (int64, error)
	Close(ctx context.Context, recordID int64, v attModel.CloseValues) error
	// ListByEmployee: window nil → semua riwayat.
	ListByEmployee(ctx context.Context, employeeID int64, window *civiltime.Window) ([]attModel.AttendanceRecord, error)
}

// Recorder menerima event setelah tiap keputusan (audit). Opsional.
type Recorder interface {
	Record(ctx context.Context, ev attModel.ReconcileEvent)
}

type Reconciler struct {
	store    Store
	loc      *time.Location
	recorder Recorder
	group    singleflight.Group
}

type Option func(*Reconciler)

func WithRecorder(r Recorder) Option {
	return func(rc *Reconciler) { rc.recorder = r }
}

func NewReconciler(store Store, loc *time.Location, opts ...Option) *Reconciler {
	if loc == nil {
		loc = civiltime.Lima
	}
	r := &Reconciler{store: store, loc: loc}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Reconciler) Location() *time.Location { return r.loc }

// ===============================
// Check-in
// ===============================

// ResolveAttendanceAction menentukan transisi berikutnya untuk employee pada instant now.
// Request paralel untuk employee yang sama digabung jadi satu round-trip ke store.
func (r *Reconciler) ResolveAttendanceAction(ctx context.Context, employeeID int64, now time.Time, geo *attModel.Geo) (attModel.Action, error) {
	if employeeID <= 0 {
		return attModel.Action{}, &ValidationError{Field: "userId", Reason: "must be a positive integer"}
	}

	// caller yang digabung ikut ctx, now, dan geo milik caller pertama; kalau dia putus, semua ikut gagal
	v, err, shared := r.group.Do("in:"+strconv.FormatInt(employeeID, 10), func() (any, error) {
		act, err := r.resolveCheckIn(ctx, employeeID, now, geo)
		r.record(ctx, "check_in", employeeID, act.RecordID, act, err, now)
		return act, err
	})
	act, _ := v.(attModel.Action)
	act.Shared = shared
	return act, err
}

func (r *Reconciler) resolveCheckIn(ctx context.Context, employeeID int64, now time.Time, geo *attModel.Geo) (attModel.Action, error) {
	open, err := r.store.FindOpen(ctx, employeeID)
	if err != nil {
		return attModel.Action{}, err
	}
	if len(open) == 0 {
		return r.openNew(ctx, employeeID, now, geo)
	}
	if len(open) > 1 {
		log.Printf("[WARN] employee %d punya %d record attendance terbuka, pakai id=%d", employeeID, len(open), open[0].ID)
	}

	current := open[0]
	elapsed := now.Sub(current.CheckInAt)
	hoursOpen := civiltime.Round1(elapsed.Hours())
	checkInStr := civiltime.FormatOdoo(current.CheckInAt, r.loc)

	if elapsed <= AutoCloseThreshold {
		return attModel.Action{
			Kind:             attModel.ActionRejectedOpenCheckoutRequired,
			EmployeeID:       employeeID,
			OpenRecordsFound: len(open),
			Conflict: &attModel.OpenConflict{
				RecordID:  current.ID,
				CheckInAt: checkInStr,
				HoursOpen: hoursOpen,
				Message:   r.conflictMessage(current.CheckInAt, hoursOpen),
			},
		}, nil
	}

	// Basi: tutup di 23:59:59 tanggal check-in-nya sendiri
	closeAt := civiltime.FormatOdoo(civiltime.EndOfDay(current.CheckInAt, r.loc), r.loc)
	if err := r.store.Close(ctx, current.ID, attModel.CloseValues{CheckOutAt: closeAt}); err != nil {
		return attModel.Action{}, &AutoCloseFailedError{RecordID: current.ID, CheckInAt: checkInStr, Err: err}
	}
	log.Printf("[INFO] auto-close attendance id=%d employee=%d check_in=%s check_out=%s (%.1f h)",
		current.ID, employeeID, checkInStr, closeAt, hoursOpen)

	act, err := r.openNew(ctx, employeeID, now, geo)
	act.Kind = attModel.ActionAutoClosedThenOpened
	act.OpenRecordsFound = len(open)
	act.AutoClosed = &attModel.AutoClosed{
		RecordID:   current.ID,
		CheckInAt:  checkInStr,
		CheckOutAt: closeAt,
		HoursOpen:  hoursOpen,
	}
	return act, err
}

func (r *Reconciler) openNew(ctx context.Context, employeeID int64, now time.Time, geo *attModel.Geo) (attModel.Action, error) {
	checkIn := civiltime.FormatOdoo(now, r.loc)
	id, err := r.store.Create(ctx, attModel.CreateValues{
		EmployeeID: employeeID,
		CheckInAt:  checkIn,
		Geo:        geo,
	})
	act := attModel.Action{
		Kind:       attModel.ActionOpenedCheckIn,
		EmployeeID: employeeID,
		CheckInAt:  checkIn,
	}
	if err != nil {
		return act, err
	}
	act.RecordID = id
	return act, nil
}

func (r *Reconciler) conflictMessage(checkIn time.Time, hoursOpen float64) string {
	return fmt.Sprintf("Ya tienes un registro de entrada abierto desde %s (%s horas). Por favor, registra tu salida primero.",
		civiltime.FormatHumanES(checkIn, r.loc), civiltime.FormatHoursES(hoursOpen))
}

// ===============================
// Check-out
// ===============================

// ResolveCheckout menulis check_out = now pada record, berapa pun lamanya terbuka.
func (r *Reconciler) ResolveCheckout(ctx context.Context, recordID int64, now time.Time, geo *attModel.Geo) (attModel.Action, error) {
	if recordID <= 0 {
		return attModel.Action{}, &ValidationError{Field: "registryId", Reason: "must be a positive integer"}
	}

	// sama seperti check-in: ctx/now/geo caller pertama yang dipakai
	v, err, shared := r.group.Do("out:"+strconv.FormatInt(recordID, 10), func() (any, error) {
		checkOut := civiltime.FormatOdoo(now, r.loc)
		act := attModel.Action{Kind: attModel.ActionClosedOk, RecordID: recordID, CheckOutAt: checkOut}
		err := r.store.Close(ctx, recordID, attModel.CloseValues{CheckOutAt: checkOut, Geo: geo})
		if err != nil {
			act = attModel.Action{}
		}
		r.record(ctx, "check_out", 0, recordID, act, err, now)
		return act, err
	})
	act, _ := v.(attModel.Action)
	act.Shared = shared
	return act, err
}

// ===============================
// Query riwayat
// ===============================

// QueryAttendance: allHistory=false → hanya window "hari ini" zona sipil.
func (r *Reconciler) QueryAttendance(ctx context.Context, employeeID int64, allHistory bool, now time.Time) (attModel.History, error) {
	if employeeID <= 0 {
		return attModel.History{}, &ValidationError{Field: "userId", Reason: "must be a positive integer"}
	}

	var window *civiltime.Window
	filter := "all"
	if !allHistory {
		w := civiltime.Today(now, r.loc)
		window = &w
		filter = "today"
	}

	records, err := r.store.ListByEmployee(ctx, employeeID, window)
	if err != nil {
		return attModel.History{}, err
	}
	if records == nil {
		records = []attModel.AttendanceRecord{}
	}

	var total float64
	for _, rec := range records {
		total += rec.WorkedHours
	}
	return attModel.History{
		Records:    records,
		Filter:     filter,
		TotalHours: civiltime.Round1(total),
	}, nil
}

func (r *Reconciler) record(ctx context.Context, op string, employeeID, recordID int64, act attModel.Action, err error, at time.Time) {
	if r.recorder == nil {
		return
	}
	if recordID == 0 {
		recordID = act.RecordID
	}
	r.recorder.Record(ctx, attModel.ReconcileEvent{
		Operation:  op,
		EmployeeID: employeeID,
		RecordID:   recordID,
		Action:     act,
		Err:        err,
		At:         at,
	})
}
