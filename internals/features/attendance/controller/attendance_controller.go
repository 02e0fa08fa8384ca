package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	attDTO "qrstudio_backend/internals/features/attendance/dto"
	attModel "qrstudio_backend/internals/features/attendance/model"
	"qrstudio_backend/internals/features/attendance/service"
	helper "qrstudio_backend/internals/helpers"
	helperAuth "qrstudio_backend/internals/helpers/auth"
)

/* =========================================================
   Controller
========================================================= */

type AttendanceController struct {
	Reconciler *service.Reconciler
	// Now bisa diganti di test
	Now func() time.Time
}

func NewAttendanceController(r *service.Reconciler) *AttendanceController {
	return &AttendanceController{Reconciler: r, Now: time.Now}
}

/* ===================== HANDLERS ===================== */

// POST /api/assistance
func (h *AttendanceController) History(c *fiber.Ctx) error {
	var req attDTO.HistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := helperAuth.EnsureEmployee(c, req.UserID.Int64()); err != nil {
		return helper.JsonFromError(c, err)
	}

	hist, err := h.Reconciler.QueryAttendance(c.UserContext(), req.UserID.Int64(), req.AllHistory, h.Now())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonOK(c, "ok", attDTO.NewHistoryResponse(hist, h.Reconciler.Location()))
}

// POST /api/assistance/in
func (h *AttendanceController) CheckIn(c *fiber.Ctx) error {
	var req attDTO.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := helperAuth.EnsureEmployee(c, req.UserID.Int64()); err != nil {
		return helper.JsonFromError(c, err)
	}

	act, err := h.Reconciler.ResolveAttendanceAction(c.UserContext(), req.UserID.Int64(), h.Now(), req.ToModel())
	if err != nil {
		return h.fail(c, err)
	}

	switch act.Kind {
	case attModel.ActionRejectedOpenCheckoutRequired:
		return helper.JsonErrorCode(c, fiber.StatusConflict, "OPEN_CHECKOUT_REQUIRED",
			act.Conflict.Message, attDTO.NewConflictDetails(act.Conflict))
	case attModel.ActionAutoClosedThenOpened:
		return helper.JsonCreated(c, "Entrada registrada. Se cerró automáticamente un registro abierto anterior.", attDTO.NewCheckInResponse(act))
	default:
		return helper.JsonCreated(c, "Entrada registrada", attDTO.NewCheckInResponse(act))
	}
}

// POST /api/assistance/out
func (h *AttendanceController) CheckOut(c *fiber.Ctx) error {
	var req attDTO.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload inválido")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	act, err := h.Reconciler.ResolveCheckout(c.UserContext(), req.RegistryID.Int64(), h.Now(), req.ToModel())
	if err != nil {
		return h.fail(c, err)
	}
	return helper.JsonOK(c, "Salida registrada", attDTO.NewCheckOutResponse(act))
}

// fail: error domain attendance dulu, sisanya ke pemetaan umum.
func (h *AttendanceController) fail(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, "INVALID_ID", ve.Error(),
			fiber.Map{"field": ve.Field})
	}

	var acf *service.AutoCloseFailedError
	if errors.As(err, &acf) {
		return helper.JsonErrorCode(c, fiber.StatusConflict, "AUTO_CLOSE_FAILED",
			"Tienes un registro abierto que no se pudo cerrar automáticamente. Registra tu salida primero.",
			attDTO.ConflictDetails{RecordID: acf.RecordID, CheckIn: acf.CheckInAt})
	}
	return helper.JsonFromError(c, err)
}
