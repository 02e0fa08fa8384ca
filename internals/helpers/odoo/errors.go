package odoo

import (
	"errors"
	"fmt"
	"strings"
)

// CommunicationError: Odoo tidak terjangkau, HTTP non-2xx, atau body tidak bisa di-decode.
type CommunicationError struct {
	Status int // 0 kalau gagal sebelum dapat response
	Err    error
}

func (e *CommunicationError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("failed to communicate with Odoo: http status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("failed to communicate with Odoo: %v", e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// OperationError: Odoo menerima request tapi membalas objek "error" JSON-RPC.
type OperationError struct {
	Code    int
	Message string
	// Name = kelas exception di server, mis. "odoo.exceptions.AccessError"
	Name        string
	DataMessage string
	Debug       string
}

func (e *OperationError) Error() string {
	if e.DataMessage != "" && e.DataMessage != e.Message {
		return fmt.Sprintf("odoo error %d: %s: %s", e.Code, e.Message, e.DataMessage)
	}
	return fmt.Sprintf("odoo error %d: %s", e.Code, e.Message)
}

// Kategori error yang dikenal
const (
	CategoryValidation = "validation"
	CategoryAccess     = "access"
	CategoryMissing    = "missing"
	CategoryOther      = "other"
)

func (e *OperationError) Category() string {
	n := strings.ToLower(e.Name)
	switch {
	case strings.Contains(n, "validationerror"), strings.Contains(n, "usererror"):
		return CategoryValidation
	case strings.Contains(n, "accesserror"), strings.Contains(n, "accessdenied"):
		return CategoryAccess
	case strings.Contains(n, "missingerror"):
		return CategoryMissing
	default:
		return CategoryOther
	}
}

// FriendlyMessage: pesan untuk user akhir (es), pass-through untuk kategori lain.
func (e *OperationError) FriendlyMessage() string {
	detail := e.DataMessage
	if detail == "" {
		detail = e.Message
	}
	switch e.Category() {
	case CategoryValidation:
		return "Datos inválidos para Odoo: " + detail
	case CategoryAccess:
		return "Sin permisos suficientes en Odoo para realizar esta operación"
	case CategoryMissing:
		return "El registro solicitado no existe en Odoo"
	default:
		return detail
	}
}

func IsCommunication(err error) bool {
	var ce *CommunicationError
	return errors.As(err, &ce)
}

func AsOperation(err error) (*OperationError, bool) {
	var oe *OperationError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}
