package odoo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Domain = domain filter Odoo, mis. [["employee_id","=",5],["check_out","=",false]]
type Domain []any

func Cond(field, op string, value any) []any {
	return []any{field, op, value}
}

func (d Domain) And(field, op string, value any) Domain {
	return append(d, Cond(field, op, value))
}

// Model & service yang dipakai
const (
	ModelEmployee     = "hr.employee"
	ModelAttendance   = "hr.attendance"
	ModelAnalyticLine = "account.analytic.line"
	ModelFields       = "ir.model.fields"
)

// Many2One: Odoo kirim [id, "display name"] atau false.
type Many2One struct {
	ID   int64
	Name string
}

func (m *Many2One) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if isFalsy(b) {
		*m = Many2One{}
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		// kadang hanya id
		var id int64
		if err2 := json.Unmarshal(b, &id); err2 == nil {
			*m = Many2One{ID: id}
			return nil
		}
		return fmt.Errorf("odoo: invalid many2one %s: %w", string(b), err)
	}
	if len(pair) > 0 {
		if err := json.Unmarshal(pair[0], &m.ID); err != nil {
			return fmt.Errorf("odoo: invalid many2one id: %w", err)
		}
	}
	if len(pair) > 1 {
		_ = json.Unmarshal(pair[1], &m.Name)
	}
	return nil
}

func (m Many2One) MarshalJSON() ([]byte, error) {
	if m.ID == 0 {
		return []byte("false"), nil
	}
	return json.Marshal([]any{m.ID, m.Name})
}

// OptString: string yang bisa dikirim false/null oleh Odoo (mis. check_out).
type OptString struct {
	Value string
	Valid bool
}

func (s *OptString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if isFalsy(b) {
		*s = OptString{}
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("odoo: invalid string field %s: %w", string(b), err)
	}
	*s = OptString{Value: v, Valid: v != ""}
	return nil
}

func (s OptString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("false"), nil
	}
	return json.Marshal(s.Value)
}

// OptFloat: numeric atau false.
type OptFloat struct {
	Value float64
	Valid bool
}

func (f *OptFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if isFalsy(b) {
		*f = OptFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("odoo: invalid float field %s: %w", string(b), err)
	}
	*f = OptFloat{Value: v, Valid: true}
	return nil
}

func (f OptFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("false"), nil
	}
	return json.Marshal(f.Value)
}

func isFalsy(b []byte) bool {
	return len(b) == 0 || bytes.Equal(b, []byte("false")) || bytes.Equal(b, []byte("null"))
}

// VersionInfo dari service "common" method "version".
type VersionInfo struct {
	ServerVersion   string `json:"server_version"`
	ServerSerie     string `json:"server_serie"`
	ProtocolVersion int    `json:"protocol_version"`
}
