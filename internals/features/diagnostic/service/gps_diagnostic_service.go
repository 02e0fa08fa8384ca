// internals/features/diagnostic/service/gps_diagnostic_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	attRepo "qrstudio_backend/internals/features/attendance/repository"
	diagModel "qrstudio_backend/internals/features/diagnostic/model"
	"qrstudio_backend/internals/helpers/odoo"
)

const sampleLimit = 5

type Client interface {
	SearchRead(ctx context.Context, model string, domain odoo.Domain, fields []string, opts odoo.SearchOptions, out any) error
	SearchCount(ctx context.Context, model string, domain odoo.Domain) (int64, error)
}

type GPSDiagnostic struct {
	client Client
	target diagModel.OdooTarget
	now    func() time.Time
}

func NewGPSDiagnostic(client Client, url, database string) *GPSDiagnostic {
	return &GPSDiagnostic{
		client: client,
		target: diagModel.OdooTarget{URL: url, Database: database},
		now:    time.Now,
	}
}

// splitFields: field GPS check-in vs check-out (suffix _out).
func splitFields() (in, out []string) {
	for _, f := range attRepo.GeoFieldNames() {
		if strings.HasSuffix(f, "_out") {
			out = append(out, f)
		} else {
			in = append(in, f)
		}
	}
	return in, out
}

/* ====================== RUN ====================== */

// Run tidak pernah gagal: error Odoo dicatat di TestResults.Errors.
func (d *GPSDiagnostic) Run(ctx context.Context) diagModel.GPSReport {
	in, out := splitFields()
	all := append(append([]string{}, in...), out...)

	rep := diagModel.GPSReport{
		Success:   true,
		Timestamp: d.now().UTC(),
		Odoo:      d.target,
		Fields: diagModel.FieldGroups{
			CheckIn:  map[string]*diagModel.FieldReport{},
			CheckOut: map[string]*diagModel.FieldReport{},
		},
		TestResults: diagModel.TestResults{Errors: []string{}},
	}

	log.Println("[INFO] diagnostic GPS: cek field di hr.attendance")
	d.sampleRecords(ctx, &rep, in, out, all)

	log.Println("[INFO] diagnostic GPS: cek ir.model.fields")
	d.modelMetadata(ctx, &rep, all)

	rep.Recommendations = recommendations(rep)
	rep.Status, rep.Message = overall(rep.TestResults)
	return rep
}

// Test 1: search_read dengan field GPS. Kalau field tidak ada, Odoo menolak seluruh call.
func (d *GPSDiagnostic) sampleRecords(ctx context.Context, rep *diagModel.GPSReport, in, out, all []string) {
	fields := append([]string{"id", "employee_id", "check_in", "check_out"}, all...)
	var rows []map[string]any
	err := d.client.SearchRead(ctx, odoo.ModelAttendance,
		odoo.Domain{}.And("check_in", "!=", false), fields,
		odoo.SearchOptions{Limit: sampleLimit, Order: "check_in desc"}, &rows)
	if err != nil {
		log.Printf("[WARN] diagnostic GPS: search_read gagal: %v", err)
		msg := err.Error()
		if !mentionsGPSField(msg) {
			rep.TestResults.Errors = append(rep.TestResults.Errors, msg)
			return
		}
		rep.TestResults.FieldsExist = false
		rep.TestResults.Errors = append(rep.TestResults.Errors,
			"Los campos GPS NO EXISTEN en Odoo. Debes crearlos en hr.attendance (x_latitude, x_longitude, x_accuracy y sus variantes _out).")
		for _, f := range all {
			if strings.Contains(msg, f) {
				rep.Fields.Missing = append(rep.Fields.Missing, f)
			}
		}
		if len(rep.Fields.Missing) == 0 {
			rep.Fields.Missing = all
		}
		return
	}

	rep.TestResults.SampleRecords = len(rows)
	rep.TestResults.FieldsExist = true
	if n, err := d.client.SearchCount(ctx, odoo.ModelAttendance, odoo.Domain{}.And("check_in", "!=", false)); err != nil {
		log.Printf("[WARN] diagnostic GPS: search_count gagal: %v", err)
	} else {
		rep.TestResults.TotalRecords = &n
	}
	if len(rows) == 0 {
		rep.TestResults.Errors = append(rep.TestResults.Errors,
			"No hay registros de asistencia para verificar. Haz un check-in de prueba desde la app.")
		return
	}

	collect := func(group map[string]*diagModel.FieldReport, names []string) {
		for _, name := range names {
			fr := &diagModel.FieldReport{Name: name, Exists: true, SampleValues: []diagModel.SampleValue{}}
			for _, r := range rows {
				v, ok := r[name]
				if !ok || v == nil || v == false {
					continue
				}
				fr.HasData = true
				fr.SampleValues = append(fr.SampleValues, diagModel.SampleValue{
					AttendanceID: asInt64(r["id"]),
					Value:        v,
					CheckIn:      asString(r["check_in"]),
				})
			}
			if fr.HasData {
				rep.TestResults.HasData = true
			}
			group[name] = fr
		}
	}
	collect(rep.Fields.CheckIn, in)
	collect(rep.Fields.CheckOut, out)
}

// Test 2: metadata ir.model.fields, butuh hak admin di Odoo.
func (d *GPSDiagnostic) modelMetadata(ctx context.Context, rep *diagModel.GPSReport, all []string) {
	var metas []diagModel.FieldMeta
	domain := odoo.Domain{}.
		And("model", "=", odoo.ModelAttendance).
		And("name", "in", all)
	if err := d.client.SearchRead(ctx, odoo.ModelFields, domain,
		[]string{"name", "field_description", "ttype", "state"}, odoo.SearchOptions{}, &metas); err != nil {
		log.Printf("[WARN] diagnostic GPS: metadata tidak bisa dibaca: %v", err)
		rep.TestResults.Errors = append(rep.TestResults.Errors,
			"No se pudo verificar metadatos. Puede que no tengas permisos de administrador.")
		return
	}
	if metas == nil {
		metas = []diagModel.FieldMeta{}
	}

	rep.Metadata = &diagModel.Metadata{
		FieldsInModel:  len(metas),
		ExpectedFields: len(all),
		Fields:         metas,
	}

	switch {
	case len(metas) == 0:
		rep.TestResults.Errors = append(rep.TestResults.Errors,
			"Los campos GPS no están registrados en ir.model.fields. Debes crearlos en Odoo.")
	case len(metas) < len(all):
		found := make(map[string]bool, len(metas))
		for _, m := range metas {
			found[m.Name] = true
		}
		var missing []string
		for _, f := range all {
			if !found[f] {
				missing = append(missing, f)
			}
		}
		rep.TestResults.Errors = append(rep.TestResults.Errors,
			fmt.Sprintf("Solo %d de %d campos GPS existen. Faltan: %s", len(metas), len(all), strings.Join(missing, ", ")))
	}
}

/* ====================== SUMMARY ====================== */

func overall(t diagModel.TestResults) (string, string) {
	switch {
	case t.FieldsExist && t.HasData:
		return diagModel.StatusSuccess, "✅ Los campos GPS existen y tienen datos. Todo funciona correctamente."
	case t.FieldsExist && t.SampleRecords > 0:
		return diagModel.StatusWarning, "⚠️ Los campos GPS existen pero no tienen datos. La app no está enviando coordenadas o hay un problema de permisos."
	case t.FieldsExist:
		return diagModel.StatusInfo, "📋 Los campos GPS están configurados correctamente. Haz un check-in de prueba para verificar que las coordenadas se guarden."
	default:
		return diagModel.StatusError, "❌ Los campos GPS NO EXISTEN en Odoo. Debes crearlos antes de activar ODOO_GPS_FIELDS."
	}
}

func recommendations(rep diagModel.GPSReport) []string {
	t := rep.TestResults
	switch {
	case !t.FieldsExist:
		return []string{
			"1. CREAR CAMPOS GPS: crea x_latitude, x_longitude, x_accuracy y sus variantes _out en hr.attendance",
			"2. REINICIAR ODOO: después de crear los campos, reinicia el servicio de Odoo",
			"3. VERIFICAR: vuelve a ejecutar este diagnóstico para confirmar",
		}
	case !t.HasData && t.SampleRecords > 0:
		return []string{
			"1. VERIFICAR GPS EN LA APP: asegúrate de que la app tiene permiso para acceder a la ubicación",
			"2. ACTIVAR ODOO_GPS_FIELDS: sin esta variable el backend no envía coordenadas",
			"3. PROBAR CHECK-IN: registra una nueva entrada y verifica si las coordenadas se guardan",
			"4. VERIFICAR PERMISOS ODOO: confirma que el usuario tiene permisos de escritura en hr.attendance",
		}
	case t.SampleRecords == 0:
		return []string{
			"✅ Los campos GPS están configurados correctamente en Odoo",
			"📍 SIGUIENTE PASO: haz un check-in desde la app (permite el acceso a la ubicación)",
			"🔍 Después del check-in, vuelve a ejecutar este diagnóstico",
		}
	case rep.Metadata != nil && rep.Metadata.FieldsInModel < rep.Metadata.ExpectedFields:
		return []string{
			fmt.Sprintf("FALTAN %d CAMPOS en ir.model.fields", rep.Metadata.ExpectedFields-rep.Metadata.FieldsInModel),
			"Crea los campos faltantes en hr.attendance",
		}
	default:
		return []string{
			"✅ Todo está configurado correctamente",
			"📍 Los campos GPS existen y están recibiendo datos",
		}
	}
}

func mentionsGPSField(msg string) bool {
	return strings.Contains(msg, "x_latitude") ||
		strings.Contains(msg, "x_longitude") ||
		strings.Contains(msg, "x_accuracy")
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
