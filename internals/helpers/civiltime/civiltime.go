// file: internals/helpers/civiltime/civiltime.go
package civiltime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Layout yang dipakai Odoo untuk Datetime (naive, tanpa offset)
const (
	OdooLayout     = "2006-01-02 15:04:05"
	OdooDateLayout = "2006-01-02"
	DefaultZone    = "America/Lima"
)

// Lima = UTC-5 tetap, tanpa DST. Tidak bergantung tzdata di host.
var Lima = time.FixedZone(DefaultZone, -5*60*60)

// Load mengembalikan *time.Location untuk nama zona:
// 1) kosong / "America/Lima" → Lima (fixed)
// 2) nama IANA lain → time.LoadLocation
// 3) gagal load → Lima
func Load(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || name == DefaultZone {
		return Lima
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return Lima
}

func orLima(loc *time.Location) *time.Location {
	if loc == nil {
		return Lima
	}
	return loc
}

// FormatOdoo: instant → "YYYY-MM-DD HH:MM:SS" di zona sipil loc.
func FormatOdoo(t time.Time, loc *time.Location) string {
	return t.In(orLima(loc)).Format(OdooLayout)
}

// ParseOdoo membaca string naive dari store sebagai jam dinding di loc.
func ParseOdoo(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) == len(OdooDateLayout) {
		return time.ParseInLocation(OdooDateLayout, s, orLima(loc))
	}
	t, err := time.ParseInLocation(OdooLayout, s, orLima(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("civiltime: invalid odoo datetime %q: %w", s, err)
	}
	return t, nil
}

// StartOfDay → 00:00:00 pada tanggal sipil t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	l := t.In(orLima(loc))
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, l.Location())
}

// EndOfDay → 23:59:59 pada tanggal sipil t (bukan tanggal "sekarang").
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	l := t.In(orLima(loc))
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 0, l.Location())
}

// Window = rentang [Start, End] inklusif, dipakai untuk ringkasan/riwayat saja.
type Window struct {
	Start time.Time
	End   time.Time
}

// Today: window "hari ini" menurut zona sipil.
func Today(now time.Time, loc *time.Location) Window {
	return Window{Start: StartOfDay(now, loc), End: EndOfDay(now, loc)}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Bounds dalam format Odoo, siap dipakai di domain filter.
func (w Window) Bounds(loc *time.Location) (string, string) {
	return FormatOdoo(w.Start, loc), FormatOdoo(w.End, loc)
}

// Round1 membulatkan ke 1 desimal (6.52 → 6.5).
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

/* ===============================
   Format tampilan (es-ES)
=================================*/

var (
	shortWeekdaysES = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	shortMonthsES   = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
)

// FormatHumanES → "mar, 24 feb 2026, 13:55"
func FormatHumanES(t time.Time, loc *time.Location) string {
	l := t.In(orLima(loc))
	return fmt.Sprintf("%s, %d %s %d, %02d:%02d",
		shortWeekdaysES[l.Weekday()],
		l.Day(),
		shortMonthsES[l.Month()-1],
		l.Year(),
		l.Hour(),
		l.Minute(),
	)
}

var esPrinter = message.NewPrinter(language.Spanish)

// FormatHoursES → "6,5" (satu desimal, pemisah desimal koma)
func FormatHoursES(h float64) string {
	return esPrinter.Sprintf("%.1f", h)
}

// FormatHoursMinutes → "6h 30m"
func FormatHoursMinutes(decimalHours float64) string {
	if decimalHours < 0 {
		decimalHours = 0
	}
	h := math.Floor(decimalHours)
	m := math.Round((decimalHours - h) * 60)
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %02dm", int(h), int(m))
}
