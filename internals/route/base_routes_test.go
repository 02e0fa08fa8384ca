package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"qrstudio_backend/internals/helpers/odoo"
)

type fakeOdoo struct{ err error }

func (f fakeOdoo) Version(ctx context.Context) (odoo.VersionInfo, error) {
	if f.err != nil {
		return odoo.VersionInfo{}, f.err
	}
	return odoo.VersionInfo{ServerVersion: "17.0"}, nil
}

var goodConfig = odoo.Config{URL: "https://odoo.test/jsonrpc", Database: "prod", UID: 8, APIKey: "k"}

func health(t *testing.T, d HealthDeps, method string) (int, HealthResult) {
	t.Helper()
	app := fiber.New()
	BaseRoutes(app, d)

	resp, err := app.Test(httptest.NewRequest(method, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	var res HealthResult
	if method == fiber.MethodGet {
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &res); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, res
}

func TestHealthy(t *testing.T) {
	status, res := health(t, HealthDeps{Odoo: fakeOdoo{}, OdooConfig: goodConfig, Version: "2.0.0"}, fiber.MethodGet)
	if status != fiber.StatusOK || res.Status != StatusHealthy {
		t.Fatalf("got %d %+v", status, res)
	}
	if res.Checks["odoo"].Message != "Odoo 17.0" || res.Checks["audit_db"].Status != checkDisabled {
		t.Fatalf("unexpected checks %+v", res.Checks)
	}
}

func TestOdooDownIsUnhealthy(t *testing.T) {
	d := HealthDeps{Odoo: fakeOdoo{err: &odoo.CommunicationError{Err: errors.New("refused")}}, OdooConfig: goodConfig}
	status, res := health(t, d, fiber.MethodGet)
	if status != fiber.StatusServiceUnavailable || res.Status != StatusUnhealthy {
		t.Fatalf("got %d %+v", status, res)
	}
}

func TestAuditDBDownIsDegraded(t *testing.T) {
	d := HealthDeps{
		Odoo:       fakeOdoo{},
		OdooConfig: goodConfig,
		PingDB:     func(context.Context) error { return errors.New("no route to host") },
	}
	status, res := health(t, d, fiber.MethodGet)
	if status != fiber.StatusOK || res.Status != StatusDegraded {
		t.Fatalf("got %d %+v", status, res)
	}
}

func TestHeadHealthChecksEnvironment(t *testing.T) {
	if status, _ := health(t, HealthDeps{Odoo: fakeOdoo{}, OdooConfig: goodConfig}, fiber.MethodHead); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ := health(t, HealthDeps{Odoo: fakeOdoo{}}, fiber.MethodHead); status != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
}
