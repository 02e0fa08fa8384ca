package odoo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type capturedCall struct {
	Service string
	Method  string
	Args    []json.RawMessage
}

type callLog struct {
	mu    sync.Mutex
	calls []capturedCall
}

func (l *callLog) add(c capturedCall) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

func (l *callLog) all() []capturedCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]capturedCall(nil), l.calls...)
}

// fakeOdoo menjalankan server JSON-RPC kecil; handler menerima call yang sudah di-decode.
func fakeOdoo(t *testing.T, handler func(call capturedCall) (status int, body string)) (*Client, *callLog) {
	t.Helper()
	calls := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			Params struct {
				Service string            `json:"service"`
				Method  string            `json:"method"`
				Args    []json.RawMessage `json:"args"`
			} `json:"params"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		call := capturedCall{Service: req.Params.Service, Method: req.Params.Method, Args: req.Params.Args}
		calls.add(call)
		status, body := handler(call)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{URL: srv.URL + "/jsonrpc", Database: "odoo_test", UID: 8, APIKey: "secret", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, calls
}

func argString(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("arg is not a string: %s", raw)
	}
	return s
}

func TestNewClientRequiresConfig(t *testing.T) {
	_, err := NewClient(Config{URL: "http://odoo"})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"ODOO_DATABASE", "ODOO_USER_ID", "ODOO_API_KEY"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should mention %s", err, key)
		}
	}
}

func TestSearchReadSendsExecuteKw(t *testing.T) {
	c, calls := fakeOdoo(t, func(call capturedCall) (int, string) {
		return 200, `{"jsonrpc":"2.0","id":1,"result":[{"id":7,"employee_id":[5,"Ana"],"check_in":"2026-02-22 08:00:00","check_out":false}]}`
	})

	var rows []struct {
		ID         int64     `json:"id"`
		EmployeeID Many2One  `json:"employee_id"`
		CheckIn    string    `json:"check_in"`
		CheckOut   OptString `json:"check_out"`
	}
	domain := Domain{}.And("employee_id", "=", 5).And("check_out", "=", false)
	err := c.SearchRead(context.Background(), ModelAttendance, domain, []string{"id", "check_in"}, SearchOptions{Limit: 10, Order: "check_in desc"}, &rows)
	if err != nil {
		t.Fatalf("SearchRead: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 7 || rows[0].EmployeeID.ID != 5 || rows[0].EmployeeID.Name != "Ana" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0].CheckOut.Valid {
		t.Fatal("check_out=false must decode as absent")
	}

	got := calls.all()[0]
	if got.Service != "object" || got.Method != "execute_kw" {
		t.Fatalf("unexpected call %s.%s", got.Service, got.Method)
	}
	if len(got.Args) != 7 {
		t.Fatalf("execute_kw expects 7 args, got %d", len(got.Args))
	}
	if argString(t, got.Args[0]) != "odoo_test" || argString(t, got.Args[3]) != ModelAttendance || argString(t, got.Args[4]) != "search_read" {
		t.Fatalf("unexpected args %s", got.Args)
	}
	if string(got.Args[5]) != `[[["employee_id","=",5],["check_out","=",false]]]` {
		t.Fatalf("unexpected domain %s", got.Args[5])
	}
	var kw map[string]any
	_ = json.Unmarshal(got.Args[6], &kw)
	if kw["limit"].(float64) != 10 || kw["order"] != "check_in desc" {
		t.Fatalf("unexpected kwargs %v", kw)
	}
}

func TestCreateAcceptsScalarAndListIDs(t *testing.T) {
	for _, result := range []string{"42", "[42]"} {
		c, calls := fakeOdoo(t, func(capturedCall) (int, string) {
			return 200, `{"jsonrpc":"2.0","id":1,"result":` + result + `}`
		})
		id, err := c.Create(context.Background(), ModelAttendance, map[string]any{"employee_id": 5})
		if err != nil {
			t.Fatalf("Create(%s): %v", result, err)
		}
		if id != 42 {
			t.Fatalf("Create(%s) id = %d", result, id)
		}
		if string(calls.all()[0].Args[5]) != `[[{"employee_id":5}]]` {
			t.Fatalf("unexpected create args %s", calls.all()[0].Args[5])
		}
	}
}

func TestWriteSendsIDsAndValues(t *testing.T) {
	c, calls := fakeOdoo(t, func(capturedCall) (int, string) {
		return 200, `{"jsonrpc":"2.0","id":1,"result":true}`
	})
	ok, err := c.Write(context.Background(), ModelAttendance, []int64{13}, map[string]any{"check_out": "2026-02-24 20:00:00"})
	if err != nil || !ok {
		t.Fatalf("Write: ok=%v err=%v", ok, err)
	}
	if string(calls.all()[0].Args[5]) != `[[13],{"check_out":"2026-02-24 20:00:00"}]` {
		t.Fatalf("unexpected write args %s", calls.all()[0].Args[5])
	}
}

func TestOperationErrorIsTyped(t *testing.T) {
	c, _ := fakeOdoo(t, func(capturedCall) (int, string) {
		return 200, `{"jsonrpc":"2.0","id":1,"error":{"code":200,"message":"Odoo Server Error","data":{"name":"odoo.exceptions.AccessError","message":"You are not allowed to modify 'Attendance'"}}}`
	})
	_, err := c.Write(context.Background(), ModelAttendance, []int64{1}, map[string]any{})
	oe, ok := AsOperation(err)
	if !ok {
		t.Fatalf("expected OperationError, got %T %v", err, err)
	}
	if oe.Code != 200 || oe.Category() != CategoryAccess {
		t.Fatalf("unexpected error %+v", oe)
	}
	if !strings.Contains(oe.FriendlyMessage(), "permisos") {
		t.Fatalf("unexpected friendly message %q", oe.FriendlyMessage())
	}
	if IsCommunication(err) {
		t.Fatal("operation error must not be reported as communication error")
	}
}

func TestHTTPFailureIsCommunicationError(t *testing.T) {
	c, _ := fakeOdoo(t, func(capturedCall) (int, string) {
		return 502, `bad gateway`
	})
	_, err := c.SearchCount(context.Background(), ModelAttendance, nil)
	if !IsCommunication(err) {
		t.Fatalf("expected CommunicationError, got %T %v", err, err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("error should carry status: %v", err)
	}
}

func TestUnreachableServerIsCommunicationError(t *testing.T) {
	c, err := NewClient(Config{URL: "http://127.0.0.1:1/jsonrpc", Database: "db", UID: 1, APIKey: "k", Timeout: 500 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Version(context.Background()); !IsCommunication(err) {
		t.Fatalf("expected CommunicationError, got %T %v", err, err)
	}
}

func TestCanceledContextSkipsRequest(t *testing.T) {
	c, calls := fakeOdoo(t, func(capturedCall) (int, string) { return 200, `{"result":1}` })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.SearchCount(ctx, ModelAttendance, nil); !IsCommunication(err) {
		t.Fatalf("expected CommunicationError, got %v", err)
	}
	if len(calls.all()) != 0 {
		t.Fatal("no request should be sent with a canceled context")
	}
}

func TestVersionUsesCommonService(t *testing.T) {
	c, calls := fakeOdoo(t, func(capturedCall) (int, string) {
		return 200, `{"jsonrpc":"2.0","id":1,"result":{"server_version":"17.0","server_serie":"17.0","protocol_version":1}}`
	})
	v, err := c.Version(context.Background())
	if err != nil || v.ServerVersion != "17.0" {
		t.Fatalf("Version: %+v %v", v, err)
	}
	if calls.all()[0].Service != "common" || calls.all()[0].Method != "version" {
		t.Fatalf("unexpected call %+v", calls.all()[0])
	}
}
