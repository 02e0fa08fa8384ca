// file: internals/helpers/odoo/client.go
package odoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	URL      string
	Database string
	UID      int64
	APIKey   string
	Timeout  time.Duration
}

func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.URL) == "" {
		missing = append(missing, "ODOO_URL")
	}
	if strings.TrimSpace(c.Database) == "" {
		missing = append(missing, "ODOO_DATABASE")
	}
	if c.UID <= 0 {
		missing = append(missing, "ODOO_USER_ID")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, "ODOO_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Odoo configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Client = wrapper JSON-RPC /jsonrpc (service "object" → execute_kw).
// Dibuat eksplisit lalu di-inject, bukan singleton global.
type Client struct {
	cfg   Config
	http  *fiber.Client
	reqID atomic.Int64
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		http: &fiber.Client{
			JSONEncoder: sonic.Marshal,
			JSONDecoder: sonic.Unmarshal,
		},
	}, nil
}

func (c *Client) Database() string { return c.cfg.Database }
func (c *Client) URL() string      { return c.cfg.URL }

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	ID      int64     `json:"id"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Debug   string `json:"debug"`
	} `json:"data"`
}

// call = satu round-trip JSON-RPC. out boleh nil.
func (c *Client) call(ctx context.Context, service, method string, args []any, out any) error {
	if err := ctx.Err(); err != nil {
		return &CommunicationError{Err: err}
	}

	timeout := c.cfg.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
		if timeout <= 0 {
			return &CommunicationError{Err: context.DeadlineExceeded}
		}
	}

	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		ID:      c.reqID.Add(1),
		Params: rpcParams{
			Service: service,
			Method:  method,
			Args:    args,
		},
	}

	agent := c.http.Post(c.cfg.URL)
	agent.Timeout(timeout)
	agent.JSON(payload)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return &CommunicationError{Err: errors.Join(errs...)}
	}
	if status < 200 || status > 299 {
		return &CommunicationError{Status: status, Err: fmt.Errorf("unexpected response: %s", truncate(body, 200))}
	}

	var resp rpcResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return &CommunicationError{Status: status, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.Error != nil {
		log.Printf("[ERROR] odoo %s.%s code=%d name=%s message=%q data=%q",
			service, method, resp.Error.Code, resp.Error.Data.Name, resp.Error.Message, resp.Error.Data.Message)
		return &OperationError{
			Code:        resp.Error.Code,
			Message:     resp.Error.Message,
			Name:        resp.Error.Data.Name,
			DataMessage: resp.Error.Data.Message,
			Debug:       resp.Error.Data.Debug,
		}
	}

	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(resp.Result, out); err != nil {
		return &CommunicationError{Status: status, Err: fmt.Errorf("decode result: %w", err)}
	}
	return nil
}

// ExecuteKw → object.execute_kw(db, uid, key, model, method, args, kwargs)
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []any, kwargs map[string]any, out any) error {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return c.call(ctx, "object", "execute_kw", []any{
		c.cfg.Database,
		c.cfg.UID,
		c.cfg.APIKey,
		model,
		method,
		args,
		kwargs,
	}, out)
}

type SearchOptions struct {
	Limit  int
	Offset int
	Order  string
}

func (o SearchOptions) kwargs() map[string]any {
	kw := map[string]any{}
	if o.Limit > 0 {
		kw["limit"] = o.Limit
	}
	if o.Offset > 0 {
		kw["offset"] = o.Offset
	}
	if strings.TrimSpace(o.Order) != "" {
		kw["order"] = o.Order
	}
	return kw
}

func domainOrEmpty(d Domain) Domain {
	if d == nil {
		return Domain{}
	}
	return d
}

func (c *Client) SearchRead(ctx context.Context, model string, domain Domain, fields []string, opts SearchOptions, out any) error {
	kw := opts.kwargs()
	if len(fields) > 0 {
		kw["fields"] = fields
	}
	return c.ExecuteKw(ctx, model, "search_read", []any{domainOrEmpty(domain)}, kw, out)
}

func (c *Client) SearchCount(ctx context.Context, model string, domain Domain) (int64, error) {
	var n int64
	if err := c.ExecuteKw(ctx, model, "search_count", []any{domainOrEmpty(domain)}, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create mengirim [[values]]; Odoo bisa balas id tunggal atau list id.
func (c *Client) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	var raw json.RawMessage
	if err := c.ExecuteKw(ctx, model, "create", []any{[]any{values}}, nil, &raw); err != nil {
		return 0, err
	}
	id, err := decodeCreatedID(raw)
	if err != nil {
		return 0, &CommunicationError{Err: err}
	}
	return id, nil
}

func (c *Client) Write(ctx context.Context, model string, ids []int64, values map[string]any) (bool, error) {
	var ok bool
	if err := c.ExecuteKw(ctx, model, "write", []any{ids, values}, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Version → common.version (tanpa autentikasi), dipakai health check.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var v VersionInfo
	if err := c.call(ctx, "common", "version", []any{}, &v); err != nil {
		return VersionInfo{}, err
	}
	return v, nil
}

func decodeCreatedID(raw json.RawMessage) (int64, error) {
	var id int64
	if err := sonic.Unmarshal(raw, &id); err == nil && id > 0 {
		return id, nil
	}
	var ids []int64
	if err := sonic.Unmarshal(raw, &ids); err == nil && len(ids) > 0 && ids[0] > 0 {
		return ids[0], nil
	}
	return 0, fmt.Errorf("unexpected create result: %s", truncate(raw, 100))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
