package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/magscene/magsav/internal/entity"
	"github.com/magscene/magsav/pkg/config"
	"github.com/magscene/magsav/pkg/transport"
)

const defaultRetryWaitMax = time.Second * 5

type ctxKey struct{}

// idempotent marks a request as safe to retry.
func idempotent(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, true)
}

// APIError is a non 2xx answer of the back office API.
type APIError struct {
	Status  int
	Message string
	Detail  string
	Fields  []entity.FieldError
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}

	return msg
}

func (e *APIError) Is(target error) bool {
	switch target {
	case entity.ErrNotFound:
		return e.Status == http.StatusNotFound
	case entity.ErrValidation:
		return e.Status == http.StatusBadRequest && len(e.Fields) > 0
	case entity.ErrConflict:
		return e.Status == http.StatusConflict
	default:
		return false
	}
}

type errorResponse struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Fields  []entity.FieldError `json:"fields"`
}

type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a client whose reads are retried up to cfg.RetryMax
// times. Writes are never retried.
func NewClient(cfg config.Console) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.HTTPTimeout
	retryClient.HTTPClient.Transport = transport.NewLoggingRoundTripper(http.DefaultTransport)

	retryClient.Logger = nil

	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ok, _ := ctx.Value(ctxKey{}).(bool); !ok {
			return false, nil
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		client:  retryClient.StandardClient(),
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	err = json.Unmarshal(respBody, out)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func parseError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var resp errorResponse
	if json.Unmarshal(body, &resp) == nil && resp.Message != "" {
		apiErr.Message = resp.Message
		apiErr.Detail = resp.Error
		apiErr.Fields = resp.Fields
	}

	return apiErr
}

// Stats reads the dashboard counters.
func (c *Client) Stats(ctx context.Context) (entity.DashboardStats, error) {
	var stats entity.DashboardStats

	err := c.do(idempotent(ctx), http.MethodGet, "/dashboard/stats", nil, &stats)

	return stats, err
}

func (c *Client) ValidateServiceRequest(
	ctx context.Context, id int64, action entity.ValidationAction,
) (entity.ServiceRequest, error) {
	var req entity.ServiceRequest

	path := fmt.Sprintf("/%s/%d/validate", entity.KindServiceRequest, id)
	err := c.do(ctx, http.MethodPost, path, map[string]any{"action": action}, &req)

	return req, err
}

func (c *Client) AuthorizeRMA(ctx context.Context, id int64) (entity.RMA, error) {
	var rma entity.RMA

	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/%d/authorize", entity.KindRMA, id), nil, &rma)

	return rma, err
}

// ImportCSV uploads a CSV file for server side import.
func (c *Client) ImportCSV(
	ctx context.Context, importType, filename string, file io.Reader,
) (entity.ImportResult, error) {
	var result entity.ImportResult

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return result, err
	}

	if _, err = io.Copy(part, file); err != nil {
		return result, fmt.Errorf("copy file: %w", err)
	}

	if err = mw.Close(); err != nil {
		return result, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/import/"+url.PathEscape(importType), buf)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	err = c.send(req, &result)

	return result, err
}

// Collection reads and writes the records of one kind. It implements the
// listview reader and writer.
type Collection[T entity.Record] struct {
	c        *Client
	kind     entity.Kind
	pageSize uint64
}

func NewCollection[T entity.Record](c *Client, kind entity.Kind) *Collection[T] {
	return &Collection[T]{c: c, kind: kind, pageSize: entity.MaxListLimit}
}

// WithPageSize sets how many records FetchCollection asks for per request.
// The server never returns more than entity.MaxListLimit.
func (col *Collection[T]) WithPageSize(n uint64) *Collection[T] {
	if n > 0 && n <= entity.MaxListLimit {
		col.pageSize = n
	}

	return col
}

func (col *Collection[T]) path(id int64) string {
	return "/" + string(col.kind) + "/" + strconv.FormatInt(id, 10)
}

// FetchCollection reads the whole collection page by page, stopping at the
// first short page.
func (col *Collection[T]) FetchCollection(ctx context.Context) ([]T, error) {
	var records []T

	limit := strconv.FormatUint(col.pageSize, 10)

	for page := uint64(1); ; page++ {
		var batch []T

		path := "/" + string(col.kind) + "?limit=" + limit + "&page=" + strconv.FormatUint(page, 10)

		err := col.c.do(idempotent(ctx), http.MethodGet, path, nil, &batch)
		if err != nil {
			return nil, fmt.Errorf("fetch %s page %d: %w", col.kind, page, err)
		}

		records = append(records, batch...)

		if uint64(len(batch)) < col.pageSize {
			return records, nil
		}
	}
}

func (col *Collection[T]) FetchSingle(ctx context.Context, id int64) (T, error) {
	var rec T

	err := col.c.do(idempotent(ctx), http.MethodGet, col.path(id), nil, &rec)

	return rec, err
}

func (col *Collection[T]) UpdateRecord(ctx context.Context, id int64, fields map[string]any) (T, error) {
	var rec T

	err := col.c.do(ctx, http.MethodPut, col.path(id), fields, &rec)

	return rec, err
}

func (col *Collection[T]) CreateRecord(ctx context.Context, fields map[string]any) (T, error) {
	var rec T

	err := col.c.do(ctx, http.MethodPost, "/"+string(col.kind), fields, &rec)

	return rec, err
}

func (col *Collection[T]) DeleteRecord(ctx context.Context, id int64) error {
	return col.c.do(ctx, http.MethodDelete, col.path(id), nil, nil)
}
