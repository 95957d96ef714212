// Package platform wraps the hosted record-store API behind a small
// client. The platform is opaque to the rest of the system: logical
// tables, explicit field lists per fetch, and batch mutations whose
// results are reported per submitted record.
package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrRecordNotFound is returned when the platform reports that the
// requested record does not exist.
var ErrRecordNotFound = errors.New("record not found")

// Config holds the connection settings for the record platform.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each HTTP call; zero means no timeout, matching the
	// dashboard's no-timeout contract for adapter calls.
	Timeout time.Duration
}

// Client issues record operations against the platform REST API.
type Client struct {
	rest *resty.Client
	log  *zap.Logger
}

// New builds a platform client.
func New(cfg Config, log *zap.Logger) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		rest.SetTimeout(cfg.Timeout)
	}
	return &Client{rest: rest, log: log}
}

// FieldError carries field-level detail for a rejected record.
type FieldError struct {
	FieldLabel string `json:"fieldLabel"`
	Message    string `json:"message"`
}

// RecordResult is the per-record outcome of a batch mutation.
type RecordResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
	Errors  []FieldError   `json:"errors"`
}

type listResponse struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
	Message string           `json:"message"`
}

type itemResponse struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
}

type mutationResponse struct {
	Success bool           `json:"success"`
	Results []RecordResult `json:"results"`
	Message string         `json:"message"`
}

type fetchRequest struct {
	Fields []string `json:"fields"`
}

type recordsRequest struct {
	Records []map[string]any `json:"records"`
}

type deleteRequest struct {
	RecordIDs []int `json:"recordIds"`
}

// FetchRecords retrieves all records of a table, restricted to the given
// field list.
func (c *Client) FetchRecords(ctx context.Context, table string, fields []string) ([]map[string]any, error) {
	var out listResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(fetchRequest{Fields: fields}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/records/%s/fetch", table))
	if err != nil {
		return nil, fmt.Errorf("platform unreachable: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || !out.Success {
		return nil, responseError(resp.StatusCode(), out.Message)
	}
	return out.Data, nil
}

// FetchRecordByID retrieves a single record. A missing record surfaces as
// ErrRecordNotFound.
func (c *Client) FetchRecordByID(ctx context.Context, table string, id int, fields []string) (map[string]any, error) {
	var out itemResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(fetchRequest{Fields: fields}).
		SetResult(&out).
		Post(fmt.Sprintf("/api/records/%s/%d/fetch", table, id))
	if err != nil {
		return nil, fmt.Errorf("platform unreachable: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if resp.StatusCode() != http.StatusOK || !out.Success {
		return nil, responseError(resp.StatusCode(), out.Message)
	}
	return out.Data, nil
}

// CreateRecords submits new records and returns one result per record.
// Field-level errors on failed records are logged here; callers still see
// the failed result.
func (c *Client) CreateRecords(ctx context.Context, table string, records []map[string]any) ([]RecordResult, error) {
	return c.mutate(ctx, table, "create", recordsRequest{Records: records})
}

// UpdateRecords submits partial record updates; each record must carry its
// Id.
func (c *Client) UpdateRecords(ctx context.Context, table string, records []map[string]any) ([]RecordResult, error) {
	return c.mutate(ctx, table, "update", recordsRequest{Records: records})
}

// DeleteRecords deletes records by identifier.
func (c *Client) DeleteRecords(ctx context.Context, table string, ids []int) ([]RecordResult, error) {
	return c.mutate(ctx, table, "delete", deleteRequest{RecordIDs: ids})
}

func (c *Client) mutate(ctx context.Context, table, op string, body any) ([]RecordResult, error) {
	var out mutationResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/api/records/%s/%s", table, op))
	if err != nil {
		return nil, fmt.Errorf("platform unreachable: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, responseError(resp.StatusCode(), out.Message)
	}

	for _, res := range out.Results {
		if res.Success {
			continue
		}
		fields := []zap.Field{
			zap.String("table", table),
			zap.String("operation", op),
			zap.String("message", res.Message),
		}
		for _, fe := range res.Errors {
			fields = append(fields, zap.String("field_"+fe.FieldLabel, fe.Message))
		}
		c.log.Warn("Platform rejected record", fields...)
	}
	return out.Results, nil
}

func responseError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("platform error (%d): %s", status, message)
}

// ResultError condenses a failed RecordResult into an error, folding
// field-level messages in so the caller's toast shows the real reason.
func ResultError(res RecordResult) error {
	msg := res.Message
	if msg == "" {
		msg = "record rejected"
	}
	for _, fe := range res.Errors {
		msg += fmt.Sprintf("; %s: %s", fe.FieldLabel, fe.Message)
	}
	return errors.New(msg)
}
