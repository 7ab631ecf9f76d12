// Package recordapi is a thin client for the hosted record API: one JSON
// request per call, authenticated with project id and public key headers.
package recordapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderProjectID = "X-Apper-Project-Id"
	HeaderPublicKey = "X-Apper-Public-Key"

	maxBody = 4 << 20
)

type Client struct {
	endpoint  string
	projectID string
	publicKey string
	httpc     *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, mainly for tests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpc = h } }

// WithTimeout bounds every request. Zero keeps the default of 20s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

func New(endpoint, projectID, publicKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		projectID: projectID,
		publicKey: publicKey,
		httpc:     &http.Client{Timeout: 20 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// FetchRecords lists records of a table.
func (c *Client) FetchRecords(ctx context.Context, table string, q Query) (*ListResponse, error) {
	var out ListResponse
	if err := c.do(ctx, http.MethodPost, c.tableURL(table)+"/query", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecordByID fetches one record. Only q.Fields is sent.
func (c *Client) GetRecordByID(ctx context.Context, table string, id int64, q Query) (*ItemResponse, error) {
	var out ItemResponse
	u := c.tableURL(table) + "/" + strconv.FormatInt(id, 10) + "/query"
	if err := c.do(ctx, http.MethodPost, u, Query{Fields: q.Fields}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRecord(ctx context.Context, table string, records []map[string]any) (*MutationResponse, error) {
	return c.mutate(ctx, http.MethodPost, table, mutationRequest{Records: records})
}

// UpdateRecord replaces records; each must carry its Id.
func (c *Client) UpdateRecord(ctx context.Context, table string, records []map[string]any) (*MutationResponse, error) {
	return c.mutate(ctx, http.MethodPut, table, mutationRequest{Records: records})
}

func (c *Client) DeleteRecord(ctx context.Context, table string, ids []int64) (*MutationResponse, error) {
	return c.mutate(ctx, http.MethodDelete, table, mutationRequest{RecordIDs: ids})
}

func (c *Client) mutate(ctx context.Context, method, table string, body mutationRequest) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, method, c.tableURL(table), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) tableURL(table string) string {
	return c.endpoint + "/v1/tables/" + table + "/records"
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(b))
	if err != nil {
		return &TransportError{Op: method + " " + url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderProjectID, c.projectID)
	req.Header.Set(HeaderPublicKey, c.publicKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &TransportError{Op: method + " " + url, Err: err}
	}
	if resp.StatusCode >= 300 {
		return &StatusError{
			Code:    resp.StatusCode,
			Message: bodyMessage(body, resp.Header.Get("Content-Type")),
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err, Snippet: bodyMessage(body, resp.Header.Get("Content-Type"))}
	}
	return nil
}
