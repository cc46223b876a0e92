package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"

	"github.com/iliyamo/leaf-supply-chain/internal/apperr"
)

const invoiceFailed = "Error creating invoice with Xendit"

// Invoices forwards invoice requests to the Xendit REST API.
type Invoices struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	IDs     *snowflake.Node
}

// Create posts body to /v2/invoices and returns the provider response as
// is. A missing external_id is filled with a snowflake id.
func (s *Invoices) Create(ctx context.Context, body map[string]any) (json.RawMessage, error) {
	if id, _ := body["external_id"].(string); strings.TrimSpace(id) == "" {
		body["external_id"] = s.IDs.Generate().String()
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperr.Invalid("invalid invoice body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.BaseURL, "/")+"/v2/invoices", bytes.NewReader(payload))
	if err != nil {
		return nil, apperr.Upstream(invoiceFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.APIKey, "")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, apperr.Upstream(invoiceFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Upstream(invoiceFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Upstream(invoiceFailed, fmt.Errorf("xendit status %d: %s", resp.StatusCode, raw))
	}
	if !json.Valid(raw) {
		return nil, apperr.Upstream(invoiceFailed, fmt.Errorf("xendit returned non-json body"))
	}
	return json.RawMessage(raw), nil
}
