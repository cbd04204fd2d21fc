package designsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sentinel errors for remote access.
var (
	ErrAuth           = errors.New("remote rejected credentials")
	ErrRemote         = errors.New("remote request failed")
	ErrDecode         = errors.New("invalid remote response")
	ErrUnknownService = errors.New("unknown sync provider")
	ErrMissingSetting = errors.New("missing sync setting")
)

// DefaultHTTPTimeout bounds every request when no client is supplied.
const DefaultHTTPTimeout = 30 * time.Second

// Record is one table row: its id and raw field values.
type Record struct {
	ID     string
	Fields map[string]any
}

// Page is one batch of records. Next is the cursor of the following page,
// "" on the last one.
type Page struct {
	Records []Record
	Next    string
}

// Provider reads a table page by page. The first call passes cursor "".
type Provider interface {
	Name() string
	FetchPage(ctx context.Context, cursor string) (Page, error)
}

// Settings locate the remote table.
type Settings struct {
	Provider string // "airtable" or "nocodb"
	BaseURL  string
	Token    string
	BaseID   string // Airtable base id
	Table    string // Airtable table name or NocoDB table id
	PageSize int    // NocoDB only; zero uses 100
}

// NewProvider returns the provider named in s.
func NewProvider(s Settings, client *http.Client) (Provider, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if s.Table == "" {
		return nil, fmt.Errorf("%w: table", ErrMissingSetting)
	}
	switch strings.ToLower(s.Provider) {
	case "airtable":
		if s.BaseID == "" {
			return nil, fmt.Errorf("%w: baseID", ErrMissingSetting)
		}
		return &Airtable{settings: s, client: client}, nil
	case "nocodb":
		if s.BaseURL == "" {
			return nil, fmt.Errorf("%w: baseURL", ErrMissingSetting)
		}
		return &NocoDB{settings: s, client: client}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, s.Provider)
	}
}

// getJSON performs an authenticated GET and decodes the JSON body into v.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
