package designsync

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// DefaultAirtableURL is the public Airtable API host.
const DefaultAirtableURL = "https://api.airtable.com"

// Airtable reads records through the Airtable REST API with offset
// pagination.
type Airtable struct {
	settings Settings
	client   *http.Client
}

var _ Provider = (*Airtable)(nil)

// Name implements Provider.
func (a *Airtable) Name() string { return "airtable" }

type airtableResponse struct {
	Records []struct {
		ID     string         `json:"id"`
		Fields map[string]any `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// FetchPage implements Provider. The cursor is Airtable's opaque offset.
func (a *Airtable) FetchPage(ctx context.Context, cursor string) (Page, error) {
	base := strings.TrimRight(a.settings.BaseURL, "/")
	if base == "" {
		base = DefaultAirtableURL
	}
	u := base + "/v0/" + url.PathEscape(a.settings.BaseID) + "/" + url.PathEscape(a.settings.Table)
	if cursor != "" {
		u += "?offset=" + url.QueryEscape(cursor)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+a.settings.Token)

	var body airtableResponse
	if err := getJSON(ctx, a.client, u, header, &body); err != nil {
		return Page{}, err
	}

	page := Page{Next: body.Offset, Records: make([]Record, 0, len(body.Records))}
	for _, r := range body.Records {
		page.Records = append(page.Records, Record{ID: r.ID, Fields: r.Fields})
	}
	return page, nil
}
