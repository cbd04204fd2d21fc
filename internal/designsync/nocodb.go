package designsync

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultNocoPageSize = 100

// NocoDB reads records through the NocoDB v2 REST API with numeric offset
// pagination.
type NocoDB struct {
	settings Settings
	client   *http.Client
}

var _ Provider = (*NocoDB)(nil)

// Name implements Provider.
func (n *NocoDB) Name() string { return "nocodb" }

type nocoResponse struct {
	List     []map[string]any `json:"list"`
	PageInfo struct {
		IsLastPage bool `json:"isLastPage"`
	} `json:"pageInfo"`
}

// FetchPage implements Provider. The cursor is the decimal row offset.
func (n *NocoDB) FetchPage(ctx context.Context, cursor string) (Page, error) {
	offset := 0
	if cursor != "" {
		var err error
		if offset, err = strconv.Atoi(cursor); err != nil || offset < 0 {
			return Page{}, fmt.Errorf("%w: bad offset %q", ErrDecode, cursor)
		}
	}
	limit := n.settings.PageSize
	if limit <= 0 {
		limit = defaultNocoPageSize
	}

	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	u := strings.TrimRight(n.settings.BaseURL, "/") + "/api/v2/tables/" + url.PathEscape(n.settings.Table) + "/records?" + q.Encode()

	header := http.Header{}
	header.Set("xc-token", n.settings.Token)

	var body nocoResponse
	if err := getJSON(ctx, n.client, u, header, &body); err != nil {
		return Page{}, err
	}

	page := Page{Records: make([]Record, 0, len(body.List))}
	for _, row := range body.List {
		page.Records = append(page.Records, Record{ID: rowID(row), Fields: row})
	}
	if !body.PageInfo.IsLastPage && len(body.List) > 0 {
		page.Next = strconv.Itoa(offset + len(body.List))
	}
	return page, nil
}

// rowID reads the primary key NocoDB returns as "Id" (or "id").
func rowID(row map[string]any) string {
	for _, k := range []string{"Id", "id", "ID"} {
		if v, ok := row[k]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
