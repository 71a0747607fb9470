package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every request unless the context is shorter.
const DefaultTimeout = 30 * time.Second

// Client is a typed HTTP client for a running Mallard server. The wire
// structs mirror the server's response envelopes; the client holds no
// connection state beyond the underlying http.Client.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// Health is the /health response.
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Info is the root endpoint response.
type Info struct {
	Message    string   `json:"message"`
	Version    string   `json:"version"`
	InstanceID string   `json:"instance_id"`
	DataPath   string   `json:"data_path"`
	Endpoints  []string `json:"endpoints"`
}

// Pagination is the pagination envelope attached to paged responses.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"has_next"`
}

// DataPage is one page of resource data. Data stays raw so callers can
// decode rows into their own types; Columns is empty for JSON resources.
type DataPage struct {
	Data       json.RawMessage `json:"data"`
	Columns    []string        `json:"columns"`
	Count      int64           `json:"count"`
	Pagination Pagination      `json:"pagination"`
}

// Rows decodes the page data as a row list. It fails for a JSON
// resource served under the small-payload bypass when the document is
// not a list.
func (p *DataPage) Rows() ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(p.Data, &rows); err != nil {
		return nil, errors.Wrap(err, "decode rows")
	}
	return rows, nil
}

// SchemaColumn describes one column of a resource.
type SchemaColumn struct {
	ColumnName   string `json:"column_name"`
	DataType     string `json:"data_type"`
	ExampleValue string `json:"example_value"`
}

// SchemaPage is one page of a resource's schema.
type SchemaPage struct {
	Columns    []SchemaColumn `json:"columns"`
	Count      int64          `json:"count"`
	Pagination Pagination     `json:"pagination"`
}

// ListingEntry is one child of a listed directory.
type ListingEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

// Listing is the contents of a directory resource.
type Listing struct {
	Directory string         `json:"directory"`
	Contents  []ListingEntry `json:"contents"`
}

// New creates a client for the server at baseURL, e.g.
// "http://localhost:2847".
func New(baseURL string, logger zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL must not be empty")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logger.With().Str("component", "mallard-client").Logger(),
	}, nil
}

// Health checks the server's health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return nil, errors.Wrap(err, "health")
	}
	return &out, nil
}

// Info fetches the server identity and the registered endpoints.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	var out Info
	if err := c.get(ctx, "/", nil, &out); err != nil {
		return nil, errors.Wrap(err, "info")
	}
	return &out, nil
}

// Data fetches one page of a resource. Zero page or pageSize leaves the
// parameter to the server's default.
func (c *Client) Data(ctx context.Context, key string, page, pageSize int) (*DataPage, error) {
	var out DataPage
	if err := c.get(ctx, "/data/"+url.PathEscape(key), pageQuery(page, pageSize), &out); err != nil {
		return nil, errors.Wrapf(err, "data %s", key)
	}
	return &out, nil
}

// Schema fetches one page of a resource's column schema.
func (c *Client) Schema(ctx context.Context, key string, page, pageSize int) (*SchemaPage, error) {
	var out SchemaPage
	if err := c.get(ctx, "/data/"+url.PathEscape(key+"_columnnames"), pageQuery(page, pageSize), &out); err != nil {
		return nil, errors.Wrapf(err, "schema %s", key)
	}
	return &out, nil
}

// Listing fetches the contents of a directory resource.
func (c *Client) Listing(ctx context.Context, key string) (*Listing, error) {
	var out Listing
	if err := c.get(ctx, "/data/"+url.PathEscape(key), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "listing %s", key)
	}
	return &out, nil
}

func pageQuery(page, pageSize int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}
	return query
}

// get performs one GET request and decodes the response into out. A
// non-200 response becomes an *APIError carrying the server's error
// envelope when one was sent.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	c.logger.Debug().Str("url", target).Msg("request")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}

	return nil
}

// String identifies the client target, mainly for logs.
func (c *Client) String() string {
	return fmt.Sprintf("mallard-client(%s)", c.baseURL)
}
