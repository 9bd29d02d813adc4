package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/peopleops/hrdesk/config"
	"github.com/peopleops/hrdesk/internal/vector"
)

const controlPlaneURL = "https://api.pinecone.io"

// Client talks to a single Pinecone index over its REST API.
type Client struct {
	apiKey     string
	controlURL string
	indexName  string
	indexHost  string
	httpClient *http.Client
	logger     *log.Logger
}

type indexDescription struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
	Host      string `json:"host"`
	Status    struct {
		Ready bool   `json:"ready"`
		State string `json:"state"`
	} `json:"status"`
}

// New creates a client and resolves the index's data-plane host.
func New(ctx context.Context, cfg config.VectorConfig) (*Client, error) {
	c := newClient(cfg, controlPlaneURL)
	desc, err := c.describeIndex(ctx)
	if err != nil {
		return nil, err
	}
	c.indexHost = desc.Host
	return c, nil
}

// NewEnsuringIndex creates the index when it does not exist (serverless,
// cosine) and waits until it reports ready, then resolves the host.
func NewEnsuringIndex(ctx context.Context, cfg config.VectorConfig, logger *log.Logger) (*Client, error) {
	c := newClient(cfg, controlPlaneURL)
	if logger != nil {
		c.logger = logger
	}
	if err := c.ensure(ctx, cfg); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ensure(ctx context.Context, cfg config.VectorConfig) error {
	desc, err := c.describeIndex(ctx)
	if err != nil {
		var se *statusError
		if !errors.As(err, &se) || se.code != http.StatusNotFound {
			return err
		}
		c.logger.Printf("index %q does not exist, creating it", cfg.IndexName)
		if err := c.createIndex(ctx, cfg); err != nil {
			return err
		}
		desc, err = c.waitReady(ctx)
		if err != nil {
			return err
		}
	}
	c.indexHost = desc.Host
	return nil
}

func newClient(cfg config.VectorConfig, controlURL string) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		controlURL: controlURL,
		indexName:  cfg.IndexName,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.New(log.Writer(), "[PINECONE] ", log.LstdFlags),
	}
}

var _ vector.Index = (*Client)(nil)

// Upsert writes vectors to the index.
func (c *Client) Upsert(ctx context.Context, vectors []vector.Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	body := map[string]interface{}{"vectors": vectors}
	var resp struct {
		UpsertedCount int `json:"upsertedCount"`
	}
	if err := c.doJSON(ctx, "POST", c.dataURL("/vectors/upsert"), body, &resp); err != nil {
		return fmt.Errorf("pinecone upsert: %w", err)
	}
	return nil
}

// Query runs a similarity search and returns the top-k matches with metadata.
func (c *Client) Query(ctx context.Context, values []float32, topK int) ([]vector.Match, error) {
	body := map[string]interface{}{
		"vector":          values,
		"topK":            topK,
		"includeMetadata": true,
	}
	var resp struct {
		Matches []vector.Match `json:"matches"`
	}
	if err := c.doJSON(ctx, "POST", c.dataURL("/query"), body, &resp); err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}
	return resp.Matches, nil
}

// Stats returns the total vector count of the index.
func (c *Client) Stats(ctx context.Context) (int, error) {
	var resp struct {
		TotalVectorCount int `json:"totalVectorCount"`
	}
	if err := c.doJSON(ctx, "POST", c.dataURL("/describe_index_stats"), map[string]interface{}{}, &resp); err != nil {
		return 0, fmt.Errorf("pinecone stats: %w", err)
	}
	return resp.TotalVectorCount, nil
}

func (c *Client) describeIndex(ctx context.Context) (indexDescription, error) {
	var desc indexDescription
	err := c.doJSON(ctx, "GET", c.controlURL+"/indexes/"+c.indexName, nil, &desc)
	return desc, err
}

func (c *Client) createIndex(ctx context.Context, cfg config.VectorConfig) error {
	metric := cfg.Metric
	if metric == "" {
		metric = "cosine"
	}
	body := map[string]interface{}{
		"name":      cfg.IndexName,
		"dimension": cfg.Dimension,
		"metric":    metric,
		"spec": map[string]interface{}{
			"serverless": map[string]string{
				"cloud":  cfg.Cloud,
				"region": cfg.Region,
			},
		},
	}
	return c.doJSON(ctx, "POST", c.controlURL+"/indexes", body, nil)
}

func (c *Client) waitReady(ctx context.Context) (indexDescription, error) {
	for {
		desc, err := c.describeIndex(ctx)
		if err == nil && desc.Status.Ready {
			c.logger.Printf("index %q is ready", c.indexName)
			return desc, nil
		}
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return indexDescription{}, ctx.Err()
		}
	}
}

func (c *Client) dataURL(path string) string {
	// Pinecone reports the host without a scheme.
	if strings.Contains(c.indexHost, "://") {
		return c.indexHost + path
	}
	return "https://" + c.indexHost + path
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("pinecone API returned status %d: %s", e.code, e.body)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewBuffer(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: string(b)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
