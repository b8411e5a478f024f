package sparql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
)

const resultsJSON = "application/sparql-results+json"

// StatusError is an HTTP error status returned by the endpoint. The
// transient predicate of the retry policy inspects it to decide whether
// a failed attempt is worth repeating.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint returned %d: %s", e.Code, abbreviate(e.Body, 200))
}

// DefaultTransient treats gateway-class statuses as retryable.
// Transport errors (connection refused, DNS) and client errors fail
// immediately.
func DefaultTransient(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// RetryPolicy bounds the per-call retry budget. Each FetchPage or
// CountMembers call owns its own budget; backoff state never carries
// over between calls.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Transient  func(error) bool
}

// Client talks to a SPARQL endpoint over HTTP and implements
// ports.ConceptSource.
type Client struct {
	endpoint string
	http     *resty.Client
	builder  *QueryBuilder
	policy   RetryPolicy
	sleep    func(time.Duration)
	log      *zap.Logger
}

func NewClient(endpoint string, builder *QueryBuilder, policy RetryPolicy, timeout time.Duration, log *zap.Logger) *Client {
	if policy.Transient == nil {
		policy.Transient = DefaultTransient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		http:     resty.New().SetTimeout(timeout),
		builder:  builder,
		policy:   policy,
		sleep:    time.Sleep,
		log:      log,
	}
}

// Validate delegates to the query builder so callers can reject a bad
// identifier before the run starts.
func (c *Client) Validate(collectionURI string) error {
	return c.builder.Validate(collectionURI)
}

// CountMembers runs the count query and parses its single scalar
// binding.
func (c *Client) CountMembers(ctx context.Context, collectionURI string) (int, error) {
	query, err := c.builder.CountQuery(collectionURI)
	if err != nil {
		return 0, err
	}
	resp, err := c.execute(ctx, "count members", query)
	if err != nil {
		return 0, err
	}
	bindings := resp.Results.Bindings
	if len(bindings) == 0 {
		return 0, &domain.RemoteQueryError{Op: "count members", Err: errors.New("response has no bindings")}
	}
	raw, ok := bindings[0]["count"]
	if !ok {
		return 0, &domain.RemoteQueryError{Op: "count members", Err: errors.New("response lacks count binding")}
	}
	n, err := strconv.Atoi(raw.Value)
	if err != nil {
		return 0, &domain.RemoteQueryError{Op: "count members", Err: fmt.Errorf("count %q is not an integer", raw.Value)}
	}
	return n, nil
}

// FetchPage runs one page query and flattens its bindings into records.
func (c *Client) FetchPage(ctx context.Context, collectionURI string, limit, offset int) ([]domain.Record, error) {
	query, err := c.builder.PageQuery(collectionURI, limit, offset)
	if err != nil {
		return nil, err
	}
	op := fmt.Sprintf("fetch page offset=%d", offset)
	resp, err := c.execute(ctx, op, query)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(resp.Results.Bindings))
	for _, binding := range resp.Results.Bindings {
		rec := make(domain.Record, len(binding))
		for name, v := range binding {
			rec[name] = v.Value
		}
		records = append(records, rec)
	}
	return records, nil
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// execute posts the query, retrying transient failures with exponential
// backoff. Attempt n sleeps BaseDelay*2^n before the next try; the
// final attempt's failure is wrapped as a RemoteQueryError.
func (c *Client) execute(ctx context.Context, op, query string) (*sparqlResponse, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.post(ctx, query)
		if err == nil {
			return resp, nil
		}
		if attempt >= c.policy.MaxRetries-1 || !c.policy.Transient(err) {
			return nil, &domain.RemoteQueryError{Op: op, Err: err}
		}
		delay := c.policy.BaseDelay * (1 << attempt)
		c.log.Warn("transient endpoint failure, backing off",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))
		c.sleep(delay)
	}
}

func (c *Client) post(ctx context.Context, query string) (*sparqlResponse, error) {
	var out sparqlResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", resultsJSON).
		SetFormData(map[string]string{"query": query}).
		SetResult(&out).
		ForceContentType("application/json").
		Post(c.endpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}
	return &out, nil
}

func abbreviate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
