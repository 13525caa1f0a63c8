package acquire

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPath     = "games"
	DefaultTimezone = "Europe/Paris"

	defaultScheme      = "https"
	defaultHTTPTimeout = 30 * time.Second

	headerHost = "x-rapidapi-host"
	headerKey  = "x-rapidapi-key"
)

// Record is one provider object with its sport field added
type Record = json.RawMessage

// Spec describes one sport endpoint. A nil Defaults gets the timezone
// default; a non-nil empty Defaults sends no default parameters.
type Spec struct {
	Host     string
	Sport    string
	Path     string
	Defaults Params
}

// Options are shared by every client built for one run.
type Options struct {
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     log.FieldLogger
	Scheme     string // https unless overridden in tests
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches the records of one sport and one resource.
type Client struct {
	spec       Spec
	apiKey     string
	scheme     string
	httpClient httpDoer
	logger     log.FieldLogger
}

// NewClient constructs a client for spec, filling in the default path and
// query parameters.
func NewClient(spec Spec, opts Options) *Client {
	if spec.Path == "" {
		spec.Path = DefaultPath
	}
	if spec.Defaults == nil {
		spec.Defaults = NewParams("timezone", DefaultTimezone)
	} else {
		spec.Defaults = spec.Defaults.Clone()
	}

	scheme := opts.Scheme
	if scheme == "" {
		scheme = defaultScheme
	}

	return &Client{
		spec:       spec,
		apiKey:     opts.APIKey,
		scheme:     scheme,
		httpClient: resolveHTTPClient(opts.HTTPClient, opts.Timeout),
		logger:     resolveLogger(opts.Logger).WithField("sport", spec.Sport),
	}
}

// Sport returns the tag added to every record of this client
func (c *Client) Sport() string {
	return c.spec.Sport
}

// Spec returns the endpoint description of the client
func (c *Client) Spec() Spec {
	return c.spec
}

// FetchOne issues a single GET for the given call parameters and returns
// the tagged records of the response. Errors reported by the provider in
// the body are logged and do not fail the call.
func (c *Client) FetchOne(ctx context.Context, call Params) ([]Record, error) {
	req, err := c.buildRequest(ctx, call)
	if err != nil {
		return nil, err
	}
	target := req.URL.String()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Sport: c.spec.Sport, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Sport: c.spec.Sport, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	env, err := parseEnvelope(body)
	if err != nil {
		return nil, &TransportError{Sport: c.spec.Sport, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	if msgs := env.errorMessages(); len(msgs) > 0 {
		c.reportProviderError(&ProviderError{Sport: c.spec.Sport, URL: target, Messages: msgs})
	}

	return tagRecords(env.response, c.spec.Sport, c.logger), nil
}

// FetchBatch fetches every league and season concurrently. Records are
// returned in the order of leagueSeasons whatever the response order. The
// first failing request cancels the others and fails the whole batch.
func (c *Client) FetchBatch(ctx context.Context, leagueSeasons []LeagueSeason) ([]Record, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	slots := make([][]Record, len(leagueSeasons))
	g, gctx := errgroup.WithContext(ctx)
	for i, ls := range leagueSeasons {
		i, ls := i, ls
		g.Go(func() error {
			records, err := c.FetchOne(gctx, ls.Params())
			if err != nil {
				return err
			}
			slots[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Flatten(slots), nil
}

// Flatten concatenates the slots in order and drops empty or null records.
func Flatten(slots [][]Record) []Record {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	out := make([]Record, 0, n)
	for _, s := range slots {
		for _, r := range s {
			if isEmpty(r) {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

func isEmpty(r Record) bool {
	return len(r) == 0 || string(r) == "null"
}

// reportProviderError logs every message of the provider at error level.
func (c *Client) reportProviderError(pErr *ProviderError) {
	entry := c.logger.WithField("url", pErr.URL)
	for _, m := range pErr.Messages {
		entry.Error(m)
	}
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func resolveLogger(logger log.FieldLogger) log.FieldLogger {
	if logger != nil {
		return logger
	}
	return log.StandardLogger()
}
