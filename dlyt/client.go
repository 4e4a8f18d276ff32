package dlyt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/dlyt/notify"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Client represents a dlyt API client
type Client struct {
	baseURL    string
	baseOrigin string
	httpClient *http.Client
	timeout    time.Duration
	jar        http.CookieJar
	policy     CredentialsPolicy
	codes      CodePolicy
	userAgent  string
	creds      Credentials
	notifier   Notifier
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its cookie jar, if any,
// is the one used for credentialed requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps the HTTP client's own
// timeout. The HTTP client passed to WithHTTPClient is not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCredentialsPolicy sets the default cookie policy
func WithCredentialsPolicy(p CredentialsPolicy) Option {
	return func(c *Client) {
		if p != "" {
			c.policy = p
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCodePolicy replaces the business code check
func WithCodePolicy(p CodePolicy) Option {
	return func(c *Client) {
		c.codes = p
	}
}

// NewClient creates a new dlyt client. creds supplies the session token and
// identity on every call; notifier receives one message per failed call.
// Either may be nil.
func NewClient(baseURL string, creds Credentials, notifier Notifier, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, baseURL)
	}

	if creds == nil {
		creds = noCredentials{}
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}

	c := &Client{
		baseURL:    baseURL,
		baseOrigin: origin(parsed),
		httpClient: &http.Client{},
		policy:     CredentialsInclude,
		codes:      DefaultCodePolicy,
		creds:      creds,
		notifier:   notifier,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.policy.validate(); err != nil {
		return nil, err
	}

	c.jar = c.httpClient.Jar
	if c.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.jar = jar
	}

	return c, nil
}

// BaseURL returns the configured base endpoint without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions describe a single call
type RequestOptions struct {
	// Method defaults to GET
	Method string
	// Data is the request body. Strings and byte slices are sent as-is,
	// anything else is JSON-encoded. Nil sends no body.
	Data any
	// Headers override the defaults, including Content-Type
	Headers map[string]string
	// Credentials overrides the client's cookie policy for this call
	Credentials CredentialsPolicy
}

// response is a decoded reply that passed both checks
type response struct {
	status  int
	isJSON  bool
	raw     []byte
	payload any
}

// Request performs a call against path, which is relative to the base URL
// unless it already carries a scheme. On success it returns the parsed JSON
// payload, or the body as a string for non-JSON replies. Failures are
// reported to the notifier once and returned as *APIError.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (any, error) {
	resp, err := c.do(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return resp.payload, nil
}

// Get performs a GET with params encoded into the query string
func (c *Client) Get(ctx context.Context, path string, params Params) (any, error) {
	return c.Request(ctx, appendRawQuery(path, params.Encode()), RequestOptions{Method: http.MethodGet})
}

// Post sends data as a JSON body
func (c *Client) Post(ctx context.Context, path string, data any) (any, error) {
	return c.Request(ctx, path, RequestOptions{Method: http.MethodPost, Data: data})
}

// PostForm sends fields as a urlencoded body
func (c *Client) PostForm(ctx context.Context, path string, fields Params) (any, error) {
	return c.Request(ctx, path, formOptions(fields))
}

func formOptions(fields Params) RequestOptions {
	return RequestOptions{
		Method:  http.MethodPost,
		Data:    fields.Encode(),
		Headers: map[string]string{"Content-Type": contentTypeForm},
	}
}

func (c *Client) do(ctx context.Context, path string, opts RequestOptions) (*response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	token := c.creds.Token()
	identity := c.creds.Identity()

	if identity != "" {
		path = appendQuery(path, "identity", identity)
	}
	target := c.resolve(path)

	body, err := encodeBody(opts.Data)
	if err != nil {
		return nil, c.fail(method, path, &APIError{
			Kind:    KindNetwork,
			Message: networkMessage(err),
			Err:     err,
		})
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, c.fail(method, path, &APIError{
			Kind:    KindNetwork,
			Message: networkMessage(err),
			Err:     fmt.Errorf("failed to create request: %w", err),
		})
	}

	req.Header.Set("Content-Type", contentTypeJSON)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}
	if token != "" {
		req.Header.Set("token", token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Msg("Making dlyt API request")

	resp, err := c.clientFor(opts.Credentials, req.URL).Do(req)
	if err != nil {
		return nil, c.fail(method, path, &APIError{
			Kind:    KindNetwork,
			Message: networkMessage(err),
			Err:     err,
		})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(method, path, &APIError{
			Kind:       KindNetwork,
			StatusCode: resp.StatusCode,
			Message:    networkMessage(err),
			Err:        fmt.Errorf("failed to read response body: %w", err),
		})
	}

	out := &response{
		status: resp.StatusCode,
		isJSON: strings.Contains(resp.Header.Get("Content-Type"), contentTypeJSON),
		raw:    raw,
	}
	out.payload = parsePayload(raw, out.isJSON)

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, c.fail(method, path, &APIError{
			Kind:       KindTransport,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(out.payload, statusText(resp)),
			Payload:    out.payload,
		})
	}

	if out.isJSON {
		if code, failed := c.codes.Failed(out.payload); failed {
			rendered := formatCode(code)
			return nil, c.fail(method, path, &APIError{
				Kind:       KindBusiness,
				StatusCode: resp.StatusCode,
				BizCode:    rendered,
				Message:    extractMessage(out.payload, fmt.Sprintf("%s (%s)", msgRequestFailed, rendered)),
				Payload:    out.payload,
			})
		}
	}

	return out, nil
}

// fail reports apiErr to the notifier and returns it
func (c *Client) fail(method, path string, apiErr *APIError) error {
	c.logger.Debug().
		Str("method", method).
		Str("path", stripQuery(path)).
		Str("kind", apiErr.Kind.String()).
		Int("status", apiErr.StatusCode).
		Str("code", apiErr.BizCode).
		Err(apiErr.Err).
		Msg(apiErr.Message)

	c.notifier.Notify(apiErr.Message, notify.KindError)
	return apiErr
}

func (c *Client) resolve(path string) string {
	if hasScheme(path) {
		return path
	}
	return c.baseURL + path
}

// clientFor returns an HTTP client whose jar follows the credentials policy
func (c *Client) clientFor(policy CredentialsPolicy, target *url.URL) *http.Client {
	if policy == "" {
		policy = c.policy
	}
	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	switch policy {
	case CredentialsOmit:
		hc.Jar = nil
	case CredentialsSameOrigin:
		if origin(target) == c.baseOrigin {
			hc.Jar = c.jar
		} else {
			hc.Jar = nil
		}
	default:
		hc.Jar = c.jar
	}
	return &hc
}

func encodeBody(data any) (io.Reader, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(v), nil
	case []byte:
		return bytes.NewReader(v), nil
	case json.RawMessage:
		return bytes.NewReader(v), nil
	case io.Reader:
		return v, nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return bytes.NewReader(encoded), nil
	}
}

// parsePayload decodes a JSON body, falling back to an empty object when the
// body is empty or malformed. Non-JSON bodies are returned as text.
func parsePayload(raw []byte, isJSON bool) any {
	if !isJSON {
		return string(raw)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return map[string]any{}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return map[string]any{}
	}
	return v
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		return msgRequestFailed
	}
	return text
}

func networkMessage(err error) string {
	if err == nil {
		return msgNetworkError
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgNetworkError
}

func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
