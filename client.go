// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Default client configuration values
const (
	DefaultPort               = 443
	DefaultMaxRetries         = 3
	DefaultBackoffMinDelay    = 500 * time.Millisecond
	DefaultBackoffMaxDelay    = 10 * time.Second
	DefaultBackoffDelayFactor = 2
	DefaultConnectTimeout     = 10 * time.Second
	DefaultRequestTimeout     = 15 * time.Second
	DefaultSettleDelay        = 2 * time.Second
	DefaultVerifyCertificate  = true
	DefaultPrettyPrintLogs    = false
)

// RESTCONF protocol constants (RFC 8040)
const (
	restconfRoot      = "/restconf/data"
	yangJSONMediaType = "application/yang-data+json"
)

// maxResponseBytes caps how much of a device response is read. Scoped
// reads keep payloads far below this; the cap guards against a
// misbehaving device streaming an unbounded body.
const maxResponseBytes = 16 * 1024 * 1024

// Security limits for JSON processing in logs
const (
	MaxJSONSizeForLogging = 1 * 1024 * 1024 // 1MB limit to prevent ReDoS attacks
	JSONTooLargeMessage   = "[JSON TOO LARGE FOR LOGGING]"
)

// defaultRedactionPatterns contains regex patterns for redacting sensitive
// data in logs
var defaultRedactionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"password"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"secret"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"key"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"community"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"token"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"auth"\s*:\s*"[^"]*"`),
}

var redactionReplacements = []string{
	`"password":"[REDACTED]"`,
	`"secret":"[REDACTED]"`,
	`"key":"[REDACTED]"`,
	`"community":"[REDACTED]"`,
	`"token":"[REDACTED]"`,
	`"auth":"[REDACTED]"`,
}

// Client represents a RESTCONF client session to one network device.
//
// A Client owns a single reusable HTTPS connection pool to the device's
// RESTCONF root and is safe for concurrent use: read operations may run in
// parallel, while overlapping mutations against the same resource are not
// ordered by the client. Callers that need strict mutation ordering must
// serialize themselves.
type Client struct {
	// httpClient is the authenticated HTTPS session to the device
	httpClient *http.Client

	// mu synchronizes access to mutable state (capabilities)
	mu sync.RWMutex

	// Connection parameters
	Host     string
	Port     int
	username string // unexported for security
	password string // unexported for security

	// VerifyCertificate controls TLS certificate verification.
	// IOS-XE devices commonly run with self-signed certificates; disable
	// verification only when that risk is understood.
	VerifyCertificate bool

	// Timeout configuration. Timeouts apply per request, not per logical
	// operation: a bounce with two requests has two independent windows.
	ConnectTimeout time.Duration
	RequestTimeout time.Duration

	// Retry configuration. Retries apply to idempotent GET requests only;
	// PATCH/POST are never retried automatically, to avoid duplicate
	// mutations.
	MaxRetries         int
	BackoffMinDelay    time.Duration
	BackoffMaxDelay    time.Duration
	BackoffDelayFactor float64

	// SettleDelay is the pause between the down and up phases of
	// BounceInterface
	SettleDelay time.Duration

	// baseURL is the resolved https://host:port/restconf/data root
	baseURL string

	// capabilities holds the device capability URIs from the last
	// Capabilities call
	capabilities []string

	// Logging configuration
	logger            Logger
	prettyPrintLogs   bool
	redactionPatterns []*regexp.Regexp
}

// NewClient creates a new RESTCONF client for the specified device host
// and options.
//
// The client does not contact the device; the underlying HTTPS connection
// is established on the first request and reused afterwards. Use
// Capabilities() to explicitly verify connectivity if needed.
//
// Example:
//
//	client, err := catalyst.NewClient(
//	    "172.16.1.1",
//	    catalyst.Username("admin"),
//	    catalyst.Password("secret"),
//	    catalyst.VerifyCertificate(false),
//	    catalyst.MaxRetries(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// Returns a configured Client or an error if configuration validation
// fails.
func NewClient(host string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		Host:               host,
		Port:               DefaultPort,
		VerifyCertificate:  DefaultVerifyCertificate,
		ConnectTimeout:     DefaultConnectTimeout,
		RequestTimeout:     DefaultRequestTimeout,
		MaxRetries:         DefaultMaxRetries,
		BackoffMinDelay:    DefaultBackoffMinDelay,
		BackoffMaxDelay:    DefaultBackoffMaxDelay,
		BackoffDelayFactor: DefaultBackoffDelayFactor,
		SettleDelay:        DefaultSettleDelay,
		logger:             &NoOpLogger{},
		prettyPrintLogs:    DefaultPrettyPrintLogs,
		redactionPatterns:  defaultRedactionPatterns,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	address := client.Host
	if !strings.Contains(address, ":") {
		address = fmt.Sprintf("%s:%d", address, client.Port)
	}
	client.baseURL = "https://" + address + restconfRoot

	client.httpClient = &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: client.ConnectTimeout,
			}).DialContext,
			TLSClientConfig: &tls.Config{
				//nolint:gosec // G402: Verification is configurable; devices commonly use self-signed certificates
				InsecureSkipVerify: !client.VerifyCertificate,
				MinVersion:         tls.VersionTLS12,
			},
			TLSHandshakeTimeout: client.ConnectTimeout,
			// IOS-XE httpd spawns a process per connection; keep the pool small
			MaxIdleConns:        5,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	client.logger.Info("RESTCONF client created",
		"host", client.Host,
		"port", client.Port,
		"connection", "lazy")

	return client, nil
}

// Close releases the client's idle connections. The client must not be
// used after Close.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	c.logger.Info("RESTCONF connection closed", "host", c.Host)
}

// validateConfig validates client configuration before any request
//
// Validates:
//   - Host is not empty
//   - Port range (1-65535)
//   - Positive timeouts (ConnectTimeout, RequestTimeout > 0)
//   - Retry params (MaxRetries >= 0, BackoffMinDelay > 0, BackoffMaxDelay > BackoffMinDelay)
//   - BackoffDelayFactor >= 1.0
//   - SettleDelay >= 0
//   - Credentials present (required to construct a transport at all)
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive, got: %v", c.ConnectTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %v", c.RequestTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got: %d", c.MaxRetries)
	}
	if c.BackoffMinDelay <= 0 {
		return fmt.Errorf("backoff min delay must be positive, got: %v", c.BackoffMinDelay)
	}
	if c.BackoffMaxDelay <= c.BackoffMinDelay {
		return fmt.Errorf("backoff max delay (%v) must be greater than min delay (%v)",
			c.BackoffMaxDelay, c.BackoffMinDelay)
	}
	if c.BackoffDelayFactor < 1.0 {
		return fmt.Errorf("backoff delay factor must be >= 1.0, got: %f", c.BackoffDelayFactor)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle delay must be non-negative, got: %v", c.SettleDelay)
	}
	if c.username == "" || c.password == "" {
		return fmt.Errorf("username and password are required")
	}

	if !c.VerifyCertificate {
		c.logger.Warn("certificate verification disabled",
			"host", c.Host,
			"security_risk", "Man-in-the-Middle attacks possible")
	}

	return nil
}

// HasCredentials returns true if credentials are configured, without
// exposing the actual values.
func (c *Client) HasCredentials() bool {
	return c.username != "" && c.password != ""
}

// GetData performs a RESTCONF GET on a pre-resolved datastore path.
//
// The path is relative to /restconf/data and must come from the resolver
// layer, never from raw user input. Transient transport failures
// (connection reset, timeout) are retried up to MaxRetries times with
// exponential backoff; HTTP-level errors are never retried here.
//
// Returns the device response, or an error from the taxonomy (AuthError,
// DeviceError, TransientError).
func (c *Client) GetData(ctx context.Context, path string, mods ...func(*Req)) (Res, error) {
	req := &Req{}
	for _, mod := range mods {
		mod(req)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return Res{}, err
	}

	c.logger.Debug("RESTCONF GET request",
		"host", c.Host,
		"path", path)

	var res Res
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if err := checkContextCancellation(ctx); err != nil {
			return Res{}, fmt.Errorf("get: %w", err)
		}

		res, lastErr = c.do(ctx, http.MethodGet, path, "", req)
		if lastErr == nil {
			break
		}

		if !isTransientNetError(lastErr) || attempt == c.MaxRetries {
			break
		}

		backoff := c.Backoff(attempt)
		c.logger.Warn("transient error, retrying",
			"operation", "get",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.MaxRetries,
			"backoff", backoff,
			"error", lastErr.Error())

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return Res{}, fmt.Errorf("get: context canceled during backoff: %w", ctx.Err())
		}
	}

	if lastErr != nil {
		if isTransientNetError(lastErr) {
			c.logger.Error("RESTCONF GET failed",
				"host", c.Host,
				"path", path,
				"retries", c.MaxRetries,
				"error", lastErr.Error())
			return Res{}, &TransientError{Operation: "GET " + path, Retries: c.MaxRetries, Err: lastErr}
		}
		return res, lastErr
	}

	c.logger.Debug("RESTCONF GET response",
		"host", c.Host,
		"path", path,
		"status", res.StatusCode,
		"body", c.prepareJSONForLogging(res.Raw))

	return res, nil
}

// PatchData performs a RESTCONF PATCH (plain merge) on a pre-resolved
// datastore path with the given YANG JSON body.
//
// PATCH requests are never retried automatically: a retry after an
// ambiguous transport failure could apply a mutation twice.
func (c *Client) PatchData(ctx context.Context, path, body string, mods ...func(*Req)) (Res, error) {
	return c.mutate(ctx, http.MethodPatch, path, body, mods...)
}

// PostData performs a RESTCONF POST on a pre-resolved datastore path with
// the given YANG JSON body. Like PATCH, POST is never retried.
func (c *Client) PostData(ctx context.Context, path, body string, mods ...func(*Req)) (Res, error) {
	return c.mutate(ctx, http.MethodPost, path, body, mods...)
}

// mutate executes a single non-retried mutation request.
func (c *Client) mutate(ctx context.Context, method, path, body string, mods ...func(*Req)) (Res, error) {
	req := &Req{}
	for _, mod := range mods {
		mod(req)
	}

	if err := checkContextCancellation(ctx); err != nil {
		return Res{}, err
	}

	c.logger.Debug("RESTCONF mutation request",
		"host", c.Host,
		"method", method,
		"path", path,
		"body", c.prepareJSONForLogging(body))

	res, err := c.do(ctx, method, path, body, req)
	if err != nil {
		c.logger.Error("RESTCONF mutation failed",
			"host", c.Host,
			"method", method,
			"path", path,
			"error", err.Error())
		return res, err
	}

	c.logger.Debug("RESTCONF mutation response",
		"host", c.Host,
		"method", method,
		"path", path,
		"status", res.StatusCode)

	return res, nil
}

// do executes one HTTP request against the device and classifies the
// response. Network-level failures are returned unwrapped so the caller
// can decide on retries; HTTP-level failures become AuthError or
// DeviceError.
func (c *Client) do(ctx context.Context, method, path, body string, req *Req) (Res, error) {
	u := c.baseURL + "/" + path
	if len(req.Query) > 0 {
		u += "?" + encodeQuery(req.Query)
	}

	attemptCtx, cancel := c.attemptContext(ctx, req)
	defer cancel()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, u, reader)
	if err != nil {
		return Res{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", yangJSONMediaType)
	if body != "" {
		httpReq.Header.Set("Content-Type", yangJSONMediaType)
	}
	httpReq.SetBasicAuth(c.username, c.password)

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Res{}, err
	}
	defer httpRes.Body.Close() //nolint:errcheck // Close error on a fully read body is not actionable

	raw, err := io.ReadAll(io.LimitReader(httpRes.Body, maxResponseBytes))
	if err != nil {
		return Res{}, err
	}

	res := Res{
		StatusCode: httpRes.StatusCode,
		Raw:        string(raw),
	}

	switch {
	case httpRes.StatusCode == http.StatusUnauthorized || httpRes.StatusCode == http.StatusForbidden:
		return res, &AuthError{StatusCode: httpRes.StatusCode, Message: strings.TrimSpace(res.Raw)}
	case httpRes.StatusCode >= 200 && httpRes.StatusCode <= 299:
		res.OK = true
		return res, nil
	default:
		return res, parseDeviceError(httpRes.StatusCode, res.Raw)
	}
}

// encodeQuery encodes query parameters without escaping the RFC 8040
// fields separators (";" and "/") that devices expect literally.
func encodeQuery(values url.Values) string {
	encoded := values.Encode()
	encoded = strings.ReplaceAll(encoded, "%3B", ";")
	encoded = strings.ReplaceAll(encoded, "%2F", "/")
	return encoded
}

// attemptContext derives the context for a single request attempt.
//
// Timeout priority model:
//  1. Request-specific timeout (req.Timeout > 0) - highest priority
//  2. Existing context deadline - medium priority
//  3. Client default timeout (c.RequestTimeout) - fallback
func (c *Client) attemptContext(ctx context.Context, req *Req) (context.Context, context.CancelFunc) {
	if req.Timeout > 0 {
		return context.WithTimeout(ctx, req.Timeout)
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}

// Backoff calculates the backoff delay for a retry attempt using
// exponential backoff with jitter.
//
// The formula is: delay = min(minDelay * (factor ^ attempt) + jitter, maxDelay)
// where jitter is a cryptographically secure random value in [0, delay * 0.1].
// If crypto/rand fails, a timestamp-based fallback keeps retries dispersed.
func (c *Client) Backoff(attempt int) time.Duration {
	delay := float64(c.BackoffMinDelay) * math.Pow(c.BackoffDelayFactor, float64(attempt))

	if math.IsInf(delay, 1) || delay > float64(c.BackoffMaxDelay) {
		delay = float64(c.BackoffMaxDelay)
	}

	// Add 0-10% jitter to prevent thundering herd
	jitterMax := int64(delay * 0.1)
	if jitterMax > 0 {
		var jitterBytes [8]byte
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			//nolint:gosec // G115: explicitly masked to prevent overflow
			jitter := int64(binary.BigEndian.Uint64(jitterBytes[:]) & 0x7FFFFFFFFFFFFFFF)
			delay += float64(jitter % jitterMax)
		} else {
			timestamp := time.Now().UnixNano()
			delay += float64((timestamp%jitterMax + jitterMax) % jitterMax)
		}
	}

	return time.Duration(delay)
}

// isTransientNetError reports whether an error is a transport-level
// failure worth retrying on an idempotent request. Transient failures are
// connection resets/refusals, timeouts, and connections closed
// mid-response. Context cancellation by the caller is never transient.
func isTransientNetError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// A per-attempt deadline firing inside the HTTP stack surfaces as
	// context.DeadlineExceeded
	return errors.Is(err, context.DeadlineExceeded)
}

// checkContextCancellation checks if context is canceled or deadline
// exceeded, without blocking.
func checkContextCancellation(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Capabilities retrieves the device's RESTCONF capability URIs
// (ietf-restconf-monitoring) and stores them on the client. Use
// HasCapability() to check for a specific capability afterwards.
//
// Capabilities doubles as a connectivity and credential check: it is the
// cheapest authenticated read the device offers.
func (c *Client) Capabilities(ctx context.Context) ([]string, error) {
	res, err := c.GetData(ctx, pathCapabilities)
	if err != nil {
		return nil, fmt.Errorf("capabilities: %w", err)
	}

	caps := normalizeCapabilities(res.Raw)

	c.mu.Lock()
	c.capabilities = caps
	c.mu.Unlock()

	c.logger.Debug("RESTCONF capabilities",
		"host", c.Host,
		"count", len(caps))

	return caps, nil
}

// HasCapability checks if the device reported a specific capability URI.
// Capabilities must have been fetched first.
func (c *Client) HasCapability(capability string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, cap := range c.capabilities {
		if cap == capability {
			return true
		}
	}
	return false
}

// ServerCapabilities returns a copy of the capability URIs from the last
// Capabilities call.
func (c *Client) ServerCapabilities() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, len(c.capabilities))
	copy(result, c.capabilities)
	return result
}

// prepareJSONForLogging redacts sensitive data and optionally
// pretty-prints JSON destined for Debug logs. Oversized payloads are
// replaced wholesale to keep regex redaction cheap.
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if jsonStr == "" {
		return ""
	}
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	redacted := jsonStr
	for i, pattern := range c.redactionPatterns {
		redacted = pattern.ReplaceAllString(redacted, redactionReplacements[i])
	}

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		}
	}

	return redacted
}
