// Package sdk provides the client-side library for the Celerix employee
// registry HTTP API.
package sdk

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/celerix-dev/celerix-registry/pkg/model"
	"github.com/goccy/go-json"
)

const employeePath = "/api/employee"

// Client is a remote client for the registry. It implements Registry.
type Client struct {
	base string
	http *http.Client
}

var _ Registry = (*Client)(nil)

// Connect checks that a registry answers at addr and returns a client for it.
// A bare host:port uses HTTPS unless CELERIX_DISABLE_TLS is "true".
func Connect(addr string) (*Client, error) {
	c := &Client{
		base: baseURL(addr),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // We use self-signed certs for internal traffic
				},
			},
		},
	}
	if _, err := c.Health(); err != nil {
		return nil, err
	}
	return c, nil
}

func baseURL(addr string) string {
	if strings.Contains(addr, "://") {
		return strings.TrimSuffix(addr, "/")
	}
	if os.Getenv("CELERIX_DISABLE_TLS") == "true" {
		return "http://" + addr
	}
	return "https://" + addr
}

// send performs one API call and decodes the JSON answer into out. Requests
// that are safe to repeat are retried up to 3 times when the registry cannot
// be reached.
func (c *Client) send(method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
	}

	attempts := 1
	if method != http.MethodPost {
		attempts = 3
	}

	var resp *http.Response
	var err error
	for i := 0; i < attempts; i++ {
		req, reqErr := http.NewRequest(method, c.base+path, bytes.NewReader(payload))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.http.Do(req)
		if err == nil {
			break
		}
		fmt.Fprintf(os.Stderr, "[Celerix SDK] Attempt %d failed: %v\n", i+1, err)
		time.Sleep(time.Duration((i+1)*200) * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var envelope model.Response
		if json.Unmarshal(data, &envelope) != nil || envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

// List returns every employee, highest regId first.
func (c *Client) List() ([]Record, error) {
	var out model.ListResponse
	if err := c.send(http.MethodGet, employeePath, nil, &out); err != nil {
		return nil, err
	}
	return out.Employees, nil
}

// Get returns the employee with the given regId.
func (c *Client) Get(regID string) (Record, error) {
	var out model.ListResponse
	path := employeePath + "?regId=" + url.QueryEscape(regID)
	if err := c.send(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Employees) == 0 {
		return nil, &APIError{Status: http.StatusNotFound, Message: out.Message}
	}
	return out.Employees[0], nil
}

// Create stores a new employee and returns the regId it was given.
func (c *Client) Create(rec Record) (string, error) {
	var out model.CreateResponse
	if err := c.send(http.MethodPost, employeePath, rec, &out); err != nil {
		return "", err
	}
	return out.RegID, nil
}

// Update merges rec into the employee named by its regId attribute.
func (c *Client) Update(rec Record) error {
	var out model.Response
	return c.send(http.MethodPut, employeePath, rec, &out)
}

// Delete removes the employee with the given regId.
func (c *Client) Delete(regID string) error {
	var out model.Response
	return c.send(http.MethodDelete, employeePath, Record{"regId": regID}, &out)
}

// Health reports the registry's status.
func (c *Client) Health() (model.HealthResponse, error) {
	var out model.HealthResponse
	err := c.send(http.MethodGet, "/healthz", nil, &out)
	return out, err
}

// --- Generics Support ---

// Get retrieves an employee decoded into T.
func Get[T any](r Reader, regID string) (T, error) {
	var target T
	rec, err := r.Get(regID)
	if err != nil {
		return target, err
	}
	return Decode[T](rec)
}

// Decode converts a record into T by re-encoding it.
func Decode[T any](rec Record) (T, error) {
	var target T
	data, err := json.Marshal(rec)
	if err != nil {
		return target, err
	}
	err = json.Unmarshal(data, &target)
	return target, err
}
