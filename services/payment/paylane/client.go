package paylane

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// SaleEndpoint is PayLane's fixed card sale endpoint. Overridable
	// on the client for tests only.
	SaleEndpoint = "https://direct.paylane.com/rest/cards/sale"

	RequestTimeout = 30 * time.Second
)

// TransportError covers network level failures talking to PayLane,
// including timeouts. The detail is for the gateway error log, never
// for the browser.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("paylane transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means PayLane answered but the body was not valid JSON
// or lacked the success discriminator.
type DecodeError struct {
	Err  error
	Body string
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("paylane decode error: %v", e.Err)
	}
	return "paylane decode error: response missing success field"
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Credentials struct {
	Username string
	Password string
}

type Client struct {
	creds     Credentials
	endpoint  string
	client    *http.Client
	transport *http.Transport
}

func NewClient(creds Credentials) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		creds:     creds,
		endpoint:  SaleEndpoint,
		transport: transport,
		client: &http.Client{
			Timeout:   RequestTimeout,
			Transport: transport,
		},
	}
}

// SetEndpoint points the client at a different sale URL. Used by tests
// against httptest servers.
func (c *Client) SetEndpoint(url string) {
	c.endpoint = url
}

func (c *Client) basicAuth() string {
	raw := c.creds.Username + ":" + c.creds.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// Sale submits a single card sale. One attempt only: PayLane holds its
// own duplicate-transaction lock (error 401) and retrying here would
// race against it.
func (c *Client) Sale(ctx context.Context, req *SaleRequest) (*SaleResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error marshaling sale request: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("error creating sale request: %v", err)
	}

	httpReq.Header.Set("Authorization", c.basicAuth())
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	log.Printf("PayLane responded %d in %v", resp.StatusCode, time.Since(start))

	cleanBody := strings.TrimPrefix(string(respBody), "\ufeff")

	var wire saleResponseWire
	if err := json.Unmarshal([]byte(cleanBody), &wire); err != nil {
		return nil, &DecodeError{Err: err, Body: cleanBody}
	}

	if wire.Success == nil {
		return nil, &DecodeError{Body: cleanBody}
	}

	if !*wire.Success {
		out := &SaleResponse{Success: false}
		if wire.Error != nil {
			out.ErrorNumber = wire.Error.ErrorNumber
			out.ErrorDescription = wire.Error.ErrorDescription
		}
		return out, nil
	}

	return &SaleResponse{Success: true, IDSale: string(wire.IDSale)}, nil
}
