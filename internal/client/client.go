// Package client is the Go API client for the front-desk service. It owns
// the access token and refreshes it through the refresh cookie, coordinating
// concurrent callers so a burst of expired requests costs one refresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrUnauthenticated is returned when a request still fails after a
// successful token refresh, or when refresh itself is rejected. The caller
// decides whether to re-login.
var ErrUnauthenticated = errors.New("client: not authenticated")

type Session struct {
	baseURL        string
	httpClient     *http.Client
	refreshTimeout time.Duration

	mu          sync.Mutex
	accessToken string

	refreshGroup singleflight.Group
}

type Option func(*Session)

// WithRefreshTimeout bounds how long a caller waits on a shared refresh.
func WithRefreshTimeout(d time.Duration) Option {
	return func(s *Session) { s.refreshTimeout = d }
}

// WithHTTPClient replaces the underlying client. The replacement must carry
// a cookie jar or refresh will never see its cookie.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.httpClient = c }
}

// NewSession builds a session against baseURL and attempts one silent
// refresh from any refresh cookie already in the jar. A failed silent
// refresh is not an error; the session just starts unauthenticated.
func NewSession(baseURL string, opts ...Option) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}
	s := &Session{
		baseURL:        baseURL,
		httpClient:     &http.Client{Jar: jar, Timeout: 30 * time.Second},
		refreshTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	_, _ = s.refresh()

	return s, nil
}

// Login authenticates with credentials and primes both the access token and
// the refresh cookie.
func (s *Session) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return fmt.Errorf("client: marshal login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/routes/users/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("client: login: %w", ErrUnauthenticated)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("client: decode login: %w", err)
	}

	s.mu.Lock()
	s.accessToken = payload.AccessToken
	s.mu.Unlock()
	return nil
}

// Logout drops the access token and asks the server to clear the cookie.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/routes/users/logout", nil)
	if err != nil {
		return fmt.Errorf("client: logout request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: logout: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// Do sends the request with the current access token. On a 401 or 403 it
// joins the shared refresh and retries exactly once; the retry's failure is
// returned as is.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	token := s.token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	fresh, err := s.refresh()
	if err != nil {
		return nil, fmt.Errorf("client: refresh: %w", err)
	}

	retry, err := cloneRequest(req)
	if err != nil {
		return nil, err
	}
	retry.Header.Set("Authorization", "Bearer "+fresh)
	return s.httpClient.Do(retry)
}

// refresh exchanges the refresh cookie for a new access token. All callers
// racing through here share one in-flight request; each gets the same token
// or the same error. The HTTP call runs on a background context with its own
// timeout so one caller's cancellation cannot fail the others.
func (s *Session) refresh() (string, error) {
	result, err, _ := s.refreshGroup.Do("refresh", func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.refreshTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/routes/tokens/refresh_token", nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, ErrUnauthenticated
		}

		var payload struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}
		if payload.AccessToken == "" {
			return nil, ErrUnauthenticated
		}

		s.mu.Lock()
		s.accessToken = payload.AccessToken
		s.mu.Unlock()
		return payload.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *Session) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func cloneRequest(req *http.Request) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("client: clone body: %w", err)
		}
		retry.Body = body
	}
	return retry, nil
}

func (s *Session) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := s.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *Session) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("client: %s (status %d)", payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("client: unexpected status %d", resp.StatusCode)
}

// StayReceipt mirrors the check-in and check-out responses.
type StayReceipt struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ReservationID    int64  `json:"reservationId"`
	RoomNumber       int    `json:"roomNumber"`
	CheckinDateTime  string `json:"checkinDateTime"`
	CheckoutDateTime string `json:"checkoutDateTime"`
}

// RecentStay mirrors one entry of the recent check-in/check-out lists.
type RecentStay struct {
	ReservationID        int64  `json:"reservationId"`
	RoomNumber           int    `json:"roomNumber"`
	CheckInTime          string `json:"checkInTime"`
	CheckOutTime         string `json:"checkOutTime"`
	ReservedCheckInTime  string `json:"reservedCheckInTime"`
	ReservedCheckOutTime string `json:"reservedCheckOutTime"`
	NumberOfGuests       int    `json:"numberOfGuests"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`
}

func (s *Session) CheckIn(ctx context.Context, reservationID int64) (StayReceipt, error) {
	var receipt StayReceipt
	err := s.postJSON(ctx, "/routes/checkin", map[string]int64{"reservationId": reservationID}, &receipt)
	return receipt, err
}

func (s *Session) CheckOut(ctx context.Context, reservationID int64) (StayReceipt, error) {
	var receipt StayReceipt
	err := s.postJSON(ctx, "/routes/checkout", map[string]int64{"reservationId": reservationID}, &receipt)
	return receipt, err
}

func (s *Session) RecentCheckIns(ctx context.Context) ([]RecentStay, error) {
	var payload struct {
		Data []RecentStay `json:"data"`
	}
	if err := s.getJSON(ctx, "/routes/checkin/recent", &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (s *Session) RecentCheckOuts(ctx context.Context) ([]RecentStay, error) {
	var payload struct {
		Data []RecentStay `json:"data"`
	}
	if err := s.getJSON(ctx, "/routes/checkout/recent", &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// Watch polls the recent check-ins on the interval and hands each result to
// fn, until ctx is cancelled. Poll errors are passed to fn with a nil slice
// so a dashboard can surface them without stopping.
func (s *Session) Watch(ctx context.Context, interval time.Duration, fn func([]RecentStay, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stays, err := s.RecentCheckIns(ctx)
			fn(stays, err)
		}
	}
}
