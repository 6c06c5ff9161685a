// Package client is the terminal client's view of the FEELIO HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	authdomain "github.com/feelio/feelio-backend/internal/auth/domain"
	"github.com/feelio/feelio-backend/internal/calendar"
	"github.com/feelio/feelio-backend/internal/chart"
	"github.com/feelio/feelio-backend/internal/legal"
	moods "github.com/feelio/feelio-backend/internal/moods/domain"
	"github.com/feelio/feelio-backend/internal/picker"
	profiles "github.com/feelio/feelio-backend/internal/profiles/domain"
	"github.com/feelio/feelio-backend/internal/stats"
	"github.com/feelio/feelio-backend/internal/theme"
)

// TimezoneHeader must match the header the API reads "today" from.
const TimezoneHeader = "X-Timezone"

const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx answer. Message is the server's user-facing text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL  string
	token    string
	timezone string

	httpClient   *http.Client
	streamClient *http.Client // no timeout, for the event stream
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimezone sends the IANA zone name used to decide which day is today.
func WithTimezone(name string) Option {
	return func(c *Client) { c.timezone = name }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.streamClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		streamClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, after sign-in.
func (c *Client) SetToken(token string) { c.token = token }

type ProfileView struct {
	Profile       profiles.Profile `json:"profile"`
	SetupComplete bool             `json:"setup_complete"`
}

type Mood struct {
	Date      string        `json:"date"`
	Emotion   moods.Emotion `json:"emotion"`
	Color     string        `json:"color"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

type EmotionInfo struct {
	Index   int           `json:"index"`
	Emotion moods.Emotion `json:"emotion"`
	Color   string        `json:"color"`
}

type Palette struct {
	Emotions    []EmotionInfo           `json:"emotions"`
	AvatarCount int                     `json:"avatar_count"`
	Themes      map[string]theme.Colors `json:"themes"`
}

type Stats struct {
	Year      int             `json:"year"`
	Month     time.Month      `json:"month"`
	MonthName string          `json:"month_name"`
	Breakdown stats.Breakdown `json:"breakdown"`
	Dominant  moods.Emotion   `json:"dominant,omitempty"`
	Chart     chart.Layout    `json:"chart"`
}

type PickerLayout struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Radius float64       `json:"radius"`
	Slots  []picker.Slot `json:"slots"`
}

type Me struct {
	UID     string            `json:"uid"`
	Email   string            `json:"email"`
	Profile *profiles.Profile `json:"profile,omitempty"`
	Next    string            `json:"next"`
}

func (c *Client) SignUp(ctx context.Context, email, password string, acceptedTerms bool) (authdomain.Session, error) {
	var out struct {
		Session authdomain.Session `json:"session"`
	}
	err := c.do(ctx, http.MethodPost, "/v1/auth/sign-up", map[string]any{
		"email":          email,
		"password":       password,
		"accepted_terms": acceptedTerms,
	}, &out)
	return out.Session, err
}

func (c *Client) SignIn(ctx context.Context, email, password string) (authdomain.Session, error) {
	var out struct {
		Session authdomain.Session `json:"session"`
	}
	err := c.do(ctx, http.MethodPost, "/v1/auth/sign-in", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out.Session, err
}

func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/password-reset", map[string]string{"email": email}, nil)
}

func (c *Client) Me(ctx context.Context) (Me, error) {
	var out struct {
		User Me `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, &out)
	return out.User, err
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/auth/account", nil, nil)
}

func (c *Client) Profile(ctx context.Context) (ProfileView, error) {
	var out ProfileView
	err := c.do(ctx, http.MethodGet, "/v1/profile", nil, &out)
	return out, err
}

// SetupProfile stores the name and avatar picked right after sign-up.
func (c *Client) SetupProfile(ctx context.Context, name string, avatar int) (ProfileView, error) {
	var out ProfileView
	err := c.do(ctx, http.MethodPut, "/v1/profile", map[string]any{
		"display_name": name,
		"avatar_index": avatar,
	}, &out)
	return out, err
}

// UpdateProfile changes the name, the avatar, or both. nil fields are kept.
func (c *Client) UpdateProfile(ctx context.Context, name *string, avatar *int) (ProfileView, error) {
	body := map[string]any{}
	if name != nil {
		body["display_name"] = *name
	}
	if avatar != nil {
		body["avatar_index"] = *avatar
	}
	var out ProfileView
	err := c.do(ctx, http.MethodPatch, "/v1/profile", body, &out)
	return out, err
}

func (c *Client) Palette(ctx context.Context) (Palette, error) {
	var out Palette
	err := c.do(ctx, http.MethodGet, "/v1/palette", nil, &out)
	return out, err
}

func (c *Client) RecordMood(ctx context.Context, date moods.Date, e moods.Emotion) (Mood, error) {
	var out struct {
		Mood Mood `json:"mood"`
	}
	err := c.do(ctx, http.MethodPut, moodPath(date), map[string]string{"emotion": string(e)}, &out)
	return out.Mood, err
}

// Mood returns the mood stored for date; IsNotFound(err) when there is none.
func (c *Client) Mood(ctx context.Context, date moods.Date) (Mood, error) {
	var out struct {
		Mood Mood `json:"mood"`
	}
	err := c.do(ctx, http.MethodGet, moodPath(date), nil, &out)
	return out.Mood, err
}

func (c *Client) Calendar(ctx context.Context, year int, weekStart time.Weekday) (calendar.Year, error) {
	q := url.Values{}
	if weekStart == time.Monday {
		q.Set("week_start", "monday")
	}
	var out struct {
		Calendar calendar.Year `json:"calendar"`
	}
	err := c.do(ctx, http.MethodGet, withQuery("/v1/calendar/"+strconv.Itoa(year), q), nil, &out)
	return out.Calendar, err
}

func (c *Client) Stats(ctx context.Context, year int, month time.Month, size int) (Stats, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	var out Stats
	err := c.do(ctx, http.MethodGet, withQuery(statsPath(year, month), q), nil, &out)
	return out, err
}

// ChartSVG downloads the rendered month chart for the named theme.
func (c *Client) ChartSVG(ctx context.Context, year int, month time.Month, size int, themeName string) ([]byte, error) {
	q := url.Values{}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if themeName != "" {
		q.Set("theme", themeName)
	}

	resp, err := c.send(ctx, c.httpClient, http.MethodGet, withQuery(statsPath(year, month)+"/chart.svg", q), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) PickerLayout(ctx context.Context, width, height float64) (PickerLayout, error) {
	q := url.Values{}
	q.Set("width", strconv.FormatFloat(width, 'f', -1, 64))
	q.Set("height", strconv.FormatFloat(height, 'f', -1, 64))
	var out PickerLayout
	err := c.do(ctx, http.MethodGet, withQuery("/v1/picker/layout", q), nil, &out)
	return out, err
}

func (c *Client) Legal(ctx context.Context, name string) (legal.Document, error) {
	var out struct {
		Document legal.Document `json:"document"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/legal/"+url.PathEscape(name), nil, &out)
	return out.Document, err
}

func moodPath(d moods.Date) string {
	return fmt.Sprintf("/v1/moods/%04d/%02d/%02d", d.Year, int(d.Month), d.Day)
}

func statsPath(year int, month time.Month) string {
	return fmt.Sprintf("/v1/stats/%04d/%02d", year, int(month))
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// do sends a JSON request and decodes a JSON answer into out, when given.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(raw)
	}

	resp, err := c.send(ctx, c.httpClient, method, path, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx answers into *APIError. The
// caller closes the body of a successful response.
func (c *Client) send(ctx context.Context, hc *http.Client, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.timezone != "" {
		req.Header.Set(TimezoneHeader, c.timezone)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if json.Unmarshal(raw, &payload) != nil || payload.Error == "" {
		payload.Error = strings.TrimSpace(string(raw))
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Error}
}
