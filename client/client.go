// Package client is the Go consumer of the reporting API. The base URL is
// configured once; the bearer header is owned by the session manager and
// installed through SetAuthToken, never re-derived per request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lefika/ripota/core/class"
	"github.com/lefika/ripota/core/course"
	"github.com/lefika/ripota/core/monitoring"
	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
)

// APIError is a non-2xx response. Message carries the server's `error`
// field when present; validation failures come back as a bare field map
// and land in Fields.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type Client struct {
	baseURL string
	httpc   *http.Client

	mut   sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAuthToken installs the bearer credential on all subsequent requests.
// An empty token removes it.
func (c *Client) SetAuthToken(token string) {
	c.mut.Lock()
	c.token = token
	c.mut.Unlock()
}

func (c *Client) authToken() string {
	c.mut.RLock()
	defer c.mut.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.authToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apiErr
	}

	if raw, ok := body["error"]; ok {
		_ = json.Unmarshal(raw, &apiErr.Message)
		return apiErr
	}

	// no "error" key: the body is a field-error map, one message per field
	for field, raw := range body {
		var msg string
		if json.Unmarshal(raw, &msg) != nil {
			continue
		}
		if apiErr.Fields == nil {
			apiErr.Fields = make(map[string]string, len(body))
		}
		apiErr.Fields[field] = msg
	}
	return apiErr
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", body, &resp)
	return resp, err
}

func (c *Client) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	var usr user.User
	err := c.do(ctx, http.MethodPost, "/register", nu, &usr)
	return usr, err
}

func (c *Client) Profile(ctx context.Context) (user.User, error) {
	var usr user.User
	err := c.do(ctx, http.MethodGet, "/profile", nil, &usr)
	return usr, err
}

func (c *Client) Lecturers(ctx context.Context) ([]user.User, error) {
	var usrs []user.User
	err := c.do(ctx, http.MethodGet, "/lecturers", nil, &usrs)
	return usrs, err
}

func (c *Client) Users(ctx context.Context, role string) ([]user.User, error) {
	path := "/users"
	if role != "" {
		path += "?role=" + url.QueryEscape(role)
	}
	var usrs []user.User
	err := c.do(ctx, http.MethodGet, path, nil, &usrs)
	return usrs, err
}

func (c *Client) Classes(ctx context.Context) ([]class.Class, error) {
	var cls []class.Class
	err := c.do(ctx, http.MethodGet, "/classes", nil, &cls)
	return cls, err
}

func (c *Client) CreateClass(ctx context.Context, nc class.NewClass) (class.Class, error) {
	var cl class.Class
	err := c.do(ctx, http.MethodPost, "/classes", nc, &cl)
	return cl, err
}

func (c *Client) UpdateClass(ctx context.Context, id string, uc class.UpdateClass) (class.Class, error) {
	var cl class.Class
	err := c.do(ctx, http.MethodPut, "/classes/"+url.PathEscape(id), uc, &cl)
	return cl, err
}

func (c *Client) DeleteClass(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/classes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Courses(ctx context.Context) ([]course.Course, error) {
	var crs []course.Course
	err := c.do(ctx, http.MethodGet, "/courses", nil, &crs)
	return crs, err
}

func (c *Client) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	var cr course.Course
	err := c.do(ctx, http.MethodPost, "/courses", nc, &cr)
	return cr, err
}

func (c *Client) UpdateCourse(ctx context.Context, id string, uc course.UpdateCourse) (course.Course, error) {
	var cr course.Course
	err := c.do(ctx, http.MethodPut, "/courses/"+url.PathEscape(id), uc, &cr)
	return cr, err
}

func (c *Client) Reports(ctx context.Context) ([]report.Report, error) {
	var rpts []report.Report
	err := c.do(ctx, http.MethodGet, "/reports", nil, &rpts)
	return rpts, err
}

func (c *Client) SubmitReport(ctx context.Context, nr report.NewReport) (report.Report, error) {
	var rpt report.Report
	err := c.do(ctx, http.MethodPost, "/reports", nr, &rpt)
	return rpt, err
}

func (c *Client) AddReportFeedback(ctx context.Context, id, feedback string) (report.Report, error) {
	var rpt report.Report
	err := c.do(ctx, http.MethodPut, "/reports/"+url.PathEscape(id)+"/feedback", report.Feedback{Feedback: feedback}, &rpt)
	return rpt, err
}

func (c *Client) Ratings(ctx context.Context) ([]rating.Rating, error) {
	var rtgs []rating.Rating
	err := c.do(ctx, http.MethodGet, "/ratings", nil, &rtgs)
	return rtgs, err
}

func (c *Client) SubmitRating(ctx context.Context, nr rating.NewRating) (rating.Rating, error) {
	var rtg rating.Rating
	err := c.do(ctx, http.MethodPost, "/ratings", nr, &rtg)
	return rtg, err
}

func (c *Client) DeleteRating(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ratings/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Monitoring(ctx context.Context, timeframe string) (monitoring.Metrics, error) {
	path := "/monitoring"
	if timeframe != "" {
		path += "?timeframe=" + url.QueryEscape(timeframe)
	}
	var m monitoring.Metrics
	err := c.do(ctx, http.MethodGet, path, nil, &m)
	return m, err
}
