package vogon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Vogon service endpoints, fixed per deployment.
const (
	submitPath   = "/api/spark/sql"
	progressPath = "/api/spark/progress"
	resultPath   = "/api/spark/result/v2"
	cancelPath   = "/api/spark/cancel"

	authTokenHeader = "vogon-auth-token"
	requestIDHeader = "X-Request-Id"
)

// JobStatus is the lifecycle state of one remote query execution. The
// service is the sole source of truth; each poll replaces the current value.
type JobStatus string

// Known job statuses. Any status outside the active set is terminal;
// unrecognized values are treated as implicitly terminal.
const (
	StatusSubmitted JobStatus = "SUBMITTED"
	StatusQueued    JobStatus = "QUEUED"
	StatusRunning   JobStatus = "RUNNING"
	StatusUnknown   JobStatus = "UNKNOWN"
	StatusSucceeded JobStatus = "SUCCEEDED"
	StatusFailed    JobStatus = "FAILED"
	StatusTimeout   JobStatus = "TIMEOUT"
	StatusCancelled JobStatus = "CANCELLED"
)

// Active reports whether further polling can still change the outcome.
func (s JobStatus) Active() bool {
	switch s {
	case StatusRunning, StatusQueued, StatusUnknown, StatusSubmitted:
		return true
	default:
		return false
	}
}

// Terminal reports whether the job has reached a final state.
func (s JobStatus) Terminal() bool { return !s.Active() }

// Job identifies one remote query execution. It is owned exclusively by the
// client call that created it and never shared across calls.
type Job struct {
	ID          string
	Status      JobStatus
	SubmittedAt time.Time
}

// jobClient drives one job's request sequence over a single HTTP session:
// submit, poll, fetch, cancel.
type jobClient struct {
	baseURL   string
	authToken string
	requestID string
	httpc     *http.Client
	logger    *slog.Logger
}

// newJobClient creates an independent session for one job lifecycle.
// Connection reuse within the session is handled by the transport.
func newJobClient(cfg *Config) *jobClient {
	return &jobClient{
		baseURL:   cfg.BaseURL(),
		authToken: cfg.AuthToken,
		requestID: uuid.NewString(),
		httpc:     &http.Client{},
		logger:    cfg.Logger,
	}
}

// resultPayload is the decoded body of the result endpoint. Columns is
// optional; older deployments return bare row arrays.
type resultPayload struct {
	Rows    [][]interface{} `json:"rows"`
	Columns []string        `json:"columns"`
}

func (c *jobClient) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, c.requestID)
	if c.authToken != "" {
		req.Header.Set(authTokenHeader, c.authToken)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, ErrConnection(err, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, resp.Status)
	}
	return data, nil
}

// submit POSTs the SQL text and returns the accepted job. Any acknowledgment
// other than SUBMITTED is a submission failure, not a job state.
func (c *jobClient) submit(ctx context.Context, query string) (*Job, error) {
	body, err := c.do(ctx, http.MethodPost, submitPath, nil, map[string]string{"sql": query})
	if err != nil {
		return nil, err
	}

	var ack struct {
		Status JobStatus `json:"status"`
		ID     string    `json:"id"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, ErrSubmission(string(body), "decode submission response: %v", err)
	}
	if ack.Status != StatusSubmitted {
		return nil, ErrSubmission(string(body), "query is not submitted successfully, check with Vogon Admin")
	}

	return &Job{ID: ack.ID, Status: StatusSubmitted, SubmittedAt: time.Now()}, nil
}

// progress returns the job's current status from the progress endpoint.
func (c *jobClient) progress(ctx context.Context, jobID string) (JobStatus, error) {
	body, err := c.do(ctx, http.MethodGet, progressPath, url.Values{"id": {jobID}}, nil)
	if err != nil {
		return "", err
	}
	var out struct {
		Status JobStatus `json:"status"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode progress response: %w", err)
	}
	return out.Status, nil
}

// errorMessage reuses the progress endpoint to read the service's error
// field. Used only for diagnostics after a non-success terminal state.
func (c *jobClient) errorMessage(ctx context.Context, jobID string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, progressPath, url.Values{"id": {jobID}}, nil)
	if err != nil {
		return "", err
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode progress response: %w", err)
	}
	return out.Error, nil
}

// results fetches rows [start, start+total) for a succeeded job.
func (c *jobClient) results(ctx context.Context, jobID string, start, total int) (*resultPayload, error) {
	q := url.Values{
		"id":    {jobID},
		"start": {strconv.Itoa(start)},
		"total": {strconv.Itoa(total)},
	}
	body, err := c.do(ctx, http.MethodGet, resultPath, q, nil)
	if err != nil {
		return nil, err
	}
	var payload resultPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode result response: %w", err)
	}
	return &payload, nil
}

// cancel requests job cancellation. Any non-error HTTP response counts as
// acknowledged; failures are logged, not raised.
func (c *jobClient) cancel(ctx context.Context, jobID string) bool {
	if _, err := c.do(ctx, http.MethodGet, cancelPath, url.Values{"id": {jobID}}, nil); err != nil {
		c.logger.Warn("cancel request failed", "job_id", jobID, "error", err)
		return false
	}
	return true
}

// awaitCompletion runs the poll loop until a terminal state, the timeout
// budget, or caller cancellation. The loop always performs one full
// poll-interval wait before the first status check. Poll failures are
// logged and swallowed; the loop continues with the previous status,
// bounded only by the overall budget.
func (c *jobClient) awaitCompletion(ctx context.Context, job *Job, pollInterval, timeout time.Duration) JobStatus {
	status := job.Status
	budget := timeout
	printTick := true

	for status.Active() {
		select {
		case <-ctx.Done():
			c.logger.Warn("caller cancelled, cancelling job", "job_id", job.ID, "cause", ctx.Err())
			c.cancel(context.Background(), job.ID)
			return StatusCancelled
		case <-time.After(pollInterval):
		}

		current, err := c.progress(ctx, job.ID)
		if err != nil {
			c.logger.Warn("progress check failed, retrying on next tick", "job_id", job.ID, "error", err)
		} else {
			status = current
		}
		if printTick {
			c.logger.Info("job progress", "job_id", job.ID, "status", status)
		}
		printTick = !printTick

		budget -= pollInterval
		if budget < 0 && status.Active() {
			c.logger.Warn("job running time has exceeded timeout limit, cancelling",
				"job_id", job.ID, "timeout", timeout)
			c.cancel(ctx, job.ID)
			return StatusTimeout
		}
	}
	return status
}

// Client drives single query executions against one Vogon deployment. Each
// ExecuteSync call occupies the calling goroutine for the full lifetime of
// the remote job and uses its own HTTP session.
type Client struct {
	cfg *Config
}

// NewClient validates the configuration and returns a Client.
func NewClient(cfg *Config) (*Client, error) {
	full := cfg.withDefaults()
	if err := full.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: full}, nil
}

// ExecuteSync submits the query, polls until a terminal state, and returns
// the first MaxRows rows of a succeeded job. Polling parameters are
// validated before any network call. On a non-success terminal state the
// service's error message is fetched best-effort for diagnostics, then a
// JobFailedError is returned when RaiseOnError is set, else a nil result.
func (c *Client) ExecuteSync(ctx context.Context, query string) (*ResultSet, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return c.executeSync(ctx, query)
}

func (c *Client) executeSync(ctx context.Context, query string) (*ResultSet, error) {
	jc := newJobClient(c.cfg)

	job, err := jc.submit(ctx, query)
	if err != nil {
		return nil, err
	}

	status := jc.awaitCompletion(ctx, job, c.cfg.PollInterval, c.cfg.QueryTimeout)
	if status == StatusSucceeded {
		payload, err := jc.results(ctx, job.ID, 0, c.cfg.MaxRows)
		if err != nil {
			return nil, err
		}
		return buildResultSet(payload)
	}

	c.cfg.Logger.Error("vogon job failed to succeed", "job_id", job.ID, "status", status)
	if msg, err := jc.errorMessage(ctx, job.ID); err != nil {
		c.cfg.Logger.Warn("couldn't fetch vogon error message", "job_id", job.ID, "error", err)
	} else if msg != "" {
		c.cfg.Logger.Error("vogon error message", "job_id", job.ID, "error", msg)
	}

	if c.cfg.RaiseOnError {
		return nil, ErrJobFailed(status)
	}
	return nil, nil
}

// buildResultSet materializes the decoded payload into rows plus a
// description inferred from the first row. When the payload carries no
// column names, positional _colN names are synthesized.
func buildResultSet(payload *resultPayload) (*ResultSet, error) {
	rs := &ResultSet{Rows: payload.Rows}
	if rs.Rows == nil {
		rs.Rows = [][]interface{}{}
	}
	if len(rs.Rows) == 0 {
		return rs, nil
	}

	first := rs.Rows[0]
	names := payload.Columns
	if len(names) != len(first) {
		names = make([]string, len(first))
		for i := range names {
			names[i] = "_col" + strconv.Itoa(i)
		}
	}

	desc, err := descriptionFromRow(names, first)
	if err != nil {
		return nil, err
	}
	rs.Columns = desc
	return rs, nil
}
