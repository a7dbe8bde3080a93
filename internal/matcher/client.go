package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrMalformedResult marks a trigger response that decoded but is missing
// required fields; the scheduler counts it as a per-user failure.
var ErrMalformedResult = errors.New("malformed trigger result")

type TriggerResult struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	NewMatchesFound int    `json:"new_matches_found"`
}

// Client is the external scoring collaborator. Timeout and retry policy live
// on its side of the contract; callers get a structured result or an error.
type Client interface {
	TriggerUserPowerMatch(ctx context.Context, subscriberID uuid.UUID) (TriggerResult, error)
	// CalculateMatchScore returns nil (and no error) when the scoring
	// service answered but declined to produce a score.
	CalculateMatchScore(ctx context.Context, subscriberID, jobID uuid.UUID) (*float64, error)
}

type httpClient struct {
	baseURL      string
	serviceToken string
	client       *http.Client
	logger       *log.Logger
}

func NewClient(baseURL, serviceToken string, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	return &httpClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: strings.TrimSpace(serviceToken),
		client:       &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
	}
}

type triggerRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
}

type scoreRequest struct {
	SubscriberID uuid.UUID `json:"subscriber_id"`
	JobID        uuid.UUID `json:"job_id"`
}

type scoreResponse struct {
	Score *float64 `json:"score"`
}

func (c *httpClient) TriggerUserPowerMatch(ctx context.Context, subscriberID uuid.UUID) (TriggerResult, error) {
	if c == nil || c.client == nil {
		return TriggerResult{}, errors.New("nil matcher client")
	}

	var out TriggerResult
	if err := c.postJSON(ctx, "/power-matches/trigger", triggerRequest{SubscriberID: subscriberID}, &out); err != nil {
		return TriggerResult{}, err
	}

	out.Status = strings.TrimSpace(out.Status)
	if out.Status == "" || out.NewMatchesFound < 0 {
		return TriggerResult{}, fmt.Errorf("%w: status=%q new_matches_found=%d", ErrMalformedResult, out.Status, out.NewMatchesFound)
	}
	return out, nil
}

func (c *httpClient) CalculateMatchScore(ctx context.Context, subscriberID, jobID uuid.UUID) (*float64, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil matcher client")
	}

	var out scoreResponse
	if err := c.postJSON(ctx, "/match-score", scoreRequest{SubscriberID: subscriberID, JobID: jobID}, &out); err != nil {
		return nil, err
	}
	return out.Score, nil
}

func (c *httpClient) postJSON(ctx context.Context, path string, body any, out any) error {
	endpoint := c.baseURL + path

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("matcher call failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Matcher] request error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return err
	}

	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

var _ Client = (*httpClient)(nil)
