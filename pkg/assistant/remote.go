package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Messages shown instead of calling the server when required input is
// missing.
const (
	MissingPassage  = "Please enter a Bible passage to study."
	MissingQuestion = "Please enter a question about Christianity."
)

// Feature endpoints served by pkg/server.
const (
	PathQuietTime = "/quiet-time"
	PathBooks     = "/recommend-books"
	PathStudy     = "/bible-study"
	PathQuestion  = "/answer-question"
)

// FailureText renders a failed exchange the way the response panel shows it.
func FailureText(err error) string {
	return fmt.Sprintf("Error: %s. Please try again later.", err.Error())
}

// Remote calls a devo server.
type Remote struct {
	BaseURL string
	HTTP    *http.Client
}

func NewRemote(baseURL string) *Remote {
	return &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 90 * time.Second},
	}
}

// Post sends one request and returns the result text.
func (r *Remote) Post(ctx context.Context, path string, in any) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP error %d", resp.StatusCode)
	}
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Result, nil
}

func (r *Remote) QuietTime(ctx context.Context, req QuietTimeRequest) (string, error) {
	if req.Duration <= 0 {
		req.Duration = DefaultDuration
	}
	return r.Post(ctx, PathQuietTime, req)
}

func (r *Remote) Books(ctx context.Context, req BookRequest) (string, error) {
	if req.Count <= 0 {
		req.Count = DefaultCount
	}
	if req.SpiritualLevel == "" {
		req.SpiritualLevel = DefaultLevel
	}
	return r.Post(ctx, PathBooks, req)
}

func (r *Remote) Study(ctx context.Context, req StudyRequest) (string, error) {
	if strings.TrimSpace(req.Passage) == "" {
		return MissingPassage, nil
	}
	return r.Post(ctx, PathStudy, req)
}

func (r *Remote) Answer(ctx context.Context, req QuestionRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" {
		return MissingQuestion, nil
	}
	return r.Post(ctx, PathQuestion, req)
}
