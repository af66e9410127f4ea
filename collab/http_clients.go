package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HTTPTextGenerator posts the user+cycle context to the generation
// service and returns its free text as-is.
type HTTPTextGenerator struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPTextGenerator(baseURL string) *HTTPTextGenerator {
	return &HTTPTextGenerator{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *HTTPTextGenerator) GenerateReviewDraft(ctx context.Context, userID, cycleID string) (string, error) {
	if g.BaseURL == "" {
		return "", ErrUnavailable
	}
	body, _ := json.Marshal(map[string]string{"userId": userID, "cycleId": cycleID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/review-draft", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", ErrUnavailable
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ErrUnavailable
	}
	return out.Text, nil
}

// HTTPRecognizer sends the audit photo to the recognition service and
// returns the list of tag identifiers it confirmed.
type HTTPRecognizer struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPRecognizer(baseURL string) *HTTPRecognizer {
	return &HTTPRecognizer{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *HTTPRecognizer) RecognizeTags(ctx context.Context, imageData []byte) ([]string, error) {
	if r.BaseURL == "" {
		return nil, ErrUnavailable
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/v1/recognize", bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnavailable
	}

	var out struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ErrUnavailable
	}
	return out.Tags, nil
}
