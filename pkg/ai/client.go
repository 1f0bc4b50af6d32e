// Package ai talks to the hosted conversational model that extracts
// structured resume data from free-text conversation. The service is an
// external collaborator: its output must conform to the resume document
// schema, and everything it returns is validated and normalized here
// before it touches the document.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// Message is one conversation turn sent to the extractor.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}}
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

const extractInstructions = `You will produce EXACTLY one JSON object and NOTHING ELSE. The object must conform to the resume document schema below. Do not include any extra text, explanations, or Markdown. Output must be valid JSON only.

Rules:
 - Top-level keys: personalInfo, experiences, education, skills, leadershipExperiences, projectExperiences, researchExperiences, summary, portfolio, modules
 - Only include information actually present in the conversation; leave everything else out or empty. Never invent employers, dates or degrees.
 - Dates are "YYYY-MM" strings; an ongoing position has endDate "Present".
 - Every list item must carry a unique string "id".
 - skill category must be one of: skill, certification, other, language, interest, activity.
 - descriptions are simple HTML: <p>, <ul>/<ol> with <li>, <strong>, <em>.`

// ExtractResume sends the conversation to the hosted model and returns the
// partial document it described. The returned document is schema-validated
// and normalized: missing ids are generated, included defaults to true and
// unknown skill categories are coerced to "other".
func (c *Client) ExtractResume(ctx context.Context, messages []Message) (*model.Document, error) {
	convo, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}

	chatReq := map[string]interface{}{
		"agent": "resume-extractor",
		"input": extractInstructions + "\n\nConversation:\n" + string(convo),
	}
	b, err := json.Marshal(chatReq)
	if err != nil {
		return nil, err
	}

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ai-service returned status %d", resp.StatusCode)
	}

	var chatResp struct {
		Agent  string `json:"agent"`
		Output string `json:"output"`
	}
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return nil, err
	}

	raw, err := extractJSONObject(chatResp.Output)
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("ai-service returned non-json content: %w", err)
	}
	normalizeExtracted(m)
	if err := model.ValidateMap(m); err != nil {
		return nil, fmt.Errorf("extractor output rejected: %w", err)
	}

	normalized, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var doc model.Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

// extractJSONObject tolerates models that wrap their JSON in prose or code
// fences by slicing from the first '{' to the last '}'.
func extractJSONObject(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return nil, errors.New("ai-service returned no JSON object")
	}
	sub := s[start : end+1]
	if !json.Valid([]byte(sub)) {
		return nil, errors.New("ai-service returned malformed JSON")
	}
	return []byte(sub), nil
}

// normalizeExtracted repairs the shapes models commonly get wrong before
// schema validation: missing ids, missing included flags, bad categories.
func normalizeExtracted(m map[string]interface{}) {
	lists := []string{
		"experiences", "education", "skills",
		"leadershipExperiences", "projectExperiences", "researchExperiences", "portfolio",
	}
	for _, key := range lists {
		arr, ok := m[key].([]interface{})
		if !ok {
			continue
		}
		for _, raw := range arr {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if s, ok := item["id"].(string); !ok || s == "" {
				item["id"] = uuid.NewString()
			}
			if _, ok := item["included"].(bool); !ok {
				item["included"] = true
			}
			if key == "skills" {
				c, _ := item["category"].(string)
				if !model.ValidSkillCategory(model.SkillCategory(c)) {
					item["category"] = string(model.CategoryOther)
				}
			}
		}
	}
	if s, ok := m["summary"].(map[string]interface{}); ok {
		if _, ok := s["included"].(bool); !ok {
			s["included"] = true
		}
	}
}
