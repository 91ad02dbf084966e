package llm

import (
	"context"
	"sync"
)

// MockClient is a deterministic Client for tests. Answers are keyed by image
// name; unknown images get Default.
type MockClient struct {
	Answers  map[string]ClassificationResponse
	Errors   map[string]error
	Default  ClassificationResponse
	requests []ImageRequest
	mu       sync.Mutex
}

// NewMockClient creates a mock with no canned answers.
func NewMockClient() *MockClient {
	return &MockClient{
		Answers: make(map[string]ClassificationResponse),
		Errors:  make(map[string]error),
	}
}

// Answer registers a text-style answer for image.
func (m *MockClient) Answer(image, category string) *MockClient {
	m.Answers[image] = ClassificationResponse{Category: category, Raw: category}
	return m
}

// AnswerWithReasoning registers a structured answer for image.
func (m *MockClient) AnswerWithReasoning(image, category, reasoning string) *MockClient {
	m.Answers[image] = ClassificationResponse{Category: category, Reasoning: &reasoning}
	return m
}

// Fail makes requests for image return err.
func (m *MockClient) Fail(image string, err error) *MockClient {
	m.Errors[image] = err
	return m
}

// ClassifyImage records the request and returns the canned answer.
func (m *MockClient) ClassifyImage(_ context.Context, req ImageRequest) (ClassificationResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if err, ok := m.Errors[req.ImageName]; ok {
		return ClassificationResponse{}, err
	}
	if resp, ok := m.Answers[req.ImageName]; ok {
		return resp, nil
	}
	return m.Default, nil
}

// Ping always succeeds.
func (m *MockClient) Ping(_ context.Context) (string, error) {
	return "pong", nil
}

// Requests returns a copy of every request received.
func (m *MockClient) Requests() []ImageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ImageRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns the image names requested, in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.requests))
	for i, req := range m.requests {
		names[i] = req.ImageName
	}
	return names
}
