package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/AlexPerrin/GRC-AI-Automation/internal/config"
	"github.com/AlexPerrin/GRC-AI-Automation/internal/platform/logger"
)

type fakeRoundTripper struct {
	requests []*http.Request
	bodies   []string
	respond  func(req *http.Request) *http.Response
}

func (f *fakeRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, string(body))
	return f.respond(req), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func responsesBody(text string) string {
	payload := map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func newTestClient(t *testing.T, rt http.RoundTripper, maxRetries int) *client {
	t.Helper()
	c, err := NewClient(logger.NewNop(), config.LLMConfig{
		BaseURL:    "http://llm.test",
		APIKey:     "test-key",
		Model:      "test-model",
		EmbedModel: "test-embed",
		MaxRetries: maxRetries,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	impl := c.(*client)
	impl.httpClient = &http.Client{Transport: rt}
	return impl
}

func TestCompleteSendsSystemAndUserPrompts(t *testing.T) {
	rt := &fakeRoundTripper{respond: func(_ *http.Request) *http.Response {
		return jsonResponse(200, responsesBody("hello"))
	}}
	c := newTestClient(t, rt, 0)

	got, err := c.Complete(context.Background(), "sys prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello" {
		t.Fatalf("text: want=%q got=%q", "hello", got)
	}

	if len(rt.requests) != 1 {
		t.Fatalf("requests: want=1 got=%d", len(rt.requests))
	}
	req := rt.requests[0]
	if req.URL.Path != "/v1/responses" {
		t.Fatalf("path: want=/v1/responses got=%s", req.URL.Path)
	}
	if auth := req.Header.Get("Authorization"); auth != "Bearer test-key" {
		t.Fatalf("authorization header: got=%q", auth)
	}

	var sent responsesRequest
	if err := json.Unmarshal([]byte(rt.bodies[0]), &sent); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if sent.Model != "test-model" {
		t.Fatalf("model: want=test-model got=%s", sent.Model)
	}
	if len(sent.Input) != 2 || sent.Input[0].Role != "system" || sent.Input[1].Role != "user" {
		t.Fatalf("input roles: got=%+v", sent.Input)
	}
	if sent.Input[0].Content != "sys prompt" || sent.Input[1].Content != "user prompt" {
		t.Fatalf("input content: got=%+v", sent.Input)
	}
}

func TestCompleteJSONParsesCleanAndFencedOutput(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"clean", `{"risk": "low"}`},
		{"json fence", "```json\n{\"risk\": \"low\"}\n```"},
		{"bare fence", "```\n{\"risk\": \"low\"}\n```"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := &fakeRoundTripper{respond: func(_ *http.Request) *http.Response {
				return jsonResponse(200, responsesBody(tc.text))
			}}
			c := newTestClient(t, rt, 0)

			obj, err := c.CompleteJSON(context.Background(), "s", "u")
			if err != nil {
				t.Fatalf("CompleteJSON: %v", err)
			}
			if obj["risk"] != "low" {
				t.Fatalf("risk: want=low got=%v", obj["risk"])
			}
		})
	}
}

func TestCompleteJSONMalformedOutput(t *testing.T) {
	rt := &fakeRoundTripper{respond: func(_ *http.Request) *http.Response {
		return jsonResponse(200, responsesBody("I think the risk is low."))
	}}
	c := newTestClient(t, rt, 0)

	_, err := c.CompleteJSON(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for non-JSON output")
	}
	var malformed *MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("error type: want=MalformedOutputError got=%T (%v)", err, err)
	}
	if malformed.Raw != "I think the risk is low." {
		t.Fatalf("raw: got=%q", malformed.Raw)
	}
}

func TestCompleteNoRetryByDefault(t *testing.T) {
	rt := &fakeRoundTripper{respond: func(_ *http.Request) *http.Response {
		return jsonResponse(500, `{"error": "boom"}`)
	}}
	c := newTestClient(t, rt, 0)

	_, err := c.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if len(rt.requests) != 1 {
		t.Fatalf("requests: want=1 got=%d", len(rt.requests))
	}
}

func TestCompleteRetriesWhenConfigured(t *testing.T) {
	attempts := 0
	rt := &fakeRoundTripper{respond: func(_ *http.Request) *http.Response {
		attempts++
		if attempts == 1 {
			return jsonResponse(503, `{"error": "overloaded"}`)
		}
		return jsonResponse(200, responsesBody("recovered"))
	}}
	c := newTestClient(t, rt, 2)

	got, err := c.Complete(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("text: want=recovered got=%q", got)
	}
	if attempts != 2 {
		t.Fatalf("attempts: want=2 got=%d", attempts)
	}
}

func TestEmbedPreservesOrderAndBlankInputs(t *testing.T) {
	rt := &fakeRoundTripper{respond: func(_ *http.Request) *http.Response {
		// Out-of-order data entries must land at their declared index.
		return jsonResponse(200, `{"data": [
			{"index": 1, "embedding": [0.5, 0.5]},
			{"index": 0, "embedding": [1.0, 0.0]}
		]}`)
	}}
	c := newTestClient(t, rt, 0)

	vecs, err := c.Embed(context.Background(), []string{"first", "   "})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("vectors: want=2 got=%d", len(vecs))
	}
	if vecs[0][0] != 1.0 || vecs[1][0] != 0.5 {
		t.Fatalf("order: got=%v", vecs)
	}

	var sent embeddingsRequest
	if err := json.Unmarshal([]byte(rt.bodies[0]), &sent); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if sent.Input[1] != " " {
		t.Fatalf("blank input replacement: got=%q", sent.Input[1])
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\": 1}", "{\"a\": 1}"},
		{"```json\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"```\n{\"a\": 1}\n```", "{\"a\": 1}"},
		{"  ```json\n{\"a\": 1}\n```  ", "{\"a\": 1}"},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Fatalf("stripCodeFence(%q): want=%q got=%q", tc.in, got, tc.want)
		}
	}
	if got := stripCodeFence("plain text"); !strings.Contains(got, "plain") {
		t.Fatalf("non-fenced text should pass through, got=%q", got)
	}
}
