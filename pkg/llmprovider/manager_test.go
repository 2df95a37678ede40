package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock provider with configurable behavior
type mockProvider struct {
	name     string
	generate func(ctx context.Context, req *Request) (*Response, error)
	calls    int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.calls++
	return m.generate(ctx, req)
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.name + "-model" }

func textResponse(text string) *Response {
	return &Response{
		Content: Message{Role: "assistant", Parts: []Part{{Text: text}}},
		Usage:   &Usage{},
	}
}

func TestManagerGenerateContent(t *testing.T) {
	req := &Request{Messages: []Message{{Role: "user", Parts: []Part{{Text: "hi"}}}}}

	t.Run("first provider succeeds", func(t *testing.T) {
		primary := &mockProvider{name: "primary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return textResponse("ok"), nil
		}}
		secondary := &mockProvider{name: "secondary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return textResponse("fallback"), nil
		}}

		m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})
		resp, err := m.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "ok" {
			t.Errorf("expected primary response, got %q", resp.Text())
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called, got %d calls", secondary.calls)
		}
	})

	t.Run("falls back on failure", func(t *testing.T) {
		primary := &mockProvider{name: "primary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return nil, errors.New("boom")
		}}
		secondary := &mockProvider{name: "secondary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return textResponse("fallback"), nil
		}}

		m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 1}, &mockLogger{})
		resp, err := m.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "fallback" {
			t.Errorf("expected fallback response, got %q", resp.Text())
		}
	})

	t.Run("fallback disabled stops after first", func(t *testing.T) {
		primary := &mockProvider{name: "primary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return nil, errors.New("boom")
		}}
		secondary := &mockProvider{name: "secondary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return textResponse("fallback"), nil
		}}

		m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: false, RetryAttempts: 1}, &mockLogger{})
		_, err := m.GenerateContent(context.Background(), req)
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called, got %d calls", secondary.calls)
		}
	})

	t.Run("retries before falling back", func(t *testing.T) {
		failures := 0
		primary := &mockProvider{name: "primary", generate: func(ctx context.Context, req *Request) (*Response, error) {
			failures++
			if failures < 2 {
				return nil, errors.New("transient")
			}
			return textResponse("recovered"), nil
		}}

		m := NewManager([]Provider{primary}, &Config{RetryAttempts: 3, RetryDelay: time.Millisecond}, &mockLogger{})
		resp, err := m.GenerateContent(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "recovered" {
			t.Errorf("expected recovered response, got %q", resp.Text())
		}
	})

	t.Run("no providers", func(t *testing.T) {
		m := NewManager(nil, &Config{}, &mockLogger{})
		_, err := m.GenerateContent(context.Background(), req)
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})

	t.Run("all providers fail", func(t *testing.T) {
		p := &mockProvider{name: "p", generate: func(ctx context.Context, req *Request) (*Response, error) {
			return nil, errors.New("down")
		}}
		m := NewManager([]Provider{p}, &Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond}, &mockLogger{})
		_, err := m.GenerateContent(context.Background(), req)
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
		if p.calls != 2 {
			t.Errorf("expected 2 attempts, got %d", p.calls)
		}
	})
}
