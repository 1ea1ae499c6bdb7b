package services

import (
	"context"
	"io"
	"sync"
	"time"

	"contacts-api/internal/infrastructure/metrics"
	"contacts-api/internal/infrastructure/mq"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *recordingPublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type fakeStorage struct {
	UploadFunc func(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	keys       []string
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	return f.UploadFunc(ctx, key, body, size, contentType)
}

type fakeTokens struct {
	GenerateJWTFunc func(userID string, expiresIn time.Duration) (string, error)
}

func (f fakeTokens) GenerateJWT(userID string, expiresIn time.Duration) (string, error) {
	return f.GenerateJWTFunc(userID, expiresIn)
}

var newCounter = metrics.NewUnregisteredCounter

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
