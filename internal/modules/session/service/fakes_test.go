package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"studybuddy/internal/modules/session/domain"
)

var errBoom = errors.New("boom")

type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
}

func newMemKV(seed map[string]string) *memKV {
	kv := &memKV{data: map[string]string{}}
	for k, v := range seed {
		kv.data[k] = v
	}
	return kv
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errBoom
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errBoom
	}
	m.data[key] = value
	return nil
}

func (m *memKV) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

type scheduledCall struct {
	n      domain.Notification
	fireIn time.Duration
}

type fakeNotifier struct {
	mu         sync.Mutex
	scheduled  []scheduledCall
	cancelled  []string
	failCancel bool
}

func (f *fakeNotifier) Schedule(_ context.Context, n domain.Notification, fireIn time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, scheduledCall{n: n, fireIn: fireIn})
	return fmt.Sprintf("r%d", len(f.scheduled)), nil
}

func (f *fakeNotifier) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	if f.failCancel {
		return errBoom
	}
	return nil
}

type fakeInbox struct {
	mu     sync.Mutex
	action string
}

func (f *fakeInbox) Record(_ context.Context, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.action = action
	return nil
}

func (f *fakeInbox) Take(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.action
	f.action = ""
	return a, nil
}
