// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Metric is a metric sample captured by MockTracer.
type Metric struct {
	Name   string
	Value  float64
	Labels map[string]string
}

// MockTracer captures spans and metrics in memory for inspection in tests.
type MockTracer struct {
	mu      sync.RWMutex
	spans   []*Span
	metrics []Metric
}

// NewMockTracer creates a new mock tracer.
func NewMockTracer() *MockTracer {
	return &MockTracer{}
}

// StartSpan creates a span. It is stored once ended.
func (m *MockTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	span := newSpan(ctx, uuid.NewString(), uuid.NewString(), name, opts)
	span.StartTime = time.Now()
	return ContextWithSpan(ctx, span), span
}

// EndSpan completes a span and stores it.
func (m *MockTracer) EndSpan(span *Span) {
	if span == nil {
		return
	}
	span.EndTime = time.Now()
	span.Duration = span.EndTime.Sub(span.StartTime)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.spans = append(m.spans, span)
}

// RecordMetric stores the sample.
func (m *MockTracer) RecordMetric(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, Metric{Name: name, Value: value, Labels: labels})
}

// Flush is a no-op.
func (m *MockTracer) Flush(ctx context.Context) error {
	return nil
}

// GetSpans returns a copy of all ended spans.
func (m *MockTracer) GetSpans() []*Span {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spans := make([]*Span, len(m.spans))
	copy(spans, m.spans)
	return spans
}

// GetSpansByName returns all ended spans with the given name.
func (m *MockTracer) GetSpansByName(name string) []*Span {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Span
	for _, span := range m.spans {
		if span.Name == name {
			out = append(out, span)
		}
	}
	return out
}

// MetricTotal sums every sample recorded under name.
func (m *MockTracer) MetricTotal(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total float64
	for _, s := range m.metrics {
		if s.Name == name {
			total += s.Value
		}
	}
	return total
}

// Reset clears captured spans and metrics.
func (m *MockTracer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spans = nil
	m.metrics = nil
}

var _ Tracer = (*MockTracer)(nil)
