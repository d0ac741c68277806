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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTracer_ParentLinking(t *testing.T) {
	tracer := NewMockTracer()

	ctx, parent := tracer.StartSpan(context.Background(), SpanConnect)
	_, child := tracer.StartSpan(ctx, SpanQuery, WithAttribute(AttrDriver, "sqlite3"))
	tracer.EndSpan(child)
	tracer.EndSpan(parent)

	spans := tracer.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.Equal(t, "sqlite3", child.Attributes[AttrDriver])
	assert.GreaterOrEqual(t, int64(child.Duration), int64(0))
}

func TestMockTracer_Metrics(t *testing.T) {
	tracer := NewMockTracer()
	tracer.RecordMetric(MetricQueries, 1, map[string]string{AttrDriver: "a"})
	tracer.RecordMetric(MetricQueries, 1, map[string]string{AttrDriver: "b"})
	tracer.RecordMetric(MetricErrors, 1, nil)

	assert.Equal(t, 2.0, tracer.MetricTotal(MetricQueries))
	assert.Equal(t, 1.0, tracer.MetricTotal(MetricErrors))

	tracer.Reset()
	assert.Zero(t, tracer.MetricTotal(MetricQueries))
	assert.Empty(t, tracer.GetSpans())
}

func TestSpan_RecordError(t *testing.T) {
	span := &Span{}
	span.RecordError(nil)
	assert.Equal(t, StatusUnset, span.Status.Code)

	span.RecordError(errors.New("boom"))
	assert.Equal(t, StatusError, span.Status.Code)
	assert.Equal(t, "boom", span.Attributes[AttrErrorMessage])
	assert.Equal(t, "error", span.Status.Code.String())
}

func TestNoOpTracer(t *testing.T) {
	tracer := NewNoOpTracer()
	ctx, span := tracer.StartSpan(context.Background(), SpanPing)
	require.NotNil(t, span)
	assert.Same(t, span, SpanFromContext(ctx))
	tracer.EndSpan(span)
	tracer.EndSpan(nil)
	assert.NoError(t, tracer.Flush(ctx))
}
