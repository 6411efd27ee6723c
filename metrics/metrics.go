// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics records qs decoder statistics as OpenTelemetry metrics.
//
// A [Recorder] turns the decoder's [qs.Events] hooks into instruments:
//
//	qs_decodes_total           counter   decodes performed
//	qs_decode_pairs            histogram pairs received per decode
//	qs_dropped_pairs_total     counter   pairs discarded, by "reason"
//
// Example:
//
//	recorder, err := metrics.New(metrics.WithMeterProvider(provider))
//	if err != nil {
//	    return err
//	}
//	codec := qs.MustNew(qs.WithEvents(recorder.Events()))
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/qs"
)

// DefaultMeterName is the instrumentation scope used when none is set.
const DefaultMeterName = "rivaas.dev/qs"

// Option configures a [Recorder].
type Option func(*config)

type config struct {
	provider  metric.MeterProvider
	meterName string
}

// WithMeterProvider sets the provider instruments are created from.
// The global provider is used by default.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		c.provider = provider
	}
}

// WithMeterName sets the instrumentation scope name.
func WithMeterName(name string) Option {
	return func(c *config) {
		c.meterName = name
	}
}

// Recorder holds the decoder instruments.
type Recorder struct {
	decodes metric.Int64Counter
	pairs   metric.Int64Histogram
	dropped metric.Int64Counter
}

// New creates a Recorder and its instruments.
func New(opts ...Option) (*Recorder, error) {
	cfg := &config{meterName: DefaultMeterName}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetMeterProvider()
	}
	meter := cfg.provider.Meter(cfg.meterName)

	r := &Recorder{}
	var err error

	r.decodes, err = meter.Int64Counter(
		"qs_decodes_total",
		metric.WithDescription("Total number of query decodes"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create decodes counter: %w", err)
	}

	r.pairs, err = meter.Int64Histogram(
		"qs_decode_pairs",
		metric.WithDescription("Number of pairs received per decode"),
		metric.WithUnit("{pair}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 5, 10, 25, 50, 100, 250, 1000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pairs histogram: %w", err)
	}

	r.dropped, err = meter.Int64Counter(
		"qs_dropped_pairs_total",
		metric.WithDescription("Total number of pairs discarded by the decoder"),
		metric.WithUnit("{pair}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dropped counter: %w", err)
	}

	return r, nil
}

// Events returns decoder hooks that feed the instruments.
func (r *Recorder) Events() qs.Events {
	return qs.Events{
		Dropped: r.recordDrop,
		Done:    r.recordDone,
	}
}

// The decoder hooks carry no context.
func (r *Recorder) recordDrop(d qs.Drop) {
	r.dropped.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", d.Reason.String())))
}

func (r *Recorder) recordDone(stats qs.Stats) {
	ctx := context.Background()
	r.decodes.Add(ctx, 1)
	r.pairs.Record(ctx, int64(stats.Pairs))
}
