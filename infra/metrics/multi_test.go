package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/friomar/dispatch/core/metrics"
)

type countingSink struct {
	calls int
	err   error
}

func (s *countingSink) RecordAssignment([]coremetrics.AssignmentRecord) error {
	s.calls++
	return s.err
}

func TestMultiSinkFanout(t *testing.T) {
	a := &countingSink{}
	b := &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordAssignment([]coremetrics.AssignmentRecord{{TripID: 1}}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected both sinks called: %d %d", a.calls, b.calls)
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	a := &countingSink{err: fmt.Errorf("boom")}
	b := &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordAssignment(nil); err == nil {
		t.Fatalf("expected error to surface")
	}
	if b.calls != 0 {
		t.Fatalf("later sinks should not run after an error")
	}
}

func TestPromSinkRecordAssignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new prom sink: %v", err)
	}

	recs := []coremetrics.AssignmentRecord{
		{TripID: 1, Zone: "NORTE", Source: "telemetry", DistanceKm: 30, HasDistance: true, Committed: true, Time: time.Now()},
		{TripID: 2, Zone: "NORTE", Source: "home_base", Committed: false, Time: time.Now()},
	}
	if err := sink.RecordAssignment(recs); err != nil {
		t.Fatalf("record: %v", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected registered metrics")
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second register should reuse collectors: %v", err)
	}
}
