package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"netbox2prom/internal/discovery"
	"netbox2prom/internal/netbox"
	"netbox2prom/internal/sink"
)

// failingInventory 让初次列表拉取报错。
type failingInventory struct {
	netbox.StaticClient
}

func (f *failingInventory) ListDevices(context.Context) ([]netbox.Device, error) {
	return nil, fmt.Errorf("netbox unreachable")
}

func deviceInventory() *netbox.StaticClient {
	return &netbox.StaticClient{
		Devices: []netbox.Device{
			{
				ID:           1,
				Name:         "edge1",
				Status:       netbox.Status{Value: netbox.StatusActive},
				PrimaryIP:    &netbox.IPRef{ID: 10, Address: "10.0.0.5/24"},
				CustomFields: netbox.CustomFields{"prom_labels": `{"job":"node"}`},
			},
		},
	}
}

func TestDiscoverFlowWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	svc, err := NewService(Config{Output: Output{Path: sink.StdoutPath}}, deviceInventory(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.Flow.Sink = &sink.WriterSink{W: &buf}

	if err := svc.Discover(context.Background(), discovery.ModeDevice); err != nil {
		t.Fatalf("discover: %v", err)
	}

	var groups []discovery.TargetGroup
	if err := json.Unmarshal(buf.Bytes(), &groups); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 target group, got %d", len(groups))
	}
	if groups[0].Targets[0] != "10.0.0.5:10000" {
		t.Fatalf("unexpected target: %v", groups[0].Targets)
	}
	if groups[0].Labels["job"] != "node" || groups[0].Labels["__meta_netbox_name"] != "edge1" {
		t.Fatalf("unexpected labels: %+v", groups[0].Labels)
	}
}

func TestDiscoverFlowIsIdempotent(t *testing.T) {
	svc, err := NewService(Config{Output: Output{Path: sink.StdoutPath}}, deviceInventory(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var first, second bytes.Buffer
	svc.Flow.Sink = &sink.WriterSink{W: &first}
	if err := svc.Discover(context.Background(), discovery.ModeDevice); err != nil {
		t.Fatalf("first run: %v", err)
	}
	svc.Flow.Sink = &sink.WriterSink{W: &second}
	if err := svc.Discover(context.Background(), discovery.ModeDevice); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("same inventory must render byte-identical documents:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestDiscoverFlowFatalFetchWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	svc, err := NewService(Config{Output: Output{Path: sink.StdoutPath}}, &failingInventory{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.Flow.Sink = &sink.WriterSink{W: &buf}

	if err := svc.Discover(context.Background(), discovery.ModeDevice); err == nil {
		t.Fatal("initial fetch failure must be fatal")
	}
	if buf.Len() != 0 {
		t.Fatalf("no document may be written on fatal error, got %q", buf.String())
	}
}

func TestDiscoverFlowEmptyInventoryRendersEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	svc, err := NewService(Config{Output: Output{Path: sink.StdoutPath}}, &netbox.StaticClient{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.Flow.Sink = &sink.WriterSink{W: &buf}

	if err := svc.Discover(context.Background(), discovery.ModeDevice); err != nil {
		t.Fatalf("discover: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("empty inventory must render [], got %q", buf.String())
	}
}

func TestNewServiceRequiresInventory(t *testing.T) {
	if _, err := NewService(Config{}, nil, nil); err == nil {
		t.Fatal("expected error without an inventory client")
	}
}

func TestDiscoverFlowNilGuards(t *testing.T) {
	var flow *DiscoverFlow
	if err := flow.Run(context.Background(), discovery.ModeDevice); err == nil {
		t.Fatal("nil flow must report an error")
	}
	if err := (&DiscoverFlow{}).Run(context.Background(), discovery.ModeDevice); err == nil {
		t.Fatal("flow without dependencies must report an error")
	}
}
