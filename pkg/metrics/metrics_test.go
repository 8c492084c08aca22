package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsExport(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CatalogLoad("fetch", false)
	m.CatalogLoad("embedded", true)
	m.CatalogSize(2)
	m.CartMutation("added")
	m.CartMutation("added")
	m.CartPersistFailure()
	m.RelaySend("pedido", true, 120*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "catalog_load_attempts_total", map[string]string{"source": "fetch", "outcome": "failure"}); err != nil {
		t.Fatalf("fetch catalog loads: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failed fetch=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", map[string]string{"kind": "added"}); err != nil {
		t.Fatalf("fetch cart mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected added=2, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "relay_send_duration_seconds", map[string]string{"kind": "pedido"}); err != nil {
		t.Fatalf("fetch relay duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	mf := findMetricFamily(mfs, "catalog_products")
	if mf == nil || mf.GetMetric()[0].GetGauge().GetValue() != 2 {
		t.Fatalf("expected catalog_products gauge 2")
	}
}

func TestNilStorefrontIsNoop(t *testing.T) {
	var m *Storefront
	m.CatalogLoad("fetch", true)
	m.CartMutation("added")
	m.RelaySend("pedido", false, time.Second)

	unregistered := New(nil)
	unregistered.CartPersistFailure()
	unregistered.CatalogSize(3)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
