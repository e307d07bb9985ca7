package export

import (
	"bytes"
	"testing"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/prometheus/common/expfmt"
)

func TestWriteMetrics_RoundTrip(t *testing.T) {
	attr := api.Attributes{
		StarRating: 5.25,
		Rhythm:     1,
		Colour:     2,
		Stamina:    2.25,
		Mechanical: 4.25,
		MaxCombo:   812,
	}

	pp := &api.PPResults{Total: 301.5, EstimatedUnstableRate: 110}

	var buf bytes.Buffer
	if err := WriteMetrics(&buf, attr, pp, Labels{"mods": "DT", "chart": "stream test"}); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}

	var parser expfmt.TextParser

	mfs, err := parser.TextToMetricFamilies(&buf)
	if err != nil {
		t.Fatalf("parse exposition: %v\n%s", err, buf.String())
	}

	want := map[string]float64{
		"taiko_star_rating":             5.25,
		"taiko_mechanical_difficulty":   4.25,
		"taiko_max_combo":               812,
		"taiko_pp_total":                301.5,
		"taiko_estimated_unstable_rate": 110,
	}

	for name, v := range want {
		mf, ok := mfs[name]
		if !ok {
			t.Errorf("missing family %s", name)
			continue
		}

		m := mf.GetMetric()[0]
		if got := m.GetGauge().GetValue(); got != v {
			t.Errorf("%s: got %v, want %v", name, got, v)
		}

		labels := m.GetLabel()
		if len(labels) != 2 || labels[0].GetName() != "chart" || labels[1].GetValue() != "DT" {
			t.Errorf("%s: unexpected labels %v", name, labels)
		}
	}
}

func TestFamilies_WithoutPP(t *testing.T) {
	for _, mf := range Families(api.Attributes{}, nil, nil) {
		if mf.GetName() == "taiko_pp_total" {
			t.Fatal("pp gauges should only be present when pp is given")
		}

		if len(mf.GetMetric()[0].GetLabel()) != 0 {
			t.Errorf("%s: expected no labels", mf.GetName())
		}
	}
}
