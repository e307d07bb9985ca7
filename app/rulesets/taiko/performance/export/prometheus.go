// Package export renders difficulty attributes in the Prometheus text exposition format,
// suitable for a node_exporter textfile collector.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const namespace = "taiko"

// Labels identify the rated chart, e.g. {"chart": "...", "mods": "DT"}
type Labels map[string]string

func (l Labels) pairs() []*dto.LabelPair {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]*dto.LabelPair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, &dto.LabelPair{Name: proto.String(k), Value: proto.String(l[k])})
	}

	return pairs
}

type gauge struct {
	name, help string
	value      float64
}

func family(g gauge, labels []*dto.LabelPair) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(namespace + "_" + g.name),
		Help: proto.String(g.help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{
			Label: labels,
			Gauge: &dto.Gauge{Value: proto.Float64(g.value)},
		}},
	}
}

// Families builds one gauge family per attribute, plus pp gauges when pp is non-nil
func Families(attr api.Attributes, pp *api.PPResults, labels Labels) []*dto.MetricFamily {
	gauges := []gauge{
		{"star_rating", "Overall star rating.", attr.StarRating},
		{"rhythm_difficulty", "Rhythm share of the star rating.", attr.Rhythm},
		{"reading_difficulty", "Reading share of the star rating.", attr.Reading},
		{"colour_difficulty", "Colour share of the star rating.", attr.Colour},
		{"stamina_difficulty", "Stamina share of the star rating.", attr.Stamina},
		{"mechanical_difficulty", "Colour plus stamina.", attr.Mechanical},
		{"mono_stamina_factor", "Single-side stamina relative to overall stamina.", attr.MonoStaminaFactor},
		{"consistency_factor", "Average object strain relative to the hardest objects.", attr.ConsistencyFactor},
		{"great_hit_window_ms", "Great hit window in rate-adjusted milliseconds.", attr.GreatHitWindow},
		{"max_combo", "Maximum achievable combo.", float64(attr.MaxCombo)},
		{"objects", "Number of chart objects.", float64(attr.ObjectCount)},
	}

	if pp != nil {
		gauges = append(gauges,
			gauge{"pp_total", "Total performance points.", pp.Total},
			gauge{"pp_difficulty", "Difficulty performance points.", pp.Difficulty},
			gauge{"pp_accuracy", "Accuracy performance points.", pp.Accuracy},
			gauge{"estimated_unstable_rate", "Estimated unstable rate of the score.", pp.EstimatedUnstableRate},
		)
	}

	lp := labels.pairs()

	families := make([]*dto.MetricFamily, 0, len(gauges))
	for _, g := range gauges {
		families = append(families, family(g, lp))
	}

	return families
}

// WriteMetrics writes the attributes to w in the text exposition format
func WriteMetrics(w io.Writer, attr api.Attributes, pp *api.PPResults, labels Labels) error {
	for _, mf := range Families(attr, pp, labels) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("export: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
