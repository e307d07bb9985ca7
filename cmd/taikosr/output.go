package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/api"
	"github.com/givikap120/danser-taiko/app/rulesets/taiko/performance/export"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var title = cases.Title(language.English)

type report struct {
	Title      string         `yaml:"title"`
	Mods       string         `yaml:"mods,omitempty"`
	Speed      float64        `yaml:"speed"`
	Attributes api.Attributes `yaml:"attributes"`
	PP         *api.PPResults `yaml:"pp,omitempty"`
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	for i, h := range header {
		header[i] = title.String(h)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)

	return table
}

func writeAttributes(w io.Writer, format string, res rated, pp *api.PPResults) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(report{
			Title:      res.title,
			Mods:       res.diff.Mods.String(),
			Speed:      res.diff.Speed,
			Attributes: res.attr,
			PP:         pp,
		})

	case "prom":
		return export.WriteMetrics(w, res.attr, pp, export.Labels{
			"chart": res.title,
			"mods":  res.diff.Mods.String(),
		})
	}

	attr := res.attr

	heading := res.title
	if m := res.diff.Mods.String(); m != "" {
		heading += " +" + m
	}

	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	table := newTable(w, "skill", "rating")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, row := range []struct {
		name  string
		value float64
	}{
		{"stars", attr.StarRating},
		{"rhythm", attr.Rhythm},
		{"reading", attr.Reading},
		{"colour", attr.Colour},
		{"stamina", attr.Stamina},
		{"mechanical", attr.Mechanical},
	} {
		table.Append([]string{title.String(row.name), fmt.Sprintf("%.2f", row.value)})
	}

	table.Render()

	stats := newTable(w, "statistic", "value")
	stats.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	stats.AppendBulk([][]string{
		{"Max combo", humanize.Comma(int64(attr.MaxCombo))},
		{"Objects", fmt.Sprintf("%s (%s hits, %s rolls, %s swells)",
			humanize.Comma(int64(attr.ObjectCount)), humanize.Comma(int64(attr.Hits)),
			humanize.Comma(int64(attr.DrumRolls)), humanize.Comma(int64(attr.Swells)))},
		{"Great window", fmt.Sprintf("%.1f ms", attr.GreatHitWindow)},
		{"Mono stamina factor", fmt.Sprintf("%.3f", attr.MonoStaminaFactor)},
		{"Consistency factor", fmt.Sprintf("%.3f", attr.ConsistencyFactor)},
	})

	if pp != nil {
		stats.AppendBulk([][]string{
			{"Difficulty pp", fmt.Sprintf("%.2f", pp.Difficulty)},
			{"Accuracy pp", fmt.Sprintf("%.2f", pp.Accuracy)},
			{"Total pp", fmt.Sprintf("%.2f", pp.Total)},
			{"Estimated UR", fmt.Sprintf("%.2f", pp.EstimatedUnstableRate)},
		})
	}

	stats.Render()

	return nil
}

func writePeaks(w io.Writer, format string, peaks api.StrainPeaks, sectionLength float64) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(peaks)
	case "prom":
		return fmt.Errorf("strain peaks have no metrics representation, use table or yaml")
	}

	table := newTable(w, "section", "rhythm", "reading", "colour", "stamina", "mono stamina", "stars")

	for i := range peaks.Total {
		row := []string{formatSection(float64(i) * sectionLength)}

		for _, p := range [][]float64{peaks.Rhythm, peaks.Reading, peaks.Colour, peaks.Stamina, peaks.MonoStamina, peaks.Total} {
			row = append(row, fmt.Sprintf("%.3f", p[i]))
		}

		table.Append(row)
	}

	table.Render()

	return nil
}

// formatSection renders a section start as m:ss.mmm
func formatSection(ms float64) string {
	total := int64(ms)

	return fmt.Sprintf("%d:%02d.%03d", total/60000, total/1000%60, total%1000)
}
