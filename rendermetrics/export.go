package rendermetrics

import (
	"strconv"
	"strings"

	"github.com/golang/glog"
	"go.opencensus.io/stats/view"
)

// LogExporter writes every exported view row to the INFO log.
type LogExporter struct{}

func (LogExporter) ExportView(vd *view.Data) {
	for _, row := range vd.Rows {
		tags := make([]string, 0, len(row.Tags))
		for _, t := range row.Tags {
			tags = append(tags, t.Key.Name()+"="+t.Value)
		}
		glog.Infof("metric %s{%s}: %s", vd.View.Name, strings.Join(tags, ","), describe(row.Data))
	}
}

func describe(d view.AggregationData) string {
	switch d := d.(type) {
	case *view.SumData:
		return formatFloat(d.Value)
	case *view.CountData:
		return formatInt(d.Value)
	case *view.DistributionData:
		return "count=" + formatInt(d.Count) + " mean=" + formatFloat(d.Mean) + " max=" + formatFloat(d.Max)
	case *view.LastValueData:
		return formatFloat(d.Value)
	}
	return "?"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
