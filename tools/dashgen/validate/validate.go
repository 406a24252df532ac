// Package validate checks generated dashboards and rule files: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/price-scout/tools/dashgen/rules"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// histogram series suffixes that resolve to their base metric.
var seriesSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses a single PromQL expression and checks the metric names it
// selects against known.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result
	if strings.TrimSpace(expr) == "" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: empty expression", where))
		return res
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parse %q: %v", where, expr, err))
		return res
	}

	for _, name := range metricNames(node) {
		if !isKnown(name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, name))
		}
	}
	return res
}

// Dashboard validates every target expression of a built dashboard. The
// dashboard is walked in its JSON form so any panel type is covered.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshal dashboard: %v", err))
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("unmarshal dashboard: %v", err))
		return res
	}

	exprs := collectExprs(doc, "dashboard", nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard has no query expressions")
	}
	for _, e := range exprs {
		res.merge(Expr(e.where, e.expr, known))
	}
	return res
}

// Rules validates every rule expression of a PrometheusRule. Record names
// defined earlier in the same resource count as known for later rules.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	names := make(map[string]bool, len(known))
	for k, v := range known {
		names[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for i, r := range g.Rules {
			where := fmt.Sprintf("%s/%s[%d]", cr.Metadata.Name, g.Name, i)
			switch {
			case r.Record != "" && r.Alert != "":
				res.Errors = append(res.Errors, where+": rule sets both record and alert")
			case r.Record == "" && r.Alert == "":
				res.Errors = append(res.Errors, where+": rule sets neither record nor alert")
			case r.Alert != "" && r.Labels["severity"] == "":
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: alert %s has no severity", where, r.Alert))
			}
			res.merge(Expr(where, r.Expr, names))
			if r.Record != "" {
				names[r.Record] = true
			}
		}
	}
	return res
}

type located struct {
	where string
	expr  string
}

func collectExprs(v any, path string, out []located) []located {
	switch node := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == "expr" {
				if s, ok := node[k].(string); ok {
					out = append(out, located{where: path, expr: s})
					continue
				}
			}
			out = collectExprs(node[k], path+"."+k, out)
		}
	case []any:
		for i, item := range node {
			out = collectExprs(item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	}
	return out
}

func metricNames(node parser.Node) []string {
	var names []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			names = append(names, vs.Name)
		}
		return nil
	})
	return names
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range seriesSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
