// Package rules generates the price-scout Prometheus recording and alert
// rules, both as Prometheus Operator PrometheusRule resources and as plain
// rule files for a standalone Prometheus.
package rules

import "maps"

const (
	apiVersion = "monitoring.coreos.com/v1"
	kind       = "PrometheusRule"
)

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// crLabels select the Prometheus instance that loads the resources.
var crLabels = map[string]string{
	"prometheus":                "system-rules-prometheus",
	"app.kubernetes.io/part-of": "price-scout",
}

// PrometheusRule is a Kubernetes custom resource for Prometheus Operator.
type PrometheusRule struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   PrometheusRuleMetadata `yaml:"metadata"`
	Spec       PrometheusRuleSpec     `yaml:"spec"`
}

// PrometheusRuleMetadata holds the CR metadata fields.
type PrometheusRuleMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// PrometheusRuleSpec holds the rule groups.
type PrometheusRuleSpec struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is a named collection of recording or alerting rules.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is a single recording rule (Record set) or alerting rule (Alert set).
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// RuleFile is a standalone Prometheus rules file, the format loaded through
// rule_files and checked by promtool.
type RuleFile struct {
	Groups []RuleGroup `yaml:"groups"`
}

// File returns the resource's groups as a standalone rules file.
func (pr PrometheusRule) File() RuleFile {
	groups := make([]RuleGroup, len(pr.Spec.Groups))
	copy(groups, pr.Spec.Groups)
	return RuleFile{Groups: groups}
}

// Names returns the record or alert name of every rule, in order.
func (pr PrometheusRule) Names() []string {
	var names []string
	for _, g := range pr.Spec.Groups {
		for _, r := range g.Rules {
			if r.Record != "" {
				names = append(names, r.Record)
			} else {
				names = append(names, r.Alert)
			}
		}
	}
	return names
}

// newResource wraps a single rule group in a PrometheusRule named name.
func newResource(name, group string, rules ...Rule) PrometheusRule {
	return PrometheusRule{
		APIVersion: apiVersion,
		Kind:       kind,
		Metadata: PrometheusRuleMetadata{
			Name:   name,
			Labels: maps.Clone(crLabels),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{{Name: group, Rules: rules}},
		},
	}
}

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

func alert(name, expr, pending, severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    pending,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
