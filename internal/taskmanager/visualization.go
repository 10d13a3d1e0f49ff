package taskmanager

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Plan output formats
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// PlanVisualization renders execution plans for people and tools.
type PlanVisualization struct {
	registry *Registry
	plans    []Plan
}

// NewPlanVisualization creates a visualization of plans built from registry.
func NewPlanVisualization(registry *Registry, plans []Plan) *PlanVisualization {
	return &PlanVisualization{
		registry: registry,
		plans:    plans,
	}
}

// NodeInfo describes one planned task.
type NodeInfo struct {
	ID       string   `json:"id"`
	Layer    int      `json:"layer"`
	Step     int      `json:"step"`
	Dir      string   `json:"dir,omitempty"`
	Commands []string `json:"commands"`
}

// EdgeInfo is a dependency edge: From runs before To.
type EdgeInfo struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PlanInfo is the structure of one plan.
type PlanInfo struct {
	Target string     `json:"target"`
	Nodes  []NodeInfo `json:"nodes"`
	Edges  []EdgeInfo `json:"edges"`
}

// GeneratePlanInfo describes every plan, nodes in execution order.
func (v *PlanVisualization) GeneratePlanInfo() []PlanInfo {
	infos := make([]PlanInfo, 0, len(v.plans))
	for _, plan := range v.plans {
		info := PlanInfo{Target: plan.Target, Nodes: []NodeInfo{}, Edges: []EdgeInfo{}}
		inPlan := NewNameSet(plan.Order()...)

		step := 0
		for layer, names := range plan.Layers {
			for _, name := range names {
				step++
				task, ok := v.registry.Get(name)
				if !ok {
					continue
				}
				info.Nodes = append(info.Nodes, NodeInfo{
					ID:       name,
					Layer:    layer + 1,
					Step:     step,
					Dir:      task.Dir(),
					Commands: task.Commands(),
				})
				for _, dep := range task.Dependencies() {
					if inPlan.Contains(dep) {
						info.Edges = append(info.Edges, EdgeInfo{From: dep, To: name})
					}
				}
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// Render returns the plans in the given format.
func (v *PlanVisualization) Render(format string) (string, error) {
	switch format {
	case "", FormatText:
		return v.GenerateTextSummary(), nil
	case FormatDOT:
		return v.GenerateDOTGraph(), nil
	case FormatJSON:
		return v.GenerateJSON()
	default:
		return "", fmt.Errorf("unknown plan format %q (want %s, %s or %s)", format, FormatText, FormatDOT, FormatJSON)
	}
}

// GenerateJSON returns the plans as indented JSON.
func (v *PlanVisualization) GenerateJSON() (string, error) {
	data, err := json.MarshalIndent(v.GeneratePlanInfo(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// GenerateDOTGraph creates a DOT graph for Graphviz with one cluster per plan.
func (v *PlanVisualization) GenerateDOTGraph() string {
	var sb strings.Builder
	sb.WriteString("digraph takus {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n")

	for i, info := range v.GeneratePlanInfo() {
		sb.WriteString(fmt.Sprintf("\n  subgraph cluster_%d {\n", i))
		sb.WriteString(fmt.Sprintf("    label=%q;\n", info.Target))

		// node IDs are prefixed so a task shared by two plans stays in both clusters
		for _, node := range info.Nodes {
			label := fmt.Sprintf("%s\n%d command(s)", node.ID, len(node.Commands))
			sb.WriteString(fmt.Sprintf("    %q [label=%q];\n", dotID(i, node.ID), label))
		}
		for _, edge := range info.Edges {
			sb.WriteString(fmt.Sprintf("    %q -> %q;\n", dotID(i, edge.From), dotID(i, edge.To)))
		}
		sb.WriteString("  }\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotID(plan int, name string) string {
	return fmt.Sprintf("%d:%s", plan, name)
}

// GenerateTextSummary lists each plan layer by layer with the commands each
// task would run.
func (v *PlanVisualization) GenerateTextSummary() string {
	var sb strings.Builder
	for _, plan := range v.plans {
		sb.WriteString(fmt.Sprintf("%s (%d tasks)\n", plan.Target, plan.Len()))
		for i, layer := range plan.Layers {
			sb.WriteString(fmt.Sprintf("  layer %d\n", i+1))
			for _, name := range layer {
				sb.WriteString(fmt.Sprintf("    %s\n", name))
				task, ok := v.registry.Get(name)
				if !ok {
					continue
				}
				for _, command := range task.Commands() {
					sb.WriteString(fmt.Sprintf("      $ %s\n", command))
				}
			}
		}
	}
	return sb.String()
}
