package hclgraph

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level block a file may contain.
type fileRoot struct {
	Graphs []*graphBlock `hcl:"graph,block"`
	Remain hcl.Body      `hcl:",remain"`
}

type graphBlock struct {
	Name  string       `hcl:"name,label"`
	Nodes []*nodeBlock `hcl:"node,block"`
	Links []*linkBlock `hcl:"link,block"`
}

type nodeBlock struct {
	Name      string         `hcl:"name,label"`
	Type      string         `hcl:"type,label"`
	Fields    hcl.Expression `hcl:"fields,optional"`
	Values    hcl.Expression `hcl:"values,optional"`
	ValueType hcl.Expression `hcl:"value_type,optional"`
	Exposed   []string       `hcl:"exposed,optional"`
	Subgraph  string         `hcl:"subgraph,optional"`
}

type linkBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
