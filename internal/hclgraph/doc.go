// Package hclgraph loads authored graphs from HCL files into the
// format-agnostic config.Model.
//
// A file may hold any number of `graph` blocks:
//
//	graph "main" {
//	  node "start" "label" { fields = { name = "main" } }
//	  node "hello" "print" { values = { message = "hello" } }
//	  link {
//	    from = "start.out"
//	    to   = "hello.in"
//	  }
//	}
//
// `fields` and `values` are object expressions evaluated with a small set of
// string and collection functions (upper, lower, format, join, concat,
// length). A node may also declare `value_type` (a type expression such as
// `number` or `list(string)`), `exposed` (port names promoted when the graph
// is bound as a subgraph) and `subgraph` (the name of a graph to bind).
package hclgraph
