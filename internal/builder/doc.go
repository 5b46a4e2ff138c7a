/*
Package builder turns the format-agnostic config.Model into authoring graphs.

Building is a multi-phase process:

 1. Ordering: every graph becomes a node of a `dag.Graph` with an edge from
    each bound subgraph to the graph binding it. The topological order of
    that dag is the build order, so a subgraph's exposed ports exist before
    any node binds it. A cycle is an authoring error.

 2. Nodes: each node is created from its registered type, named, given its
    value type and fields, validated and bound to its subgraph.

 3. Ports and links: exposed ports are promoted, seeded values are applied
    and links are created by name. A link the graph rejects is an authoring
    error, never silently dropped.

The resulting *Library holds one *meta.Graph per authored graph and resolves
subgraph references for them.
*/
package builder
