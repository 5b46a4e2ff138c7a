// Package node defines the capability contract between the graph engine and
// node implementations.
//
// A node type is a plain Go struct stored by value in a nodestore.Store. The
// engine never inspects its fields; instead it checks, at dispatch time,
// which of the small interfaces below the record's pointer implements:
//
//   - Declarer registers the node's ports.
//   - Defaulter, Configurer and Validator run while the node is authored.
//   - Initializer and DeInitializer bracket a run of the compiled graph.
//   - Enterer receives flow calls.
//   - Outputter, ArrayOutputter and StringOutputter answer data reads.
//   - Labeled publishes named flow targets for goto-style indirection.
//
// Every capability is optional. A missing capability is never an error at
// this layer; the runtime logs a diagnostic and degrades to a default.
package node
