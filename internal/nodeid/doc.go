/*
Package nodeid provides the packed composite key that identifies one node
instance inside a blueprint graph.

An Address names a node storage (Source) and a slot inside that storage
(Node). Both halves are 32-bit indices, so an Address packs losslessly into a
single uint64 for use as a compact map key. The canonical string form is
`source:node`, e.g. `3:12`.

Index 0 is reserved as "no id" in both halves: node storages hand out slot ids
starting at 1, and graphs number their storages starting at 1.
*/
package nodeid
