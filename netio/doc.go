// Package netio loads network.Graph values from plain-text and CSV
// sources and exports an adjacency matrix back out. The .dsm sparse
// format, the whitespace-separated dense matrix format, and the OSM node
// and edge CSV layouts all mirror formats the wider corpus already reads
// and writes; netio only adapts them to produce a *network.Graph instead
// of populating a C++ Graph's own fields directly.
package netio
