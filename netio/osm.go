package netio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mobiligo/flowmesh/network"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ImportOSMNodes reads a CSV with at least "id", "longitude", and
// "latitude" columns and adds one Intersection node per row, in file
// order. capacity is applied to every node created this way.
func ImportOSMNodes(r io.Reader, capacity uint64) (*network.Graph, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "netio: read OSM node header")
	}
	col, err := columnIndex(header, "id", "longitude", "latitude")
	if err != nil {
		return nil, err
	}

	g := network.NewGraph()
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "netio: read OSM node row")
		}
		id, err := strconv.ParseUint(row[col["id"]], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "netio: parse OSM node id")
		}
		lon, err := strconv.ParseFloat(row[col["longitude"]], 64)
		if err != nil {
			return nil, errors.Wrap(err, "netio: parse OSM node longitude")
		}
		lat, err := strconv.ParseFloat(row[col["latitude"]], 64)
		if err != nil {
			return nil, errors.Wrap(err, "netio: parse OSM node latitude")
		}
		n := network.NewIntersection(network.NodeID(id), capacity)
		n.SetCoords(orb.Point{lon, lat})
		if err := g.AddNode(n); err != nil {
			return nil, errors.Wrap(err, "netio: add OSM node")
		}
	}
	return g, nil
}

// ImportOSMEdges reads a CSV with at least "id", "source_node",
// "target_node", and "length_meters" columns and adds one Street per row
// to g, which must already contain every referenced node (typically via
// a prior ImportOSMNodes call).
func ImportOSMEdges(r io.Reader, g *network.Graph, maxSpeed float64, lanes uint8, capacity uint64) error {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return errors.Wrap(err, "netio: read OSM edge header")
	}
	col, err := columnIndex(header, "id", "source_node", "target_node", "length_meters")
	if err != nil {
		return err
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "netio: read OSM edge row")
		}
		id, err := strconv.ParseUint(row[col["id"]], 10, 64)
		if err != nil {
			return errors.Wrap(err, "netio: parse OSM edge id")
		}
		src, err := strconv.ParseUint(row[col["source_node"]], 10, 64)
		if err != nil {
			return errors.Wrap(err, "netio: parse OSM edge source")
		}
		dst, err := strconv.ParseUint(row[col["target_node"]], 10, 64)
		if err != nil {
			return errors.Wrap(err, "netio: parse OSM edge target")
		}
		length, err := strconv.ParseFloat(row[col["length_meters"]], 64)
		if err != nil {
			return errors.Wrap(err, "netio: parse OSM edge length")
		}
		s := network.NewStreet(network.StreetID(id), network.NodeID(src), network.NodeID(dst), length, maxSpeed, lanes, capacity)
		if err := g.AddStreet(s); err != nil {
			return errors.Wrap(err, "netio: add OSM edge")
		}
	}
	if err := g.BuildAdj(); err != nil {
		return errors.Wrap(err, "netio: build adjacency matrix")
	}
	g.BuildStreetAngles()
	return nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "column %q", name)
		}
	}
	return col, nil
}
