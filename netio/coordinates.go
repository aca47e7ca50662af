package netio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/mobiligo/flowmesh/network"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ImportCoordinates reads a .dsm coordinate file — a node count followed
// by "lat lon" pairs, one per node in ID order — and assigns each
// registered node its coordinates. Nodes beyond the file's count are
// left untouched; ErrTooFewCoordinates is returned if the file has fewer
// rows than g has nodes.
func ImportCoordinates(r io.Reader, g *network.Graph) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	n, err := nextUint(scanner)
	if err != nil {
		return errors.Wrap(err, "netio: read coordinate count")
	}
	if n < g.NodeCount() {
		return ErrTooFewCoordinates
	}

	for i := uint64(0); i < n; i++ {
		lat, err := nextFloat(scanner)
		if err != nil {
			return errors.Wrap(err, "netio: read latitude")
		}
		lon, err := nextFloat(scanner)
		if err != nil {
			return errors.Wrap(err, "netio: read longitude")
		}
		node, err := g.Node(network.NodeID(i))
		if err != nil {
			continue
		}
		node.SetCoords(orb.Point{lon, lat})
	}
	return nil
}

func nextFloat(scanner *bufio.Scanner) (float64, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(scanner.Text(), 64)
}
