package netio

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mobiligo/flowmesh/network"
	"github.com/pkg/errors"
)

// ImportMatrix builds a Graph's nodes and streets from an adjacency or
// weighted-length matrix read from r. When isAdj is true, non-zero cells
// mark the presence of a street; when false, a cell's value becomes that
// street's length. name's extension selects the format: ".dsm" for the
// sparse "index value" pair format, anything else for a dense,
// whitespace-separated matrix.
//
// Every street is created with the given maxSpeed and capacity and a
// single lane; Street has no setter for maxSpeed or capacity.
func ImportMatrix(r io.Reader, name string, isAdj bool, maxSpeed float64, capacity uint64) (*network.Graph, error) {
	if filepath.Ext(name) == ".dsm" {
		return importSparseMatrix(r, isAdj, maxSpeed, capacity)
	}
	return importDenseMatrix(r, isAdj, maxSpeed, capacity)
}

func importSparseMatrix(r io.Reader, isAdj bool, maxSpeed float64, capacity uint64) (*network.Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)

	rows, err := nextUint(scanner)
	if err != nil {
		return nil, errors.Wrap(err, "netio: read matrix row count")
	}
	cols, err := nextUint(scanner)
	if err != nil {
		return nil, errors.Wrap(err, "netio: read matrix column count")
	}
	if rows != cols {
		return nil, ErrNonSquareMatrix
	}
	n := rows

	g := network.NewGraph()
	for i := uint64(0); i < n; i++ {
		if err := g.AddNode(network.NewIntersection(network.NodeID(i), capacity)); err != nil {
			return nil, errors.Wrap(err, "netio: add node from sparse matrix")
		}
	}

	for scanner.Scan() {
		index, err := strconv.ParseUint(scanner.Text(), 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "netio: parse matrix index")
		}
		if !scanner.Scan() {
			break
		}
		value, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, errors.Wrap(err, "netio: parse matrix value")
		}

		srcID := network.NodeID(index / n)
		dstID := network.NodeID(index % n)
		length := value
		if isAdj {
			length = 1
		}
		street := network.NewStreet(network.StreetID(index), srcID, dstID, length, maxSpeed, 1, capacity)
		if err := g.AddStreet(street); err != nil {
			return nil, errors.Wrap(err, "netio: add street from sparse matrix")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "netio: scan sparse matrix")
	}
	if err := g.BuildAdj(); err != nil {
		return nil, errors.Wrap(err, "netio: build adjacency matrix")
	}
	return g, nil
}

func importDenseMatrix(r io.Reader, isAdj bool, maxSpeed float64, capacity uint64) (*network.Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)

	rows, err := nextUint(scanner)
	if err != nil {
		return nil, errors.Wrap(err, "netio: read matrix row count")
	}
	cols, err := nextUint(scanner)
	if err != nil {
		return nil, errors.Wrap(err, "netio: read matrix column count")
	}
	if rows != cols {
		return nil, ErrNonSquareMatrix
	}
	n := rows

	g := network.NewGraph()
	for i := uint64(0); i < n; i++ {
		if err := g.AddNode(network.NewIntersection(network.NodeID(i), capacity)); err != nil {
			return nil, errors.Wrap(err, "netio: add node from dense matrix")
		}
	}

	var index uint64
	for scanner.Scan() {
		value, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, errors.Wrap(err, "netio: parse matrix value")
		}
		if value < 0 {
			return nil, ErrNegativeValue
		}
		if value > 0 {
			srcID := network.NodeID(index / n)
			dstID := network.NodeID(index % n)
			length := value
			if isAdj {
				length = 1
			}
			street := network.NewStreet(network.StreetID(index), srcID, dstID, length, maxSpeed, 1, capacity)
			if err := g.AddStreet(street); err != nil {
				return nil, errors.Wrap(err, "netio: add street from dense matrix")
			}
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "netio: scan dense matrix")
	}
	if err := g.BuildAdj(); err != nil {
		return nil, errors.Wrap(err, "netio: build adjacency matrix")
	}
	return g, nil
}

// ExportMatrix writes g's street set back out in the sparse .dsm format:
// a "rows cols" header followed by one "index value" pair per street,
// where value is 1 for an adjacency-only export or the street's length
// otherwise. ExportMatrix composed with ImportMatrix (isAdj=false) round
// trips the street length for every street.
func ExportMatrix(w io.Writer, g *network.Graph, isAdj bool) error {
	n := g.NodeCount()
	if _, err := fmt.Fprintf(w, "%d %d\n", n, n); err != nil {
		return errors.Wrap(err, "netio: write matrix header")
	}
	for _, sid := range g.StreetIDs() {
		s, err := g.Street(sid)
		if err != nil {
			return errors.Wrap(err, "netio: look up street for export")
		}
		index := uint64(s.Src())*n + uint64(s.Dst())
		value := s.Length()
		if isAdj {
			value = 1
		}
		if _, err := fmt.Fprintf(w, "%d %s\n", index, strconv.FormatFloat(value, 'f', -1, 64)); err != nil {
			return errors.Wrap(err, "netio: write matrix row")
		}
	}
	return nil
}

func nextUint(scanner *bufio.Scanner) (uint64, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 64)
}
