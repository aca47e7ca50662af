// Command flowmesh-bench runs a synthetic grid network for a fixed
// number of ticks and prints a measurement summary every 10 ticks, as a
// minimal harness for exercising the dynamics engine outside of tests.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mobiligo/flowmesh/dynamics"
	"github.com/mobiligo/flowmesh/netio"
)

func main() {
	var (
		rows    = flag.Int("rows", 8, "grid rows")
		cols    = flag.Int("cols", 8, "grid columns")
		ticks   = flag.Int("ticks", 100, "number of ticks to run")
		seed    = flag.Uint64("seed", 1, "RNG seed")
		errProb = flag.Float64("error-prob", 0.0, "probability an agent deviates from its preferred route")
		csvPath = flag.String("csv", "", "optional path to write the final tick's per-street CSV snapshot")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	graph, err := netio.GenerateGrid(*rows, *cols, 100, 14, 1, 5)
	if err != nil {
		log.Fatalf("generate grid: %v", err)
	}

	engine := dynamics.NewEngine(graph,
		dynamics.WithSeed(*seed, *seed),
		dynamics.WithErrorProbability(*errProb),
		dynamics.WithLogger(dynamics.NewStdLogger(*verbose)),
	)

	destination := graph.NodeIDs()[len(graph.NodeIDs())-1]
	itinID, err := engine.AddItinerary(destination)
	if err != nil {
		log.Fatalf("add itinerary: %v", err)
	}
	origin := graph.NodeIDs()[0]
	for i := 0; i < *rows; i++ {
		if err := engine.InjectDemand(itinID, origin); err != nil {
			log.Fatalf("inject demand: %v", err)
		}
	}

	var last *dynamics.Measurement
	for i := 0; i < *ticks; i++ {
		m, err := engine.Step()
		if err != nil {
			log.Fatalf("step %d: %v", i, err)
		}
		last = m
		if i%10 == 0 {
			fmt.Printf("tick=%d travelling=%d waiting=%d arrived=%d rejected=%d\n",
				m.Tick, m.TravellingCount, m.WaitingCount, m.ArrivedTotal, m.DemandRejected)
		}
	}

	if *csvPath != "" && last != nil {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatalf("create csv: %v", err)
		}
		defer f.Close()
		if err := last.WriteCSV(f); err != nil {
			log.Fatalf("write csv: %v", err)
		}
	}
}
