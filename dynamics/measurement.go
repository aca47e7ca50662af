package dynamics

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mobiligo/flowmesh/network"
	"github.com/pkg/errors"
)

// StreetMeasurement is one street's snapshot for a single tick.
type StreetMeasurement struct {
	StreetID   network.StreetID
	Density    float64
	NumAgents  int
	MeanSpeed  float64
	InputFlow  uint64
	OutputFlow uint64
}

// Measurement is the engine's per-tick snapshot: aggregate agent counts
// plus a per-street breakdown, in street-ID order so that WriteCSV output
// is reproducible across runs.
type Measurement struct {
	Tick            uint64
	TravellingCount uint64
	WaitingCount    uint64
	ArrivedTotal    uint64
	DemandRejected  uint64
	MeanSpeed       float64
	SpeedStdDev     float64
	Streets         []StreetMeasurement
}

// WriteCSV writes the measurement's per-street breakdown as CSV, one row
// per street, following the header-row-then-rows convention the rest of
// the corpus uses for tabular export.
func (m *Measurement) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	err := writer.Write([]string{"tick", "street_id", "density", "num_agents", "mean_speed", "input_flow", "output_flow", "global_mean_speed", "global_speed_stddev"})
	if err != nil {
		return errors.Wrap(err, "dynamics: write measurement header")
	}
	tick := strconv.FormatUint(m.Tick, 10)
	globalMean := strconv.FormatFloat(m.MeanSpeed, 'f', 6, 64)
	globalStd := strconv.FormatFloat(m.SpeedStdDev, 'f', 6, 64)
	for _, s := range m.Streets {
		row := []string{
			tick,
			strconv.FormatUint(uint64(s.StreetID), 10),
			strconv.FormatFloat(s.Density, 'f', 6, 64),
			strconv.Itoa(s.NumAgents),
			strconv.FormatFloat(s.MeanSpeed, 'f', 6, 64),
			strconv.FormatUint(s.InputFlow, 10),
			strconv.FormatUint(s.OutputFlow, 10),
			globalMean,
			globalStd,
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "dynamics: write measurement row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "dynamics: flush measurement csv")
	}
	return nil
}
