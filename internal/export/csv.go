package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/gravsim/internal/sim"
)

// WriteCSV writes one row per body per sample.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "time", "speed", "energy", "body", "x", "y", "z"}); err != nil {
		return err
	}

	for _, s := range result.Samples {
		head := []string{
			strconv.Itoa(s.Tick),
			formatFloat(s.Time),
			formatFloat(s.Speed),
			formatFloat(s.Energy),
		}
		for i, p := range s.Positions {
			row := append(head[:4:4], strconv.Itoa(i), formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
