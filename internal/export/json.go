package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/lmarzola/odelab/internal/config"
	"github.com/lmarzola/odelab/internal/ode"
)

type ExportData struct {
	Model  string             `json:"model"`
	Method string             `json:"method"`
	Order  int                `json:"order"`
	Step   float64            `json:"step"`
	T0     float64            `json:"t0"`
	T1     float64            `json:"t1"`
	Points int                `json:"points"`
	Times  []float64          `json:"times"`
	States [][]float64        `json:"states"`
	Params map[string]float64 `json:"params,omitempty"`
}

// Data assembles the JSON payload for one run, unpacking the flat
// trajectory storage into per-point rows.
func Data(cfg *config.Config, tr *ode.Trajectory) ExportData {
	states := make([][]float64, tr.Len())
	for i := range states {
		states[i] = append([]float64(nil), tr.Y(i)...)
	}
	return ExportData{
		Model:  cfg.Model,
		Method: ode.Order(cfg.Order).String(),
		Order:  cfg.Order,
		Step:   cfg.Step,
		T0:     cfg.T0,
		T1:     cfg.T1,
		Points: tr.Len(),
		Times:  tr.Times,
		States: states,
		Params: cfg.Params,
	}
}

func WriteJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSONTo(file, data)
}

func WriteJSONTo(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
