package plot

import "slices"

// Default trace modes and names.
const (
	ModelMode   = "markers+lines"
	ModelName   = "Model"
	RawDataMode = "markers"
	RawDataName = "Raw Data"
)

// Trace is one renderable layer of a figure.
type Trace struct {
	X    []float64 `json:"x" yaml:"x"`
	Y    []float64 `json:"y" yaml:"y"`
	Mode string    `json:"mode" yaml:"mode"`
	Name string    `json:"name" yaml:"name"`
}

// ModelParameters is the model layer of a figure.
type ModelParameters struct {
	ModelCoordinates
	Mode string
	Name string
}

// NewModelParameters wraps coordinates with the default model mode and name.
func NewModelParameters(c ModelCoordinates) ModelParameters {
	return ModelParameters{ModelCoordinates: c, Mode: ModelMode, Name: ModelName}
}

// Trace orders the points as first, changepoints, last.
func (p ModelParameters) Trace() Trace {
	n := len(p.Changepoints) + 2
	t := Trace{
		X:    make([]float64, 0, n),
		Y:    make([]float64, 0, n),
		Mode: p.Mode,
		Name: p.Name,
	}

	t.X = append(t.X, p.First.X)
	t.Y = append(t.Y, p.First.Y)
	for _, cp := range p.Changepoints {
		t.X = append(t.X, cp.X)
		t.Y = append(t.Y, cp.Y)
	}
	t.X = append(t.X, p.Last.X)
	t.Y = append(t.Y, p.Last.Y)

	return t
}

// RawDataParameters is the observations layer of a figure.
type RawDataParameters struct {
	X    []float64
	Y    []float64
	Mode string
	Name string
}

// NewRawDataParameters wraps observations with the default raw-data mode and name.
func NewRawDataParameters(x, y []float64) RawDataParameters {
	return RawDataParameters{X: x, Y: y, Mode: RawDataMode, Name: RawDataName}
}

// Trace returns copies of the observations.
func (p RawDataParameters) Trace() Trace {
	return Trace{X: slices.Clone(p.X), Y: slices.Clone(p.Y), Mode: p.Mode, Name: p.Name}
}

// ModelCoordinatesDeriver derives named model layers with a fixed parser.
type ModelCoordinatesDeriver struct {
	Name   string
	Mode   string
	Parser CoordinatesParser
}

// Derive parses the coordinates and returns them as a model layer.
func (d ModelCoordinatesDeriver) Derive(x, predY, coeffs []float64) (ModelParameters, error) {
	c, err := d.Parser.Parse(x, predY, coeffs)
	if err != nil {
		return ModelParameters{}, err
	}

	mode := d.Mode
	if mode == "" {
		mode = ModelMode
	}

	return ModelParameters{ModelCoordinates: c, Mode: mode, Name: d.Name}, nil
}
