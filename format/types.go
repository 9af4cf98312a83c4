package format

import "strings"

type (
	Shape           uint8
	CompressionType uint8
	EncodingType    uint8
)

const (
	ShapeTwoParameter          Shape = 0x1 // ShapeTwoParameter is the flat/sloped 2P model.
	ShapeThreeParameterCooling Shape = 0x2 // ShapeThreeParameterCooling is the 3PC model.
	ShapeThreeParameterHeating Shape = 0x3 // ShapeThreeParameterHeating is the 3PH model.
	ShapeFourParameter         Shape = 0x4 // ShapeFourParameter is the V-shaped 4P model.
	ShapeFiveParameter         Shape = 0x5 // ShapeFiveParameter is the two-changepoint 5P model.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	EncodingJSON EncodingType = 0x1 // EncodingJSON represents JSON report documents.
	EncodingYAML EncodingType = 0x2 // EncodingYAML represents YAML report documents.
)

// Shapes lists every supported model shape in ascending parameter order.
var Shapes = []Shape{
	ShapeTwoParameter,
	ShapeThreeParameterCooling,
	ShapeThreeParameterHeating,
	ShapeFourParameter,
	ShapeFiveParameter,
}

func (s Shape) String() string {
	switch s {
	case ShapeTwoParameter:
		return "2P"
	case ShapeThreeParameterCooling:
		return "3PC"
	case ShapeThreeParameterHeating:
		return "3PH"
	case ShapeFourParameter:
		return "4P"
	case ShapeFiveParameter:
		return "5P"
	default:
		return "Unknown"
	}
}

// NParams returns the number of coefficients of the shape, or 0 for an unknown shape.
func (s Shape) NParams() int {
	switch s {
	case ShapeTwoParameter:
		return 2
	case ShapeThreeParameterCooling, ShapeThreeParameterHeating:
		return 3
	case ShapeFourParameter:
		return 4
	case ShapeFiveParameter:
		return 5
	default:
		return 0
	}
}

// NChangepoints returns the number of changepoint coefficients of the shape.
func (s Shape) NChangepoints() int {
	switch s {
	case ShapeThreeParameterCooling, ShapeThreeParameterHeating, ShapeFourParameter:
		return 1
	case ShapeFiveParameter:
		return 2
	default:
		return 0
	}
}

// Valid reports whether s is one of the supported shapes.
func (s Shape) Valid() bool {
	return s.NParams() != 0
}

// ShapeFromString parses a shape name such as "3PC" (case-insensitive).
// The second return value is false for unknown names.
func ShapeFromString(name string) (Shape, bool) {
	for _, s := range Shapes {
		if strings.EqualFold(s.String(), strings.TrimSpace(name)) {
			return s, true
		}
	}

	return 0, false
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CompressionFromString parses a compression name such as "zstd" (case-insensitive).
// An empty name maps to CompressionNone.
func CompressionFromString(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (e EncodingType) String() string {
	switch e {
	case EncodingJSON:
		return "JSON"
	case EncodingYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// EncodingFromString parses a report encoding name ("json", "yaml" or "yml").
func EncodingFromString(name string) (EncodingType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return EncodingJSON, true
	case "yaml", "yml":
		return EncodingYAML, true
	default:
		return 0, false
	}
}
