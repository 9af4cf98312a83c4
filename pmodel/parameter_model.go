package pmodel

import "github.com/arloliu/mandv/format"

// ParameterModel identifies the family a model function belongs to.
type ParameterModel interface {
	Shape() format.Shape
}

// TwoParameterModel is the 2P family.
type TwoParameterModel struct{}

// ThreeParameterCoolingModel is the 3PC family.
type ThreeParameterCoolingModel struct{}

// ThreeParameterHeatingModel is the 3PH family.
type ThreeParameterHeatingModel struct{}

// FourParameterModel is the 4P family.
type FourParameterModel struct{}

// FiveParameterModel is the 5P family.
type FiveParameterModel struct{}

func (TwoParameterModel) Shape() format.Shape          { return format.ShapeTwoParameter }
func (ThreeParameterCoolingModel) Shape() format.Shape { return format.ShapeThreeParameterCooling }
func (ThreeParameterHeatingModel) Shape() format.Shape { return format.ShapeThreeParameterHeating }
func (FourParameterModel) Shape() format.Shape         { return format.ShapeFourParameter }
func (FiveParameterModel) Shape() format.Shape         { return format.ShapeFiveParameter }

// ParameterModelFor returns the parameter model of shape, or nil for an unknown shape.
func ParameterModelFor(shape format.Shape) ParameterModel {
	switch shape {
	case format.ShapeTwoParameter:
		return TwoParameterModel{}
	case format.ShapeThreeParameterCooling:
		return ThreeParameterCoolingModel{}
	case format.ShapeThreeParameterHeating:
		return ThreeParameterHeatingModel{}
	case format.ShapeFourParameter:
		return FourParameterModel{}
	case format.ShapeFiveParameter:
		return FiveParameterModel{}
	default:
		return nil
	}
}
