package lod

import (
	"errors"
	"fmt"
)

var ErrUnsupportedKind = errors.New("not supported light type")

type LightKind uint8

const (
	LightKindPoint LightKind = iota
	LightKindSpot
	LightKindDirectional
	LightKindArea
	LightKindDisc
)

func (k LightKind) String() string {
	switch k {
	case LightKindPoint:
		return "point"
	case LightKindSpot:
		return "spot"
	case LightKindDirectional:
		return "directional"
	case LightKindArea:
		return "area"
	case LightKindDisc:
		return "disc"
	}
	return fmt.Sprintf("LightKind(%d)", uint8(k))
}

// KindSpec holds the fixed creation parameters for a light kind.
type KindSpec struct {
	NamePrefix      string
	BounceIntensity float32
}

func (k LightKind) Spec() (KindSpec, error) {
	switch k {
	case LightKindPoint:
		return KindSpec{NamePrefix: "LOD_PLight"}, nil
	case LightKindSpot:
		return KindSpec{NamePrefix: "LOD_SLight"}, nil
	case LightKindDirectional:
		return KindSpec{NamePrefix: "LOD_DLight", BounceIntensity: 1}, nil
	}
	return KindSpec{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
}
