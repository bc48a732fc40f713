package lod

// IsFacing reports whether light counts as seen from reference.
//
// The dot product is taken between the light-to-reference vector and the
// reference's own forward, and the light is facing while dot < threshold.
// The dot is returned for diagnostics.
func IsFacing(light, reference PositionSnapshot, threshold float32) (bool, float32) {
	direction := reference.Position.Sub(light.Position)
	dot := direction.Dot(reference.Forward)
	return dot < threshold, dot
}
