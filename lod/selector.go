package lod

// SelectTier returns the farthest tier whose minimum distance has been reached.
// Tiers are scanned from the last index down; tier 0 is the fallback when the
// distance is below every threshold. An empty table returns index -1.
func SelectTier(distanceSquared float32, tiers []QualityProfile) (QualityProfile, int) {
	for i := len(tiers) - 1; i >= 0; i-- {
		if distanceSquared < tiers[i].MinDistanceSquared() && i > 0 {
			continue
		}
		return tiers[i], i
	}
	return QualityProfile{}, -1
}
