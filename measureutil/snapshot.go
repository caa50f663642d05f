package measureutil

import "greyhound/metrics"

// SnapshotAndReset returns the global measurement map and clears it.
func SnapshotAndReset() map[string]uint64 {
	return metrics.Global.SnapshotAndReset()
}
