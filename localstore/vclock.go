package localstore

import "github.com/DistributedClocks/GoVector/govec/vclock"

func parseClock(data []byte) (vclock.VClock, error) {
	if len(data) == 0 {
		return vclock.New(), nil
	}
	return vclock.FromBytes(data)
}

func mergeClocks(rows []objectVersion) (vclock.VClock, error) {
	merged := vclock.New()
	for _, row := range rows {
		parsed, err := parseClock(row.VClock)
		if err != nil {
			return nil, err
		}
		merged.Merge(parsed)
	}
	return merged, nil
}

// descends reports whether clock a includes everything clock b has seen,
// so a version carrying a supersedes one carrying b. Equal clocks count as
// descendant, replacing the version in place.
func descends(a, b vclock.VClock) bool {
	for id, ticks := range b {
		seen, ok := a.FindTicks(id)
		if !ok || seen < ticks {
			return false
		}
	}
	return true
}
