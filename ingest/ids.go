package ingest

// small ID set helpers shared by the jobs

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func diffIDs(ids []int64, exclude map[int64]struct{}) []int64 {
	var out []int64
	for _, id := range ids {
		if _, ok := exclude[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func intersectIDs(ids []int64, keep map[int64]struct{}) []int64 {
	var out []int64
	for _, id := range ids {
		if _, ok := keep[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func limitIDs(ids []int64, limit int) []int64 {
	if limit > 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}
