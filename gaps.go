package readmet

// GapRange is one undownloaded byte range of the target file, derived by
// pairing a gap-start tag with the gap-end tag carrying the same reference
// token. Ranges follow whatever the source file declared: they are not
// guaranteed sorted, non-overlapping, or exhaustive.
type GapRange struct {
	Start uint32
	End   uint32
}

// Size returns the byte length of the range.
func (g GapRange) Size() uint32 {
	return g.End - g.Start
}

// CollectGaps pairs gap-start tags with gap-end tags by reference token and
// returns the closed ranges, in the order the starts appear in the tag
// stream. A start with no matching end, or whose matched end is 0, yields
// no range - best-effort reconciliation, not an error.
//
// The pairing is a nested scan over the tag list. Reference tokens carry no
// ordering or adjacency guarantees, so each start searches the whole list;
// tag lists are tens of entries, which keeps the quadratic scan cheap. A
// map keyed by token would behave identically.
func CollectGaps(tags []*Tag) []GapRange {
	var gaps []GapRange
	for _, tag := range tags {
		sentinel, ref, ok := tag.GapReference()
		if !ok || sentinel != GapStart || tag.Type != TagInteger {
			continue
		}
		end := uint32(0)
		for _, candidate := range tags {
			s, r, ok := candidate.GapReference()
			if ok && s == GapEnd && candidate.Type == TagInteger && r == ref {
				end = candidate.IntValue
				break
			}
		}
		if end > 0 {
			gaps = append(gaps, GapRange{Start: tag.IntValue, End: end})
		}
	}
	return gaps
}

// TotalGapSize sums the byte lengths of all ranges.
func TotalGapSize(gaps []GapRange) uint32 {
	var total uint32
	for _, g := range gaps {
		total += g.Size()
	}
	return total
}

// StatusMap partitions [0, fileSize) into buckets equal-width intervals and
// reports each as downloaded (true) or missing (false). A bucket is missing
// when its byte interval overlaps any gap range; intervals are half-open,
// so a bucket ending exactly at a gap's start does not overlap it. With a
// zero file size every bucket reports downloaded.
func StatusMap(gaps []GapRange, fileSize uint32, buckets int) []bool {
	status := make([]bool, buckets)
	for i := range status {
		bucketStart := uint32(float64(i) / float64(buckets) * float64(fileSize))
		bucketEnd := uint32(float64(i+1) / float64(buckets) * float64(fileSize))
		status[i] = true
		for _, g := range gaps {
			if !(bucketEnd <= g.Start || bucketStart >= g.End) {
				status[i] = false
				break
			}
		}
	}
	return status
}

// Percentage returns part as a percentage of total, or 0 when total is 0.
func Percentage(part, total uint32) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100.0 / float64(total)
}
