package widgets

// ratioReduce takes up to total cells away from values in proportion to
// ratios, never more than maximums[i] from values[i].
func ratioReduce(total int, ratios, maximums, values []int) []int {
	totalRatio := 0
	eff := make([]int, len(ratios))
	for i, r := range ratios {
		if maximums[i] > 0 {
			eff[i] = r
			totalRatio += r
		}
	}
	out := append([]int(nil), values...)
	if totalRatio == 0 {
		return out
	}
	remaining := total
	for i, r := range eff {
		if r == 0 || totalRatio <= 0 {
			continue
		}
		d := min(maximums[i], divRound(r*remaining, totalRatio))
		out[i] -= d
		remaining -= d
		totalRatio -= r
	}
	return out
}

// ratioDistribute splits total into parts proportional to ratios, each
// at least minimums[i] when minimums is given. The parts sum to total.
func ratioDistribute(total int, ratios, minimums []int) []int {
	eff := append([]int(nil), ratios...)
	if minimums != nil {
		for i := range eff {
			if minimums[i] == 0 {
				eff[i] = 0
			}
		}
	}
	totalRatio := 0
	for _, r := range eff {
		totalRatio += r
	}
	out := make([]int, len(eff))
	remaining := total
	for i, r := range eff {
		var d int
		if totalRatio > 0 {
			d = divCeil(r*remaining, totalRatio)
			if minimums != nil {
				d = max(d, minimums[i])
			}
		} else {
			d = remaining
		}
		out[i] = d
		totalRatio -= r
		remaining -= d
	}
	return out
}

func divRound(a, b int) int {
	return (2*a + b) / (2 * b)
}

func divCeil(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

// ShrinkWidths reduces column widths to fit target cells. Columns give
// up width in proportion to their current width and never go below their
// floor (at least 1). The result sums to target, or to the sum of the
// floors when target is smaller than that.
func ShrinkWidths(widths, floors []int, target int) []int {
	out := append([]int(nil), widths...)
	lo := make([]int, len(widths))
	for i, w := range widths {
		f := 1
		if i < len(floors) && floors[i] > f {
			f = floors[i]
		}
		lo[i] = min(f, max(w, 1))
	}
	if sum(lo) >= target {
		for i := range out {
			out[i] = min(out[i], lo[i])
		}
		return out
	}
	for {
		excess := sum(out) - target
		if excess <= 0 {
			return out
		}
		ratios := make([]int, len(out))
		room := make([]int, len(out))
		for i, w := range out {
			if w > lo[i] {
				ratios[i] = w
				room[i] = w - lo[i]
			}
		}
		next := ratioReduce(excess, ratios, room, out)
		if sum(next) == sum(out) {
			return out
		}
		out = next
	}
}
