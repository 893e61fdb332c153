package render

import "github.com/paulmach/orb"

type edge struct{ a, b orb.Point }

func newEdge(p, q orb.Point) edge {
	if q[0] < p[0] || (q[0] == p[0] && q[1] < p[1]) {
		p, q = q, p
	}
	return edge{p, q}
}

// coastline returns the ring segments that belong to exactly one country.
// Borders shared by two neighbours share their vertices in the basemap, so
// what remains is the land/sea boundary.
func coastline(countries []orb.MultiPolygon) []orb.LineString {
	count := make(map[edge]int)
	eachRing(countries, func(r orb.Ring) {
		for i := 0; i+1 < len(r); i++ {
			count[newEdge(r[i], r[i+1])]++
		}
	})

	var lines []orb.LineString
	eachRing(countries, func(r orb.Ring) {
		var run orb.LineString
		for i := 0; i+1 < len(r); i++ {
			if count[newEdge(r[i], r[i+1])] != 1 {
				if len(run) > 1 {
					lines = append(lines, run)
				}
				run = nil
				continue
			}
			if len(run) == 0 {
				run = append(run, r[i])
			}
			run = append(run, r[i+1])
		}
		if len(run) > 1 {
			lines = append(lines, run)
		}
	})
	return lines
}

// eachRing visits every ring with at least three points, closed.
func eachRing(mps []orb.MultiPolygon, fn func(orb.Ring)) {
	for _, mp := range mps {
		for _, poly := range mp {
			for _, r := range poly {
				if len(r) < 3 {
					continue
				}
				if !r.Closed() {
					r = append(append(orb.Ring(nil), r...), r[0])
				}
				fn(r)
			}
		}
	}
}
