package spatial

import "nagrik-nivedan/models"

const (
	// clusterRadiusDeg is the membership threshold in raw degrees,
	// roughly 100 m at city latitudes. At that scale plain Euclidean
	// distance over lat/lng is an acceptable proxy for geodesic
	// distance, which is why the clustering deliberately does not use
	// the great-circle utility.
	clusterRadiusDeg = 0.001
	// saturationCount is the member count at which a cell reaches full
	// heatmap intensity.
	saturationCount = 5
)

type cluster struct {
	centerLat float64
	centerLng float64
	members   []models.LocatedReport
}

// Heatmap groups located reports into density cells and computes a
// bounded intensity per cell.
//
// The assignment is greedy first-fit: reports are scanned in input
// order and join the earliest-created cluster whose fixed center lies
// within the threshold, even if a later cluster is closer. The result
// therefore depends on input order; callers that need reproducibility
// must feed a stable order.
func Heatmap(reports []models.LocatedReport) []models.HeatmapPoint {
	var clusters []*cluster

	for _, r := range reports {
		var target *cluster
		for _, c := range clusters {
			dLat := r.Latitude - c.centerLat
			dLng := r.Longitude - c.centerLng
			if dLat*dLat+dLng*dLng < clusterRadiusDeg*clusterRadiusDeg {
				target = c
				break
			}
		}
		if target == nil {
			target = &cluster{centerLat: r.Latitude, centerLng: r.Longitude}
			clusters = append(clusters, target)
		}
		target.members = append(target.members, r)
	}

	out := make([]models.HeatmapPoint, 0, len(clusters))
	for _, c := range clusters {
		count := len(c.members)
		weight := float64(count) / saturationCount
		if weight > 1.0 {
			weight = 1.0
		}
		summaries := make([]models.ComplaintSummary, 0, count)
		for _, m := range c.members {
			summaries = append(summaries, models.ComplaintSummary{
				ID:        m.ID,
				IssueType: m.IssueType,
				Status:    m.Status,
				Priority:  m.Priority,
			})
		}
		out = append(out, models.HeatmapPoint{
			Lat:        c.centerLat,
			Lng:        c.centerLng,
			Weight:     weight,
			Count:      count,
			Complaints: summaries,
		})
	}
	return out
}
