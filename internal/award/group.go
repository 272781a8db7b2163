package award

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dharmasatrya/awardsearch/internal/models"
	"github.com/dharmasatrya/awardsearch/internal/ranking"
	"github.com/dharmasatrya/awardsearch/internal/timezone"
)

// GroupKey ignores carrier and flight numbers so options that differ only in
// marketing metadata land in the same group.
func GroupKey(o models.AwardOption) string {
	it := o.Itinerary
	return strings.Join([]string{
		strings.ToUpper(it.Origin) + "-" + strings.ToUpper(it.Destination),
		timezone.ClockKey(it.DepartureTime),
		timezone.ClockKey(it.ArrivalTime),
		fmt.Sprintf("%d", it.DurationMinutes),
		string(o.Cabin),
		fmt.Sprintf("%d", o.Miles),
		fmt.Sprintf("%.2f", o.Tax),
		strings.Join(it.Layovers, ","),
	}, "|")
}

// GroupAwardOptions clusters options by GroupKey. The lowest-valued option of
// each cluster is its primary. Clusters keep the order in which their first
// member appears, so a caller's sort carries through.
func GroupAwardOptions(options []models.AwardOption, perMileValue float64) []models.AwardGroup {
	index := make(map[string]int)
	var clusters [][]models.AwardOption

	for _, o := range options {
		key := GroupKey(o)
		if i, ok := index[key]; ok {
			clusters[i] = append(clusters[i], o)
			continue
		}
		index[key] = len(clusters)
		clusters = append(clusters, []models.AwardOption{o})
	}

	groups := make([]models.AwardGroup, 0, len(clusters))
	for _, members := range clusters {
		sort.SliceStable(members, func(i, j int) bool {
			return ranking.ValueOf(members[i], perMileValue) < ranking.ValueOf(members[j], perMileValue)
		})
		groups = append(groups, models.AwardGroup{
			Primary:      members[0],
			Alternatives: append([]models.AwardOption{}, members[1:]...),
		})
	}

	return groups
}
