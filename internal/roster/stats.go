package roster

import (
	. "rcsc-server/internal/models"
	"rcsc-server/internal/utils"
)

// Prices is the membership fee split used for estimated revenue.
type Prices struct {
	WithTshirt    int
	WithoutTshirt int
}

var DefaultPrices = Prices{WithTshirt: 250, WithoutTshirt: 150}

// Stats are derived numbers recomputed from the collection whenever it
// changes; they are never persisted.
type Stats struct {
	Total        int            `json:"total"`
	Verified     int            `json:"verified"`
	Pending      int            `json:"pending"`
	TshirtsGiven int            `json:"tshirts_given"`
	IDCardsGiven int            `json:"id_cards_given"`
	Revenue      int            `json:"revenue"`
	ByWing       map[string]int `json:"by_wing"`
	ByClass      map[string]int `json:"by_class"`
	ByDevice     map[string]int `json:"by_device"`
}

// ComputeStats is a pure function of the rows.
func ComputeStats(rows []Registration, prices Prices) Stats {
	stats := Stats{
		ByWing:   map[string]int{},
		ByClass:  map[string]int{},
		ByDevice: map[string]int{},
	}

	for _, row := range rows {
		stats.Total++

		if row.IsValidated {
			stats.Verified++
		}
		if row.IDCardGiven != nil && *row.IDCardGiven {
			stats.IDCardsGiven++
		}

		if row.MembershipType == MembershipWithTshirt {
			stats.Revenue += prices.WithTshirt
			if row.TshirtGiven != nil && *row.TshirtGiven {
				stats.TshirtsGiven++
			}
		} else {
			stats.Revenue += prices.WithoutTshirt
		}

		stats.ByWing[row.Wing]++
		stats.ByClass[row.ClassGrade]++

		userAgent := ""
		if row.UserAgent != nil {
			userAgent = *row.UserAgent
		}
		stats.ByDevice[utils.ParseDevice(userAgent).Device]++
	}

	stats.Pending = stats.Total - stats.Verified

	return stats
}

func (r *Roster) Stats(prices Prices) Stats {
	return ComputeStats(r.Snapshot(), prices)
}
