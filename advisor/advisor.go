// Package advisor turns a field observation into a recommended course of action.
//
// Recommend is pure: the same observation always yields the same
// Recommendation, and nothing outside the returned value is touched.
// Unknown enum values are not rejected here; they fall through to an empty,
// medium-priority recommendation.
package advisor

import (
	"strings"

	"agrilink/models"
)

// base is the starting recommendation for each plant status.
type base struct {
	actions  []models.Action
	priority models.Priority
	desc     string
	cost     float64
	timeline models.Timeline
}

var baseRules = map[models.PlantStatus]base{
	models.PlantHealthy: {
		actions:  []models.Action{models.ActionFertilization},
		priority: models.PriorityLow,
		desc:     "Plants are healthy. Keep the regular fertilization schedule to maintain growth.",
		cost:     50,
		timeline: models.TimelineWithinMonth,
	},
	models.PlantStressed: {
		actions:  []models.Action{models.ActionIrrigation, models.ActionFertilization},
		priority: models.PriorityMedium,
		desc:     "Plants show signs of stress. Check irrigation and apply a balanced fertilizer.",
		cost:     100,
		timeline: models.TimelineWithinWeek,
	},
	models.PlantDiseased: {
		actions:  []models.Action{models.ActionDiseaseTreatment, models.ActionPruning},
		priority: models.PriorityHigh,
		desc:     "Disease detected. Apply a suitable fungicide or treatment and prune affected parts.",
		cost:     200,
		timeline: models.TimelineImmediate,
	},
	models.PlantPestInfested: {
		actions:  []models.Action{models.ActionPestControl},
		priority: models.PriorityHigh,
		desc:     "Pest infestation detected. Apply pest control measures right away.",
		cost:     150,
		timeline: models.TimelineImmediate,
	},
	models.PlantNutrientDeficient: {
		actions:  []models.Action{models.ActionFertilization, models.ActionSoilAmendment},
		priority: models.PriorityMedium,
		desc:     "Nutrient deficiency detected. Apply targeted fertilizer and amend the soil.",
		cost:     120,
		timeline: models.TimelineWithinWeek,
	},
	models.PlantOverwatered: {
		actions:  []models.Action{models.ActionIrrigation},
		priority: models.PriorityMedium,
		desc:     "Plants are overwatered. Reduce irrigation and improve drainage.",
		cost:     80,
		timeline: models.TimelineImmediate,
	},
	models.PlantUnderwatered: {
		actions:  []models.Action{models.ActionIrrigation},
		priority: models.PriorityHigh,
		desc:     "Plants are underwatered. Increase irrigation immediately.",
		cost:     60,
		timeline: models.TimelineImmediate,
	},
}

const (
	drainageNote = "Heavy rain makes drainage urgent: clear channels to prevent root rot."
	heatNote     = "Sunny weather makes water stress critical: irrigate during the cooler hours."
	clayNote     = "Clay soil holds water: work in organic matter to improve drainage."
	sandyNote    = "Sandy soil drains quickly: irrigate more frequently in smaller amounts."
	harvestNote  = "Conditions are good for harvesting mature crops."
)

// Recommend applies the rules in order. Later rules adjust what earlier ones produced.
func Recommend(obs models.Observation) models.Recommendation {
	rec := models.Recommendation{
		Recommendations: []models.Action{},
		Priority:        models.PriorityMedium,
	}
	var notes []string

	if b, ok := baseRules[obs.PlantStatus]; ok {
		rec.Recommendations = append(rec.Recommendations, b.actions...)
		rec.Priority = b.priority
		rec.EstimatedCost = b.cost
		rec.TimeToImplement = b.timeline
		notes = append(notes, b.desc)
	}

	switch {
	case obs.WeatherType == models.WeatherRainy || obs.WeatherType == models.WeatherStormy:
		rec.Recommendations = without(rec.Recommendations, models.ActionIrrigation)
		if obs.PlantStatus == models.PlantOverwatered {
			rec.Priority = models.PriorityUrgent
			rec.EstimatedCost += 100
			notes = append(notes, drainageNote)
		}
	case obs.WeatherType == models.WeatherSunny && obs.PlantStatus == models.PlantUnderwatered:
		rec.Priority = models.PriorityUrgent
		rec.EstimatedCost += 50
		notes = append(notes, heatNote)
	}

	if obs.SoilType == models.SoilClay && obs.PlantStatus == models.PlantOverwatered {
		// No membership check: the action may already be listed.
		rec.Recommendations = append(rec.Recommendations, models.ActionSoilAmendment)
		rec.EstimatedCost += 80
		notes = append(notes, clayNote)
	}
	if obs.SoilType == models.SoilSandy && obs.PlantStatus == models.PlantUnderwatered {
		notes = append(notes, sandyNote)
	}

	if obs.PlantStatus == models.PlantDiseased || obs.PlantStatus == models.PlantPestInfested {
		rec.Priority = models.PriorityUrgent
		rec.TimeToImplement = models.TimelineImmediate
	}

	if obs.PlantStatus == models.PlantHealthy &&
		(obs.WeatherType == models.WeatherSunny || obs.WeatherType == models.WeatherCloudy) {
		rec.Recommendations = append(rec.Recommendations, models.ActionHarvesting)
		notes = append(notes, harvestNote)
	}

	rec.Description = strings.Join(notes, " ")
	return rec
}

// without returns actions minus every occurrence of a, in a fresh slice.
func without(actions []models.Action, a models.Action) []models.Action {
	out := make([]models.Action, 0, len(actions))
	for _, x := range actions {
		if x != a {
			out = append(out, x)
		}
	}
	return out
}
