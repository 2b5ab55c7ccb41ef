package advisor

const (
	noPublicModesMessage = "No direct Public Transport available for this route. Try nearest major bus stop / metro station nearby."
	noCabRouteMessage    = "No road route found for Cab. Try a nearby landmark."

	noSignificantDelayNote = "No significant delay"
	walkDelayNote          = "Walk time varies by signals & footpaths"

	walkSuggestionTitle = "Walkable distance"
	walkSuggestionNote  = "Good option for nearby places."
	cabSuggestionTitle  = "Nearby — Cab could save time"
)
