package indicators

// DefaultKeywords apply to every built-in indicator's STAC collection.
var DefaultKeywords = []string{"OS-Climate", "Climate Hazards"}

// Builtin returns a registry pre-populated with the OS-Climate hazard
// indicators this tool knows how to describe.
func Builtin() *Registry {
	r := NewRegistry()

	commonAxes := map[string]AxisAttrs{
		"gcm":         {LongName: "Name of general circulation model"},
		"scenario":    {LongName: "Name of climate scenario"},
		"time":        {LongName: "Central predicted year"},
		"temperature": {LongName: "Threshold temperature", Units: "Degrees Celsius"},
	}

	daysTasAboveAxes := map[string]AxisAttrs{
		"days_tas_above": {
			LongName: "Days per year for which the average near-surface temperature 'tas' is above a threshold",
			Units:    "Days per year",
		},
		"longitude": {LongName: "Longitude", Units: "Degrees East"},
		"latitude":  {LongName: "Latitude", Units: "Degrees North"},
	}
	for k, v := range commonAxes {
		daysTasAboveAxes[k] = v
	}
	r.Register(&Descriptor{
		Name:  "days_tas_above",
		Title: "Days TAS Above",
		Description: "Days per year for which the average near-surface temperature 'tas' " +
			"is above a threshold specified in °C.",
		Keywords: DefaultKeywords,
		Axes:     daysTasAboveAxes,
	})

	degreeDaysAxes := map[string]AxisAttrs{
		"degree_days": {
			LongName: "Time integral of absolute difference in temperature of the medium over a reference temperature",
			Units:    "Days per year",
		},
	}
	for k, v := range commonAxes {
		degreeDaysAxes[k] = v
	}
	r.Register(&Descriptor{
		Name:  "degree_days",
		Title: "Degree Days",
		Description: "Degree days indicators are calculated by integrating over time the absolute " +
			"difference in temperature of the medium over a reference temperature. The exact method " +
			"of calculation may vary; here the daily maximum near-surface temperature 'tasmax' is " +
			"used to calculate an annual indicator.",
		Keywords: DefaultKeywords,
		Axes:     degreeDaysAxes,
	})

	return r
}
