package domain

// SeverityTier is one of the three ordered hazard severity levels.
type SeverityTier string

const (
	SeverityLow    SeverityTier = "low"
	SeverityMedium SeverityTier = "medium"
	SeverityHigh   SeverityTier = "high"
)

// SeverityTiers lists the tiers from least to most severe. Tier resolution
// scans this order and keeps the highest tier whose threshold is satisfied.
var SeverityTiers = []SeverityTier{SeverityLow, SeverityMedium, SeverityHigh}

// Direction is the comparison applied against a hazard threshold.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// TierSpec holds one severity tier's threshold and presentation metadata.
type TierSpec struct {
	Threshold float64 `json:"threshold"`
	Color     string  `json:"color"`
	Risk      string  `json:"risk"`
	Impact    string  `json:"impact"`
}

// Hazard is a named weather-risk category with tiered severity thresholds.
type Hazard struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Unit         string                    `json:"unit"`
	Direction    Direction                 `json:"direction"`
	Family       VariableFamily            `json:"family"`
	Tiers        map[SeverityTier]TierSpec `json:"tiers"`
	HealthImpact string                    `json:"health_impact"`
}

// Hazards is the static weather-hazard catalog. Direction is "above" for all
// hazards except extreme cold. Family names the variable family the hazard is
// scored against.
var Hazards = map[string]Hazard{
	"extreme_heat": {
		ID:          "extreme_heat",
		Name:        "Extreme Heat",
		Description: "Dangerously high temperatures that pose health risks",
		Unit:        "degC",
		Direction:   DirectionAbove,
		Family:      FamilyTemperature,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 30, Color: "#FFA500", Risk: "Moderate", Impact: "Heat discomfort"},
			SeverityMedium: {Threshold: 35, Color: "#FF4500", Risk: "High", Impact: "Heat exhaustion risk"},
			SeverityHigh:   {Threshold: 40, Color: "#DC143C", Risk: "Extreme", Impact: "Heat stroke danger"},
		},
		HealthImpact: "Heat exhaustion, dehydration, heat stroke",
	},
	"extreme_cold": {
		ID:          "extreme_cold",
		Name:        "Extreme Cold",
		Description: "Dangerously low temperatures with frostbite and hypothermia risk",
		Unit:        "degC",
		Direction:   DirectionBelow,
		Family:      FamilyTemperature,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 0, Color: "#87CEEB", Risk: "Moderate", Impact: "Cold discomfort"},
			SeverityMedium: {Threshold: -10, Color: "#1E90FF", Risk: "High", Impact: "Frostbite risk"},
			SeverityHigh:   {Threshold: -20, Color: "#0000FF", Risk: "Extreme", Impact: "Life-threatening cold"},
		},
		HealthImpact: "Hypothermia, frostbite, respiratory issues",
	},
	"heavy_precipitation": {
		ID:          "heavy_precipitation",
		Name:        "Heavy Precipitation",
		Description: "Significant rainfall causing flood risks and transportation disruptions",
		Unit:        "mm/day",
		Direction:   DirectionAbove,
		Family:      FamilyPrecipitation,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 10, Color: "#90EE90", Risk: "Moderate", Impact: "Minor flooding possible"},
			SeverityMedium: {Threshold: 25, Color: "#32CD32", Risk: "High", Impact: "Flash flood risk"},
			SeverityHigh:   {Threshold: 50, Color: "#006400", Risk: "Extreme", Impact: "Severe flooding expected"},
		},
		HealthImpact: "Flood risks, transportation disruptions, waterborne diseases",
	},
	"strong_winds": {
		ID:          "strong_winds",
		Name:        "Strong Winds",
		Description: "High wind speeds causing safety concerns and property damage",
		Unit:        "m/s",
		Direction:   DirectionAbove,
		Family:      FamilyWind,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 8, Color: "#DAA520", Risk: "Moderate", Impact: "Difficult walking conditions"},
			SeverityMedium: {Threshold: 12, Color: "#FF8C00", Risk: "High", Impact: "Falling debris risk"},
			SeverityHigh:   {Threshold: 17, Color: "#B22222", Risk: "Extreme", Impact: "Structural damage possible"},
		},
		HealthImpact: "Falling debris, difficult navigation, transportation hazards",
	},
	"poor_visibility": {
		ID:          "poor_visibility",
		Name:        "Poor Visibility",
		Description: "Reduced visibility from fog, smog, or precipitation affecting safety",
		Unit:        "km",
		Direction:   DirectionAbove,
		Family:      FamilyHumidity,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 5, Color: "#D3D3D3", Risk: "Moderate", Impact: "Reduced driving visibility"},
			SeverityMedium: {Threshold: 2, Color: "#A9A9A9", Risk: "High", Impact: "Hazardous travel conditions"},
			SeverityHigh:   {Threshold: 1, Color: "#696969", Risk: "Extreme", Impact: "Dangerous travel conditions"},
		},
		HealthImpact: "Transportation hazards, respiratory issues, accidents",
	},
	"air_quality": {
		ID:          "air_quality",
		Name:        "Poor Air Quality",
		Description: "High pollution levels affecting respiratory health and visibility",
		Unit:        "AQI",
		Direction:   DirectionAbove,
		Family:      FamilyPressure,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 35, Color: "#FFD700", Risk: "Moderate", Impact: "Unhealthy for sensitive groups"},
			SeverityMedium: {Threshold: 55, Color: "#FF8C00", Risk: "High", Impact: "Unhealthy for all"},
			SeverityHigh:   {Threshold: 75, Color: "#FF0000", Risk: "Extreme", Impact: "Hazardous conditions"},
		},
		HealthImpact: "Respiratory issues, eye irritation, cardiovascular problems",
	},
	"wildfire_risk": {
		ID:          "wildfire_risk",
		Name:        "Wildfire Risk",
		Description: "High fire danger conditions with potential for rapid spread",
		Unit:        "risk index",
		Direction:   DirectionAbove,
		Family:      FamilyTemperature,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 0.3, Color: "#FFD700", Risk: "Moderate", Impact: "Elevated fire weather"},
			SeverityMedium: {Threshold: 0.6, Color: "#FF8C00", Risk: "High", Impact: "Critical fire weather"},
			SeverityHigh:   {Threshold: 0.8, Color: "#FF0000", Risk: "Extreme", Impact: "Extreme fire behavior"},
		},
		HealthImpact: "Smoke inhalation, property damage, evacuation needs",
	},
	"uv_radiation": {
		ID:          "uv_radiation",
		Name:        "High UV Radiation",
		Description: "Elevated ultraviolet radiation levels increasing sunburn and skin damage risk",
		Unit:        "UV Index",
		Direction:   DirectionAbove,
		Family:      FamilyTemperature,
		Tiers: map[SeverityTier]TierSpec{
			SeverityLow:    {Threshold: 3, Color: "#FFFF00", Risk: "Moderate", Impact: "Moderate sun protection needed"},
			SeverityMedium: {Threshold: 6, Color: "#FFA500", Risk: "High", Impact: "High sun protection needed"},
			SeverityHigh:   {Threshold: 8, Color: "#FF4500", Risk: "Extreme", Impact: "Very high protection required"},
		},
		HealthImpact: "Sunburn, skin damage, increased skin cancer risk",
	},
}

// OperatingThreshold returns the hazard's medium-tier threshold, the level
// risk scoring operates at.
func (h Hazard) OperatingThreshold() float64 {
	return h.Tiers[SeverityMedium].Threshold
}

// Satisfies reports whether a value crosses the given threshold in the
// hazard's configured direction.
func (h Hazard) Satisfies(value, threshold float64) bool {
	if h.Direction == DirectionBelow {
		return value < threshold
	}
	return value > threshold
}
