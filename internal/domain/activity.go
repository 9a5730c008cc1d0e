package domain

// Range is an inclusive [min, max] band of ideal values for an activity.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ActivityProfile maps a planned activity to its relevant hazards and ideal
// conditions. Read-only reference data.
type ActivityProfile struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Hazards         []string         `json:"hazards"`
	IdealRanges     map[string]Range `json:"ideal_ranges"`
	Recommendations []string         `json:"recommendations"`
	Season          string           `json:"season"`
}

// Activities is the static activity catalog.
var Activities = map[string]ActivityProfile{
	"hiking": {
		ID:      "hiking",
		Name:    "Hiking & Trekking",
		Hazards: []string{"extreme_heat", "heavy_precipitation", "strong_winds", "uv_radiation"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 15, Max: 25},
			"precipitation": {Min: 0, Max: 5},
			"wind_speed":    {Min: 0, Max: 5},
			"visibility":    {Min: 10, Max: 50},
		},
		Recommendations: []string{
			"Check trail conditions before departure",
			"Carry adequate water and snacks",
			"Wear appropriate footwear and clothing",
			"Tell someone your route and expected return",
			"Carry navigation tools and emergency supplies",
		},
		Season: "all",
	},
	"beach": {
		ID:      "beach",
		Name:    "Beach & Swimming",
		Hazards: []string{"extreme_heat", "strong_winds", "uv_radiation"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 25, Max: 32},
			"precipitation": {Min: 0, Max: 1},
			"wind_speed":    {Min: 1, Max: 10},
			"uv_radiation":  {Min: 3, Max: 7},
		},
		Recommendations: []string{
			"Swim only in designated areas with lifeguards",
			"Apply waterproof sunscreen regularly",
			"Stay hydrated and seek shade periodically",
			"Watch for changing weather and water conditions",
			"Never swim alone or under influence",
		},
		Season: "summer",
	},
	"skiing": {
		ID:      "skiing",
		Name:    "Skiing & Snow Sports",
		Hazards: []string{"extreme_cold", "strong_winds", "poor_visibility"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: -10, Max: -2},
			"precipitation": {Min: 0, Max: 5},
			"wind_speed":    {Min: 0, Max: 8},
			"visibility":    {Min: 5, Max: 50},
		},
		Recommendations: []string{
			"Dress in layers with waterproof outer shell",
			"Wear helmet and protective gear",
			"Check avalanche conditions if backcountry skiing",
			"Stay on marked trails appropriate for your skill level",
			"Carry emergency communication device",
		},
		Season: "winter",
	},
	"cycling": {
		ID:      "cycling",
		Name:    "Cycling & Biking",
		Hazards: []string{"extreme_heat", "heavy_precipitation", "strong_winds", "poor_visibility"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 18, Max: 28},
			"precipitation": {Min: 0, Max: 2},
			"wind_speed":    {Min: 0, Max: 6},
			"visibility":    {Min: 5, Max: 50},
		},
		Recommendations: []string{
			"Wear helmet and high-visibility clothing",
			"Check bike condition before riding",
			"Plan route considering traffic and terrain",
			"Carry repair kit and hydration",
			"Obey traffic laws and use bike lanes when available",
		},
		Season: "all",
	},
	"photography": {
		ID:      "photography",
		Name:    "Photography & Sightseeing",
		Hazards: []string{"poor_visibility", "heavy_precipitation"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 10, Max: 30},
			"precipitation": {Min: 0, Max: 1},
			"visibility":    {Min: 10, Max: 50},
			"cloud_cover":   {Min: 20, Max: 70},
		},
		Recommendations: []string{
			"Protect camera equipment from weather elements",
			"Check golden hour times for best lighting",
			"Carry extra batteries and memory cards",
			"Research location permits and access restrictions",
			"Have backup indoor photography options",
		},
		Season: "all",
	},
	"camping": {
		ID:      "camping",
		Name:    "Camping & Outdoor Living",
		Hazards: []string{"extreme_heat", "extreme_cold", "heavy_precipitation", "strong_winds"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 10, Max: 25},
			"precipitation": {Min: 0, Max: 2},
			"wind_speed":    {Min: 0, Max: 5},
			"humidity":      {Min: 40, Max: 70},
		},
		Recommendations: []string{
			"Check weather forecast for entire camping period",
			"Bring appropriate sleeping gear for temperatures",
			"Set up camp in protected areas away from wind",
			"Have waterproof shelter and clothing",
			"Store food properly to avoid wildlife encounters",
		},
		Season: "spring summer fall",
	},
	"fishing": {
		ID:      "fishing",
		Name:    "Fishing & Angling",
		Hazards: []string{"extreme_heat", "strong_winds", "poor_visibility"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 15, Max: 28},
			"precipitation": {Min: 0, Max: 3},
			"wind_speed":    {Min: 0, Max: 4},
			"visibility":    {Min: 5, Max: 50},
		},
		Recommendations: []string{
			"Check fishing regulations and obtain licenses",
			"Wear polarized sunglasses for better visibility",
			"Use appropriate bait for weather conditions",
			"Be aware of changing tide and water conditions",
			"Carry safety equipment and communication devices",
		},
		Season: "all",
	},
	"golfing": {
		ID:      "golfing",
		Name:    "Golfing & Sports",
		Hazards: []string{"extreme_heat", "heavy_precipitation", "strong_winds", "uv_radiation"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 18, Max: 26},
			"precipitation": {Min: 0, Max: 1},
			"wind_speed":    {Min: 0, Max: 4},
			"visibility":    {Min: 10, Max: 50},
		},
		Recommendations: []string{
			"Check course conditions before playing",
			"Stay hydrated and take breaks in shade",
			"Wear appropriate footwear and sun protection",
			"Be aware of lightning risks during storms",
			"Allow extra time for weather delays",
		},
		Season: "spring summer fall",
	},
	"running": {
		ID:      "running",
		Name:    "Running & Jogging",
		Hazards: []string{"extreme_heat", "extreme_cold", "heavy_precipitation", "poor_visibility"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 10, Max: 22},
			"precipitation": {Min: 0, Max: 1},
			"wind_speed":    {Min: 0, Max: 3},
			"humidity":      {Min: 40, Max: 60},
		},
		Recommendations: []string{
			"Wear appropriate clothing for temperature",
			"Stay hydrated and adjust pace for conditions",
			"Choose well-lit routes in poor visibility",
			"Be visible to traffic with reflective gear",
			"Listen to your body and adjust intensity",
		},
		Season: "all",
	},
	"gardening": {
		ID:      "gardening",
		Name:    "Gardening & Farming",
		Hazards: []string{"extreme_heat", "heavy_precipitation", "uv_radiation"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 15, Max: 28},
			"precipitation": {Min: 1, Max: 10},
			"soil_moisture": {Min: 0.3, Max: 0.8},
			"wind_speed":    {Min: 0, Max: 5},
		},
		Recommendations: []string{
			"Water plants in early morning or evening",
			"Use mulch to retain soil moisture",
			"Protect sensitive plants from extreme conditions",
			"Wear gloves and sun protection",
			"Check soil conditions before planting",
		},
		Season: "spring summer fall",
	},
	"boating": {
		ID:      "boating",
		Name:    "Boating & Sailing",
		Hazards: []string{"strong_winds", "heavy_precipitation", "poor_visibility"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 18, Max: 30},
			"precipitation": {Min: 0, Max: 1},
			"wind_speed":    {Min: 5, Max: 15},
			"visibility":    {Min: 10, Max: 50},
		},
		Recommendations: []string{
			"Check marine weather forecasts",
			"Wear life jackets at all times",
			"Have communication and navigation equipment",
			"Be aware of changing wind and water conditions",
			"File float plan with expected return time",
		},
		Season: "spring summer fall",
	},
	"festivals": {
		ID:      "festivals",
		Name:    "Festivals & Concerts",
		Hazards: []string{"extreme_heat", "heavy_precipitation", "strong_winds"},
		IdealRanges: map[string]Range{
			"temperature":   {Min: 18, Max: 26},
			"precipitation": {Min: 0, Max: 1},
			"wind_speed":    {Min: 0, Max: 5},
			"visibility":    {Min: 10, Max: 50},
		},
		Recommendations: []string{
			"Have weather contingency plans",
			"Bring appropriate clothing and protection",
			"Stay hydrated in crowded conditions",
			"Know emergency exits and facilities",
			"Monitor weather updates throughout event",
		},
		Season: "all",
	},
}
