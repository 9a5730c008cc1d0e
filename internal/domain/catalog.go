package domain

import "strings"

// VariableFamily classifies a catalog variable by the physical quantity it
// measures. Families are assigned statically in the product catalog so the
// risk and synthesis layers never have to pattern-match variable names.
type VariableFamily string

const (
	FamilyTemperature   VariableFamily = "temperature"
	FamilyPrecipitation VariableFamily = "precipitation"
	FamilyHumidity      VariableFamily = "humidity"
	FamilyPressure      VariableFamily = "pressure"
	FamilyWind          VariableFamily = "wind"
	FamilyOther         VariableFamily = "other"
)

// VariableDef describes one variable within a product.
type VariableDef struct {
	Key              string
	Name             string
	Unit             string
	Family           VariableFamily
	Convertible      bool
	ForecastPriority int
}

// Product describes one NASA data collection.
type Product struct {
	Key                string
	ShortName          string
	Collection         string
	Description        string
	TemporalResolution string
	SpatialResolution  string
	Variables          map[string]VariableDef
}

// Products is the static catalog of supported NASA collections.
var Products = map[string]Product{
	"MERRA2_400": {
		Key:                "MERRA2_400",
		ShortName:          "M2T1NXLND",
		Collection:         "MERRA2_400.tavg1_2d_lnd_Nx",
		Description:        "MERRA-2 Land Surface Diagnostics",
		TemporalResolution: "1 hour",
		SpatialResolution:  "0.5 x 0.625 deg",
		Variables: map[string]VariableDef{
			"T2M":     {Key: "T2M", Name: "2m Air Temperature", Unit: "K", Family: FamilyTemperature, Convertible: true, ForecastPriority: 1},
			"T2M_MAX": {Key: "T2M_MAX", Name: "Max 2m Temperature", Unit: "K", Family: FamilyTemperature, Convertible: true, ForecastPriority: 1},
			"T2M_MIN": {Key: "T2M_MIN", Name: "Min 2m Temperature", Unit: "K", Family: FamilyTemperature, Convertible: true, ForecastPriority: 1},
			"PRECTOT": {Key: "PRECTOT", Name: "Total Precipitation", Unit: "kg/m2/s", Family: FamilyPrecipitation, Convertible: true, ForecastPriority: 1},
			"RH2M":    {Key: "RH2M", Name: "2m Relative Humidity", Unit: "%", Family: FamilyHumidity, ForecastPriority: 2},
			"WS10M":   {Key: "WS10M", Name: "10m Wind Speed", Unit: "m/s", Family: FamilyWind, ForecastPriority: 2},
			"PS":      {Key: "PS", Name: "Surface Pressure", Unit: "Pa", Family: FamilyPressure, Convertible: true, ForecastPriority: 2},
		},
	},
	"IMERG_FINAL": {
		Key:                "IMERG_FINAL",
		ShortName:          "GPM_3IMERGDF",
		Collection:         "GPM_3IMERGDF",
		Description:        "GPM IMERG Final Precipitation",
		TemporalResolution: "30 minutes",
		SpatialResolution:  "0.1 x 0.1 deg",
		Variables: map[string]VariableDef{
			"precipitationCal": {Key: "precipitationCal", Name: "Precipitation", Unit: "mm/hr", Family: FamilyPrecipitation, Convertible: true, ForecastPriority: 1},
		},
	},
	"MODIS_TERRA": {
		Key:                "MODIS_TERRA",
		ShortName:          "MOD04_L2",
		Collection:         "MOD04_L2",
		Description:        "MODIS Terra Aerosol",
		TemporalResolution: "5 minutes",
		SpatialResolution:  "10 km",
		Variables: map[string]VariableDef{
			"Corrected_Optical_Depth_Land": {Key: "Corrected_Optical_Depth_Land", Name: "Aerosol Optical Depth", Unit: "unitless", Family: FamilyOther, ForecastPriority: 3},
		},
	},
	"GLDAS_NOAH": {
		Key:                "GLDAS_NOAH",
		ShortName:          "GLDAS_NOAH025_3H",
		Collection:         "GLDAS_NOAH025_3H",
		Description:        "GLDAS Noah Land Surface Model",
		TemporalResolution: "3 hours",
		SpatialResolution:  "0.25 x 0.25 deg",
		Variables: map[string]VariableDef{
			"SoilMoi0_10cm_inst": {Key: "SoilMoi0_10cm_inst", Name: "0-10cm Soil Moisture", Unit: "kg/m2", Family: FamilyOther, Convertible: true, ForecastPriority: 2},
			"Tair_f_inst":        {Key: "Tair_f_inst", Name: "Air Temperature", Unit: "K", Family: FamilyTemperature, Convertible: true, ForecastPriority: 1},
		},
	},
}

// LookupVariable resolves a variable definition within a product. The second
// return is false when either the product or the variable is unknown.
func LookupVariable(productKey, variableKey string) (VariableDef, bool) {
	product, ok := Products[productKey]
	if !ok {
		return VariableDef{}, false
	}
	def, ok := product.Variables[variableKey]
	return def, ok
}

// FamilyForSeriesKey resolves the family of a pipeline series key of the
// form "<product>_<variable>". Unknown keys map to FamilyOther.
func FamilyForSeriesKey(seriesKey string) VariableFamily {
	for productKey, product := range Products {
		prefix := productKey + "_"
		if !strings.HasPrefix(seriesKey, prefix) {
			continue
		}
		if def, ok := product.Variables[strings.TrimPrefix(seriesKey, prefix)]; ok {
			return def.Family
		}
	}
	return FamilyOther
}
