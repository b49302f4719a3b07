package analysis

// Fixture tables backing BuildReport. The numbers are the demo dataset the
// dashboard ships with; a real pipeline would replace this file wholesale,
// which is why everything else in the package is kept free of it.

type province struct {
	Name             string
	Longitude        float64
	Latitude         float64
	GHGEmissions     float64
	AgriculturalArea float64
	DroughtImpact    float64
}

var provinces = []province{
	{"Alberta", -110, 55, 18.3, 26.5, 7.2},
	{"British Columbia", -126, 54, 9.1, 12.8, 5.4},
	{"Manitoba", -98, 53, 12.7, 19.4, 6.8},
	{"New Brunswick", -66, 46, 2.4, 3.1, 3.2},
	{"Newfoundland and Labrador", -57, 52, 1.2, 1.8, 2.1},
	{"Northwest Territories", -119, 65, 0.3, 0.5, 1.4},
	{"Nova Scotia", -63, 45, 2.1, 2.9, 3.8},
	{"Nunavut", -90, 70, 0.1, 0.1, 0.9},
	{"Ontario", -85, 50, 15.6, 22.3, 4.2},
	{"Prince Edward Island", -63, 46.5, 1.8, 2.4, 3.1},
	{"Quebec", -71, 52, 10.2, 17.1, 3.9},
	{"Saskatchewan", -106, 54, 19.8, 31.2, 8.1},
	{"Yukon", -136, 64, 0.2, 0.3, 1.1},
}

var summaryFixture = Summary{
	KeyFindings: []string{
		"Agricultural activities contribute 8.4% of total GHG emissions",
		"Drought severity has increased by 23% in the last decade",
		"Sustainable farming practices reduce emissions by up to 35%",
	},
	EnvironmentalImpactScore: 6.7,
	DataQualityScore:         4,
	LastUpdated:              "April 12, 2025",
}

// East to west severity bands drawn on the map.
var droughtAreas = []DroughtArea{{Severity: 3}, {Severity: 4}, {Severity: 5}}

var sectorEmissions = []SectorEmission{
	{Sector: "Crop Production", TotalEmissions: 28.4, Methane: 8.2, NitrousOxide: 12.1, CO2: 8.1},
	{Sector: "Livestock", TotalEmissions: 34.6, Methane: 22.3, NitrousOxide: 9.8, CO2: 2.5},
	{Sector: "Soil Management", TotalEmissions: 18.2, Methane: 2.1, NitrousOxide: 14.6, CO2: 1.5},
	{Sector: "Energy Use", TotalEmissions: 12.8, Methane: 1.2, NitrousOxide: 0.9, CO2: 10.7},
	{Sector: "Land Conversion", TotalEmissions: 6.1, Methane: 0.8, NitrousOxide: 1.3, CO2: 4.0},
}

var droughtCategories = []string{"Crop Loss", "Soil Moisture", "Water Supply", "Economic Impact"}

var droughtRegions = []string{"Western", "Central", "Eastern", "Northern"}

var droughtHeatmap = []DroughtImpact{
	{Region: "Western", Category: "Crop Loss", Impact: 8.2},
	{Region: "Western", Category: "Soil Moisture", Impact: 7.6},
	{Region: "Western", Category: "Water Supply", Impact: 6.9},
	{Region: "Western", Category: "Economic Impact", Impact: 7.8},

	{Region: "Central", Category: "Crop Loss", Impact: 5.4},
	{Region: "Central", Category: "Soil Moisture", Impact: 6.2},
	{Region: "Central", Category: "Water Supply", Impact: 5.8},
	{Region: "Central", Category: "Economic Impact", Impact: 5.1},

	{Region: "Eastern", Category: "Crop Loss", Impact: 3.7},
	{Region: "Eastern", Category: "Soil Moisture", Impact: 4.2},
	{Region: "Eastern", Category: "Water Supply", Impact: 3.9},
	{Region: "Eastern", Category: "Economic Impact", Impact: 3.4},

	{Region: "Northern", Category: "Crop Loss", Impact: 1.6},
	{Region: "Northern", Category: "Soil Moisture", Impact: 2.1},
	{Region: "Northern", Category: "Water Supply", Impact: 2.5},
	{Region: "Northern", Category: "Economic Impact", Impact: 1.2},
}

// Quarterly severity; the Northern region has no time series in the demo set.
var droughtTimeSeries = []DroughtSeverity{
	{Region: "Western", Date: "2023-01", Severity: 5.8},
	{Region: "Western", Date: "2023-04", Severity: 6.2},
	{Region: "Western", Date: "2023-07", Severity: 7.9},
	{Region: "Western", Date: "2023-10", Severity: 7.1},
	{Region: "Western", Date: "2024-01", Severity: 6.5},
	{Region: "Western", Date: "2024-04", Severity: 7.2},

	{Region: "Central", Date: "2023-01", Severity: 3.9},
	{Region: "Central", Date: "2023-04", Severity: 4.3},
	{Region: "Central", Date: "2023-07", Severity: 6.1},
	{Region: "Central", Date: "2023-10", Severity: 5.7},
	{Region: "Central", Date: "2024-01", Severity: 4.8},
	{Region: "Central", Date: "2024-04", Severity: 5.4},

	{Region: "Eastern", Date: "2023-01", Severity: 2.8},
	{Region: "Eastern", Date: "2023-04", Severity: 3.1},
	{Region: "Eastern", Date: "2023-07", Severity: 4.5},
	{Region: "Eastern", Date: "2023-10", Severity: 4.1},
	{Region: "Eastern", Date: "2024-01", Severity: 3.2},
	{Region: "Eastern", Date: "2024-04", Severity: 3.8},
}

var agricultureAttributes = []string{
	"Crop Diversity", "Livestock Density", "Irrigation",
	"Fertilizer Use", "Land Conversion", "Sustainable Practices",
}

var agricultureRegions = []AgricultureProfile{
	{Region: "Western", CropDiversity: 6.2, LivestockDensity: 7.8, Irrigation: 5.4, FertilizerUse: 8.1, LandConversion: 6.7, SustainablePractices: 5.9},
	{Region: "Central", CropDiversity: 7.1, LivestockDensity: 6.3, Irrigation: 4.8, FertilizerUse: 7.2, LandConversion: 5.3, SustainablePractices: 6.7},
	{Region: "Eastern", CropDiversity: 7.9, LivestockDensity: 5.1, Irrigation: 4.2, FertilizerUse: 6.5, LandConversion: 4.8, SustainablePractices: 7.3},
}

var agricultureProvinces = []AgricultureProfile{
	{Region: "Alberta", CropDiversity: 5.8, LivestockDensity: 8.2, Irrigation: 6.1, FertilizerUse: 8.4, LandConversion: 7.2, SustainablePractices: 5.6},
	{Region: "Saskatchewan", CropDiversity: 6.5, LivestockDensity: 7.3, Irrigation: 4.8, FertilizerUse: 7.9, LandConversion: 6.8, SustainablePractices: 6.1},
	{Region: "Manitoba", CropDiversity: 6.3, LivestockDensity: 7.9, Irrigation: 5.3, FertilizerUse: 8.0, LandConversion: 6.1, SustainablePractices: 5.9},
	{Region: "Ontario", CropDiversity: 7.4, LivestockDensity: 6.8, Irrigation: 5.1, FertilizerUse: 7.5, LandConversion: 5.7, SustainablePractices: 6.8},
	{Region: "Quebec", CropDiversity: 6.9, LivestockDensity: 5.8, Irrigation: 4.5, FertilizerUse: 6.9, LandConversion: 4.9, SustainablePractices: 6.5},
	{Region: "Atlantic", CropDiversity: 7.8, LivestockDensity: 4.6, Irrigation: 3.9, FertilizerUse: 6.1, LandConversion: 4.3, SustainablePractices: 7.2},
}

var correlationVariables = []string{
	"GHG Emissions", "Livestock Density", "Crop Intensity",
	"Fertilizer Use", "Drought Severity", "Sustainable Practices",
}

// Symmetric matrix indexed by correlationVariables.
var correlationMatrix = [6][6]float64{
	{1.0, 0.82, 0.76, 0.79, 0.31, -0.68},
	{0.82, 1.0, 0.42, 0.56, 0.23, -0.45},
	{0.76, 0.42, 1.0, 0.88, 0.39, -0.51},
	{0.79, 0.56, 0.88, 1.0, 0.28, -0.62},
	{0.31, 0.23, 0.39, 0.28, 1.0, -0.58},
	{-0.68, -0.45, -0.51, -0.62, -0.58, 1.0},
}
