// Package analysis builds the dashboard report returned by the analysis
// endpoint. BuildReport is a pure function from the selected datasets and a
// region name to a Report; it touches no external state, which keeps it
// deterministic and unit-testable without a database. The figures come from
// fixture tables in data.go rather than a live pipeline.
package analysis

// RegionAll is the sentinel region meaning "no filtering".
const RegionAll = "All Canada"

// Report is the full payload rendered by the dashboard charts. Field names
// follow the wire format the charts consume.
type Report struct {
	Summary         Summary          `json:"summary"`
	GeographicData  GeographicData   `json:"geographicData"`
	EmissionsData   []SectorEmission `json:"emissionsData"`
	DroughtData     DroughtData      `json:"droughtData"`
	AgricultureData AgricultureData  `json:"agricultureData"`
	CorrelationData CorrelationData  `json:"correlationData"`
}

// Summary carries the headline findings shown above the charts.
type Summary struct {
	KeyFindings              []string `json:"keyFindings"`
	EnvironmentalImpactScore float64  `json:"environmentalImpactScore"`
	DataQualityScore         int      `json:"dataQualityScore"`
	LastUpdated              string   `json:"lastUpdated"`
}

// GeographicData feeds the map visualization: one feature per province plus
// point markers for emissions and shaded drought areas.
type GeographicData struct {
	Features         []Feature        `json:"features"`
	EmissionsPoints  []EmissionsPoint `json:"emissionsPoints"`
	DroughtAreas     []DroughtArea    `json:"droughtAreas"`
	AgricultureAreas []struct{}       `json:"agricultureAreas"`
}

// Feature wraps province properties in the GeoJSON-like shape the map
// component expects.
type Feature struct {
	Properties ProvinceProperties `json:"properties"`
}

// ProvinceProperties are the per-province indicators drawn on the map.
type ProvinceProperties struct {
	Name             string  `json:"name"`
	GHGEmissions     float64 `json:"ghgEmissions"`
	AgriculturalArea float64 `json:"agriculturalArea"`
	DroughtImpact    float64 `json:"droughtImpact"`
}

// EmissionsPoint is a point marker at a province's centroid.
type EmissionsPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Emissions float64 `json:"emissions"`
}

// DroughtArea is a shaded severity band on the map.
type DroughtArea struct {
	Severity int `json:"severity"`
}

// SectorEmission is one bar of the emissions-by-sector chart, in megatonnes
// CO2 equivalent, broken down by gas.
type SectorEmission struct {
	Sector         string  `json:"sector"`
	TotalEmissions float64 `json:"totalEmissions"`
	Methane        float64 `json:"methane"`
	NitrousOxide   float64 `json:"nitrousOxide"`
	CO2            float64 `json:"co2"`
}

// DroughtData feeds the drought impact heatmap (standard view) and the
// severity time series (compare mode).
type DroughtData struct {
	Categories  []string          `json:"categories"`
	Regions     []string          `json:"regions"`
	HeatmapData []DroughtImpact   `json:"heatmapData"`
	TimeData    []DroughtSeverity `json:"timeData"`
}

// DroughtImpact is a single heatmap cell.
type DroughtImpact struct {
	Region   string  `json:"region"`
	Category string  `json:"category"`
	Impact   float64 `json:"impact"`
}

// DroughtSeverity is one point of the severity time series.
type DroughtSeverity struct {
	Region   string  `json:"region"`
	Date     string  `json:"date"`
	Severity float64 `json:"severity"`
}

// AgricultureData feeds the radar chart (RegionData, standard view) and the
// parallel coordinates plot (Items, compare mode).
type AgricultureData struct {
	Attributes []string             `json:"attributes"`
	RegionData []AgricultureProfile `json:"regionData"`
	Dimensions []string             `json:"dimensions"`
	Items      []AgricultureProfile `json:"items"`
}

// AgricultureProfile scores one region on the six farming-practice axes.
// The tags carry the display names the charts use as keys.
type AgricultureProfile struct {
	Region               string  `json:"region"`
	CropDiversity        float64 `json:"Crop Diversity"`
	LivestockDensity     float64 `json:"Livestock Density"`
	Irrigation           float64 `json:"Irrigation"`
	FertilizerUse        float64 `json:"Fertilizer Use"`
	LandConversion       float64 `json:"Land Conversion"`
	SustainablePractices float64 `json:"Sustainable Practices"`
}

// CorrelationData is the pairwise correlation matrix, flattened into the
// var1/var2 cell list the matrix component consumes.
type CorrelationData struct {
	Variables    []string      `json:"variables"`
	Correlations []Correlation `json:"correlations"`
}

// Correlation is one cell of the matrix.
type Correlation struct {
	Var1        string  `json:"var1"`
	Var2        string  `json:"var2"`
	Correlation float64 `json:"correlation"`
}

// BuildReport assembles the report for the given dataset selection and
// region. A region other than RegionAll narrows the geographic layer to
// that province; the sector, drought, agriculture and correlation sections
// are national aggregates and are returned unfiltered so the charts stay
// populated regardless of selection. An empty region means RegionAll.
func BuildReport(datasets []string, region string) Report {
	if region == "" {
		region = RegionAll
	}

	features := make([]Feature, 0, len(provinces))
	points := make([]EmissionsPoint, 0, len(provinces))
	for _, p := range provinces {
		if region != RegionAll && p.Name != region {
			continue
		}
		features = append(features, Feature{Properties: ProvinceProperties{
			Name:             p.Name,
			GHGEmissions:     p.GHGEmissions,
			AgriculturalArea: p.AgriculturalArea,
			DroughtImpact:    p.DroughtImpact,
		}})
		points = append(points, EmissionsPoint{
			Longitude: p.Longitude,
			Latitude:  p.Latitude,
			Emissions: p.GHGEmissions,
		})
	}

	return Report{
		Summary:        summaryFixture,
		GeographicData: GeographicData{
			Features:         features,
			EmissionsPoints:  points,
			DroughtAreas:     droughtAreas,
			AgricultureAreas: []struct{}{},
		},
		EmissionsData: sectorEmissions,
		DroughtData: DroughtData{
			Categories:  droughtCategories,
			Regions:     droughtRegions,
			HeatmapData: droughtHeatmap,
			TimeData:    droughtTimeSeries,
		},
		AgricultureData: AgricultureData{
			Attributes: agricultureAttributes,
			RegionData: agricultureRegions,
			Dimensions: agricultureAttributes,
			Items:      agricultureProvinces,
		},
		CorrelationData: buildCorrelations(),
	}
}

// KnownRegion reports whether name is RegionAll or one of the provinces in
// the fixture set.
func KnownRegion(name string) bool {
	if name == "" || name == RegionAll {
		return true
	}
	for _, p := range provinces {
		if p.Name == name {
			return true
		}
	}
	return false
}

func buildCorrelations() CorrelationData {
	cells := make([]Correlation, 0, len(correlationVariables)*len(correlationVariables))
	for i, v1 := range correlationVariables {
		for j, v2 := range correlationVariables {
			cells = append(cells, Correlation{Var1: v1, Var2: v2, Correlation: correlationMatrix[i][j]})
		}
	}
	return CorrelationData{Variables: correlationVariables, Correlations: cells}
}
