package forecast

import "github.com/kjstillabower/weather-planner-service/internal/models"

// MapWeatherCode maps an Open-Meteo weather code to a Condition. The
// table is provider contract surface and is reproduced code-for-code
// rather than collapsed into ranges; any code outside it is Unknown.
// Total over all integers, never panics.
func MapWeatherCode(code int) models.Condition {
	switch code {
	case 0, 1:
		return models.ConditionClear
	case 2, 3, 45, 48:
		return models.ConditionClouds
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return models.ConditionRain
	case 71, 73, 75, 77, 85, 86:
		return models.ConditionSnow
	case 95, 96, 99:
		return models.ConditionThunder
	default:
		return models.ConditionUnknown
	}
}
