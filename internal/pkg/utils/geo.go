package utils

import "strconv"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// FormatCoordinate форматирует координату так же, как Nominatim (7 знаков)
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 7, 64)
}
