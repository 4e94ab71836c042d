package domain

// GeocodeResult - место, найденное внешним геокодером (формат Nominatim)
type GeocodeResult struct {
	ID          int64             `json:"place_id"`
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Address     map[string]string `json:"address,omitempty"`
	Type        string            `json:"type,omitempty"`
	Class       string            `json:"class,omitempty"`
}

// GeocodeOptions - параметры запроса к геокодеру
type GeocodeOptions struct {
	CountryCodes string
	Limit        int
}

// SelectedLocation - выбранное пользователем место
type SelectedLocation struct {
	Name        string `json:"nom"`
	City        string `json:"ville"`
	Region      string `json:"region"`
	Commune     string `json:"commune"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// IsZero - место не выбрано
func (l SelectedLocation) IsZero() bool {
	return l == SelectedLocation{}
}

// firstNonEmpty возвращает первое непустое значение адреса по списку ключей
func firstNonEmpty(addr map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := addr[k]; v != "" {
			return v
		}
	}
	return ""
}

// ToSelectedLocation извлекает ville/region/commune из адреса Nominatim
func (g GeocodeResult) ToSelectedLocation() SelectedLocation {
	return SelectedLocation{
		Name:        g.DisplayName,
		City:        firstNonEmpty(g.Address, "city", "town", "village", "municipality"),
		Region:      firstNonEmpty(g.Address, "state", "state_district"),
		Commune:     firstNonEmpty(g.Address, "county", "municipality", "village"),
		Lat:         g.Lat,
		Lon:         g.Lon,
		DisplayName: g.DisplayName,
	}
}
