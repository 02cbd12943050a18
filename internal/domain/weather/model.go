package weather

// Data es la vista de clima que devolvemos al cliente.
type Data struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition"`
}

// Observation son las condiciones actuales crudas que entrega un provider.
type Observation struct {
	Temperature   float64
	Humidity      int
	WindSpeed     float64
	WindDirection float64
	WeatherCode   int
	IsDay         bool
}
