package weather

import "context"

// Provider abstrae la fuente externa de condiciones actuales
// (Open-Meteo en producción, fakes en tests).
type Provider interface {
	Current(ctx context.Context, latitude, longitude float64) (Observation, error)
}

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// ByCoordinates consulta el provider y mapea a Data.
// Cualquier falla upstream se absorbe: devuelve nil ("no data"),
// nunca error. El caller arma su respuesta igual, con clima vacío.
func (s *Service) ByCoordinates(ctx context.Context, latitude, longitude float64) *Data {
	if s == nil || s.provider == nil {
		return nil
	}

	obs, err := s.provider.Current(ctx, latitude, longitude)
	if err != nil {
		return nil
	}

	desc := Describe(obs.WeatherCode)
	return &Data{
		Description: desc,
		Temperature: obs.Temperature,
		FeelsLike:   obs.Temperature,
		Humidity:    obs.Humidity,
		WindSpeed:   obs.WindSpeed,
		Condition:   desc,
	}
}
