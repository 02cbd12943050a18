package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"place-history/internal/domain/weather"
	"place-history/internal/router"
)

func TestHTTP_EndToEnd_PlacesFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Cliente nuevo: identify sin candidato
	clientID := identify(t, ts.URL, "")

	// 2) identify con el mismo id lo devuelve tal cual
	if again := identify(t, ts.URL, clientID); again != clientID {
		t.Fatalf("known client not echoed: got %s want %s", again, clientID)
	}

	// 3) identify con un uuid bien formado pero desconocido acuña uno nuevo
	{
		minted := identify(t, ts.URL, "0198c4a2-0000-7000-8000-000000000001")
		if minted == "0198c4a2-0000-7000-8000-000000000001" {
			t.Fatalf("unknown candidate must be discarded, got it back")
		}
	}

	// 4) Crear categoría
	categoryID := createCategory(t, ts.URL, clientID, "Restaurantes")

	// 5) Guardar faved con categoría inexistente: se guarda igual, con mensaje
	var savedID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/locations/faved", map[string]any{
			"client_id":   clientID,
			"place_desc":  "Mirador del cerro",
			"latitude":    "-12.0464",
			"longitude":   "-77.0428",
			"category_id": "0198c4a2-0000-7000-8000-0000000000ff",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 save faved, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID         string  `json:"id"`
			CategoryID *string `json:"category_id"`
			Message    string  `json:"message"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CategoryID != nil {
			t.Fatalf("unknown category must not attach, got %v", *resp.CategoryID)
		}
		if !strings.Contains(resp.Message, "Location saved without category.") {
			t.Fatalf("missing advisory message, body=%s", string(body))
		}
		savedID = resp.ID
	}

	// 6) Asignar la categoría real
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/locations/faved/"+savedID+"/category", map[string]any{
			"client_id":   clientID,
			"category_id": categoryID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 assign category, got %d body=%s", st, string(body))
		}
		var resp struct {
			CategoryID   *string `json:"category_id"`
			CategoryName string  `json:"category_name"`
			Message      string  `json:"message"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CategoryID == nil || *resp.CategoryID != categoryID {
			t.Fatalf("category not attached, body=%s", string(body))
		}
		if resp.CategoryName != "Restaurantes" {
			t.Fatalf("expected category name resolved, got %q", resp.CategoryName)
		}
		if resp.Message != "" {
			t.Fatalf("no message expected on success, got %q", resp.Message)
		}
	}

	// 7) Asignar una categoría inexistente: no-op + mensaje, el vínculo queda
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/locations/faved/"+savedID+"/category", map[string]any{
			"client_id":   clientID,
			"category_id": "0198c4a2-0000-7000-8000-0000000000ff",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", st, string(body))
		}
		var resp struct {
			CategoryID *string `json:"category_id"`
			Message    string  `json:"message"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CategoryID == nil || *resp.CategoryID != categoryID {
			t.Fatalf("previous assignment must survive, body=%s", string(body))
		}
		if !strings.Contains(resp.Message, "Category not updated.") {
			t.Fatalf("missing advisory message, body=%s", string(body))
		}
	}

	// 8) Listar por categoría
	{
		st, body := doReq(t, ts.URL, "GET", "/api/locations/faved/category/"+categoryID+"?clientId="+clientID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list by category, got %d body=%s", st, string(body))
		}
		var page struct {
			Content       []map[string]any `json:"content"`
			TotalElements int64            `json:"total_elements"`
		}
		_ = json.Unmarshal(body, &page)
		if page.TotalElements != 1 || len(page.Content) != 1 {
			t.Fatalf("expected 1 location in category, body=%s", string(body))
		}
	}

	// 9) Limpiar la asignación con null
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/locations/faved/"+savedID+"/category", map[string]any{
			"client_id":   clientID,
			"category_id": nil,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 clear category, got %d body=%s", st, string(body))
		}
		var resp struct {
			CategoryID *string `json:"category_id"`
			Message    string  `json:"message"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CategoryID != nil || resp.Message != "" {
			t.Fatalf("expected cleared assignment without message, body=%s", string(body))
		}
	}

	// 10) Visited: guardar y listar
	{
		st, body := doReq(t, ts.URL, "POST", "/api/locations/visited", map[string]any{
			"client_id":  clientID,
			"place_desc": "Plaza Mayor",
			"latitude":   "no-son-coordenadas",
			"longitude":  "tampoco",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 save visited, got %d body=%s", st, string(body))
		}
		var resp struct {
			Latitude string `json:"latitude"`
		}
		_ = json.Unmarshal(body, &resp)
		// Coordenadas opacas: se guardan tal cual llegan.
		if resp.Latitude != "no-son-coordenadas" {
			t.Fatalf("latitude must be stored verbatim, got %q", resp.Latitude)
		}

		st, body = doReq(t, ts.URL, "GET", "/api/locations/visited?clientId="+clientID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list visited, got %d body=%s", st, string(body))
		}
		var page struct {
			TotalElements int64 `json:"total_elements"`
		}
		_ = json.Unmarshal(body, &page)
		if page.TotalElements != 1 {
			t.Fatalf("expected 1 visited, body=%s", string(body))
		}
	}
}

func TestHTTP_CrossClient_Isolation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	owner := identify(t, ts.URL, "")
	other := identify(t, ts.URL, "")

	ownerCat := createCategory(t, ts.URL, owner, "Parques")

	// Guardar faved del owner
	var savedID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/locations/faved", map[string]any{
			"client_id":  owner,
			"place_desc": "Parque central",
			"latitude":   "4.60",
			"longitude":  "-74.08",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		savedID = resp.ID
	}

	// Otro cliente no puede tocar el faved del owner: 403
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/locations/faved/"+savedID+"/category", map[string]any{
			"client_id":   other,
			"category_id": nil,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign location, got %d", st)
		}
	}

	// La categoría del owner no resuelve para otro cliente: advisory al guardar
	{
		st, body := doReq(t, ts.URL, "POST", "/api/locations/faved", map[string]any{
			"client_id":   other,
			"place_desc":  "Otro parque",
			"latitude":    "4.61",
			"longitude":   "-74.09",
			"category_id": ownerCat,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
		var resp struct {
			CategoryID *string `json:"category_id"`
			Message    string  `json:"message"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CategoryID != nil {
			t.Fatalf("foreign category must not attach, body=%s", string(body))
		}
		if !strings.Contains(resp.Message, "Location saved without category.") {
			t.Fatalf("missing advisory message, body=%s", string(body))
		}
	}

	// Categorías del owner invisibles para el otro cliente
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/categories/"+ownerCat+"?clientId="+other, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 foreign category, got %d", st)
		}
	}

	// Guardar con cliente desconocido: 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/locations/visited", map[string]any{
			"client_id":  "0198c4a2-0000-7000-8000-00000000dead",
			"place_desc": "x",
			"latitude":   "0",
			"longitude":  "0",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown client, got %d", st)
		}
	}
}

func TestHTTP_Identify_MalformedBody_BadRequest(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// Un body presente pero roto no debe acuñar un cliente nuevo.
	res, err := http.Post(ts.URL+"/api/client/identify", "application/json", strings.NewReader("{not-json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", res.StatusCode)
	}
}

type stubProvider struct {
	obs weather.Observation
	err error
}

func (p stubProvider) Current(_ context.Context, _, _ float64) (weather.Observation, error) {
	return p.obs, p.err
}

func TestHTTP_Weather_Envelope(t *testing.T) {
	provider := stubProvider{obs: weather.Observation{
		Temperature: 19.5,
		Humidity:    70,
		WindSpeed:   8.2,
		WeatherCode: 61,
	}}

	ts := httptest.NewServer(router.NewRouter(router.Options{WeatherProvider: provider}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/api/locations/weather?latitude=-12.0464&longitude=-77.0428", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}

	var resp struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
		Weather   *struct {
			Description string  `json:"description"`
			Temperature float64 `json:"temperature"`
			FeelsLike   float64 `json:"feels_like"`
		} `json:"weather"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, string(body))
	}
	if resp.Latitude != "-12.0464" || resp.Longitude != "-77.0428" {
		t.Fatalf("coordinates must echo the originals, body=%s", string(body))
	}
	if resp.Weather == nil {
		t.Fatalf("expected weather data, body=%s", string(body))
	}
	if resp.Weather.Description != "Slight rain" {
		t.Fatalf("expected code 61 mapped, got %q", resp.Weather.Description)
	}
	if resp.Weather.FeelsLike != resp.Weather.Temperature {
		t.Fatalf("feels_like must mirror temperature, body=%s", string(body))
	}
}

func TestHTTP_Weather_NullWhenNoProvider(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/api/locations/weather?latitude=1.5&longitude=2.5", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 even without provider, got %d body=%s", st, string(body))
	}

	var resp struct {
		Weather json.RawMessage `json:"weather"`
	}
	_ = json.Unmarshal(body, &resp)
	if string(resp.Weather) != "null" {
		t.Fatalf("expected weather null, body=%s", string(body))
	}
}

func TestHTTP_Weather_RejectsNonDecimalCoords(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/api/locations/weather?latitude=abc&longitude=2.5", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-decimal latitude, got %d", st)
	}
}

func identify(t *testing.T, baseURL, candidate string) string {
	t.Helper()

	var payload map[string]any
	if candidate != "" {
		payload = map[string]any{"client_id": candidate}
	}

	st, body := doReq(t, baseURL, "POST", "/api/client/identify", payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 identify, got %d body=%s", st, string(body))
	}

	var resp struct {
		ClientID string `json:"client_id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ClientID == "" {
		t.Fatalf("identify: missing client_id body=%s", string(body))
	}
	return resp.ClientID
}

func createCategory(t *testing.T, baseURL, clientID, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/categories", map[string]any{
		"client_id":     clientID,
		"category_name": name,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create category, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create category: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
