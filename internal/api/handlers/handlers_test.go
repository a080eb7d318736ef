package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"buildmap/internal/service/zone"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Seed the zone singleton once; repeated AddZone calls with the
	// same ID just overwrite the stored zone.
	seed := zone.SeedZone()
	seed.ID = "test-seed"
	if err := zone.GetZoneService().AddZone(seed); err != nil {
		t.Fatalf("AddZone: %v", err)
	}

	r := gin.New()
	api := r.Group("/api")
	SetupMainHandlers(r.Group(""))
	SetupFootprintHandlers(api)
	SetupZoneHandlers(api)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v: %s", err, w.Body.String())
		}
	}
	return w, decoded
}

func TestFootprintEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w, resp := doRequest(t, r, http.MethodPost, "/api/footprint",
		`{"latitude":43.465,"longitude":-80.54,"width_m":30,"length_m":50,"height_m":100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	footprint, ok := resp["footprint"].(map[string]interface{})
	if !ok {
		t.Fatalf("no footprint in response: %v", resp)
	}
	vertices, ok := footprint["vertices"].([]interface{})
	if !ok || len(vertices) != 4 {
		t.Errorf("footprint does not have 4 vertices: %v", footprint)
	}
	if footprint["elevation_m"] != 100.0 {
		t.Errorf("elevation = %v, want 100", footprint["elevation_m"])
	}
}

func TestFootprintEndpointRejectsBadDimension(t *testing.T) {
	r := setupTestRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/footprint",
		`{"latitude":43.465,"longitude":-80.54,"width_m":-1,"length_m":50,"height_m":100}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMaxHeightEndpointInsideZone(t *testing.T) {
	r := setupTestRouter(t)

	w, resp := doRequest(t, r, http.MethodGet, "/api/zones/max-height?lat=43.465&lng=-80.54", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["limited"] != true {
		t.Fatalf("limited = %v, want true", resp["limited"])
	}
	if resp["height_limit_m"] != 100.0 {
		t.Errorf("height_limit_m = %v, want 100", resp["height_limit_m"])
	}
}

func TestMaxHeightEndpointOutsideZone(t *testing.T) {
	r := setupTestRouter(t)

	w, resp := doRequest(t, r, http.MethodGet, "/api/zones/max-height?lat=43.465&lng=-79.0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["limited"] != false {
		t.Errorf("limited = %v, want false", resp["limited"])
	}
	if _, present := resp["height_limit_m"]; present {
		t.Error("unbounded response must not carry a height limit")
	}
}

func TestMaxHeightEndpointRejectsBadQuery(t *testing.T) {
	r := setupTestRouter(t)

	w, _ := doRequest(t, r, http.MethodGet, "/api/zones/max-height?lat=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDistanceEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w, resp := doRequest(t, r, http.MethodGet, "/api/distance?lat1=43.0&lng1=-80.54&lat2=44.0&lng2=-80.54", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	distance, ok := resp["distance_m"].(float64)
	if !ok {
		t.Fatalf("no distance in response: %v", resp)
	}
	// A degree of latitude is roughly 111 km.
	if distance < 110000 || distance > 113000 {
		t.Errorf("distance = %v, want about 111 km", distance)
	}
}
