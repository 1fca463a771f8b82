package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/nightsky-studio/zzzcalc/internal/cache"
	"github.com/nightsky-studio/zzzcalc/internal/equipment"
)

func writeDataFile(t *testing.T, base, folder, id, content string) {
	t.Helper()
	dir := filepath.Join(base, "data", folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) (*mux.Router, string) {
	t.Helper()
	base := t.TempDir()

	writeDataFile(t, base, "agents", "1", `{
		"id": 1, "name": "Anby", "speciality": "Attack", "element": "Electric", "rarity": "A",
		"stats": [["AtkBase", 100]],
		"abilities": {
			"basic_attack": {"skill": {"name": "basic_attack", "tags": ["Basic"], "scales": [{"motion_value": 100, "element": "Electric"}]}}
		}
	}`)
	writeDataFile(t, base, "weapons", "1", `{
		"id": 1, "name": "Steel Cushion", "rarity": "A", "speciality": "Attack",
		"main_stat": ["AtkFlat", 50],
		"sub_stat": ["CritRate", 0.05]
	}`)
	writeDataFile(t, base, "dds", "1", `{
		"id": 1, "name": "Test Set",
		"p2": [["AtkRatio", 0.1]]
	}`)
	writeDataFile(t, base, "enemy", "default", `{
		"dmg_reduction": 0.2, "defense": 953, "stun_mult": 1.5, "is_stunned": false,
		"resistance": {"Electric": 0.2}
	}`)

	m := cache.NewManager(base, cache.DefaultConfig())
	t.Cleanup(m.Shutdown)
	m.RegisterFolder("agents", "json", func(raw []byte) (any, error) { return equipment.LoadAgent(raw) }, false)
	m.RegisterFolder("weapons", "json", func(raw []byte) (any, error) { return equipment.LoadWeapon(raw) }, false)
	m.RegisterFolder("dds", "json", func(raw []byte) (any, error) { return equipment.LoadDiscSet(raw) }, false)
	m.RegisterFolder("rotations", "json", func(raw []byte) (any, error) { return equipment.LoadRotation(raw) }, true)
	m.RegisterFolder("enemy", "json", func(raw []byte) (any, error) { return equipment.LoadEnemy(raw) }, false)

	if err := m.Prewarm(context.Background()); err != nil {
		t.Fatalf("prewarm failed: %v", err)
	}

	router := mux.NewRouter()
	RegisterRoutes(router, m, base)
	return router, base
}

func TestIndexReturnsStatusString(t *testing.T) {
	router, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestPostDamageComputesTotalForInlineRotation(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{
		"aid": 1, "wid": 1,
		"rotation": ["basic_attack 1"],
		"discs": []
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/damage", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp damageResponseDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("malformed response: %v", err)
	}
	assert.Greater(t, resp.Total, 0.0)
	assert.Len(t, resp.PerAbility, 1)
}

func TestPostDamageDetailedIncludesTriples(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"aid": 1, "wid": 1, "rotation": ["basic_attack 1"], "discs": []}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/damage?type=detailed", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var raw struct {
		Total      float64 `json:"total"`
		PerAbility [][]any `json:"per_ability"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("malformed response: %v", err)
	}
	if len(raw.PerAbility) != 1 || len(raw.PerAbility[0]) != 3 {
		t.Fatalf("expected one 3-tuple entry, got %v", raw.PerAbility)
	}
}

func TestPostDamageUnknownAgentIsNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	body := `{"aid": 999, "wid": 1, "rotation": ["basic_attack 1"], "discs": []}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/damage", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutRotationPersistsAndIsReusable(t *testing.T) {
	router, base := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/rotations?aid=1&id=5", strings.NewReader(`{"cells":["basic_attack 1"]}`))
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	if _, err := os.Stat(filepath.Join(base, "data", "rotations", "1", "5.json")); err != nil {
		t.Fatalf("expected rotation file to be written: %v", err)
	}

	body := `{"aid": 1, "wid": 1, "rotation": 5, "discs": []}`
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/damage", strings.NewReader(body))
	router.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestRefreshClearsAndRescans(t *testing.T) {
	router, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
