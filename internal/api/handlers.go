package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nightsky-studio/zzzcalc/internal/apierr"
	"github.com/nightsky-studio/zzzcalc/internal/cache"
	"github.com/nightsky-studio/zzzcalc/internal/damage"
	"github.com/nightsky-studio/zzzcalc/internal/equipment"
)

// Handler holds the dependencies every route needs: the cached object
// manager and the base directory PUT /rotations writes under. It is
// passed in explicitly rather than reached for via package state
// (spec.md §9).
type Handler struct {
	cache   *cache.Manager
	baseDir string
}

func NewHandler(m *cache.Manager, baseDir string) *Handler {
	return &Handler{cache: m, baseDir: baseDir}
}

// Index answers GET / with a literal status string (spec.md §6),
// enriched with the available routes the way the teacher's home route
// always does.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "zzzcalc damage calculator\n\n"+
		"POST /refresh\n"+
		"PUT  /rotations?aid=<agent-id>&id=<rotation-id>\n"+
		"POST /damage[?type=detailed]\n")
}

// Refresh answers POST /refresh: clear the cache and re-scan disk
// (spec.md §6).
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.cache.Clear()
	if err := h.cache.Prewarm(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// PutRotation answers PUT /rotations?aid=&id=: persist the request
// body under data/rotations/<aid>/<id>.json, creating parent
// directories as needed (spec.md §6).
func (h *Handler) PutRotation(w http.ResponseWriter, r *http.Request) {
	aid := r.URL.Query().Get("aid")
	id := r.URL.Query().Get("id")
	if aid == "" || id == "" {
		writeError(w, r, apierr.New(apierr.ParseError, "api: aid and id query parameters are required"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, apierr.Wrap(apierr.ParseError, err, "api: could not read request body"))
		return
	}

	var dto rotationPutDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		writeError(w, r, apierr.Wrap(apierr.ParseError, err, "api: malformed rotation body"))
		return
	}
	if _, err := equipment.ParseInline(dto.Cells); err != nil {
		writeError(w, r, err)
		return
	}

	dir := filepath.Join(h.baseDir, "data", "rotations", aid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeError(w, r, apierr.Wrap(apierr.IoError, err, "api: could not create rotation directory"))
		return
	}
	path := filepath.Join(dir, id+".json")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		writeError(w, r, apierr.Wrap(apierr.IoError, err, "api: could not write rotation file"))
		return
	}

	if err := h.cache.AddEntryPath("rotations/" + aid + "/" + id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// PostDamage answers POST /damage[?type=detailed] (spec.md §6): it
// resolves the request's agent, weapon, discs, sets, and rotation
// through the cache, runs the damage calculator against the fixed
// enemy profile, and writes the total and per-ability breakdown.
func (h *Handler) PostDamage(w http.ResponseWriter, r *http.Request) {
	var dto damageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, r, apierr.Wrap(apierr.ParseError, err, "api: malformed damage request"))
		return
	}

	agent, releaseAgent, err := getTyped[*equipment.Agent](h.cache, "agents/"+strconv.Itoa(dto.Aid))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer releaseAgent()

	weapon, releaseWeapon, err := getTyped[*equipment.Weapon](h.cache, "weapons/"+strconv.Itoa(dto.Wid))
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer releaseWeapon()

	enemy, releaseEnemy, err := getTyped[*equipment.Enemy](h.cache, "enemy/default")
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer releaseEnemy()

	rotation, releaseRotation, err := decodeRotation(h.cache, dto.Aid, dto.Rotation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer releaseRotation()

	discs := make([]*equipment.DiscPiece, 0, len(dto.Discs))
	sets := make(map[int]*equipment.DiscSet, len(dto.Discs))
	var releases []func()
	defer func() {
		for _, release := range releases {
			release()
		}
	}()

	for i, d := range dto.Discs {
		disc, err := buildDisc(d, equipment.Slot(i+1))
		if err != nil {
			writeError(w, r, err)
			return
		}
		discs = append(discs, disc)

		if _, ok := sets[d.Id]; ok {
			continue
		}
		set, release, err := getTyped[*equipment.DiscSet](h.cache, "dds/"+strconv.Itoa(d.Id))
		if err != nil {
			writeError(w, r, err)
			return
		}
		releases = append(releases, release)
		sets[d.Id] = set
	}

	result, err := damage.Evaluate(damage.Request{
		Agent:    agent,
		Weapon:   weapon,
		Discs:    discs,
		Sets:     sets,
		Rotation: rotation,
		Enemy:    *enemy,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	detailed := r.URL.Query().Get("type") == "detailed"
	resp := damageResponseDTO{Total: result.Total, PerAbility: make([]any, 0, len(result.PerAbility))}
	for _, step := range result.PerAbility {
		if detailed {
			tags := any(step.Tags)
			if len(step.Tags) == 1 {
				tags = step.Tags[0]
			}
			resp.PerAbility = append(resp.PerAbility, [3]any{step.Damage, tags, step.Name})
		} else {
			resp.PerAbility = append(resp.PerAbility, step.Damage)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
