// Package server exposes the simulation scene over HTTP as JSON, the
// transport the external renderers consume. All physics stays behind the
// scene and analysis packages; handlers only translate.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/config"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/logging"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// maxGridDim caps one side of a requested field grid, bounding the work a
// single request can demand.
const maxGridDim = 512

// Server serves the scene API. Construct with New; the zero value is not
// usable.
type Server struct {
	scene   *scene.Scene
	log     logging.Logger
	metrics *Collector
}

func New(sc *scene.Scene, log logging.Logger, metrics *Collector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{scene: sc, log: log, metrics: metrics}
}

// Handler returns the full route table wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/arrays", s.handleListArrays)
	mux.HandleFunc("POST /api/arrays", s.handleCreateArray)
	mux.HandleFunc("PATCH /api/arrays/{id}", s.handlePatchArray)
	mux.HandleFunc("DELETE /api/arrays/{id}", s.handleDeleteArray)
	mux.HandleFunc("GET /api/elements", s.handleElements)
	mux.HandleFunc("GET /api/field", s.handleField)
	mux.HandleFunc("GET /api/field/grid", s.handleFieldGrid)
	mux.HandleFunc("GET /api/beam", s.handleBeam)
	mux.HandleFunc("GET /api/beam/composite", s.handleBeamComposite)
	mux.HandleFunc("POST /api/scenario/{name}", s.handleScenario)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return s.middleware(mux)
}

// middleware logs each request and records the Prometheus counters.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, log := logging.WithRequestLogger(r.Context(), s.log)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		route := r.Pattern
		if route == "" {
			route = r.URL.Path
		}
		elapsed := time.Since(start)
		log.Info(ctx, "request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000),
		)
		if s.metrics != nil {
			s.metrics.Requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			s.metrics.Durations.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
			s.metrics.ObserveScene(s.scene.Snapshot())
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	snap := s.scene.Snapshot()
	out := SceneDTO{Settings: settingsDTO(snap.Settings)}
	for _, as := range snap.Arrays {
		out.Arrays = append(out.Arrays, arrayDTO(as.ID, as.Config))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListArrays(w http.ResponseWriter, r *http.Request) {
	snap := s.scene.Snapshot()
	out := make([]ArrayDTO, 0, len(snap.Arrays))
	for _, as := range snap.Arrays {
		out = append(out, arrayDTO(as.ID, as.Config))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateArray(w http.ResponseWriter, r *http.Request) {
	// Decode over the defaults, so a partial body behaves like a partial
	// scenario file: omitted fields keep their stock values.
	dto := arrayDTO(0, phased.DefaultConfig())
	if err := decodeBody(r, &dto); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id := s.scene.AddConfig(dto.toConfig())
	cfg, err := s.scene.ArrayConfig(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, arrayDTO(id, cfg))
}

func (s *Server) handlePatchArray(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var patch map[string]json.RawMessage
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.scene.ArrayConfig(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if err := s.applyPatch(id, patch); err != nil {
		if errors.Is(err, scene.ErrArrayNotFound) {
			writeError(w, http.StatusNotFound, err)
		} else {
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}

	cfg, err := s.scene.ArrayConfig(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, arrayDTO(id, cfg))
}

// applyPatch applies a partial update: numeric fields go through the named
// parameter surface (and its clamps), enabled and geometry are handled
// specially. Unknown keys fail the whole patch.
func (s *Server) applyPatch(id int, patch map[string]json.RawMessage) error {
	for key, raw := range patch {
		switch key {
		case "enabled":
			var on bool
			if err := json.Unmarshal(raw, &on); err != nil {
				return fmt.Errorf("field enabled: %w", err)
			}
			if err := s.scene.Modify(id, func(a *phased.Array) { a.SetEnabled(on) }); err != nil {
				return err
			}
		case "geometry":
			var g string
			if err := json.Unmarshal(raw, &g); err != nil {
				return fmt.Errorf("field geometry: %w", err)
			}
			if err := s.scene.Modify(id, func(a *phased.Array) { a.SetGeometry(phased.Geometry(g)) }); err != nil {
				return err
			}
		case "id":
			// Ignored: the id in the body has no authority over the path.
		default:
			name, ok := patchParams[key]
			if !ok {
				return fmt.Errorf("unknown field %q", key)
			}
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("field %s: %w", key, err)
			}
			if err := s.scene.SetParam(id, name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// patchParams maps the JSON field names onto the array's named parameter
// surface, which applies the usual clamps.
var patchParams = map[string]string{
	"num_elements":     "numElements",
	"pitch":            "pitch",
	"frequency":        "frequency",
	"steering_angle":   "steeringAngle",
	"position_x":       "positionX",
	"position_y":       "positionY",
	"curvature_radius": "curvatureRadius",
	"orientation":      "orientation",
	"focal_distance":   "focalDistance",
	"amplitude":        "amplitude",
	"speed_of_sound":   "speedOfSound",
}

func (s *Server) handleDeleteArray(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.scene.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	elems, err := s.scene.ElementData(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, elementDTOs(elems))
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	t := queryFloat(r, "t", 0)
	writeJSON(w, http.StatusOK, map[string]float64{
		"x": x, "y": y, "t": t,
		"value": s.scene.FieldAt(x, y, t),
	})
}

func (s *Server) handleFieldGrid(w http.ResponseWriter, r *http.Request) {
	width := clampGrid(int(queryFloat(r, "w", 64)))
	height := clampGrid(int(queryFloat(r, "h", 48)))
	t := queryFloat(r, "t", 0)

	field := analysis.SampleField(s.scene, width, height, t)
	writeJSON(w, http.StatusOK, FieldGridDTO{
		Width:  field.Width,
		Height: field.Height,
		Time:   t,
		Mode:   string(field.Mode),
		MaxAbs: field.MaxAbs,
		Values: field.Values,
	})
}

func (s *Server) handleBeam(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg, err := s.scene.ArrayConfig(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	from := queryFloat(r, "from", -90)
	to := queryFloat(r, "to", 90)
	step := queryFloat(r, "step", 1)
	// Sweep a private clone so the lazy element cache is not shared across
	// requests.
	series := analysis.PatternSeries(phased.New(cfg), from, to, step)
	writeJSON(w, http.StatusOK, patternDTOs(series))
}

func (s *Server) handleBeamComposite(w http.ResponseWriter, r *http.Request) {
	from := queryFloat(r, "from", -90)
	to := queryFloat(r, "to", 90)
	step := queryFloat(r, "step", 1)
	series := analysis.ScenePatternSeries(s.scene, from, to, step)
	writeJSON(w, http.StatusOK, patternDTOs(series))
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	preset := config.GetPreset(name)
	if preset == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown scenario %q", name))
		return
	}
	preset.Apply(s.scene)
	s.handleScene(w, r)
}

func patternDTOs(series []analysis.PatternPoint) []PatternPointDTO {
	out := make([]PatternPointDTO, len(series))
	for i, p := range series {
		out[i] = PatternPointDTO{AngleDeg: p.AngleDeg, Intensity: p.Intensity}
	}
	return out
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, fmt.Errorf("invalid array id %q", r.PathValue("id"))
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %q: %v", name, raw)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func clampGrid(v int) int {
	if v < 1 {
		return 1
	}
	if v > maxGridDim {
		return maxGridDim
	}
	return v
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}
