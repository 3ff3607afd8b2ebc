package server

import (
	"net/http"

	"github.com/df07/go-anytime-raytracer/pkg/core"
	"github.com/df07/go-anytime-raytracer/pkg/renderer"
)

// CameraResponse describes the camera of a running render after a change
type CameraResponse struct {
	RenderID    string     `json:"renderId"`
	Origin      [3]float64 `json:"origin"`
	LookAt      [3]float64 `json:"lookAt"`
	VFovDegrees float64    `json:"vfovDegrees"`
}

// handleCamera moves or rotates the camera of a running render, restarting its passes.
// action=move takes x/y/z in the camera's own basis (x right, y up, z forward);
// action=rotate takes x/y/z Euler angles in radians.
func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	values := r.URL.Query()
	renderID := values.Get("id")
	live, ok := s.lookupSession(renderID)
	if !ok {
		writeError(w, http.StatusNotFound, "No running render: "+renderID)
		return
	}

	var delta [3]float64
	for i, key := range []string{"x", "y", "z"} {
		value, err := parseFloatParam(values, key, 0, -1000, 1000)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		delta[i] = value
	}
	vector := core.NewVec3(delta[0], delta[1], delta[2])

	switch action := values.Get("action"); action {
	case "move":
		live.session.MoveCamera(vector)
	case "rotate":
		live.session.RotateCamera(vector)
	case "reset":
		live.session.SetCamera(renderer.NewCamera(live.scene.CameraConfig))
	default:
		writeError(w, http.StatusBadRequest, "Unknown camera action: "+action)
		return
	}

	config := live.session.Camera().Config()
	writeJSON(w, http.StatusOK, CameraResponse{
		RenderID:    renderID,
		Origin:      toArray(config.Origin),
		LookAt:      toArray(config.LookAt),
		VFovDegrees: config.VFovDegrees,
	})
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
