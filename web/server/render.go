package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	maxImageSize = 2000
	maxDepth     = 50
)

// RenderRequest represents a render request from the client. Zero values mean
// "use the scene's configuration".
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene name (e.g., "default")
	Width    int     `json:"width"`    // Image width
	Height   int     `json:"height"`   // Image height
	FOV      float64 `json:"fov"`      // Vertical field of view in degrees
	MaxDepth int     `json:"maxDepth"` // Maximum specular recursion depth
	Format   string  `json:"format"`   // "ppm" or "png"
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	sceneObj, err := createScene(req.Scene)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	renderConfig, integratorConfig := buildConfigs(sceneObj.SamplingConfig, req)

	// Collect the renderer's log lines for this request
	renderID := fmt.Sprintf("render-%d", s.renderID.Add(1))
	consoleChan := make(chan ConsoleMessage, 16)
	logger := NewWebLogger(renderID, consoleChan)

	raytracer, err := renderer.NewRaytracer(sceneObj, integrator.NewWhitted(integratorConfig), renderConfig, logger)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	// Use request context to detect client disconnection
	img, stats, err := raytracer.Render(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, fmt.Sprintf("Render error: %v", err))
	}

	var buf bytes.Buffer
	contentType := "image/x-portable-pixmap"
	if req.Format == "png" {
		contentType = "image/png"
		err = png.Encode(&buf, loaders.ToRGBA(img))
	} else {
		err = loaders.WritePPM(&buf, img)
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}

	header := c.Response().Header()
	header.Set("X-Render-ID", renderID)
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	if messages := drainConsole(consoleChan); len(messages) > 0 {
		header.Set("X-Render-Log", strings.TrimSpace(messages[len(messages)-1].Message))
	}

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// parseRenderRequest parses request parameters
func parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	values := c.QueryParams()
	req := &RenderRequest{
		Scene:  values.Get("scene"),
		Format: values.Get("format"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	switch req.Format {
	case "":
		req.Format = "ppm"
	case "ppm", "png":
	default:
		return nil, fmt.Errorf("format must be ppm or png, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(values, "fov", 0, 1, 179); err != nil {
		return nil, err
	}

	return req, nil
}

var errSceneName = errors.New("scene must be a built-in name or a file in the scenes directory")

// createScene resolves a scene by name. Paths are rejected so clients cannot
// read arbitrary files from the server.
func createScene(name string) (*scene.Scene, error) {
	if strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, ".json") {
		return nil, fmt.Errorf("%w: %q", errSceneName, name)
	}
	return scene.CreateScene(name)
}

// buildConfigs applies the non-zero request overrides to the scene's settings.
// Parallel workers default to the CPU count.
func buildConfigs(sceneConfig scene.SamplingConfig, req *RenderRequest) (renderer.Config, integrator.Config) {
	sampling := sceneConfig.WithOverrides(scene.SamplingConfig{
		Width:    req.Width,
		Height:   req.Height,
		FOV:      req.FOV,
		MaxDepth: req.MaxDepth,
	})

	renderConfig := renderer.DefaultConfig()
	renderConfig.Width = sampling.Width
	renderConfig.Height = sampling.Height
	renderConfig.FOV = sampling.FOV
	renderConfig.NumWorkers = 0

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = sampling.MaxDepth

	return renderConfig, integratorConfig
}
