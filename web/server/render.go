package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	maxWidth          = 2000
	maxSamples        = 10000
	thumbnailMaxWidth = 160
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string            // Scene ID (built-in or file:<name>)
	Strategy  renderer.Strategy // Pixel scheduling
	Samples   int               // Samples per pixel; -1 keeps the scene's setting
	Width     int               // Image width; 0 keeps the scene's width
	Format    imageio.Format    // Response encoding
	Thumbnail bool              // Scale the result down to a preview
	Publish   bool              // Upload the encoded result to S3
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:     s.cfg.Scene,
		Thumbnail: parseBoolParam(query, "thumb"),
		Publish:   parseBoolParam(query, "publish"),
	}
	if sceneID := query.Get("scene"); sceneID != "" {
		req.Scene = sceneID
	}

	strategyName := s.cfg.Strategy
	if value := query.Get("strategy"); value != "" {
		strategyName = value
	}
	strategy, err := renderer.ParseStrategy(strategyName)
	if err != nil {
		return nil, err
	}
	req.Strategy = strategy

	formatName := "png"
	if value := query.Get("format"); value != "" {
		formatName = value
	}
	if req.Format, err = imageio.ParseFormat(formatName); err != nil {
		return nil, err
	}

	if req.Samples, err = parseIntParam(query, "samples", -1, 0, maxSamples); err != nil {
		return nil, err
	}
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxWidth); err != nil {
		return nil, err
	}

	if req.Publish && s.uploader == nil {
		return nil, errors.New("publishing is not configured")
	}
	return req, nil
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := loaders.ResolveScene(req.Scene, s.cfg.ScenesDir)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, "Unknown scene: "+req.Scene)
		return
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	img, stats, err := s.render(sc, req)
	if err != nil {
		s.logger.Error("render failed", "scene", req.Scene, "error", err)
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	if req.Publish {
		key, err := s.publish(r.Context(), sc, req, buf.Bytes())
		if err != nil {
			s.logger.Error("publish failed", "scene", req.Scene, "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		w.Header().Set("X-Render-Key", key)
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Strategy", stats.Strategy.String())
	w.Header().Set("X-Render-Samples", strconv.FormatFloat(stats.AverageSamples, 'f', 1, 64))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// render runs the full pipeline into memory
func (s *Server) render(sc *scene.Scene, req *RenderRequest) (image.Image, renderer.RenderStats, error) {
	imageOpts := sc.ImageWithWidth(req.Width)
	if req.Samples >= 0 {
		imageOpts = imageOpts.WithAntialias(req.Samples)
	}
	if s.cfg.MaxDepth > 0 {
		sc.SamplingConfig.MaxDepth = s.cfg.MaxDepth
	}

	options := renderer.RenderOptions{
		Strategy:   req.Strategy,
		NumWorkers: s.cfg.Workers,
		Seed:       s.cfg.Seed,
	}
	r, err := sc.NewRenderer(imageOpts, options, s.logger.With("scene", req.Scene))
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	out := imageio.NewImageWriter()
	stats, err := r.Render(out)
	if err != nil {
		return nil, stats, err
	}

	var img image.Image = out.Image()
	if req.Thumbnail {
		img = imageio.Thumbnail(img, thumbnailMaxWidth)
	}
	return img, stats, nil
}

// publish uploads an encoded render under a name derived from the scene and time
func (s *Server) publish(ctx context.Context, sc *scene.Scene, req *RenderRequest, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s.%s", sc.Name, time.Now().UTC().Format("20060102_150405"), req.Format)
	return s.uploader.Upload(ctx, name, data, req.Format.ContentType())
}
