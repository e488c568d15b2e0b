package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jtejido/sourceafis"
	"github.com/jtejido/sourceafis/config"
	"github.com/jtejido/sourceafis/gallery"
	"github.com/jtejido/sourceafis/metrics"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultIdentifyLimit = 10

type server struct {
	store        gallery.Store
	metrics      *metrics.Metrics
	registry     *prometheus.Registry
	transparency *sourceafis.TransparencyLogger
	threshold    float64
	logOutput    io.Writer
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	trace := flag.Bool("transparency", false, "log the size of matcher diagnostics")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	} else {
		config.LoadDefaultConfig()
		config.Config.Workers = runtime.NumCPU()
	}
	cfg := config.Config

	out, err := openLog(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	log.SetOutput(out)

	store, err := openGallery(cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var contents sourceafis.TransparencyContents
	if *trace {
		contents = NewTransparencyContents(sourceafis.KeyRoots, sourceafis.KeyBestScore, sourceafis.KeyBestMatch)
	}

	app := newApp(&server{
		store:        store,
		metrics:      metrics.New(registry),
		registry:     registry,
		transparency: sourceafis.NewTransparencyLogger(contents),
		threshold:    cfg.Matching.Threshold,
		logOutput:    out,
	})

	log.Printf("Server starting on %s with %d workers", cfg.Server.Address, cfg.Workers)
	log.Fatal(app.Listen(cfg.Server.Address))
}

func openLog(c config.LogConfig) (io.Writer, error) {
	if c.Path == "" {
		return os.Stdout, nil
	}
	rotation, _ := time.ParseDuration(c.Rotation)
	maxAge, _ := time.ParseDuration(c.MaxAge)
	opts := []rotatelogs.Option{
		rotatelogs.WithRotationTime(rotation),
		rotatelogs.WithMaxAge(maxAge),
	}
	if c.Link != "" {
		opts = append(opts, rotatelogs.WithLinkName(c.Link))
	}
	w, err := rotatelogs.New(c.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", c.Path, err)
	}
	return w, nil
}

func openGallery(c config.RedisConfig) (gallery.Store, error) {
	if c.Addr == "" {
		return gallery.NewMemoryStore(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return gallery.OpenRedis(ctx, c)
}

func newApp(s *server) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: config.Current().Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
		},
	})

	if s.logOutput != nil {
		app.Use(logger.New(logger.Config{Output: s.logOutput}))
	}
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now(),
		})
	})
	app.Post("/match", s.matchFingerprints)
	app.Post("/gallery", s.enroll)
	app.Delete("/gallery/:id", s.unenroll)
	app.Post("/identify", s.identify)
	if s.registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
	return app
}

func (s *server) matchFingerprints(c *fiber.Ctx) error {
	start := time.Now()

	var req CompareFingerprintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	probe, err := decodeTemplate("probe", req.Probe)
	if err != nil {
		return err
	}
	candidate, err := decodeTemplate("candidate", req.Candidate)
	if err != nil {
		return err
	}

	score, err := compareFingerprint(c.UserContext(), s.transparency, probe, candidate)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	matched := score >= s.threshold
	s.metrics.ObserveMatch("match", matched)
	s.metrics.ObserveMatchLatency(elapsed)

	response := CompareFingerprintResponse{
		Score:      score,
		Match:      matched,
		Confidence: confidence(score, s.threshold),
		Elapsed:    elapsed.String(),
	}
	if matched {
		response.Message = fmt.Sprintf("Match found with score: %.2f", score)
	} else {
		response.Message = fmt.Sprintf("No match found, score: %.2f", score)
	}
	return c.JSON(response)
}

func (s *server) enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	template, err := decodeTemplate("template", req.Template)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	id, err := gallery.Enroll(ctx, s.store, req.ID, template)
	if err != nil {
		return err
	}
	serialized, err := encodeTemplate(template)
	if err != nil {
		return err
	}
	s.updateGallerySize(ctx)
	log.Printf("Enrolled template %s with %d minutiae", id, len(template.Minutiae))
	return c.Status(fiber.StatusCreated).JSON(EnrollResponse{ID: id, Serialized: serialized})
}

func (s *server) unenroll(c *fiber.Ctx) error {
	ctx := c.UserContext()
	err := s.store.Delete(ctx, c.Params("id"))
	if errors.Is(err, gallery.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	s.updateGallerySize(ctx)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *server) identify(c *fiber.Ctx) error {
	start := time.Now()

	var req IdentifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	probe, err := decodeTemplate("probe", req.Probe)
	if err != nil {
		return err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultIdentifyLimit
	}

	ctx := c.UserContext()
	candidates, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	matches, err := identifyFingerprint(ctx, s.transparency, probe, candidates)
	if err != nil {
		return err
	}

	response := IdentifyResponse{
		Matches:  make([]IdentifyMatch, 0, min(limit, len(matches))),
		Searched: len(candidates),
	}
	matched := 0
	for i, m := range matches {
		ok := m.Score >= s.threshold
		if ok {
			matched++
		}
		if i < limit {
			response.Matches = append(response.Matches, IdentifyMatch{ID: m.ID, Score: m.Score, Match: ok})
		}
	}
	elapsed := time.Since(start)
	response.Elapsed = elapsed.String()
	s.metrics.ObserveIdentify(elapsed, len(candidates), matched)
	return c.JSON(response)
}

func (s *server) updateGallerySize(ctx context.Context) {
	n, err := s.store.Len(ctx)
	if err != nil {
		log.Printf("Failed to count gallery: %v", err)
		return
	}
	s.metrics.SetGallerySize(n)
}
