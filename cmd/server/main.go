package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"youtube-digest/internal/handlers"
	"youtube-digest/internal/jobs"
	"youtube-digest/internal/llm"
	"youtube-digest/internal/pipeline"
	"youtube-digest/internal/store"
	"youtube-digest/internal/transcript"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Host string `yaml:"host"`
	} `yaml:"server"`

	Claude struct {
		Model string `yaml:"model"`
	} `yaml:"claude"`

	Transcript struct {
		Languages []string `yaml:"languages"`
	} `yaml:"transcript"`

	Storage struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"storage"`
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; environment variables may be set directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Custom logger setup
	logBuffer := &LogBuffer{
		lines: make([]string, 0, 1000),
	}
	multiWriter := io.MultiWriter(os.Stdout, logBuffer)
	log.SetOutput(multiWriter)

	log.Println("Initializing components...")

	artifactStore, err := store.New(config.Storage.OutputDir)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: ANTHROPIC_API_KEY is not set - translation jobs will fail")
	}

	transcriptClient := transcript.NewClient(config.Transcript.Languages)
	claudeClient := llm.NewClient(apiKey, config.Claude.Model)

	pipe := pipeline.New(transcriptClient, claudeClient, artifactStore, log.Default())
	registry := jobs.NewRegistry(pipe.Process, nil)

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Initialize handlers
	translateHandler := handlers.NewTranslateHandler(registry)
	statusHandler := handlers.NewStatusHandler(registry)
	progressHandler := handlers.NewProgressHandler(registry)
	resultsHandler := handlers.NewResultsHandler(artifactStore)

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	app.Post("/api/translate", translateHandler.Handle)
	app.Get("/api/status/:job_id", statusHandler.Handle)
	app.Get("/api/result/:video_id", resultsHandler.HandleResult)
	app.Get("/api/list", resultsHandler.HandleList)
	app.Get("/view/:video_id", resultsHandler.HandleView)

	// WebSocket route
	app.Get("/ws/status/:job_id", websocket.New(progressHandler.Handle))

	// Get server logs
	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.GetLogs(),
		})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Println("Endpoints:")
	log.Println("   POST /api/translate         - Submit a video for translation")
	log.Println("   GET  /api/status/:job_id    - Poll job status")
	log.Println("   GET  /ws/status/:job_id     - WebSocket job progress feed")
	log.Println("   GET  /api/result/:video_id  - Get persisted result JSON")
	log.Println("   GET  /view/:video_id        - View rendered report")
	log.Println("   GET  /api/list              - List stored results")
	log.Println("   GET  /logs                  - View server logs")
	log.Println("   GET  /health                - Health check")

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down gracefully...")
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// LogBuffer captures logs in memory
type LogBuffer struct {
	lines []string
	mu    sync.Mutex
}

func (lb *LogBuffer) Write(p []byte) (n int, err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.lines = append(lb.lines, string(p))

	// Keep last 1000 lines
	if len(lb.lines) > 1000 {
		lb.lines = lb.lines[len(lb.lines)-1000:]
	}

	return len(p), nil
}

func (lb *LogBuffer) GetLogs() []string {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	logs := make([]string, len(lb.lines))
	copy(logs, lb.lines)
	return logs
}

// loadConfig loads configuration from YAML file
func loadConfig(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
