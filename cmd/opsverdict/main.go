package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opsverdict/opsverdict/internal/ai"
	"github.com/opsverdict/opsverdict/internal/client"
	"github.com/opsverdict/opsverdict/internal/config"
	"github.com/opsverdict/opsverdict/internal/database"
	"github.com/opsverdict/opsverdict/internal/handlers"
	"github.com/opsverdict/opsverdict/internal/identity"
	"github.com/opsverdict/opsverdict/internal/middleware"
	"github.com/opsverdict/opsverdict/internal/services"
	"github.com/opsverdict/opsverdict/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "opsverdict",
	Short: "opsverdict - AI-assisted incident judgment engine for DevOps and SRE teams",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP control plane",
	RunE:  runServe,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize operator identity for this machine",
	RunE:  runInit,
}

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Trigger creation of a new incident session",
	RunE:  runTrigger,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all incidents",
	RunE:  runList,
}

var attachCmd = &cobra.Command{
	Use:   "attach <incident-id>",
	Short: "Attach to an incident session by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runAttach,
}

var detachCmd = &cobra.Command{
	Use:   "detach",
	Short: "Detach from the currently attached incident session",
	RunE:  runDetach,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI assistant about the attached incident",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state and summary of the attached incident",
	RunE:  runStatus,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the attached incident and close the session",
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(serveCmd, initCmd, triggerCmd, listCmd, attachCmd,
		detachCmd, askCmd, statusCmd, resolveCmd)
}

func main() {
	// Load .env if present; plain environment variables work without it.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildLifecycle constructs the full orchestrator stack on the local
// data directory. Shared by the serve command and the local client.
func buildLifecycle(cfg *config.Config) (*services.LifecycleService, *gorm.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, logger.Warn)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, err
	}

	factory, err := ai.NewFactory(ai.FactoryConfig{
		Provider:     cfg.AIProvider,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
		GoogleAPIKey: cfg.GoogleAPIKey,
		GeminiModel:  cfg.GeminiModel,
		DataDir:      cfg.DataDir,
	})
	if err != nil {
		return nil, nil, err
	}
	reasoners, err := factory.Reasoners()
	if err != nil {
		return nil, nil, err
	}

	lifecycle := services.NewLifecycleService(
		database.NewIncidentStore(db),
		database.NewTimelineStore(db),
		database.NewHistoryStore(db),
		session.NewStore(cfg.DataDir),
		reasoners,
		ai.NewReasoningPolicy(),
	)
	return lifecycle, db, nil
}

// buildClient constructs the client selected by OPSVERDICT_CLIENT_TYPE.
func buildClient() (client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return client.New(cfg, func() (*services.LifecycleService, error) {
		lifecycle, _, buildErr := buildLifecycle(cfg)
		return lifecycle, buildErr
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Printf("Starting opsverdict control plane...")

	lifecycle, db, err := buildLifecycle(cfg)
	if err != nil {
		return err
	}
	log.Printf("Lifecycle orchestrator initialized (AI provider: %s)", cfg.AIProvider)

	if err := database.SeedAPIKeys(db, cfg.APIKeys); err != nil {
		return err
	}
	hashes, err := database.LoadAPIKeyHashes(db)
	if err != nil {
		return fmt.Errorf("failed to load API keys: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(&middleware.AuthConfig{
		KeyHashes: hashes,
		Enabled:   len(hashes) > 0,
		SkipPaths: []string{"/health"},
	})

	mux := http.NewServeMux()
	handlers.NewHTTPHandler().SetupRoutes(mux)
	handlers.NewAPIHandler(lifecycle).SetupRoutes(mux)

	corsMiddleware := middleware.NewCORSMiddleware()
	handler := corsMiddleware.Wrap(middleware.RequestIDMiddleware(authMiddleware.Wrap(mux)))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on port %d", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-sigChan:
		log.Println("Received shutdown signal, cleaning up...")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down HTTP server: %v", err)
		}
		log.Println("Shutdown complete")
		return nil
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flow := identity.NewInitFlow(identity.NewStore(cfg.DataDir))
	return flow.Run()
}

func runTrigger(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	result := c.Trigger(cmd.Context())
	if !result.Success {
		return fmt.Errorf("failed to create incident: %s", result.Message)
	}
	fmt.Printf("New incident created: %d\n", result.IncidentID)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	incidents, err := c.ListIncidents()
	if err != nil {
		return fmt.Errorf("failed to list incidents: %w", err)
	}
	if len(incidents) == 0 {
		fmt.Println("No incidents found.")
		return nil
	}
	for _, incident := range incidents {
		fmt.Printf("ID: %d, Title: %s, State: %s\n", incident.ID, incident.Title, incident.State)
	}
	return nil
}

func runAttach(cmd *cobra.Command, args []string) error {
	id := 0
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil || id < 1 {
		return fmt.Errorf("invalid incident id: %q", args[0])
	}

	c, err := buildClient()
	if err != nil {
		return err
	}

	result := c.Attach(id)
	if !result.Success {
		return fmt.Errorf("failed to attach: %s", result.Message)
	}
	fmt.Printf("Attached to incident %d.\n", id)
	return nil
}

func runDetach(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	result := c.Detach()
	if !result.Success {
		return fmt.Errorf("failed to detach: %s", result.Message)
	}
	fmt.Println("Detached from incident.")
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	result := c.Ask(cmd.Context(), args[0])
	if !result.Success {
		return fmt.Errorf("AI could not answer: %s", result.Message)
	}

	fmt.Printf("Answer: %s\n", result.Answer)
	if result.Confidence != nil {
		fmt.Printf("Confidence: %.2f\n", *result.Confidence)
	}
	if result.Reasoning != "" {
		fmt.Printf("Reasoning: %s\n", result.Reasoning)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	result := c.Status()
	if !result.Success {
		return fmt.Errorf("failed to fetch status: %s", result.Message)
	}
	fmt.Printf("State: %s\n", result.State)
	fmt.Printf("Summary: %s\n", result.Summary)
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	result := c.Resolve(cmd.Context())
	if !result.Success {
		return fmt.Errorf("failed to resolve incident: %s", result.Message)
	}
	fmt.Println("Incident resolved successfully.")
	return nil
}
