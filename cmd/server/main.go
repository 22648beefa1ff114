// Command server is the demonstration HTTP harness: a Gemini-backed
// agent whose send path runs through the argument-normalizing
// interceptor, with session history persisted in MongoDB.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Aviv972/introgit-hub/internal/agent"
	"github.com/Aviv972/introgit-hub/internal/config"
	"github.com/Aviv972/introgit-hub/internal/functions"
	"github.com/Aviv972/introgit-hub/internal/intercept"
	"github.com/Aviv972/introgit-hub/internal/repository"
)

const systemInstruction = "You are a support agent. Use the available tools to read files, " +
	"list directories, and search the internal documentation when answering."

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.APIKey == "" {
		logger.Warn("GOOGLE_API_KEY is not set, API calls will fail")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Fatal("create genai client", zap.Error(err))
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("connect mongodb", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Warn("mongodb disconnect", zap.Error(err))
		}
	}()

	repo := repository.NewMongoSessionRepository(mongoClient.Database(cfg.MongoDB), "sessions", logger)

	embedder := agent.NewEmbedder(logger)
	if err := embedder.Index(cfg.DocsDir); err != nil {
		logger.Fatal("index docs", zap.Error(err))
	}

	// The interceptor is held right here, as a wrapped function value.
	// Everything the agent sends passes through argument normalization
	// before it reaches the Gemini client.
	send := intercept.Wrap(agent.GenAISend(client, cfg.Model), intercept.WithLogger(logger))

	a := agent.NewWithRepo(send, systemInstruction, repo, logger)
	for _, fd := range []*agent.FunctionDeclaration{
		functions.NewReadFile(),
		functions.NewListDir(),
		functions.NewSearchDocs(embedder),
	} {
		if err := a.AddFunctionCall(fd); err != nil {
			logger.Fatal("register function", zap.String("function", fd.Name), zap.Error(err))
		}
	}

	http.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		if r.Method == http.MethodGet {
			contents, err := a.GetSession(r.Context(), sessionID)
			if err != nil {
				http.Error(w, "get session", http.StatusInternalServerError)
				return
			}

			json.NewEncoder(w).Encode(contents)
		}

		if r.Method == http.MethodDelete {
			a.ClearSession(r.Context(), sessionID)
		}
	})

	http.HandleFunc("/prompt", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			SessionID string `json:"session_id"`
			Prompt    string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.SessionID == "" {
			http.Error(w, "session_id is required", http.StatusBadRequest)
			return
		}

		if req.Prompt == "" {
			http.Error(w, "prompt is required", http.StatusBadRequest)
			return
		}

		resp, err := a.Send(r.Context(), req.SessionID, req.Prompt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		json.NewEncoder(w).Encode(resp)
	})

	logger.Info("listening", zap.String("port", cfg.HTTPPort), zap.String("model", cfg.Model))
	logger.Fatal("server stopped", zap.Error(http.ListenAndServe(":"+cfg.HTTPPort, nil)))
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
