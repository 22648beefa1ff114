// Package agent is the demonstration harness that drives the Gemini
// API through the argument-normalizing interceptor. It is deliberately
// thin: conversation bookkeeping, tool dispatch, and the send boundary
// the interceptor wraps.
package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Aviv972/introgit-hub/internal/intercept"
	"github.com/Aviv972/introgit-hub/internal/model"
	"github.com/Aviv972/introgit-hub/internal/repository"
)

// FunctionDeclaration describes a tool the model may call.
type FunctionDeclaration struct {
	Name             string
	Description      string
	ParametersSchema any
	ResponseSchema   any
	FunctionCall     FunctionCallFn
}

// FunctionCallFn executes a tool invocation with normalized arguments.
type FunctionCallFn func(ctx context.Context, args map[string]any) (map[string]any, error)

// Agent drives conversations against a send operation. The send
// operation is supplied by the caller, normally as
// intercept.Wrap(agent.GenAISend(client, model)), so the interceptor
// sits between history assembly and the wire.
type Agent struct {
	send              intercept.SendFunc
	systemInstruction string
	functionsMap      map[string]*FunctionDeclaration
	sessionRepository repository.SessionRepository
	log               *zap.Logger
}

// GenAISend returns the base send operation: contents are converted to
// the SDK types and dispatched via client.Models.GenerateContent.
func GenAISend(client *genai.Client, modelName string) intercept.SendFunc {
	return func(ctx context.Context, contents []*model.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gc, err := model.ToGenAI(contents)
		if err != nil {
			return nil, fmt.Errorf("agent: convert contents: %w", err)
		}
		return client.Models.GenerateContent(ctx, modelName, gc, config)
	}
}

// New creates an Agent on top of the given send operation.
func New(send intercept.SendFunc, systemInstruction string, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{
		send:              send,
		systemInstruction: systemInstruction,
		functionsMap:      make(map[string]*FunctionDeclaration),
		log:               log,
	}
}

// NewWithRepo creates an Agent that persists session history.
func NewWithRepo(send intercept.SendFunc, systemInstruction string, sessionRepository repository.SessionRepository, log *zap.Logger) *Agent {
	a := New(send, systemInstruction, log)
	a.sessionRepository = sessionRepository
	return a
}

// AddFunctionCall registers a tool.
func (a *Agent) AddFunctionCall(functionDeclaration *FunctionDeclaration) error {
	if functionDeclaration == nil {
		return fmt.Errorf("function declaration cannot be nil")
	}

	if functionDeclaration.Name == "" {
		return fmt.Errorf("function name cannot be empty")
	}

	if functionDeclaration.FunctionCall == nil {
		return fmt.Errorf("function call implementation cannot be nil")
	}

	a.functionsMap[functionDeclaration.Name] = functionDeclaration

	return nil
}

func (a *Agent) getTools() []*genai.Tool {
	functions := []*genai.FunctionDeclaration{}

	for _, fd := range a.functionsMap {
		functions = append(functions, &genai.FunctionDeclaration{
			Name:                 fd.Name,
			Description:          fd.Description,
			ParametersJsonSchema: fd.ParametersSchema,
			ResponseJsonSchema:   fd.ResponseSchema,
		})
	}

	return []*genai.Tool{
		{
			FunctionDeclarations: functions,
		},
	}
}

func (a *Agent) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: a.systemInstruction}},
		},
		Tools: a.getTools(),
	}
}

// Send appends the prompt to the session history, runs the model with
// tool dispatch until no function calls remain, persists the updated
// history, and returns the new contents produced by this turn.
func (a *Agent) Send(ctx context.Context, sessionID string, prompt string) ([]model.Content, error) {
	history, err := a.loadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history = append(history, &model.Content{
		Role:  genai.RoleUser,
		Parts: []model.Part{{Text: prompt}},
	})

	produced, err := a.run(ctx, &history)
	if err != nil {
		return nil, err
	}

	a.saveHistory(ctx, sessionID, history)

	return produced, nil
}

// run sends the accumulated history and executes any function calls the
// model requests, looping until a turn completes without calls. history
// grows in place with both model turns and function responses.
func (a *Agent) run(ctx context.Context, history *[]*model.Content) ([]model.Content, error) {
	produced := []model.Content{}

	for {
		resp, err := a.send(ctx, *history, a.generateConfig())
		if err != nil {
			return nil, err
		}

		functionResponses := []model.Part{}

		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}

			mc := model.FromGenAI([]*genai.Content{candidate.Content})
			*history = append(*history, mc...)
			for _, c := range mc {
				produced = append(produced, *c)
			}

			for _, part := range candidate.Content.Parts {
				if part.FunctionCall == nil {
					continue
				}

				funcResp, err := a.handleFunctionCall(ctx, part.FunctionCall.Name, part.FunctionCall.Args)
				if err != nil {
					return nil, err
				}

				functionResponses = append(functionResponses, model.Part{
					FunctionResponse: &model.FunctionResponse{
						ID:       part.FunctionCall.ID,
						Name:     part.FunctionCall.Name,
						Response: funcResp,
					},
				})
			}
		}

		if len(functionResponses) == 0 {
			return produced, nil
		}

		fr := &model.Content{Role: genai.RoleUser, Parts: functionResponses}
		*history = append(*history, fr)
		produced = append(produced, *fr)
	}
}

func (a *Agent) handleFunctionCall(ctx context.Context, functionName string, callArgs map[string]any) (map[string]any, error) {
	fd, exists := a.functionsMap[functionName]
	if !exists {
		return nil, fmt.Errorf("function %s not found", functionName)
	}

	a.log.Debug("dispatching function call", zap.String("function", functionName))
	return fd.FunctionCall(ctx, callArgs)
}

// ClearSession removes the stored history for a session.
func (a *Agent) ClearSession(ctx context.Context, sessionID string) {
	if a.sessionRepository == nil {
		return
	}
	if err := a.sessionRepository.Delete(ctx, sessionID); err != nil {
		a.log.Warn("failed to delete session", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// GetSession returns the stored history for a session.
func (a *Agent) GetSession(ctx context.Context, sessionID string) ([]model.Content, error) {
	if a.sessionRepository == nil {
		return []model.Content{}, nil
	}

	stored, err := a.sessionRepository.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("GetSession: %w", err)
	}

	if stored == nil {
		return []model.Content{}, nil
	}

	return stored, nil
}

func (a *Agent) loadHistory(ctx context.Context, sessionID string) ([]*model.Content, error) {
	if a.sessionRepository == nil {
		return nil, nil
	}

	stored, err := a.sessionRepository.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("agent: load history: %w", err)
	}

	history := make([]*model.Content, 0, len(stored))
	for i := range stored {
		history = append(history, &stored[i])
	}
	return history, nil
}

func (a *Agent) saveHistory(ctx context.Context, sessionID string, history []*model.Content) {
	if a.sessionRepository == nil {
		return
	}

	flat := make([]model.Content, 0, len(history))
	for _, c := range history {
		flat = append(flat, *c)
	}

	if err := a.sessionRepository.Save(ctx, sessionID, flat); err != nil {
		a.log.Warn("failed to save session", zap.String("session_id", sessionID), zap.Error(err))
	}
}
