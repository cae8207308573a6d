package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heavymachinery/backend/cache"
	"github.com/heavymachinery/backend/models"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	chatSystemPrompt = "You are a helpful assistant specialized in heavy machinery maintenance and spare parts."
	defaultContext   = "Heavy machinery maintenance and spare parts"
	maxAnswerTokens  = 1000
)

// Completer is the slice of the completion client the proxy uses.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatHistoryStore persists question/answer exchanges.
type ChatHistoryStore interface {
	Insert(ctx context.Context, record *models.ChatRecord) error
	FindByUserID(ctx context.Context, userID string) ([]models.ChatRecord, error)
}

// InquiryRequest is a question with an optional context override.
type InquiryRequest struct {
	Question string `json:"question" binding:"required"`
	Context  string `json:"context"`
	UserID   string `json:"user_id"`
}

// InquiryResponse is what gets cached and returned verbatim on a hit.
type InquiryResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
}

// ChatService proxies questions to an OpenAI-compatible completion API
// behind a 24h answer cache keyed on the exact (question, context) pair.
type ChatService struct {
	kv        cache.KV
	completer Completer
	history   ChatHistoryStore
	model     string
}

func NewChatService(kv cache.KV, completer Completer, history ChatHistoryStore, model string) *ChatService {
	return &ChatService{
		kv:        kv,
		completer: completer,
		history:   history,
		model:     model,
	}
}

// NewCompletionClient builds a client for an OpenAI-compatible endpoint
// (the deployment points it at DeepSeek). The HTTP client carries an
// explicit timeout; a single failed call surfaces immediately, no retry.
func NewCompletionClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	return openai.NewClientWithConfig(cfg)
}

// CacheKey is the exact (question, context-or-default) pair.
func CacheKey(question, contextStr string) string {
	if contextStr == "" {
		contextStr = "default"
	}
	return fmt.Sprintf("qa:%s:%s", question, contextStr)
}

// Answer resolves a question from the cache or the completion API.
func (s *ChatService) Answer(ctx context.Context, callerID string, req *InquiryRequest) (*InquiryResponse, *ServiceError) {
	if req.UserID != "" && req.UserID != callerID {
		return nil, forbidden("Not authorized to access this chat")
	}
	if s.completer == nil {
		return nil, internal("Completion API key not configured")
	}

	key := CacheKey(req.Question, req.Context)
	if cached, err := s.kv.Get(ctx, key); err == nil {
		var resp InquiryResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			zap.L().Debug("Chat cache hit", zap.String("key", key))
			return &resp, nil
		}
	} else if err != cache.ErrMiss {
		zap.L().Warn("Chat cache read failed", zap.Error(err))
	}

	questionContext := req.Context
	if questionContext == "" {
		questionContext = defaultContext
	}

	completion, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Context: %s\nQuestion: %s", questionContext, req.Question)},
		},
		MaxTokens: maxAnswerTokens,
		Stream:    false,
	})
	if err != nil {
		return nil, badGateway(fmt.Sprintf("Completion API error: %v", err))
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, badGateway("Invalid response from completion API: no choices returned")
	}

	resp := &InquiryResponse{
		Answer: completion.Choices[0].Message.Content,
		Score:  0.9,
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.kv.Set(ctx, key, string(payload), cache.AnswerTTL); err != nil {
			zap.L().Warn("Chat cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	record := &models.ChatRecord{
		ID:        uuid.NewString(),
		UserID:    callerID,
		Question:  req.Question,
		Answer:    resp.Answer,
		Context:   questionContext,
		Timestamp: time.Now().UTC(),
	}
	if err := s.history.Insert(ctx, record); err != nil {
		zap.L().Error("Failed to persist chat history", zap.Error(err))
		return nil, internal("Failed to record chat history")
	}

	return resp, nil
}

// History returns the caller's past exchanges, newest first.
func (s *ChatService) History(ctx context.Context, userID string) ([]models.ChatRecord, *ServiceError) {
	records, err := s.history.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to fetch chat history", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch chat history")
	}
	return records, nil
}
