package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/heavymachinery/backend/middleware"
	"github.com/heavymachinery/backend/models"
	"go.uber.org/zap"
)

// FAQStore persists and lists support questions.
type FAQStore interface {
	Insert(ctx context.Context, faq *models.FAQ) error
	FindAll(ctx context.Context) ([]models.FAQ, error)
}

// FeedbackStore persists user feedback.
type FeedbackStore interface {
	Insert(ctx context.Context, feedback *models.Feedback) error
}

// SupportController handles FAQs and feedback. Both are thin
// collections with no business rules beyond validation, so the
// controller talks to the repositories directly.
type SupportController struct {
	faqs     FAQStore
	feedback FeedbackStore
}

func NewSupportController(faqs FAQStore, feedback FeedbackStore) *SupportController {
	return &SupportController{faqs: faqs, feedback: feedback}
}

type addFAQRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type addFeedbackRequest struct {
	UserID  string `json:"user_id"`
	Comment string `json:"comment" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// ListFAQs handles GET /faqs.
func (sc *SupportController) ListFAQs(ctx *gin.Context) {
	faqs, err := sc.faqs.FindAll(ctx.Request.Context())
	if err != nil {
		zap.L().Error("FAQ listing failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQs"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"faqs": faqs})
}

// AddFAQ handles POST /faqs. Any authenticated user may contribute;
// admin entries are attributed to the company, everyone else's to the
// user.
func (sc *SupportController) AddFAQ(ctx *gin.Context) {
	var req addFAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	addedBy := "user"
	if ctx.GetBool(middleware.AdminContextKey) {
		addedBy = "company"
	}

	faq := &models.FAQ{
		ID:       uuid.NewString(),
		Question: req.Question,
		Answer:   req.Answer,
		AddedBy:  addedBy,
	}
	if err := sc.faqs.Insert(ctx.Request.Context(), faq); err != nil {
		zap.L().Error("FAQ insert failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add FAQ"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"faq": faq})
}

// AddFeedback handles POST /feedback. A caller may only file feedback
// under their own id.
func (sc *SupportController) AddFeedback(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req addFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if req.UserID != "" && req.UserID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to submit feedback for another user"})
		return
	}

	feedback := &models.Feedback{
		ID:        uuid.NewString(),
		UserID:    userID,
		Comment:   req.Comment,
		Rating:    req.Rating,
		CreatedAt: time.Now().UTC(),
	}
	if err := sc.feedback.Insert(ctx.Request.Context(), feedback); err != nil {
		zap.L().Error("Feedback insert failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"feedback": feedback})
}
