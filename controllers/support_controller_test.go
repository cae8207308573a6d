package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/controllers"
	"github.com/heavymachinery/backend/middleware"
	"github.com/heavymachinery/backend/models"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeFAQStore struct {
	faqs []models.FAQ
}

func (f *fakeFAQStore) Insert(_ context.Context, faq *models.FAQ) error {
	f.faqs = append(f.faqs, *faq)
	return nil
}

func (f *fakeFAQStore) FindAll(_ context.Context) ([]models.FAQ, error) {
	return f.faqs, nil
}

type fakeFeedbackStore struct {
	entries []models.Feedback
}

func (f *fakeFeedbackStore) Insert(_ context.Context, feedback *models.Feedback) error {
	f.entries = append(f.entries, *feedback)
	return nil
}

func supportRouter(faqs *fakeFAQStore, feedback *fakeFeedbackStore, userID string, isAdmin bool) *gin.Engine {
	r := gin.New()
	sc := controllers.NewSupportController(faqs, feedback)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userID)
		c.Set(middleware.AdminContextKey, isAdmin)
		c.Next()
	})

	r.GET("/faqs", sc.ListFAQs)
	r.POST("/faqs", sc.AddFAQ)
	r.POST("/feedback", sc.AddFeedback)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddFAQ_RegularUserAttribution(t *testing.T) {
	faqs := &fakeFAQStore{}
	r := supportRouter(faqs, &fakeFeedbackStore{}, "user-1", false)

	w := postJSON(r, "/faqs", gin.H{
		"question": "Do you ship undercarriage parts?",
		"answer":   "Yes, via SMSA and Aramex.",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, faqs.faqs, 1)
	assert.Equal(t, "user", faqs.faqs[0].AddedBy)
}

func TestAddFAQ_AdminAttribution(t *testing.T) {
	faqs := &fakeFAQStore{}
	r := supportRouter(faqs, &fakeFeedbackStore{}, "admin-1", true)

	w := postJSON(r, "/faqs", gin.H{
		"question": "What is the warranty period?",
		"answer":   "12 months on all parts.",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, faqs.faqs, 1)
	assert.Equal(t, "company", faqs.faqs[0].AddedBy)
}

func TestAddFAQ_MissingFields(t *testing.T) {
	faqs := &fakeFAQStore{}
	r := supportRouter(faqs, &fakeFeedbackStore{}, "user-1", false)

	w := postJSON(r, "/faqs", gin.H{"question": "No answer given"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, faqs.faqs)
}

func TestAddFeedback_OwnIDOnly(t *testing.T) {
	feedback := &fakeFeedbackStore{}
	r := supportRouter(&fakeFAQStore{}, feedback, "user-1", false)

	w := postJSON(r, "/feedback", gin.H{
		"user_id": "user-2",
		"comment": "Fast delivery",
		"rating":  5,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, feedback.entries)
}

func TestAddFeedback_RatingBounds(t *testing.T) {
	feedback := &fakeFeedbackStore{}
	r := supportRouter(&fakeFAQStore{}, feedback, "user-1", false)

	w := postJSON(r, "/feedback", gin.H{"comment": "meh", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/feedback", gin.H{"comment": "great", "rating": 4})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, feedback.entries, 1)
	assert.Equal(t, "user-1", feedback.entries[0].UserID)
}
