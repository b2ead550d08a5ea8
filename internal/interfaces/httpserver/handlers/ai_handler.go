package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/domain/generation"
	"moodcanvas-server/internal/interfaces/httpserver/requests"
	"moodcanvas-server/internal/interfaces/httpserver/responses"
	"moodcanvas-server/internal/utils/platformerrors"
)

// insightHistory is how many recent diaries feed the insight when the client
// posts none.
const insightHistory = 30

// AIHandler exposes the generation capabilities.
type AIHandler struct {
	gen      GenerationService
	diaries  DiaryService
	sessions SessionManager
	log      zerolog.Logger
}

// NewAIHandler constructs the handler.
func NewAIHandler(gen GenerationService, diaries DiaryService, sessions SessionManager, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		gen:      gen,
		diaries:  diaries,
		sessions: sessions,
		log:      log.With().Str("handler", "ai").Logger(),
	}
}

// GenerateImage handles POST /v1/ai/image
// @Summary Generate a diary image
// @Description Builds an image prompt from the diary and renders it with the first available image provider. Identical requests within the cooldown window are rejected.
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.GenerationRequest true "Diary input"
// @Success 200 {object} responses.ImageResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 429 {object} platformerrors.HTTPErrorResponse
// @Failure 502 {object} platformerrors.HTTPErrorResponse
// @Router /v1/ai/image [post]
func (h *AIHandler) GenerateImage(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req requests.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.gen.GenerateImage(c.Request.Context(), h.sessions.State(p.StateID), toGeneration(req))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.FromImageResult(result))
}

// GenerateQuote handles POST /v1/ai/quote
// @Summary Generate a diary quote
// @Description Always succeeds for valid input; a local phrase is produced when every provider fails.
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.GenerationRequest true "Diary input"
// @Success 200 {object} responses.QuoteResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/ai/quote [post]
func (h *AIHandler) GenerateQuote(c *gin.Context) {
	var req requests.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.gen.GenerateQuote(c.Request.Context(), toGeneration(req))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.QuoteResponse{Success: true, Quote: result.Text, GeneratedBy: result.Provider.DisplayName()})
}

// GeneratePrompt handles POST /v1/ai/prompt
// @Summary Generate an image prompt
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.GenerationRequest true "Diary input"
// @Success 200 {object} responses.PromptResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 502 {object} platformerrors.HTTPErrorResponse
// @Router /v1/ai/prompt [post]
func (h *AIHandler) GeneratePrompt(c *gin.Context) {
	var req requests.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.gen.GenerateImagePrompt(c.Request.Context(), toGeneration(req))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.PromptResponse{Success: true, Prompt: result.Text, GeneratedBy: result.Provider.DisplayName()})
}

// GenerateInsight handles POST /v1/ai/insight
// @Summary Reflect on recent diaries
// @Description Uses the posted diaries, or the caller's latest 30 when none are posted.
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.InsightRequest false "Diaries"
// @Success 200 {object} responses.InsightResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 502 {object} platformerrors.HTTPErrorResponse
// @Router /v1/ai/insight [post]
func (h *AIHandler) GenerateInsight(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req requests.InsightRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	entries := make([]generation.InsightEntry, 0, len(req.Diaries))
	for _, d := range req.Diaries {
		if strings.TrimSpace(d.Content) == "" {
			continue
		}
		entries = append(entries, generation.InsightEntry{Date: d.Date, MoodScore: d.MoodScore, Content: d.Content})
	}
	if len(entries) == 0 {
		recent, err := h.diaries.RecentInsightEntries(ctx, p.UserID, insightHistory)
		if err != nil {
			platformerrors.WriteError(c, err, h.log)
			return
		}
		entries = recent
	}

	result, err := h.gen.GenerateInsight(ctx, entries)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.InsightResponse{Success: true, Insight: result.Text, GeneratedBy: result.Provider.DisplayName()})
}

// Providers handles GET /v1/ai/providers
// @Summary Provider availability
// @Tags AI
// @Produce json
// @Success 200 {object} responses.ProvidersResponse
// @Router /v1/ai/providers [get]
func (h *AIHandler) Providers(c *gin.Context) {
	text, image := h.gen.Chains()
	c.JSON(http.StatusOK, responses.FromChains(h.gen.Availability(), text, image))
}

func toGeneration(req requests.GenerationRequest) generation.GenerationRequest {
	return generation.NewGenerationRequest(req.Content, req.Style, req.Mood)
}
