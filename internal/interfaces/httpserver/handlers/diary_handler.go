package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/interfaces/httpserver/requests"
	"moodcanvas-server/internal/interfaces/httpserver/responses"
	"moodcanvas-server/internal/utils/platformerrors"
)

// DiaryHandler exposes diary CRUD, calendar listings and the preview.
type DiaryHandler struct {
	diaries  DiaryService
	gen      GenerationService
	sessions SessionManager
	imageURL ImageURLFunc
	log      zerolog.Logger
}

// NewDiaryHandler constructs the handler.
func NewDiaryHandler(diaries DiaryService, gen GenerationService, sessions SessionManager, imageURL ImageURLFunc, log zerolog.Logger) *DiaryHandler {
	return &DiaryHandler{
		diaries:  diaries,
		gen:      gen,
		sessions: sessions,
		imageURL: imageURL,
		log:      log.With().Str("handler", "diary").Logger(),
	}
}

// Preview handles POST /v1/diaries/preview
// @Summary Preview a diary
// @Description Generates prompt, image and annotation for an unsaved diary. An image failure still returns the prompt and annotation with fallback=true.
// @Tags Diaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.GenerationRequest true "Diary input"
// @Success 200 {object} responses.PreviewResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 502 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries/preview [post]
func (h *DiaryHandler) Preview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req requests.GenerationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.gen.Preview(c.Request.Context(), h.sessions.State(p.StateID), toGeneration(req))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.FromPreview(result))
}

// Create handles POST /v1/diaries
// @Summary Create a diary
// @Tags Diaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.CreateDiaryRequest true "Diary"
// @Success 201 {object} responses.DiaryResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries [post]
func (h *DiaryHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req requests.CreateDiaryRequest
	if !bindJSON(c, &req) {
		return
	}
	imagePath := req.ImagePath
	if strings.TrimSpace(imagePath) == "" {
		imagePath = req.GeneratedImageID
	}

	d, err := h.diaries.Create(c.Request.Context(), p.UserID, diary.CreateInput{
		Title:           req.Title,
		Content:         req.Content,
		Mood:            req.Mood,
		DiaryDate:       req.DiaryDate,
		AIGeneratedText: req.AIGeneratedText,
		ImagePath:       imagePath,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, responses.DiaryResponse{Success: true, Diary: responses.FromDiary(d, h.imageURL)})
}

// QuickCreate handles POST /v1/diaries/quick
// @Summary Quick calendar entry
// @Tags Diaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.QuickDiaryRequest true "Entry"
// @Success 201 {object} responses.DiaryResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries/quick [post]
func (h *DiaryHandler) QuickCreate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req requests.QuickDiaryRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.diaries.QuickCreate(c.Request.Context(), p.UserID, diary.CreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		DiaryDate: req.DiaryDate,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, responses.DiaryResponse{Success: true, Diary: responses.FromDiary(d, h.imageURL)})
}

// List handles GET /v1/diaries
// @Summary List diaries
// @Tags Diaries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.DiaryListResponse
// @Router /v1/diaries [get]
func (h *DiaryHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.diaries.List(c.Request.Context(), p.UserID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.FromDiaries(items, h.imageURL))
}

// Get handles GET /v1/diaries/:id
// @Summary Show a diary
// @Tags Diaries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 200 {object} responses.DiaryResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries/{id} [get]
func (h *DiaryHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := diaryID(c)
	if !ok {
		return
	}
	d, err := h.diaries.Get(c.Request.Context(), p.UserID, id)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.DiaryResponse{Success: true, Diary: responses.FromDiary(d, h.imageURL)})
}

// ByDate handles GET /v1/diaries/date/:date
// @Summary Diaries of one day
// @Tags Diaries
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} responses.DiaryListResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries/date/{date} [get]
func (h *DiaryHandler) ByDate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	items, err := h.diaries.ListByDate(c.Request.Context(), p.UserID, c.Param("date"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.FromDiaries(items, h.imageURL))
}

// ByMonth handles GET /v1/diaries/month/:year/:month
// @Summary Calendar month
// @Tags Diaries
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month 1-12"
// @Success 200 {object} responses.DiaryListResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries/month/{year}/{month} [get]
func (h *DiaryHandler) ByMonth(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		platformerrors.WriteValidationError(c, "year and month must be numbers")
		return
	}
	items, err := h.diaries.ListByMonth(c.Request.Context(), p.UserID, year, month)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.FromDiaries(items, h.imageURL))
}

// Delete handles DELETE /v1/diaries/:id
// @Summary Delete a diary
// @Description Removes the diary and its generated image.
// @Tags Diaries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Diary ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/diaries/{id} [delete]
func (h *DiaryHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := diaryID(c)
	if !ok {
		return
	}
	if err := h.diaries.Delete(c.Request.Context(), p.UserID, id); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: "diary deleted"})
}

func diaryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		platformerrors.WriteValidationError(c, "invalid diary id")
		return 0, false
	}
	return uint(id), true
}
