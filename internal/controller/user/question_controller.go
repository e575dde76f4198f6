package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// ListQuestions godoc
// @Summary (User) List questions visible to a group
// @Description Questions outside the group's granted levels are silently omitted.
// @Tags User - Questions
// @Produce json
// @Param group query string true "User group code"
// @Success 200 {array} dto.QuestionView
// @Failure 404 {object} dto.ErrorResponse "Unknown user group"
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	groupCd, ok := requireGroup(ctx)
	if !ok {
		return
	}
	views, err := c.questionService.ListQuestions(groupCd)
	if err != nil {
		c.readError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, views)
}

// GetQuestion godoc
// @Summary (User) Fetch one question by ID
// @Description Returns 403 when the question exists outside the group's granted levels, 404 when it is absent or deleted.
// @Tags User - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Param group query string true "User group code"
// @Success 200 {object} dto.QuestionView
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	groupCd, ok := requireGroup(ctx)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	view, err := c.questionService.GetQuestion(groupCd, uint(id))
	if err != nil {
		c.readError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// RandomQuestionID godoc
// @Summary (User) Fetch a random visible question ID
// @Tags User - Questions
// @Produce json
// @Param group query string true "User group code"
// @Success 200 {object} dto.RandomIDResponse
// @Failure 404 {object} dto.ErrorResponse "No visible questions"
// @Router /questions/random/id [get]
func (c *QuestionController) RandomQuestionID(ctx *gin.Context) {
	groupCd, ok := requireGroup(ctx)
	if !ok {
		return
	}
	id, err := c.questionService.RandomQuestionID(groupCd)
	if err != nil {
		c.readError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.RandomIDResponse{ID: id})
}

func (c *QuestionController) readError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrQuestionNotFound), errors.Is(err, service.ErrUserGroupNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("Question read failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to read questions", Details: []string{err.Error()}})
	}
}

func requireGroup(ctx *gin.Context) (string, bool) {
	groupCd := ctx.Query("group")
	if groupCd == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing required 'group' query parameter"})
		return "", false
	}
	return groupCd, true
}
