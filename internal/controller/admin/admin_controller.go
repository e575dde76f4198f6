package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Thales-OM/hse-prog-task-transformer/internal/auth"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/dto"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/quizxml"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/repository"
	"github.com/Thales-OM/hse-prog-task-transformer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CredentialHeader carries the caller's private PEM on protected routes.
const CredentialHeader = "X-API-Key"

type AdminController struct {
	ingestionService service.IngestionService
	questionService  service.QuestionService
	modelService     service.ModelService
	accessService    service.AccessService
	inferenceService service.InferenceService
	authService      *auth.Service
}

func NewAdminController(
	ingestionService service.IngestionService,
	questionService service.QuestionService,
	modelService service.ModelService,
	accessService service.AccessService,
	inferenceService service.InferenceService,
	authService *auth.Service,
) *AdminController {
	return &AdminController{
		ingestionService: ingestionService,
		questionService:  questionService,
		modelService:     modelService,
		accessService:    accessService,
		inferenceService: inferenceService,
		authService:      authService,
	}
}

// RequireCredential guards admin routes with the shared-secret key pair.
func (c *AdminController) RequireCredential() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		err := c.authService.Verify(ctx.GetHeader(CredentialHeader))
		switch {
		case err == nil:
			ctx.Next()
		case errors.Is(err, auth.ErrKeyNotConfigured):
			ctx.AbortWithStatusJSON(http.StatusNotImplemented, dto.ErrorResponse{Message: "Public auth key not found. Set manually or renew token."})
		default:
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized access to protected resource"})
		}
	}
}

// UploadQuizXML godoc
// @Summary (Admin) Upload a quiz XML document
// @Description Parses the document and upserts every question with its answers and test cases in one transaction. Re-uploading the same document is safe.
// @Tags Admin - Ingestion
// @Accept xml
// @Produce json
// @Param document body string true "Quiz XML export"
// @Success 201 {object} dto.IngestResponse
// @Failure 422 {object} dto.ErrorResponse "Malformed XML or invalid question structure"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/quiz/xml [post]
func (c *AdminController) UploadQuizXML(ctx *gin.Context) {
	xmlData, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to read request body"})
		return
	}

	questionIDs, err := c.ingestionService.IngestQuizXML(xmlData)
	if err != nil {
		switch {
		case errors.Is(err, quizxml.ErrInvalidXML),
			errors.Is(err, quizxml.ErrInvalidQuestion),
			errors.Is(err, quizxml.ErrUnknownQuestionType),
			errors.Is(err, quizxml.ErrAnswerMismatch):
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Quiz document rejected", Details: []string{err.Error()}})
		case errors.Is(err, repository.ErrUnsupportedAnswerVariant):
			// Programming defect, not a user input problem.
			log.Error().Err(err).Msg("UploadQuizXML: unsupported answer variant reached the store")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal ingestion defect"})
		default:
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to ingest quiz document", Details: []string{err.Error()}})
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.IngestResponse{Message: "File processed successfully", QuestionIDs: questionIDs})
}

// CreateModel godoc
// @Summary (Admin) Register an inference model
// @Tags Admin - Models
// @Accept json
// @Produce json
// @Param body body dto.PostModelRequest true "Model spec"
// @Success 201 {object} dto.ModelResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/models/new [post]
func (c *AdminController) CreateModel(ctx *gin.Context) {
	var req dto.PostModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.modelService.CreateModel(req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create model", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// CreateInference godoc
// @Summary (Admin) Generate and store a model hint for a question
// @Tags Admin - Inference
// @Accept json
// @Produce json
// @Param body body dto.PostInferenceRequest true "Inference request"
// @Success 201 {object} dto.InferenceResponse
// @Failure 404 {object} dto.ErrorResponse "Question or model not found"
// @Router /admin/inference/new [post]
func (c *AdminController) CreateInference(ctx *gin.Context) {
	var req dto.PostInferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	id, err := c.inferenceService.MakeInference(ctx.Request.Context(), req)
	if err != nil {
		c.inferenceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.InferenceResponse{ID: id})
}

// CreateInferences godoc
// @Summary (Admin) Generate hints for several questions in one call
// @Tags Admin - Inference
// @Accept json
// @Produce json
// @Param body body []dto.PostInferenceRequest true "Inference requests"
// @Success 201 {object} dto.MessageResponse
// @Router /admin/inferences/new [post]
func (c *AdminController) CreateInferences(ctx *gin.Context) {
	var reqs []dto.PostInferenceRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	for _, req := range reqs {
		if _, err := c.inferenceService.MakeInference(ctx.Request.Context(), req); err != nil {
			c.inferenceError(ctx, err)
			return
		}
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "All inferences created successfully"})
}

// GetPrompt godoc
// @Summary (Admin) Inspect the prompt built for a question
// @Tags Admin - Inference
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.PromptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{id}/prompt [get]
func (c *AdminController) GetPrompt(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	resp, err := c.inferenceService.GetPrompt(id)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build prompt", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateUserGroup godoc
// @Summary (Admin) Create or update a user group
// @Tags Admin - Access
// @Accept json
// @Produce json
// @Param body body dto.PostUserGroupRequest true "User group"
// @Success 201 {object} dto.MessageResponse
// @Router /admin/user-groups/new [post]
func (c *AdminController) CreateUserGroup(ctx *gin.Context) {
	var req dto.PostUserGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.accessService.CreateUserGroup(req); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create user group", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "User group created successfully"})
}

// CreateLevel godoc
// @Summary (Admin) Create or update a difficulty level
// @Tags Admin - Access
// @Accept json
// @Produce json
// @Param body body dto.PostLevelRequest true "Level"
// @Success 201 {object} dto.MessageResponse
// @Router /admin/levels/new [post]
func (c *AdminController) CreateLevel(ctx *gin.Context) {
	var req dto.PostLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.accessService.CreateLevel(req); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create level", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Level created successfully"})
}

// SetGroupLevels godoc
// @Summary (Admin) Replace a group's level grants wholesale
// @Tags Admin - Access
// @Accept json
// @Produce json
// @Param body body dto.SetGroupLevelsRequest true "Full grant set"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Group or level not found"
// @Router /admin/user-groups/levels/set [post]
func (c *AdminController) SetGroupLevels(ctx *gin.Context) {
	var req dto.SetGroupLevelsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.accessService.SetGroupLevels(req.UserGroupCd, req.LevelCds); err != nil {
		c.accessError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Group levels set successfully"})
}

// AddGroupLevel godoc
// @Summary (Admin) Grant one extra level to a group
// @Tags Admin - Access
// @Accept json
// @Produce json
// @Param body body dto.AddGroupLevelRequest true "Grant"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Group or level not found"
// @Router /admin/user-groups/levels/add [post]
func (c *AdminController) AddGroupLevel(ctx *gin.Context) {
	var req dto.AddGroupLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.accessService.AddGroupLevel(req.UserGroupCd, req.LevelCd); err != nil {
		c.accessError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Group level added successfully"})
}

// SetQuestionLevel godoc
// @Summary (Admin) Assign a difficulty level to a question
// @Tags Admin - Access
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param body body dto.SetQuestionLevelRequest true "Level code"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question or level not found"
// @Router /admin/questions/{id}/level [post]
func (c *AdminController) SetQuestionLevel(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	var req dto.SetQuestionLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.questionService.AssignLevel(id, req.LevelCd); err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound), errors.Is(err, service.ErrLevelNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to assign level", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question level assigned successfully"})
}

// RenewToken godoc
// @Summary (Admin) Rotate the admin credential pair
// @Description Installs a fresh public key and returns the matching private key. The previous credential stops working.
// @Tags Admin - Auth
// @Produce json
// @Success 201 {object} dto.RenewTokenResponse
// @Router /admin/auth/renew-token [post]
func (c *AdminController) RenewToken(ctx *gin.Context) {
	privatePEM, err := c.authService.Renew()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to renew token", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, dto.RenewTokenResponse{PrivatePEM: privatePEM})
}

func (c *AdminController) inferenceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionNotFound), errors.Is(err, service.ErrModelNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create inference", Details: []string{err.Error()}})
	}
}

func (c *AdminController) accessError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserGroupNotFound), errors.Is(err, service.ErrLevelNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update access links", Details: []string{err.Error()}})
	}
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return 0, false
	}
	return uint(id), true
}
