package v1

import (
	"net/http"
	"strconv"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers user and candidate routes. registration
// wraps the endpoints that create accounts.
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, registration ...gin.HandlerFunc) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	r.POST("/users", with(registration, handler.CreateUser)...)

	candidates := r.Group("/candidates")
	{
		candidates.POST("", handler.CreateCandidate)
		candidates.POST("/apply-new", with(registration, handler.ApplyAsNewCandidate)...)
		candidates.GET("/:id", handler.GetProfile)
		candidates.PUT("/:id", handler.Update)
		candidates.PUT("/:id/full", handler.UpdateFullProfile)
		candidates.POST("/:id/cvs/upload-url", handler.CVUploadURL)
	}
}

type CVUploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

// CreateUser godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterUserInput  true  "User JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /users [post]
func (h *CandidateHandler) CreateUser(c *gin.Context) {
	var req domain.RegisterUserInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	id, err := h.candidateUC.CreateUser(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created", gin.H{"userID": id})
}

// CreateCandidate godoc
// @Summary      Promote a user to candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      domain.CreateCandidateInput  true  "Candidate JSON"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req domain.CreateCandidateInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	id, err := h.candidateUC.CreateCandidate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created", gin.H{"candidateID": id})
}

// ApplyAsNewCandidate godoc
// @Summary      Register and apply in one step
// @Description  Creates the user, the candidate profile with its collections and one application atomically
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        application  body      domain.ApplyNewCandidateInput  true  "Registration and application JSON"
// @Success      201          {object}  response.Response{data=domain.ApplyNewCandidateResult}
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /candidates/apply-new [post]
func (h *CandidateHandler) ApplyAsNewCandidate(c *gin.Context) {
	var req domain.ApplyNewCandidateInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.candidateUC.ApplyAsNewCandidate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", result)
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Full profile. With an employer (token, else query) only CVs visible to that employer are returned.
// @Tags         candidates
// @Produce      json
// @Param        id          path      int  true   "Candidate ID"
// @Param        employerId  query     int  false  "Employer ID"
// @Success      200         {object}  response.Response{data=domain.CandidateProfile}
// @Failure      404         {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	// A verified token wins over the query parameter.
	var employerID *int64
	if v, ok := domain.EmployerIDFrom(c.Request.Context()); ok {
		employerID = &v
	} else if raw := c.Query("employerId"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			c.Error(apperror.BadRequest("Invalid employerId"))
			return
		}
		employerID = &v
	}

	profile, err := h.candidateUC.GetProfile(c.Request.Context(), id, employerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

// Update godoc
// @Summary      Update candidate basics
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      int                          true  "Candidate ID"
// @Param        candidate  body      domain.UpdateCandidateInput  true  "Candidate JSON"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.UpdateCandidateInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.UpdateCandidate(c.Request.Context(), id, &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", nil)
}

// UpdateFullProfile godoc
// @Summary      Replace full candidate profile
// @Description  Replaces contact details, basics, experiences, education and certificates in one transaction
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Candidate ID"
// @Param        profile  body      domain.FullProfileInput  true  "Profile JSON"
// @Success      200      {object}  response.Response{data=domain.ProfileFragments}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /candidates/{id}/full [put]
func (h *CandidateHandler) UpdateFullProfile(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.FullProfileInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	fragments, err := h.candidateUC.UpdateFullProfile(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", fragments)
}

// CVUploadURL godoc
// @Summary      Presigned CV upload URL
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Candidate ID"
// @Param        file  body      CVUploadRequest  true  "File name"
// @Success      200   {object}  response.Response{data=domain.CVUpload}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /candidates/{id}/cvs/upload-url [post]
func (h *CandidateHandler) CVUploadURL(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req CVUploadRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	upload, err := h.candidateUC.PresignCVUpload(c.Request.Context(), id, req.FileName)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Upload URL issued", upload)
}
