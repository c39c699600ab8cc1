package v1

import (
	"fmt"
	"net/http"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PostingHandler struct {
	postingUC domain.PostingUsecase
}

func NewPostingHandler(r *gin.RouterGroup, postingUC domain.PostingUsecase) {
	handler := &PostingHandler{postingUC: postingUC}

	postings := r.Group("/postings")
	{
		postings.GET("", handler.List)
		postings.GET("/statistics", handler.Statistics)
		postings.GET("/:id", handler.Get)
		postings.POST("", handler.Create)
		postings.PUT("/:id", handler.Update)
		postings.DELETE("/:id", handler.Delete)

		postings.GET("/:id/applies", handler.ListApplies)
		postings.GET("/:id/applies/export", handler.ExportApplies)
		postings.POST("/:id/apply", handler.Apply)
	}
}

// List godoc
// @Summary      List postings
// @Description  All postings newest first with employer, company and required skills
// @Tags         postings
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Posting}
// @Router       /postings [get]
func (h *PostingHandler) List(c *gin.Context) {
	postings, err := h.postingUC.ListPostings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Postings", postings)
}

// Statistics godoc
// @Summary      Posting statistics
// @Tags         postings
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.PostingStatistics}
// @Router       /postings/statistics [get]
func (h *PostingHandler) Statistics(c *gin.Context) {
	stats, err := h.postingUC.Statistics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posting statistics", stats)
}

// Get godoc
// @Summary      Get posting
// @Tags         postings
// @Produce      json
// @Param        id   path      int  true  "Posting ID"
// @Success      200  {object}  response.Response{data=domain.Posting}
// @Failure      404  {object}  response.Response
// @Router       /postings/{id} [get]
func (h *PostingHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	posting, err := h.postingUC.GetPosting(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posting", posting)
}

// Create godoc
// @Summary      Create posting
// @Description  EmployerID defaults to the authenticated employer; an unknown moderator falls back to the default one
// @Tags         postings
// @Accept       json
// @Produce      json
// @Param        posting  body      domain.CreatePostingInput  true  "Posting JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /postings [post]
// @Security     BearerAuth
func (h *PostingHandler) Create(c *gin.Context) {
	var req domain.CreatePostingInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	id, err := h.postingUC.CreatePosting(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Posting created", gin.H{"postID": id})
}

// Update godoc
// @Summary      Update posting
// @Description  Rejected once the posting's end date has passed
// @Tags         postings
// @Accept       json
// @Produce      json
// @Param        id       path      int                        true  "Posting ID"
// @Param        posting  body      domain.UpdatePostingInput  true  "Posting JSON"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /postings/{id} [put]
func (h *PostingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.UpdatePostingInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	if err := h.postingUC.UpdatePosting(c.Request.Context(), id, &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posting updated", nil)
}

// Delete godoc
// @Summary      Delete posting
// @Tags         postings
// @Produce      json
// @Param        id   path      int  true  "Posting ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /postings/{id} [delete]
func (h *PostingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.postingUC.DeletePosting(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posting deleted", nil)
}

// ListApplies godoc
// @Summary      List applicants
// @Description  Latest application per candidate, newest first
// @Tags         applications
// @Produce      json
// @Param        id      path      int     true   "Posting ID"
// @Param        search  query     string  false  "Name or email contains"
// @Param        filter  query     string  false  "all, recent or older"
// @Success      200     {object}  response.Response{data=[]domain.Applicant}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /postings/{id}/applies [get]
func (h *PostingHandler) ListApplies(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	applicants, err := h.postingUC.ListApplies(c.Request.Context(), id, c.Query("search"), domain.ApplyFilter(c.Query("filter")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants", applicants)
}

// ExportApplies godoc
// @Summary      Export applicants
// @Description  XLSX workbook of applicants with their skill match percentage
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      int  true  "Posting ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /postings/{id}/applies/export [get]
func (h *PostingHandler) ExportApplies(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	data, fileName, err := h.postingUC.ExportApplies(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Apply godoc
// @Summary      Apply as an existing candidate
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path      int                  true  "Posting ID"
// @Param        apply  body      domain.ApplyRequest  true  "Candidate"
// @Success      201    {object}  response.Response{data=domain.Apply}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /postings/{id}/apply [post]
func (h *PostingHandler) Apply(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ApplyRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	apply, err := h.postingUC.Apply(c.Request.Context(), id, req.CandidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", apply)
}
