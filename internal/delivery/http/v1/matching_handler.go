package v1

import (
	"net/http"
	"strconv"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingUC domain.MatchingUsecase
}

func NewMatchingHandler(r *gin.RouterGroup, matchingUC domain.MatchingUsecase) {
	handler := &MatchingHandler{matchingUC: matchingUC}

	r.GET("/postings/:id/skill-analysis", handler.SkillAnalysis)
	r.GET("/postings/:id/candidates", handler.CandidatesByPosting)
	r.GET("/evaluate", handler.Evaluate)
}

// SkillAnalysis godoc
// @Summary      Skill match analysis
// @Description  Per-candidate matched skill counts and match percentage for a posting
// @Tags         matching
// @Produce      json
// @Param        id   path      int  true  "Posting ID"
// @Success      200  {object}  response.Response{data=domain.SkillAnalysis}
// @Failure      404  {object}  response.Response
// @Router       /postings/{id}/skill-analysis [get]
func (h *MatchingHandler) SkillAnalysis(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	analysis, err := h.matchingUC.SkillAnalysis(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill analysis", analysis)
}

// CandidatesByPosting godoc
// @Summary      Candidates of a posting
// @Tags         matching
// @Produce      json
// @Param        id   path      int  true  "Posting ID"
// @Success      200  {object}  response.Response{data=domain.PostingCandidates}
// @Failure      404  {object}  response.Response
// @Router       /postings/{id}/candidates [get]
func (h *MatchingHandler) CandidatesByPosting(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	result, err := h.matchingUC.CandidatesByPosting(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates", result)
}

// Evaluate godoc
// @Summary      Profile strength
// @Description  Scores a candidate profile and returns advice for the score tier
// @Tags         matching
// @Produce      json
// @Param        candidate_id  query     int  true  "Candidate ID"
// @Success      200           {object}  response.Response{data=domain.ProfileStrength}
// @Failure      400           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /evaluate [get]
func (h *MatchingHandler) Evaluate(c *gin.Context) {
	raw := c.Query("candidate_id")
	var candidateID int64
	if raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Error(apperror.BadRequest("candidate_id must be a positive integer"))
			return
		}
		candidateID = v
	}

	strength, err := h.matchingUC.EvaluateProfileStrength(c.Request.Context(), candidateID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile strength", strength)
}
