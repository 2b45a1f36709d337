package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

type errorResponse struct {
	Error   string `json:"error"`
	Missing []int  `json:"missing,omitempty"`
	Unknown []int  `json:"unknown,omitempty"`
}

type answersRequest struct {
	Answers personality.AnswerSet `json:"answers"`
}

type classifyResponse struct {
	TypeCode personality.TypeCode `json:"type_code"`
	Tallies  map[string]int       `json:"tallies"`
	Answered int                  `json:"answered"`
	Total    int                  `json:"total"`
	Complete bool                 `json:"complete"`
	Missing  []int                `json:"missing"`
}

type insightRequest struct {
	TypeCode   string `json:"type_code"`
	Name       string `json:"name"`
	Profession string `json:"profession"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func owner(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(OwnerHeader))
	if id == "" {
		abort(c, http.StatusBadRequest, "missing "+OwnerHeader+" header")
		return "", false
	}
	return id, true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleQuestions(c *gin.Context) {
	bank := s.results.Bank()
	c.JSON(http.StatusOK, gin.H{
		"questions": bank.Questions(),
		"per_pair":  bank.PerPair(),
	})
}

func (s *Server) handleClassify(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	p := s.results.Preview(req.Answers)
	tallies := make(map[string]int, 8)
	for _, pair := range personality.Pairs() {
		tallies[string(pair.First())] = p.Tally.Count(pair.First())
		tallies[string(pair.Second())] = p.Tally.Count(pair.Second())
	}
	s.metrics.classified(string(p.TypeCode))

	missing := req.Answers.Missing(s.results.Bank())
	if missing == nil {
		missing = []int{}
	}
	c.JSON(http.StatusOK, classifyResponse{
		TypeCode: p.TypeCode,
		Tallies:  tallies,
		Answered: p.Answered,
		Total:    s.results.Bank().Len(),
		Complete: p.Complete,
		Missing:  missing,
	})
}

func (s *Server) handleSubmit(c *gin.Context) {
	id, ok := owner(c)
	if !ok {
		s.metrics.submitted("bad_request")
		return
	}
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.submitted("bad_request")
		abort(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	rec, err := s.results.Submit(c.Request.Context(), id, req.Answers)
	if err != nil {
		var incomplete *results.IncompleteError
		switch {
		case errors.As(err, &incomplete):
			s.metrics.submitted("incomplete")
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{
				Error:   results.ErrIncomplete.Error(),
				Missing: incomplete.Missing,
				Unknown: incomplete.Unknown,
			})
		case errors.Is(err, results.ErrOwnerRequired):
			s.metrics.submitted("bad_request")
			abort(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, results.ErrProfileNotFound):
			s.metrics.submitted("profile_missing")
			abort(c, http.StatusInternalServerError, results.ErrProfileNotFound.Error())
		case errors.Is(err, results.ErrPersist):
			s.metrics.submitted("persist_failed")
			abort(c, http.StatusServiceUnavailable, results.ErrPersist.Error())
		default:
			s.metrics.submitted("error")
			s.logger.Error("submit failed", "owner", id, "error", err)
			abort(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.metrics.submitted("saved")
	s.metrics.classified(string(rec.TypeCode))
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleHistory(c *gin.Context) {
	id, ok := owner(c)
	if !ok {
		return
	}
	recs, err := s.results.History(c.Request.Context(), id)
	if err != nil {
		s.logger.Error("history failed", "owner", id, "error", err)
		abort(c, http.StatusInternalServerError, "could not load results")
		return
	}
	if recs == nil {
		recs = []*results.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"results": recs})
}

func (s *Server) handleGetResult(c *gin.Context) {
	id, ok := owner(c)
	if !ok {
		return
	}
	rec, err := s.results.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, results.ErrNotFound) || (err == nil && rec.Owner != id) {
		abort(c, http.StatusNotFound, results.ErrNotFound.Error())
		return
	}
	if err != nil {
		s.logger.Error("get result failed", "id", c.Param("id"), "error", err)
		abort(c, http.StatusInternalServerError, "could not load result")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": s.catalog.All()})
}

func (s *Server) handleType(c *gin.Context) {
	code, err := personality.ParseTypeCode(c.Param("code"))
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	p, err := s.catalog.Lookup(code)
	if errors.Is(err, profiles.ErrNotFound) {
		abort(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		abort(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleInsight(c *gin.Context) {
	if s.insights == nil || !s.insights.Available() {
		s.metrics.insight("unavailable")
		abort(c, http.StatusServiceUnavailable, insight.ErrUnavailable.Error())
		return
	}

	var body insightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.metrics.insight("bad_request")
		abort(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	code, err := personality.ParseTypeCode(body.TypeCode)
	if err != nil {
		s.metrics.insight("bad_request")
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	req := insight.Request{TypeCode: code, Name: body.Name, Profession: body.Profession}
	if err := req.Validate(); err != nil {
		s.metrics.insight("bad_request")
		abort(c, http.StatusBadRequest, err.Error())
		return
	}

	text, err := s.insights.Explain(c.Request.Context(), req)
	if err != nil {
		s.metrics.insight("failed")
		abort(c, http.StatusBadGateway, "could not generate insight")
		return
	}
	s.metrics.insight("ok")
	c.JSON(http.StatusOK, gin.H{"insight": text})
}
