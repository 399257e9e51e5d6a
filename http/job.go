package http

import (
	"net/http"
	"strconv"

	"github.com/fwojciec/sift"
	"github.com/go-chi/chi/v5"
)

// DefaultJobPageSize is used when /api/jobs is called without a limit.
const DefaultJobPageSize = 50

func (s *Server) registerJobRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Use(s.requireJobs)
		r.Get("/", s.handleJobList)
		r.Get("/{id}", s.handleJobView)
		r.Get("/{id}/result", s.handleJobResult)
		r.Delete("/{id}", s.handleJobDelete)
	})
}

func (s *Server) requireJobs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.JobService == nil {
			Error(w, r, s.logger, sift.Errorf(sift.ECONFIG, "Job history not configured"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := sift.JobFilter{Limit: DefaultJobPageSize}

	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	var err error
	if filter.Limit, err = queryInt(q.Get("limit"), "limit", filter.Limit); err != nil {
		Error(w, r, s.logger, err)
		return
	}
	if filter.Offset, err = queryInt(q.Get("offset"), "offset", 0); err != nil {
		Error(w, r, s.logger, err)
		return
	}

	jobs, err := s.JobService.FindJobs(r.Context(), filter)
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": jobs})
}

func (s *Server) handleJobView(w http.ResponseWriter, r *http.Request) {
	job, err := s.JobService.FindJobByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
}

func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.JobService.FindResultByJobID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": res})
}

func (s *Server) handleJobDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.JobService.DeleteJob(r.Context(), chi.URLParam(r, "id")); err != nil {
		Error(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// queryInt parses a non-negative query value, returning def when v is empty.
func queryInt(v, name string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, sift.Errorf(sift.EINVALID, "Invalid %s: %s", name, v)
	}
	return n, nil
}
