package handler

import (
	"net/http"
	"time"

	"github.com/adventurego/backend/internal/domain"
)

// SubmitQuery handles POST /queries — the public contact form. No auth: the
// sender may not have an account. The response exposes only the assigned
// query number and enough to confirm receipt.
func (s *Server) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	var body queryRequest
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.queries.Submit(r.Context(), domain.QueryRecord{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		Message:   body.Message,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, queryResponse{
		QueryNumber: created.QueryNumber,
		Email:       created.Email,
		CreatedAt:   created.CreatedAt,
	})
}

type queryRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

type queryResponse struct {
	QueryNumber int       `json:"queryNumber"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}
