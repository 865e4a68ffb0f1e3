package controller

import (
	"net/http"

	"avon-hello/models"
	"avon-hello/repository"
)

// RepresentativeController handles HTTP requests for representative info
type RepresentativeController struct {
	repository repository.RepresentativeRepositoryInterface
}

// NewRepresentativeController creates a new RepresentativeController
func NewRepresentativeController(repo repository.RepresentativeRepositoryInterface) *RepresentativeController {
	return &RepresentativeController{
		repository: repo,
	}
}

// Get handles GET /admin/representative
func (c *RepresentativeController) Get(w http.ResponseWriter, r *http.Request) {
	rep, err := c.repository.Get(r.Context())
	if err != nil {
		writeError(w, "GetRepresentative", err)
		return
	}
	writeJSON(w, "GetRepresentative", http.StatusOK, rep)
}

// Update handles PUT /admin/representative
// Example request:
// {"name": "Monica", "address": "12 Main St", "phone": "555-0100", "email": "m@example.com",
// "website": "www.avon.com/monica", "logoPath": "/home/monica/logo.png"}
func (c *RepresentativeController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.Representative
	if !decodeJSON(w, r, "UpdateRepresentative", &req) {
		return
	}

	rep, err := c.repository.Save(r.Context(), &req)
	if err != nil {
		writeError(w, "UpdateRepresentative", err)
		return
	}
	writeJSON(w, "UpdateRepresentative", http.StatusOK, rep)
}
