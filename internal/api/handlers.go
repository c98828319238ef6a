package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/axion/internal/outreach"
	"github.com/MikeSquared-Agency/axion/internal/visitor"
)

const maxBodyBytes = 64 << 10

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type visitorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Answers  string `json:"answers"`
	IsHiring bool   `json:"isHiring"`
}

type contactRequest struct {
	Name     string `json:"name"`
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
}

type contactResponse struct {
	Status            string `json:"status"`
	EmailSent         bool   `json:"emailSent"`
	GithubFollowed    bool   `json:"githubFollowed"`
	LinkedinConnected bool   `json:"linkedinConnected"`
}

type failedResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Outbound work runs on a context detached from the request so a client
// disconnect does not abort a provider call or an email send.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	reply := s.chat.Reply(context.WithoutCancel(r.Context()), req.Message)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// handleLogVisitor always answers with the redirect, even for a body it
// cannot read.
func (s *Server) handleLogVisitor(w http.ResponseWriter, r *http.Request) {
	var req visitorRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logger.Warn("unreadable visitor submission", "error", err)
		writeJSON(w, http.StatusOK, map[string]string{"redirect": s.redirectURL})
		return
	}
	_, err := s.visitors.Log(context.WithoutCancel(r.Context()), visitor.Submission{
		Name:     req.Name,
		Email:    req.Email,
		UserType: req.UserType,
		Company:  req.Company,
		Role:     req.Role,
		Answers:  req.Answers,
		IsHiring: req.IsHiring,
	})
	if err != nil {
		s.logger.Error("failed to log visitor", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"redirect": s.redirectURL})
}

func (s *Server) handleContactOutreach(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decode(w, r, &req) {
		return
	}
	report := s.contacts.Run(context.WithoutCancel(r.Context()), outreach.ContactRequest{
		Name:     req.Name,
		Github:   req.Github,
		Linkedin: req.Linkedin,
	})
	if report.Failed() {
		writeJSON(w, http.StatusOK, failedResponse{Status: report.Status, Reason: report.Reason})
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{
		Status:            report.Status,
		EmailSent:         report.EmailSent,
		GithubFollowed:    report.GithubFollowed,
		LinkedinConnected: report.LinkedinConnected,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
