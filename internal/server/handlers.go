package server

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwellhq/inkwell/internal/core/model"
	"github.com/inkwellhq/inkwell/internal/llm"
)

func (s *Server) GetDocument(c *gin.Context) {
	c.JSON(http.StatusOK, s.Ink.Store.Snapshot())
}

type TextRequest struct {
	Text string `json:"text"`
}

func (s *Server) UpdateScratchpad(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	s.Ink.UpdateScratchpad(req.Text)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.Ink.Store.Settings())
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var ws model.WorldSettings
	if err := c.ShouldBindJSON(&ws); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	s.Ink.Store.UpdateSettings(ws)
	c.JSON(http.StatusOK, ws)
}

func (s *Server) AddChapter(c *gin.Context) {
	c.JSON(http.StatusCreated, s.Ink.Store.AddChapter())
}

func (s *Server) DeleteChapter(c *gin.Context) {
	if !s.Ink.Store.Delete(model.KindChapter, c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) AddBeat(c *gin.Context) {
	b, ok := s.Ink.Store.AddBeat(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

type UpdateBeatRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (s *Server) UpdateBeat(c *gin.Context) {
	var req UpdateBeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !s.Ink.Store.UpdateBeat(c.Param("id"), c.Param("beatID"), req.Title, req.Description, req.Completed) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) UpdateBeatDraft(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !s.Ink.UpdateBeatDraft(c.Param("id"), c.Param("beatID"), req.Text) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) DeleteBeat(c *gin.Context) {
	if !s.Ink.Store.DeleteBeat(c.Param("id"), c.Param("beatID")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Beat not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) AddCharacter(c *gin.Context) {
	c.JSON(http.StatusCreated, s.Ink.Store.AddCharacter())
}

func (s *Server) UpdateCharacter(c *gin.Context) {
	var ch model.Character
	if err := c.ShouldBindJSON(&ch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	ch.ID = c.Param("id")
	if !s.Ink.Store.UpdateCharacter(ch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) DeleteCharacter(c *gin.Context) {
	if !s.Ink.Store.Delete(model.KindCharacter, c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) EnrichCharacter(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.Ink.Store.Character(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}
	if err := s.Ink.EnrichCharacter(c.Request.Context(), id); err != nil {
		log.Printf("Failed to enrich character %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Profile could not be completed"})
		return
	}
	ch, _ := s.Ink.Store.Character(id)
	c.JSON(http.StatusOK, ch)
}

func (s *Server) GeneratePortrait(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.Ink.Store.Character(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Character not found"})
		return
	}
	if err := s.Ink.GeneratePortrait(id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"pending": true})
}

func (s *Server) AddLocation(c *gin.Context) {
	c.JSON(http.StatusCreated, s.Ink.Store.AddLocation())
}

func (s *Server) UpdateLocation(c *gin.Context) {
	var l model.Location
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	l.ID = c.Param("id")
	if !s.Ink.Store.UpdateLocation(l) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) DeleteLocation(c *gin.Context) {
	if !s.Ink.Store.Delete(model.KindLocation, c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) EnrichLocation(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.Ink.Store.Location(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	if err := s.Ink.EnrichLocation(c.Request.Context(), id); err != nil {
		log.Printf("Failed to enrich location %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Profile could not be completed"})
		return
	}
	l, _ := s.Ink.Store.Location(id)
	c.JSON(http.StatusOK, l)
}

func (s *Server) GenerateScene(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.Ink.Store.Location(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	if err := s.Ink.GenerateScene(id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"pending": true})
}

type LoreRequest struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

func (s *Server) AddLore(c *gin.Context) {
	var req LoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	c.JSON(http.StatusCreated, s.Ink.Store.AddLore(req.Category, req.Content))
}

func (s *Server) UpdateLore(c *gin.Context) {
	var e model.LoreEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	e.ID = c.Param("id")
	if !s.Ink.Store.UpdateLore(e) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lore entry not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) DeleteLore(c *gin.Context) {
	if !s.Ink.Store.Delete(model.KindLore, c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lore entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetSuggestion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestion": s.Ink.Suggestion()})
}

func (s *Server) AcceptSuggestion(c *gin.Context) {
	if !s.Ink.AcceptSuggestion() {
		c.JSON(http.StatusNotFound, gin.H{"error": "No suggestion pending"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func (s *Server) RejectSuggestion(c *gin.Context) {
	s.Ink.RejectSuggestion()
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (s *Server) RunAnalysis(c *gin.Context) {
	result, err := s.Ink.Analyze(c.Request.Context())
	if err != nil {
		log.Printf("Failed to analyze manuscript: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Analysis could not be completed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) GetAnalysis(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"analysis": s.Ink.Analysis(),
		"running":  s.Ink.Analyzing(),
	})
}

type InscribeRequest struct {
	Type      model.Kind `json:"type"`
	Index     int        `json:"index"`
	ChapterID string     `json:"chapter_id"`
}

func (s *Server) Inscribe(c *gin.Context) {
	var req InscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := s.Ink.Inscribe(req.Type, req.Index, req.ChapterID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "inscribed"})
}

func (s *Server) ImportManuscript(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing manuscript file"})
		return
	}
	defer file.Close()

	text, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable manuscript file"})
		return
	}

	if err := s.Ink.ImportManuscript(c.Request.Context(), string(text)); err != nil {
		log.Printf("Failed to import manuscript: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Import could not be completed"})
		return
	}
	c.JSON(http.StatusOK, s.Ink.Store.Snapshot())
}

type ChatRequest struct {
	History []llm.ChatMessage `json:"history"`
	Message string            `json:"message"`
}

func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	reply, err := s.Ink.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		log.Printf("Failed to chat: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chat could not be completed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type ProjectRequest struct {
	Name string `json:"name"`
}

func (s *Server) ListProjects(c *gin.Context) {
	infos, err := s.Projects.List()
	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": infos})
}

func (s *Server) SaveProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	info, err := s.Projects.Save(req.Name, s.Ink.Store.Snapshot())
	if err != nil {
		log.Printf("Failed to save project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (s *Server) OverwriteProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	info, err := s.Projects.Overwrite(c.Param("id"), req.Name, s.Ink.Store.Snapshot())
	if err != nil {
		log.Printf("Failed to save project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) LoadProject(c *gin.Context) {
	doc, err := s.Projects.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	s.Ink.Store.Restore(doc)
	c.JSON(http.StatusOK, doc)
}

func (s *Server) DeleteProject(c *gin.Context) {
	if err := s.Projects.Delete(c.Param("id")); err != nil {
		log.Printf("Failed to delete project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
