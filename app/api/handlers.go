package api

import (
	"faqbot/app/service/chat"
	"faqbot/app/service/interaction"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type askRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type historyResponse struct {
	Messages []chat.Message `json:"messages"`
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

type analyticsResponse struct {
	interaction.Summary
	Date    string               `json:"date"`
	Records []interaction.Record `json:"records"`
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(indexHTML)
}

func (s *Server) handleQuestions(c *fiber.Ctx) error {
	return c.JSON(questionsResponse{
		Questions: s.kb.SampleQuestions(),
	})
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	return c.JSON(historyResponse{
		Messages: s.chatSvc.History(sessionID(c)),
	})
}

func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}

	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid question: %v", err))
	}

	return c.JSON(s.chatSvc.Ask(c.UserContext(), sessionID(c), req.Question))
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	s.chatSvc.Reset(sessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleAnalytics(c *fiber.Ctx) error {
	records, err := s.log.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	date := c.Query("date", interaction.AllDates)
	filtered := interaction.FilterByDate(records, date)
	if filtered == nil {
		filtered = []interaction.Record{}
	}

	return c.JSON(analyticsResponse{
		Summary: interaction.Summarize(records),
		Date:    date,
		Records: filtered,
	})
}

func (s *Server) handleClearAnalytics(c *fiber.Ctx) error {
	if err := s.log.Clear(); err != nil {
		return fmt.Errorf("failed to clear analytics: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
