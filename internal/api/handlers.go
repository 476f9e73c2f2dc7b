package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/daoexplorer/internal/explorer"
	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/bilgisen/daoexplorer/internal/middleware"
	"github.com/bilgisen/daoexplorer/internal/models"
	"github.com/bilgisen/daoexplorer/internal/snapshot"
	"github.com/gofiber/fiber/v2"
)

const (
	missingNameNotice   = "Please enter a DAO name"
	missingDAOParameter = "DAO name parameter is required"
)

// ConnectionTester reports on the text-generation backend
type ConnectionTester interface {
	Configured() bool
	TestConnection(ctx context.Context) bool
}

// ProposalForm is the body of POST /proposals
type ProposalForm struct {
	DAOName string `form:"dao_name" json:"dao_name" validate:"required,notblank"`
}

// ProposalQuery is the query string of GET /api/proposals
type ProposalQuery struct {
	DAO string `query:"dao" validate:"required,notblank"`
}

type pageData struct {
	DAOName      string
	Notices      []middleware.Notice
	Spaces       []models.Space
	Proposals    []models.Proposal
	AIConfigured bool
}

type Handlers struct {
	explorer  *explorer.Explorer
	ai        ConnectionTester
	flash     *middleware.Flash
	validator *middleware.Validator
}

func NewHandlers(exp *explorer.Explorer, tester ConnectionTester, flash *middleware.Flash) *Handlers {
	return &Handlers{
		explorer:  exp,
		ai:        tester,
		flash:     flash,
		validator: middleware.NewValidator(),
	}
}

// Index renders the input form
func (h *Handlers) Index(c *fiber.Ctx) error {
	return h.renderIndex(c, fiber.StatusOK)
}

// NotFound renders the input form with a 404 status
func (h *Handlers) NotFound(c *fiber.Ctx) error {
	if middleware.IsAPIPath(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	}
	return h.renderIndex(c, fiber.StatusNotFound)
}

func (h *Handlers) renderIndex(c *fiber.Ctx, status int) error {
	return c.Status(status).Render("index", pageData{
		Notices:      h.flash.Pop(c),
		Spaces:       snapshot.PopularSpaces(),
		AIConfigured: h.ai.Configured(),
	})
}

// Proposals handles POST /proposals
func (h *Handlers) Proposals(c *fiber.Ctx) error {
	log := logger.Get()

	var form ProposalForm
	if err := h.validator.ParseForm(c, &form); err != nil {
		log.Debug().Err(err).Interface("fields", middleware.FieldErrors(err)).Msg("Invalid proposals form")
		return h.redirectWithNotice(c, middleware.NoticeWarning, missingNameNotice)
	}
	name := strings.TrimSpace(form.DAOName)

	result, err := h.explorer.Explore(c.UserContext(), name)
	if errors.Is(err, explorer.ErrEmptyDAOName) {
		return h.redirectWithNotice(c, middleware.NoticeWarning, missingNameNotice)
	}
	if err != nil {
		return h.redirectWithNotice(c, middleware.NoticeError,
			fmt.Sprintf("Error fetching proposals for %s: %v", name, err))
	}

	data := pageData{
		DAOName:   result.DAOName,
		Notices:   h.flash.Pop(c),
		Proposals: result.Proposals,
	}
	if len(result.Proposals) == 0 {
		data.Notices = append(data.Notices, middleware.Notice{
			Category: middleware.NoticeWarning,
			Message:  explorer.NoProposalsMessage(result.DAOName),
		})
	}

	return c.Render("proposals", data)
}

func (h *Handlers) redirectWithNotice(c *fiber.Ctx, category, message string) error {
	if err := h.flash.Add(c, category, message); err != nil {
		logger.Get().Warn().Err(err).Msg("Failed to store notice")
	}
	return c.Redirect("/", fiber.StatusFound)
}

// APIProposals handles GET /api/proposals?dao=<name>
func (h *Handlers) APIProposals(c *fiber.Ctx) error {
	var q ProposalQuery
	if err := h.validator.ParseQuery(c, &q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": missingDAOParameter,
		})
	}

	result, err := h.explorer.Explore(c.UserContext(), q.DAO)
	if errors.Is(err, explorer.ErrEmptyDAOName) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": missingDAOParameter,
		})
	}
	if err != nil {
		logger.Get().Error().Err(err).Str("dao", q.DAO).Msg("API error fetching proposals")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if len(result.Proposals) == 0 {
		return c.JSON(fiber.Map{
			"dao_name":  result.DAOName,
			"proposals": []models.Proposal{},
			"message":   explorer.NoProposalsMessage(result.DAOName),
		})
	}

	return c.JSON(fiber.Map{
		"dao_name":  result.DAOName,
		"proposals": result.Proposals,
		"count":     len(result.Proposals),
	})
}

// APISpaces handles GET /api/daos
func (h *Handlers) APISpaces(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"daos": snapshot.PopularSpaces(),
	})
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// AIHealth handles /health/ai by running the connectivity probe
func (h *Handlers) AIHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ai_configured": h.ai.Configured(),
		"ai_available":  h.ai.TestConnection(c.UserContext()),
	})
}
