package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"lotto645/internal/models"
	"lotto645/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// insights is the static commentary shown on the statistics page. It is
// fixed text, not the output of any model.
var insights = []string{
	"Every combination of 6 numbers has exactly the same 1 in 8,145,060 chance of winning.",
	"Hot and cold streaks describe the past only; the machine has no memory between draws.",
	"Most winning combinations historically sum to between 100 and 175.",
	"Picking all-low or all-high numbers means sharing a prize with fewer people, not winning more often.",
}

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	service    *services.LottoService
	templates  *template.Template
	historyErr error
}

// NewHTTPHandler creates a new HTTPHandler. historyErr carries a failed
// history load so pages can show a degraded-state notice instead of data.
func NewHTTPHandler(service *services.LottoService, templates *template.Template, historyErr error) *HTTPHandler {
	return &HTTPHandler{
		service:    service,
		templates:  templates,
		historyErr: historyErr,
	}
}

// renderPage is a helper to perform a two-step template rendering. It first
// executes the content template into a buffer, then executes the main layout
// template, passing the rendered content as a variable.
func (h *HTTPHandler) renderPage(c *gin.Context, pageData gin.H, contentTmpl string) {
	pageData["HistoryUnavailable"] = h.historyErr != nil

	buf := new(bytes.Buffer)
	err := h.templates.ExecuteTemplate(buf, contentTmpl, pageData)
	if err != nil {
		logger.Infof("Error executing content template %s: %v", contentTmpl, err)
		c.String(http.StatusInternalServerError, "Template rendering error")
		return
	}

	pageData["PageContent"] = template.HTML(buf.String())

	err = h.templates.ExecuteTemplate(c.Writer, "layout.html", pageData)
	if err != nil {
		logger.Infof("Error executing layout template: %v", err)
		c.String(http.StatusInternalServerError, "Template rendering error")
	}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.ShowLatestDraw)
	router.GET("/stats", h.ShowStatsPage)
	router.GET("/generate", h.ShowGeneratePage)
	router.POST("/generate", h.GenerateCombinations)
	router.GET("/bookmarks", h.ShowBookmarksPage)
	router.POST("/bookmarks", h.SaveBookmark)
	router.POST("/bookmarks/delete", h.DeleteBookmark)
}

// ShowLatestDraw handles the request for the home page: the most recent
// draw with its prize figures.
func (h *HTTPHandler) ShowLatestDraw(c *gin.Context) {
	data := gin.H{"title": "Latest Draw"}
	if latest, ok := h.service.Latest(); ok {
		data["Latest"] = latest
	}
	h.renderPage(c, data, "index.html")
}

// ShowStatsPage handles the request for the frequency analysis page.
func (h *HTTPHandler) ShowStatsPage(c *gin.Context) {
	profile := h.service.Frequency()
	data := gin.H{
		"title":    "Number Statistics",
		"Profile":  profile,
		"Insights": insights,
	}
	h.renderPage(c, data, "stats.html")
}

// ShowGeneratePage handles the request for the generation controls page.
func (h *HTTPHandler) ShowGeneratePage(c *gin.Context) {
	h.renderPage(c, gin.H{"title": "Generate Numbers"}, "generate.html")
}

// GenerateCombinations handles the form submission to generate candidate
// combinations and returns the results list partial.
func (h *HTTPHandler) GenerateCombinations(c *gin.Context) {
	mode := c.PostForm("mode")
	if mode == "" {
		mode = services.ModeRandom
	}

	count, err := strconv.Atoi(c.PostForm("count"))
	if err != nil || count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	minSum, maxSum := 0, 0
	if mode == services.ModeSumRange {
		minSum, err = strconv.Atoi(c.PostForm("minSum"))
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid minimum sum")
			return
		}
		maxSum, err = strconv.Atoi(c.PostForm("maxSum"))
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid maximum sum")
			return
		}
	}

	results, err := h.service.Generate(count, mode, minSum, maxSum)
	if err != nil {
		if errors.Is(err, services.ErrInfeasibleRange) {
			c.String(http.StatusOK, "<p class=\"error\">No 6-number combination can sum to that range. Try %d-%d.</p>",
				models.MinPossibleSum, models.MaxPossibleSum)
			return
		}
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	if err := h.templates.ExecuteTemplate(c.Writer, "results_list.html", gin.H{"Results": results}); err != nil {
		logger.Infof("Error executing template: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

// ShowBookmarksPage handles the request for the saved combinations page.
func (h *HTTPHandler) ShowBookmarksPage(c *gin.Context) {
	data := gin.H{
		"title":     "Saved Combinations",
		"Bookmarks": h.service.Bookmarks(),
	}
	h.renderPage(c, data, "bookmarks.html")
}

// SaveBookmark handles the form submission to save a generated combination.
func (h *HTTPHandler) SaveBookmark(c *gin.Context) {
	combo, err := comboFromForm(c)
	if err != nil {
		c.String(http.StatusBadRequest, "%s", err.Error())
		return
	}

	warning := ""
	if err := h.service.AddBookmark(combo); err != nil {
		// Kept in memory for the session even when the write failed.
		warning = "Saved for this session, but writing to disk failed."
	}

	data := gin.H{
		"Bookmarks": h.service.Bookmarks(),
		"Warning":   warning,
	}
	if err := h.templates.ExecuteTemplate(c.Writer, "bookmark_list.html", data); err != nil {
		logger.Infof("Error executing template: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

// DeleteBookmark handles the request to remove a saved combination.
func (h *HTTPHandler) DeleteBookmark(c *gin.Context) {
	id := c.PostForm("id")
	if id == "" {
		c.String(http.StatusBadRequest, "Missing bookmark id")
		return
	}

	warning := ""
	if err := h.service.RemoveBookmark(id); err != nil {
		warning = "Removed for this session, but writing to disk failed."
	}

	data := gin.H{
		"Bookmarks": h.service.Bookmarks(),
		"Warning":   warning,
	}
	if err := h.templates.ExecuteTemplate(c.Writer, "bookmark_list.html", data); err != nil {
		logger.Infof("Error executing template: %v", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

// comboFromForm rebuilds a generated combination from the hidden fields of
// the results list form.
func comboFromForm(c *gin.Context) (models.GeneratedCombination, error) {
	id := c.PostForm("id")
	if id == "" {
		return models.GeneratedCombination{}, errors.New("missing combination id")
	}

	parts := strings.Split(c.PostForm("numbers"), ",")
	if len(parts) != models.NumberCount {
		return models.GeneratedCombination{}, errors.New("combination must hold 6 numbers")
	}
	numbers := make([]int, 0, models.NumberCount)
	seen := make(map[int]bool, models.NumberCount)
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > models.MaxNumber {
			return models.GeneratedCombination{}, errors.New("combination numbers must be 1-45")
		}
		if seen[n] {
			return models.GeneratedCombination{}, errors.New("combination numbers must be distinct")
		}
		seen[n] = true
		numbers = append(numbers, n)
	}

	combo := models.GeneratedCombination{
		ID:      id,
		Numbers: numbers,
		Sum:     services.Sum(numbers),
		Reason:  c.PostForm("reason"),
	}
	if mr := c.PostForm("matchRound"); mr != "" {
		round, err := strconv.Atoi(mr)
		if err == nil {
			combo.MatchRound = &round
		}
	}
	return combo, nil
}
