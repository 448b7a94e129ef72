package handler

import (
	"errors"
	"net/http"

	"velia-server/internal/prompts"
	"velia-server/internal/schemas"
	"velia-server/internal/service"
	"velia-server/internal/tmdb"

	"github.com/gin-gonic/gin"
)

var recapParams = service.GenerationParams{
	Temperature:     service.Float32Ptr(0.8),
	MaxOutputTokens: service.Int32Ptr(1024),
}

type recapRequest struct {
	MovieID    int64  `json:"movieId"`
	MovieQuery string `json:"movieQuery"`
}

// movieResponse - представление фильма в ответе (camelCase для клиента).
type movieResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	Runtime      int    `json:"runtime"`
	ReleaseDate  string `json:"releaseDate"`
	PosterPath   string `json:"posterPath"`
	BackdropPath string `json:"backdropPath"`
}

// generateRecap - POST /api/recap.
// Принимает movieId либо movieQuery; метаданные берутся из TMDB,
// пересказ генерирует модель. Таймкоды модели не исправляются.
func (h *Handler) generateRecap(c *gin.Context) {
	var req recapRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.MovieID == 0 && req.MovieQuery == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Movie ID or query is required"})
		return
	}

	ctx, cancel := h.generationContext(c)
	defer cancel()

	var movie *tmdb.Movie
	var err error
	if req.MovieID != 0 {
		movie, err = h.movies.GetMovie(ctx, req.MovieID)
	} else {
		movie, err = h.movies.SearchMovie(ctx, req.MovieQuery)
	}
	if err != nil {
		if errors.Is(err, tmdb.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
			return
		}
		h.logger.Error().Err(err).Msg("movie lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate movie recap"})
		return
	}

	prompt := prompts.CompileMovieRecap(movie.Title, movie.Overview, movie.Runtime)

	raw, _, err := h.text.GenerateText(ctx, userID(c), prompt, recapParams)
	if err != nil {
		h.logger.Error().Err(err).Msg("recap generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate movie recap"})
		return
	}

	recap := schemas.CleanRecap(raw)
	if malformed := schemas.CountMalformedSegments(recap); malformed > 0 {
		recapMalformedSegments.Add(float64(malformed))
		h.logger.Warn().Int("malformed_lines", malformed).Int64("movie_id", movie.ID).
			Msg("recap contains lines without a valid timestamp")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recap":   recap,
		"movie": movieResponse{
			ID:           movie.ID,
			Title:        movie.Title,
			Overview:     movie.Overview,
			Runtime:      movie.Runtime,
			ReleaseDate:  movie.ReleaseDate,
			PosterPath:   movie.PosterPath,
			BackdropPath: movie.BackdropPath,
		},
	})
}
