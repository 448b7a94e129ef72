package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrMovieNotFound - фильм не найден в TMDB.
var ErrMovieNotFound = errors.New("movie not found")

// Movie содержит поля записи TMDB, которые нужны генерации пересказа.
type Movie struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	Runtime      int    `json:"runtime"`
	ReleaseDate  string `json:"release_date"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// searchResponse - ответ TMDB на поиск по названию.
type searchResponse struct {
	Results []Movie `json:"results"`
}

// Client предоставляет методы для взаимодействия с TMDB API v3.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientConfig содержит настройки для клиента TMDB
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient создает новый клиент для TMDB
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// GetMovie запрашивает фильм по идентификатору TMDB.
func (c *Client) GetMovie(ctx context.Context, movieID int64) (*Movie, error) {
	endpoint := fmt.Sprintf("%s/movie/%s?api_key=%s",
		c.baseURL, strconv.FormatInt(movieID, 10), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выполнении запроса к TMDB: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var movie Movie
		if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
			return nil, fmt.Errorf("ошибка при разборе ответа TMDB: %w", err)
		}
		return &movie, nil
	case http.StatusNotFound:
		return nil, ErrMovieNotFound
	default:
		return nil, fmt.Errorf("ошибка TMDB, код: %d", resp.StatusCode)
	}
}

// SearchMovie ищет фильм по названию и возвращает первый результат.
func (c *Client) SearchMovie(ctx context.Context, query string) (*Movie, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s&page=1",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка при выполнении запроса к TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ошибка TMDB, код: %d", resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("ошибка при разборе ответа TMDB: %w", err)
	}
	if len(search.Results) == 0 {
		return nil, ErrMovieNotFound
	}
	// Берем первый результат, как и поиск на сайте.
	return &search.Results[0], nil
}
