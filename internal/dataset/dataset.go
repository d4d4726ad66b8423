package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultURL — файл с исходными данными для суммы.
const DefaultURL = "https://raw.githubusercontent.com/igorg74/data/refs/heads/main/data.txt"

// maxBody ограничивает размер загружаемого файла.
const maxBody = 1 << 20

var ErrEmpty = errors.New("dataset: нет данных")

// Parse разбивает текст на токены по любым пробельным символам.
// Числа здесь не разбираются: это делает evaluator.
func Parse(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBody))
	if err != nil {
		return nil, fmt.Errorf("dataset: чтение: %w", err)
	}
	parts := strings.Fields(string(b))
	if len(parts) == 0 {
		return nil, ErrEmpty
	}
	return parts, nil
}

func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Fetcher загружает данные по HTTP.
type Fetcher struct {
	Client *http.Client
	URL    string
}

// Fetch выполняет GET без кэша. Отмена ctx прерывает загрузку.
func (f *Fetcher) Fetch(ctx context.Context) ([]string, error) {
	url := f.URL
	if url == "" {
		url = DefaultURL
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: запрос: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset: загрузка %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return Parse(resp.Body)
}

// StatusError: сервер ответил не 2xx.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ошибка загрузки %s (HTTP %d)", e.URL, e.Code)
}
