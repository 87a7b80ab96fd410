package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
)

// maxBodyBytes ограничивает размер загружаемого CSV
const maxBodyBytes = 64 << 20

// readLimited читает источник целиком; превышение лимита - ошибка, а не обрезанная таблица
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, &models.DataParseError{Reason: fmt.Sprintf("source exceeds size limit of %d bytes", limit)}
	}
	return body, nil
}

// IncidentRepository получает исходный CSV по HTTP и разбирает его в таблицу инцидентов
type IncidentRepository struct {
	url        string
	userAgent  string
	httpClient *http.Client
	schema     Schema
	maxBytes   int64
}

// NewIncidentRepository создает репозиторий с ограничением времени на запрос
func NewIncidentRepository(url, userAgent string, timeout time.Duration) service.IncidentRepository {
	return NewIncidentRepositoryWithClient(url, userAgent, &http.Client{Timeout: timeout})
}

// NewIncidentRepositoryWithClient позволяет подставить свой http.Client (тесты, прокси)
func NewIncidentRepositoryWithClient(url, userAgent string, client *http.Client) *IncidentRepository {
	return &IncidentRepository{
		url:        url,
		userAgent:  userAgent,
		httpClient: client,
		schema:     DefaultSchema(),
		maxBytes:   maxBodyBytes,
	}
}

// FetchIncidents загружает CSV и возвращает сырую таблицу.
// Сетевые ошибки, таймаут и не-2xx ответы оборачиваются в *models.DataFetchError.
func (r *IncidentRepository) FetchIncidents(ctx context.Context) (*models.RawTable, error) {
	body, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	table, err := r.schema.Read(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *IncidentRepository) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, &models.DataFetchError{URL: r.url, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &models.DataFetchError{URL: r.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &models.DataFetchError{URL: r.url, StatusCode: resp.StatusCode}
	}

	body, err := readLimited(resp.Body, r.maxBytes)
	if err != nil {
		var parseErr *models.DataParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &models.DataFetchError{URL: r.url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}

// FileIncidentRepository читает CSV из локального файла, например ранее выгруженного
type FileIncidentRepository struct {
	path     string
	schema   Schema
	maxBytes int64
}

// NewFileIncidentRepository создает репозиторий поверх файла
func NewFileIncidentRepository(path string) *FileIncidentRepository {
	return &FileIncidentRepository{path: path, schema: DefaultSchema(), maxBytes: maxBodyBytes}
}

var _ service.IncidentRepository = (*FileIncidentRepository)(nil)

// FetchIncidents читает и разбирает файл. Ошибка открытия оборачивается в *models.DataFetchError.
func (r *FileIncidentRepository) FetchIncidents(ctx context.Context) (*models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &models.DataFetchError{URL: r.path, Err: err}
	}
	defer f.Close()

	body, err := readLimited(f, r.maxBytes)
	if err != nil {
		var parseErr *models.DataParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &models.DataFetchError{URL: r.path, Err: err}
	}
	return r.schema.Read(bytes.NewReader(body))
}
