package processhandler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folha/internal/platform/config"
	"folha/internal/table"
	"folha/internal/transport/http/api"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	out := t.TempDir()
	cfg := config.Config{
		OutputDir:     out,
		UploadDir:     t.TempDir(),
		HourLimit:     192,
		GMRHourLimit:  48,
		WriteAnalysis: false,
		MaxBodyBytes:  1 << 20,
	}
	r := chi.NewRouter()
	NewHandler(cfg, nil).RegisterRoutes(r)
	return r, out
}

func buildUpload(t *testing.T, fields map[string][]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func workbookBytes(t *testing.T, columns []string, rows [][]string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, table.WriteXLSX(path, table.Sheet{Name: "Sheet1", Table: &table.Table{Columns: columns, Rows: rows}}))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return content
}

func TestProcessStandardUpload(t *testing.T) {
	router, out := newTestRouter(t)

	content := workbookBytes(t,
		[]string{"OPERATION", "REGISTRATION", "CODE", "REFERENCE", "DEADLINE"},
		[][]string{{"I", "100", "5", "24", "0"}},
	)
	body, contentType := buildUpload(t,
		map[string][]string{"friendlyName": {"civil"}, "hourLimit": {"192"}},
		map[string][]byte{"civil.xlsx": content},
	)

	req := httptest.NewRequest(http.MethodPost, "/process/standard", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope api.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	deployment, err := table.ReadXLSX(filepath.Join(out, "implantacao_demais_categorias.xlsx"))
	require.NoError(t, err)
	require.Len(t, deployment.Rows, 1)
	assert.Equal(t, "100", deployment.Rows[0][1])
}

func TestProcessNoFiles(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := buildUpload(t, map[string][]string{"friendlyName": {"x"}}, nil)
	req := httptest.NewRequest(http.MethodPost, "/process/military", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessInvalidLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	content := workbookBytes(t,
		[]string{"OPERATION", "REGISTRATION", "CODE", "VALUE", "REFERENCE", "DEADLINE"},
		[][]string{{"I", "100", "5", "", "24", "0"}},
	)
	body, contentType := buildUpload(t,
		map[string][]string{"hourLimit": {"not-a-number"}},
		map[string][]byte{"mil.xlsx": content},
	)

	req := httptest.NewRequest(http.MethodPost, "/process/military", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
