package pages

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler отдаёт файлы из каталога статики. На отсутствующий файл
// отвечает фиксированным текстом 404, а не стандартной страницей.
type StaticHandler struct {
	log *slog.Logger
	dir string
}

// NewStatic создает новый экземпляр StaticHandler.
func NewStatic(log *slog.Logger, dir string) *StaticHandler {
	return &StaticHandler{log: log, dir: dir}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	// Запрещаем выход за пределы каталога статики.
	if name == "" || strings.Contains(name, "..") {
		h.notFound(w)
		return
	}

	path := filepath.Join(h.dir, filepath.Clean(name))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		h.log.Info("static file not found", slog.String("path", r.URL.Path))
		h.notFound(w)
		return
	}
	http.ServeFile(w, r, path)
}

func (h *StaticHandler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("404 Not Found: the requested page does not exist."))
}
