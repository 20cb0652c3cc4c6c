// Package pages обслуживает главную страницу-меню и статические HTML-файлы.
//
// Меню зависит от состояния сессии: для вошедшего пользователя показываются
// приветствие и ссылка на выход, для анонимного — ссылки на вход и регистрацию.
package pages

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/middlewarectx"
)

// MenuHandler отдаёт главную страницу с меню, зависящим от сессии.
type MenuHandler struct {
	log *slog.Logger
}

// NewMenu создает новый экземпляр MenuHandler.
func NewMenu(log *slog.Logger) *MenuHandler {
	return &MenuHandler{log: log}
}

func (h *MenuHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var loginStatus, menu string

	if identity, ok := middlewarectx.IdentityFromContext(r.Context()); ok && identity.UserID != "" {
		// Nick и user_id задаются пользователем и не должны попадать в разметку как есть.
		loginStatus = fmt.Sprintf("Welcome, <strong>%s</strong>! (%s)",
			html.EscapeString(identity.Nick), html.EscapeString(identity.UserID))
		menu = strings.Join([]string{
			`<a href="/update.html">Edit profile</a>`,
			`<a href="/disinfestation.html">Register treatment record</a>`,
			`<a href="/pest_register.html">Register pest information</a>`,
			`<a href="/logout">Log out</a>`,
		}, " |\n            ")
	} else {
		loginStatus = "Please log in."
		menu = strings.Join([]string{
			`<a href="/register.html">Sign up</a>`,
			`<a href="/login.html">Log in</a>`,
		}, " |\n            ")
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Farm Management</title>
    <link rel="stylesheet" href="/style.css">
</head>
<body>
    <h1>Farm member management system.</h1>
    <p>%s</p>
    <p>Choose an action.</p>
    <div id="menu">
        %s
    </div>
</body>
</html>
`, loginStatus, menu)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
