// Package models содержит доменные структуры пользователя и его сессии.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UserID       string    // Уникальный идентификатор пользователя
	PasswordHash string    // Bcrypt-хэш пароля пользователя
	Nick         string    // Отображаемое имя
	FarmRegion   string    // Регион хозяйства
	JoinedAt     time.Time // Дата регистрации
}

// Profile — публичная часть данных пользователя, без пароля.
// Именно в таком виде данные уходят клиенту.
type Profile struct {
	UserID     string `json:"user_id"`
	Nick       string `json:"nick"`
	FarmRegion string `json:"farm_region"`
}

// Identity — снимок профиля, прикреплённый к сессии.
// Это копия, а не живая ссылка: после изменения профиля снимок
// устаревает, пока его явно не обновят через SessionManager.
type Identity struct {
	UserID     string `json:"user_id"`
	Nick       string `json:"nick"`
	FarmRegion string `json:"farm_region"`
}
