// Package models содержит доменные структуры записей о проведённой обработке,
// а также вспомогательные типы для работы с данными из JSON-запросов.
package models

import "time"

// TreatmentEntry представляет собой запись журнала обработок,
// используемую в бизнес-логике и хранилище.
type TreatmentEntry struct {
	UserID       string    // Владелец записи
	PestIdx      string    // Идентификатор вредителя
	TreatedAt    time.Time // Дата и время обработки
	ChemicalName string    // Название препарата
	Dosage       string    // Дозировка / степень разведения
	Memo         string    // Составной текст: площадь, погода и заметки
}

// TreatmentRecord — строка журнала обработок в том виде, в котором она
// уходит клиенту: вместе с присвоенным базой disf_idx.
type TreatmentRecord struct {
	DisfIdx      int       `json:"disf_idx"`
	UserID       string    `json:"user_id"`
	PestIdx      string    `json:"pest_idx"`
	TreatedAt    time.Time `json:"disf_at"`
	ChemicalName string    `json:"chemical_name"`
	Dosage       string    `json:"dosage"`
	Memo         string    `json:"disf_memo"`
}

// DummyTreatmentEntry используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в TreatmentEntry.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyTreatmentEntry struct {
	Date         string `json:"date" validate:"required"`         // Дата обработки в формате 2006-01-02
	PestType     string `json:"pestType" validate:"required"`     // Идентификатор вредителя
	ChemicalName string `json:"chemicalName" validate:"required"` // Название препарата
	DilutionRate string `json:"dilutionRate" validate:"required"` // Степень разведения
	AreaTreated  string `json:"areaTreated" validate:"required"`  // Обработанная площадь
	Weather      string `json:"weather" validate:"required"`      // Погода во время обработки
	Notes        string `json:"notes"`                            // Свободные заметки (необязательно)
}
