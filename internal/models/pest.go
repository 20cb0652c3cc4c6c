package models

import "time"

// Pest представляет справочную запись о вредителе или болезни растений.
type Pest struct {
	PestIdx         int       `json:"pest_idx"`
	PestName        string    `json:"pest_name"`
	PestDescription string    `json:"pest_description"`
	SolutionInfo    string    `json:"solution_info"`
	CreatedAt       time.Time `json:"created_at"`
}

// DummyPest используется для приёма данных из JSON-запроса на регистрацию вредителя.
type DummyPest struct {
	PestName        string `json:"pest_name" validate:"required"`
	PestDescription string `json:"pest_description" validate:"required"`
	SolutionInfo    string `json:"solution_info" validate:"required"`
}
