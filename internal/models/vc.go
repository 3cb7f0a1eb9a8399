package models

import "time"

// VC представляет венчурный фонд из каталога.
type VC struct {
	ID          int       // Идентификатор фонда
	Name        string    // Название фонда
	Website     string    // Сайт фонда
	Focus       []string  // Инвестиционный фокус (Fintech, AI и т.п.)
	Stage       []string  // Стадии инвестирования (Seed, Series A и т.п.)
	Location    string    // Город и штат
	Description string    // Описание фонда
	FundSize    string    // Размер фонда
	Status      string    // Статус подписки на рассылку (Subscribed, Pending)
	CreatedAt   time.Time // Дата добавления в каталог
	UpdatedAt   time.Time // Дата последнего изменения
}

// VCFilter — параметры фильтрации списка фондов.
type VCFilter struct {
	Query  string // Подстрока для поиска по названию, фокусу или локации
	Limit  int    // Максимум записей в ответе
	Offset int    // Смещение для пагинации
}

// DummyVC используется для приёма данных из JSON-запроса на создание
// или изменение фонда, прежде чем конвертировать их в VC.
type DummyVC struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`  // Название фонда
	Website     string   `json:"website" validate:"required,min=4"`      // Сайт фонда
	Focus       []string `json:"focus"`                                  // Инвестиционный фокус
	Stage       []string `json:"stage"`                                  // Стадии инвестирования
	Location    string   `json:"location"`                               // Город и штат
	Description string   `json:"description"`                            // Описание фонда
	FundSize    string   `json:"fund_size"`                              // Размер фонда
}
