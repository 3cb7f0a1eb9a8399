package models

import "time"

// Newsletter представляет обработанный выпуск рассылки венчурного фонда.
type Newsletter struct {
	ID                 int       // Идентификатор выпуска
	VCName             string    // Название фонда-отправителя
	Subject            string    // Тема письма
	ReceivedAt         time.Time // Дата получения
	Summary            string    // Краткое содержание, подготовленное анализатором
	Topics             []string  // Ключевые темы выпуска
	CompaniesMentioned []string  // Упомянутые компании
}

// NewsletterFilter — параметры фильтрации списка рассылок.
type NewsletterFilter struct {
	Query  string // Подстрока для поиска по теме или названию фонда
	Limit  int    // Максимум записей в ответе
	Offset int    // Смещение для пагинации
}

// Digest — элемент ленты дайджестов на дашборде.
type Digest struct {
	ID          int       // Идентификатор дайджеста
	Title       string    // Заголовок
	Source      string    // Источник
	Category    string    // Категория
	PublishedAt time.Time // Дата публикации
	Summary     string    // Краткое содержание
}
