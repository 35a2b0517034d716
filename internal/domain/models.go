package domain

import (
	"time"
)

// Статусы администратора
const (
	AdministratorStatusActive   = "active"
	AdministratorStatusInactive = "inactive"
)

// Типы контрактов администратора
const (
	ContractTypeCDI       = "cdi"
	ContractTypeCDD       = "cdd"
	ContractTypeFreelance = "freelance"
)

// Статусы клуба
const (
	ClubStatusActive    = "active"
	ClubStatusInactive  = "inactive"
	ClubStatusSuspended = "suspended"
)

// Administrator представляет администратора системы
// Пароли хранятся с использованием bcrypt (cost 10)
// Email должен быть уникальным
type Administrator struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Salary       float64   `json:"salary"`
	ContractType string    `json:"contract_type"`
	Status       string    `json:"status"`
	IsSuper      bool      `json:"is_super"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName возвращает полное имя администратора
func (a *Administrator) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Club представляет клуб
// Slug должен быть уникальным
type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membership связывает администратора с клубом
// Удаление администратора каскадно удаляет его membership записи (FK в БД)
type Membership struct {
	ID              string    `json:"id"`
	AdministratorID string    `json:"administrator_id"`
	ClubID          string    `json:"club_id"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Profile представляет администратора вместе с его активными членствами
// Сессия не может стать аутентифицированной без загруженного профиля
type Profile struct {
	Administrator Administrator `json:"administrator"`
	Memberships   []Membership  `json:"memberships"`
}

// Session представляет сессию администратора
// JWT токены: access (15 мин), refresh (7 дней)
// Access и Refresh токены хэшируются перед сохранением
type Session struct {
	ID               string    `json:"id"`
	AdministratorID  string    `json:"administrator_id"`
	Profile          *Profile  `json:"profile,omitempty"`
	AccessTokenHash  string    `json:"access_token_hash"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// Row представляет динамическую строку таблицы
// Используется шлюзом запросов, который не знает схему заранее
type Row map[string]interface{}

// AuditEvent описывает выполненную через шлюз мутацию
type AuditEvent struct {
	Table      string    `json:"table"`
	Operation  string    `json:"operation"`
	RowID      string    `json:"row_id,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    Row       `json:"payload,omitempty"`
}
