package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker интерфейс для проверки здоровья сервиса
type HealthChecker interface {
	Check() *HealthStatus
}

// HealthStatus представляет статус здоровья сервиса
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]Status `json:"services,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// Status представляет статус сервиса
type Status struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// SimpleHealthChecker простая реализация HealthChecker
type SimpleHealthChecker struct {
	version string
}

// NewSimpleHealthChecker создает новый SimpleHealthChecker
func NewSimpleHealthChecker(version string) *SimpleHealthChecker {
	return &SimpleHealthChecker{version: version}
}

// Check проверяет здоровье сервиса
func (s *SimpleHealthChecker) Check() *HealthStatus {
	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
	}
}

// CheckFunc проверяет доступность внешней зависимости
type CheckFunc func(ctx context.Context) error

// ComponentHealthChecker проверяет сервис вместе с его зависимостями
type ComponentHealthChecker struct {
	version string
	timeout time.Duration
	checks  map[string]CheckFunc
}

// NewComponentHealthChecker создает новый ComponentHealthChecker
func NewComponentHealthChecker(version string) *ComponentHealthChecker {
	return &ComponentHealthChecker{
		version: version,
		timeout: 3 * time.Second,
		checks:  make(map[string]CheckFunc),
	}
}

// AddCheck регистрирует проверку зависимости под заданным именем
func (c *ComponentHealthChecker) AddCheck(name string, check CheckFunc) {
	c.checks[name] = check
}

// Check проверяет здоровье сервиса и всех зарегистрированных зависимостей
func (c *ComponentHealthChecker) Check() *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   c.version,
		Services:  make(map[string]Status),
	}

	for name, check := range c.checks {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		err := check(ctx)
		cancel()

		if err != nil {
			status.Status = "degraded"
			status.Services[name] = Status{Status: "unhealthy", Details: err.Error()}
		} else {
			status.Services[name] = Status{Status: "healthy"}
		}
	}

	return status
}

// Handler создает HTTP обработчик для health check эндпоинта
func Handler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := checker.Check()
		
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		
		// Отправляем JSON ответ
		json.NewEncoder(w).Encode(status)
	}
}

// ReadyHandler создает HTTP обработчик для ready check эндпоинта
// Возвращает 200 если сервис готов принимать трафик
func ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		
		response := map[string]string{
			"status": "ready",
		}
		json.NewEncoder(w).Encode(response)
	}
}

// LiveHandler создает HTTP обработчик для live check эндпоинта
// Возвращает 200 если сервис жив
func LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		
		response := map[string]string{
			"status": "alive",
		}
		json.NewEncoder(w).Encode(response)
	}
}