package gateway

import (
	"sync"
)

// DefaultMaxInFlightPerKey порог одновременных операций на ключ по умолчанию
const DefaultMaxInFlightPerKey = 3

// Guard ограничивает число одновременных операций на ключ "операция:таблица"
// Очереди и честности нет: превысивший порог запрос отклоняется сразу
type Guard struct {
	mu       sync.Mutex
	limit    int
	inFlight map[string]int
}

// NewGuard создает Guard с заданным порогом
// Неположительный порог заменяется значением по умолчанию
func NewGuard(limit int) *Guard {
	if limit <= 0 {
		limit = DefaultMaxInFlightPerKey
	}
	return &Guard{
		limit:    limit,
		inFlight: make(map[string]int),
	}
}

// TryAcquire пытается занять слот для ключа
// Возвращает false, если порог уже достигнут
func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight[key] >= g.limit {
		return false
	}

	g.inFlight[key]++
	return true
}

// Release освобождает слот для ключа
// Вызывается ровно один раз на каждый успешный TryAcquire
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight[key] <= 1 {
		delete(g.inFlight, key)
		return
	}
	g.inFlight[key]--
}

// InFlight возвращает текущее число занятых слотов для ключа
func (g *Guard) InFlight(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[key]
}
