package validation

import (
	"fmt"
	"strings"
	"time"
)

// Validator предоставляет общие функции валидации
type Validator struct{}

// NewValidator создает новый Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRequiredFields проверяет обязательные поля в структуре
func (v *Validator) ValidateRequiredFields(req interface{}, requiredFields map[string]string) error {
	// Используем reflection или type assertion для проверки полей
	// Это базовая реализация, которую можно расширить

	switch r := req.(type) {
	case map[string]interface{}:
		for field, fieldName := range requiredFields {
			if value, exists := r[field]; !exists || value == nil || value == "" {
				return fmt.Errorf("%s is required", fieldName)
			}
		}
	default:
		// Для конкретных типов можно добавить type assertion
		return fmt.Errorf("unsupported request type for validation")
	}

	return nil
}

// ValidateEmail проверяет корректность email адреса
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if strings.ContainsAny(email, " \t\n\r") {
		return fmt.Errorf("email contains invalid whitespace characters")
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email format: %s", email)
	}

	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return fmt.Errorf("invalid email format: %s", email)
	}
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return fmt.Errorf("invalid email domain: %s", domain)
	}

	return nil
}

// ValidateSlug проверяет корректность slug (строчные буквы, цифры, дефисы)
func (v *Validator) ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug must not start or end with a hyphen: %s", slug)
	}

	for _, char := range slug {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-') {
			return fmt.Errorf("invalid character '%c' in slug: %s", char, slug)
		}
	}

	return nil
}

// ValidatePhone выполняет базовую проверку телефонного номера
func (v *Validator) ValidatePhone(phone string) error {
	if phone == "" {
		return nil // телефон опционален
	}

	digits := 0
	for i, char := range phone {
		switch {
		case char >= '0' && char <= '9':
			digits++
		case char == '+' && i == 0:
		case char == ' ' || char == '-' || char == '(' || char == ')':
		default:
			return fmt.Errorf("invalid character '%c' in phone number", char)
		}
	}

	if digits < 7 || digits > 15 {
		return fmt.Errorf("phone number must contain between 7 and 15 digits, got: %d", digits)
	}

	return nil
}

// ValidateSalary проверяет корректность оклада
func (v *Validator) ValidateSalary(salary float64) error {
	if salary < 0 {
		return fmt.Errorf("salary must not be negative, got: %.2f", salary)
	}
	return nil
}

// ValidateEnum проверяет значение на соответствие enum
func (v *Validator) ValidateEnum(value string, allowedValues []string, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	for _, allowed := range allowedValues {
		if value == allowed {
			return nil
		}
	}

	return fmt.Errorf("invalid %s: %s, allowed values: %v", fieldName, value, allowedValues)
}

// ValidateStringLength проверяет длину строки
func (v *Validator) ValidateStringLength(value, fieldName string, min, max int) error {
	length := len(value)
	if length < min {
		return fmt.Errorf("%s must be at least %d characters, got: %d", fieldName, min, length)
	}
	if length > max {
		return fmt.Errorf("%s must not exceed %d characters, got: %d", fieldName, max, length)
	}
	return nil
}

// ValidateUUID проверяет формат UUID
func (v *Validator) ValidateUUID(uuid string, fieldName string) error {
	if uuid == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	// Базовая проверка формата UUID (длина и дефисы)
	if len(uuid) != 36 {
		return fmt.Errorf("invalid %s format: must be 36 characters", fieldName)
	}

	if strings.Count(uuid, "-") != 4 {
		return fmt.Errorf("invalid %s format: must contain 4 hyphens", fieldName)
	}

	return nil
}

// ValidateTimestamp проверяет временной штамп
func (v *Validator) ValidateTimestamp(ts time.Time, fieldName string) error {
	if ts.IsZero() {
		return fmt.Errorf("%s cannot be zero", fieldName)
	}

	if ts.After(time.Now().Add(24 * time.Hour)) {
		return fmt.Errorf("%s cannot be more than 24 hours in the future", fieldName)
	}

	return nil
}
