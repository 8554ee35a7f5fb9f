// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель - единообразно формировать структурированные поля лога:
// ошибки и адреса пользователей.
package sl

import (
	"log/slog"
	"strings"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Для nil пишется "<nil>", чтобы лог не падал на пустой ошибке.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Email возвращает slog.Attr с замаскированным адресом: в локальной части
// остаются первые два символа, домен сохраняется целиком.
//
//	sl.Email("email", "reader@bulletin.com") // email=re***@bulletin.com
func Email(key, email string) slog.Attr {
	return slog.String(key, MaskEmail(email))
}

// MaskEmail скрывает локальную часть адреса.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		if email == "" {
			return ""
		}
		return "***"
	}
	local, domain := []rune(email[:at]), email[at:]
	if len(local) > 2 {
		local = local[:2]
	}
	return string(local) + "***" + domain
}
