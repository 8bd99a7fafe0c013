// Package admin отвечает за вход администратора, которому доступна выгрузка списка доноров.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/jwt"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/password"
)

// Subject - субъект выдаваемых токенов.
const Subject = "admin"

var (
	// ErrInvalidCredentials возвращается при неверном пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDisabled возвращается, если хэш пароля администратора не задан.
	ErrDisabled = errors.New("admin access is not configured")
)

// Service проверяет пароль и выдает JWT.
type Service struct {
	passwordHash string
	jwtMaker     jwt.Maker
}

// New создает новый экземпляр Service. Пустой passwordHash отключает вход.
func New(passwordHash string, jwtMaker jwt.Maker) *Service {
	return &Service{
		passwordHash: passwordHash,
		jwtMaker:     jwtMaker,
	}
}

// Login проверяет пароль и возвращает токен с ролью администратора.
func (s *Service) Login(_ context.Context, rawPassword string) (string, error) {
	const op = "admin.Service.Login"
	if s.passwordHash == "" {
		return "", ErrDisabled
	}
	if err := password.CompareHash(s.passwordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(Subject, jwt.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
