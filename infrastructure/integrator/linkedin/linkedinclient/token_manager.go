package linkedinclient

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/internal/config"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

// TokenManager fornece um bearer token válido para as chamadas à API.
// A obtenção e renovação do token (fluxo OAuth) é responsabilidade de um
// colaborador externo; esta pipeline só consome o token pronto.
type TokenManager interface {
	GetValidToken() (string, error)
	Status() domain.TokenStatus
}

// StaticTokenManager serve o token configurado via ambiente, validando a
// expiração informada pelo provedor quando disponível
type StaticTokenManager struct {
	cfg       *config.Config
	expiresAt *time.Time
}

func NewTokenManager(cfg *config.Config) *StaticTokenManager {
	tm := &StaticTokenManager{cfg: cfg}

	if cfg.LinkedIn.TokenExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, cfg.LinkedIn.TokenExpiresAt)
		if err != nil {
			logrus.WithError(err).Warn("Valor inválido em LINKEDIN_TOKEN_EXPIRES_AT, ignorando expiração")
		} else {
			tm.expiresAt = &expiresAt
		}
	}

	return tm
}

func (tm *StaticTokenManager) GetValidToken() (string, error) {
	if tm.cfg.LinkedIn.AccessToken == "" {
		return "", errors.New("token de acesso do LinkedIn não configurado")
	}

	if tm.expiresAt != nil && time.Now().After(*tm.expiresAt) {
		return "", errors.New("token de acesso do LinkedIn expirado")
	}

	return tm.cfg.LinkedIn.AccessToken, nil
}

func (tm *StaticTokenManager) Status() domain.TokenStatus {
	if tm.cfg.LinkedIn.AccessToken == "" {
		return domain.TokenStatus{
			Authenticated: false,
			Reason:        "token não configurado",
		}
	}

	status := domain.TokenStatus{Authenticated: true}

	if tm.expiresAt != nil {
		status.ExpiresAt = tm.expiresAt

		if time.Now().After(*tm.expiresAt) {
			status.Authenticated = false
			status.Reason = "token expirado"
			return status
		}

		days := int(time.Until(*tm.expiresAt).Hours() / 24)
		status.DaysRemaining = &days
	}

	return status
}
