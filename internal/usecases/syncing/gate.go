package syncing

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository"
)

// FreshnessGate decide se um sync precisa acontecer ou se os dados locais
// ainda estão frescos o suficiente para servir
type FreshnessGate interface {
	ShouldSync(accountScope string, force bool) (bool, string)
}

type freshnessGate struct {
	syncRunRepo repository.SyncRunRepository
	ttl         time.Duration
}

func NewFreshnessGate(syncRunRepo repository.SyncRunRepository, ttlMinutes int) FreshnessGate {
	return &freshnessGate{
		syncRunRepo: syncRunRepo,
		ttl:         time.Duration(ttlMinutes) * time.Minute,
	}
}

// ShouldSync compara o fim do último sync bem-sucedido do escopo com o TTL
// configurado. force ignora o TTL; erro ao consultar o histórico libera o
// sync em vez de bloqueá-lo, porque dado velho é pior que fetch redundante.
func (g *freshnessGate) ShouldSync(accountScope string, force bool) (bool, string) {
	if force {
		return true, "sync forçado pelo chamador"
	}

	lastSuccessfulAt, err := g.syncRunRepo.LastSuccessfulAt(accountScope)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar o último sync, seguindo com a sincronização")
		return true, "histórico de sync indisponível"
	}

	if lastSuccessfulAt == nil {
		return true, "nenhum sync anterior para o escopo"
	}

	age := time.Since(*lastSuccessfulAt)
	if age >= g.ttl {
		return true, fmt.Sprintf("último sync há %s, acima do TTL de %s", age.Round(time.Minute), g.ttl)
	}

	return false, fmt.Sprintf("dados frescos: último sync há %s, TTL de %s", age.Round(time.Minute), g.ttl)
}
