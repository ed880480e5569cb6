package syncing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/linkedin-ads-api/infrastructure/repository/mocks"
	"go.uber.org/mock/gomock"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestFreshnessGate_ShouldSync(t *testing.T) {
	const ttlMinutes = 240

	tests := []struct {
		name       string
		force      bool
		setup      func(repo *mocks.MockSyncRunRepository)
		shouldSync bool
	}{
		{
			name:  "Nenhum sync anterior - deve sincronizar",
			force: false,
			setup: func(repo *mocks.MockSyncRunRepository) {
				repo.EXPECT().LastSuccessfulAt("all").Return(nil, nil)
			},
			shouldSync: true,
		},
		{
			name:  "Último sync dentro do TTL - deve pular",
			force: false,
			setup: func(repo *mocks.MockSyncRunRepository) {
				repo.EXPECT().
					LastSuccessfulAt("all").
					Return(timePtr(time.Now().Add(-30*time.Minute)), nil)
			},
			shouldSync: false,
		},
		{
			name:  "Último sync mais velho que o TTL - deve sincronizar",
			force: false,
			setup: func(repo *mocks.MockSyncRunRepository) {
				repo.EXPECT().
					LastSuccessfulAt("all").
					Return(timePtr(time.Now().Add(-5*time.Hour)), nil)
			},
			shouldSync: true,
		},
		{
			name:  "Force ignora o TTL mesmo com dados frescos",
			force: true,
			setup: func(repo *mocks.MockSyncRunRepository) {
				// Com force o gate nem consulta o histórico
			},
			shouldSync: true,
		},
		{
			name:  "Erro ao consultar o histórico - deve sincronizar",
			force: false,
			setup: func(repo *mocks.MockSyncRunRepository) {
				repo.EXPECT().
					LastSuccessfulAt("all").
					Return(nil, errors.New("conexão recusada"))
			},
			shouldSync: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockSyncRunRepository(ctrl)
			tt.setup(repo)

			gate := NewFreshnessGate(repo, ttlMinutes)

			shouldSync, reason := gate.ShouldSync("all", tt.force)
			assert.Equal(t, tt.shouldSync, shouldSync)
			assert.NotEmpty(t, reason)
		})
	}
}
