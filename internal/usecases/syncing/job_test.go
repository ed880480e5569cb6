package syncing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

func TestJob_EventosOrdenados(t *testing.T) {
	job := NewJob("abc123")

	events, unsubscribe := job.Subscribe()
	defer unsubscribe()

	job.Publish(StepSyncStarted, "início")
	job.Publish(StepAccountsFetched, "2 contas")
	job.Publish(StepCampaignsFetched, "5 campanhas")
	job.Finish(domain.SyncRunStatusSuccess, &domain.SyncRunStats{RowsWritten: 10}, "")

	received := make([]StepEvent, 0)
	for event := range events {
		received = append(received, event)
	}

	// Os eventos chegam na ordem de publicação, terminando em done
	require.Len(t, received, 4)
	assert.Equal(t, StepSyncStarted, received[0].Step)
	assert.Equal(t, StepAccountsFetched, received[1].Step)
	assert.Equal(t, StepCampaignsFetched, received[2].Step)
	assert.Equal(t, StepDone, received[3].Step)
}

func TestJob_ConsumidorTardioRecebeEventoTerminalSintetico(t *testing.T) {
	job := NewJob("abc123")

	job.Publish(StepSyncStarted, "início")
	job.Finish(domain.SyncRunStatusFailed, nil, "erro ao buscar contas")

	// Quem conecta depois do fim recebe um único evento terminal e o
	// canal é fechado em seguida
	events, unsubscribe := job.Subscribe()
	defer unsubscribe()

	received := make([]StepEvent, 0)
	for event := range events {
		received = append(received, event)
	}

	require.Len(t, received, 1)
	assert.Equal(t, StepError, received[0].Step)
	assert.Equal(t, "erro ao buscar contas", received[0].Detail)
}

func TestJob_MultiplosConsumidoresSimultaneos(t *testing.T) {
	job := NewJob("abc123")

	first, unsubscribeFirst := job.Subscribe()
	second, unsubscribeSecond := job.Subscribe()
	defer unsubscribeFirst()
	defer unsubscribeSecond()

	job.Publish(StepSyncStarted, "início")
	job.Finish(domain.SyncRunStatusSuccess, nil, "")

	for _, events := range []<-chan StepEvent{first, second} {
		received := make([]StepEvent, 0)
		for event := range events {
			received = append(received, event)
		}
		require.Len(t, received, 2)
		assert.Equal(t, StepDone, received[1].Step)
	}
}

func TestJob_PublicacaoAposTerminoEhIgnorada(t *testing.T) {
	job := NewJob("abc123")

	job.Finish(domain.SyncRunStatusSuccess, nil, "")
	job.Publish(StepAccountsFetched, "tarde demais")

	events := job.Events()
	require.Len(t, events, 1)
	assert.Equal(t, StepDone, events[0].Step)
}

func TestJobRegistry_RegistroEConsulta(t *testing.T) {
	registry := NewJobRegistry()

	job := NewJob("abc123")
	registry.Register(job)

	found, ok := registry.Get("abc123")
	require.True(t, ok)
	assert.Equal(t, job, found)

	_, ok = registry.Get("zzz999")
	assert.False(t, ok)
}
