package syncing

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
)

// Passos do log ordenado de progresso de um sync. O log é somente-append:
// eventos nunca são reordenados nem deduplicados.
const (
	StepSyncStarted       = "sync_started"
	StepAccountsFetched   = "accounts_fetched"
	StepCampaignsFetched  = "campaigns_fetched"
	StepCreativesFetched  = "creatives_fetched"
	StepMetricsFetched    = "metrics_fetched"
	StepSnapshotAssembled = "snapshot_assembled"
	StepPersisted         = "persisted"
	StepDone              = "done"
	StepError             = "error"
)

// subscriberBuffer dimensiona o canal de cada consumidor. Um consumidor que
// não drena o canal a tempo perde eventos intermediários, nunca trava o sync.
const subscriberBuffer = 64

// StepEvent é um evento de progresso publicado pelo orquestrador
type StepEvent struct {
	Step      string    `json:"step"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IsTerminal indica se o evento encerra o stream do job
func (e StepEvent) IsTerminal() bool {
	return e.Step == StepDone || e.Step == StepError
}

// Job é o estado vivo de uma execução de sincronização disparada via API.
// O orquestrador é o único escritor; qualquer número de consumidores de
// stream pode ler simultaneamente.
type Job struct {
	ID        string               `json:"id"`
	Status    domain.SyncRunStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Error     string               `json:"error,omitempty"`
	Stats     *domain.SyncRunStats `json:"result,omitempty"`

	mu          sync.Mutex
	events      []StepEvent
	subscribers map[chan StepEvent]struct{}
	finished    bool
}

// JobRegistry mapeia job_id para o estado vivo da execução. É compartilhado
// entre o orquestrador (escritor) e os handlers de status e stream (leitores).
type JobRegistry struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

func NewJobRegistry() *JobRegistry {
	return &JobRegistry{
		jobs: make(map[string]*Job),
	}
}

func (r *JobRegistry) Register(job *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
}

func (r *JobRegistry) Get(jobID string) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	return job, ok
}

func NewJob(id string) *Job {
	return &Job{
		ID:          id,
		Status:      domain.SyncRunStatusRunning,
		CreatedAt:   time.Now().UTC(),
		subscribers: make(map[chan StepEvent]struct{}),
	}
}

// Publish acrescenta um evento ao log do job e o entrega aos consumidores
// conectados. Consumidor com canal cheio perde o evento; o sync nunca
// bloqueia esperando um leitor.
func (j *Job) Publish(step, detail string) {
	event := StepEvent{
		Step:      step,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.finished {
		return
	}

	j.events = append(j.events, event)

	for subscriber := range j.subscribers {
		select {
		case subscriber <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"job_id": j.ID,
				"step":   event.Step,
			}).Warn("Consumidor de stream lento, evento descartado")
		}
	}
}

// Finish publica o evento terminal, grava o desfecho e fecha os canais de
// todos os consumidores. Depois disso o job aceita apenas leituras.
func (j *Job) Finish(status domain.SyncRunStatus, stats *domain.SyncRunStats, errDetail string) {
	step := StepDone
	if status == domain.SyncRunStatusFailed {
		step = StepError
	}

	event := StepEvent{
		Step:      step,
		Detail:    errDetail,
		Timestamp: time.Now().UTC(),
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.finished {
		return
	}

	j.Status = status
	j.Stats = stats
	j.Error = errDetail
	j.events = append(j.events, event)
	j.finished = true

	for subscriber := range j.subscribers {
		select {
		case subscriber <- event:
		default:
		}
		close(subscriber)
	}
	j.subscribers = make(map[chan StepEvent]struct{})
}

// Subscribe conecta um consumidor ao stream do job e devolve o canal de
// eventos e a função de cancelamento. Eventos passam a ser entregues a
// partir de agora; se o job já terminou, o consumidor recebe imediatamente
// um único evento terminal sintético e o canal é fechado.
func (j *Job) Subscribe() (<-chan StepEvent, func()) {
	ch := make(chan StepEvent, subscriberBuffer)

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.finished {
		ch <- j.terminalEvent()
		close(ch)
		return ch, func() {}
	}

	j.subscribers[ch] = struct{}{}

	unsubscribe := func() {
		j.mu.Lock()
		defer j.mu.Unlock()

		if _, ok := j.subscribers[ch]; ok {
			delete(j.subscribers, ch)
			close(ch)
		}
	}

	return ch, unsubscribe
}

func (j *Job) terminalEvent() StepEvent {
	if n := len(j.events); n > 0 && j.events[n-1].IsTerminal() {
		return j.events[n-1]
	}

	step := StepDone
	if j.Status == domain.SyncRunStatusFailed {
		step = StepError
	}

	return StepEvent{Step: step, Detail: j.Error, Timestamp: time.Now().UTC()}
}

// Events devolve uma cópia do log de eventos publicado até agora
func (j *Job) Events() []StepEvent {
	j.mu.Lock()
	defer j.mu.Unlock()

	events := make([]StepEvent, len(j.events))
	copy(events, j.events)
	return events
}

// Snapshot devolve uma visão consistente do estado do job para o endpoint
// de consulta por job_id
func (j *Job) Snapshot() (domain.SyncRunStatus, *domain.SyncRunStats, string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.Status, j.Stats, j.Error
}
