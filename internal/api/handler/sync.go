package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/linkedin-ads-api/internal/domain"
	"github.com/vfg2006/linkedin-ads-api/internal/usecases/syncing"
	"github.com/vfg2006/linkedin-ads-api/pkg/apiErrors"
)

// Intervalo do comentário de keep-alive do stream, para atravessar proxies
// que derrubam conexões ociosas
const streamHeartbeatInterval = 15 * time.Second

type StartSyncRequest struct {
	Force bool `json:"force"`
}

type StartSyncResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type SyncJobResponse struct {
	ID     string               `json:"id"`
	Status string               `json:"status"`
	Result *domain.SyncRunStats `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// StartSync dispara uma sincronização sob demanda e responde imediatamente
// com o job_id para acompanhamento
func StartSync(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StartSync")

		var req StartSyncRequest
		if r.Body != nil && r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		// A flag também pode vir por query string, para facilitar o disparo via curl
		force := req.Force || r.URL.Query().Get("force") == "true"

		job, err := service.StartSync(domain.SyncTriggerOnDemand, force)
		if err != nil {
			logrus.WithError(err).Error("Erro ao disparar sincronização")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao disparar sincronização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(StartSyncResponse{
			JobID:  job.ID,
			Status: string(domain.SyncRunStatusRunning),
		})
	}
}

// GetSyncJob consulta o estado atual de um job pelo identificador
func GetSyncJob(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := httprouter.ParamsFromContext(r.Context()).ByName("job_id")
		if jobID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Identificador do job não informado", nil)
			return
		}

		job, ok := service.Job(jobID)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Job de sincronização não encontrado", nil)
			return
		}

		status, stats, errDetail := job.Snapshot()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SyncJobResponse{
			ID:     job.ID,
			Status: string(status),
			Result: stats,
			Error:  errDetail,
		})
	}
}

// StreamSyncJob acompanha o progresso de um job via Server-Sent Events.
// O stream termina com um evento done ou error; se o job já acabou, o
// consumidor recebe imediatamente um único evento terminal. Fechar a
// conexão não cancela a sincronização em andamento.
func StreamSyncJob(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := httprouter.ParamsFromContext(r.Context()).ByName("job_id")

		job, ok := service.Job(jobID)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Job de sincronização não encontrado", nil)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado pela conexão", nil)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		events, unsubscribe := job.Subscribe()
		defer unsubscribe()

		heartbeat := time.NewTicker(streamHeartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				// O consumidor desconectou; o sync segue até o fim no servidor
				logrus.WithField("job_id", jobID).Debug("Consumidor de stream desconectado")
				return

			case <-heartbeat.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()

			case event, open := <-events:
				if !open {
					return
				}

				payload, err := json.Marshal(event)
				if err != nil {
					logrus.WithError(err).Error("Erro ao serializar evento de progresso")
					continue
				}

				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Step, payload)
				flusher.Flush()

				if event.IsTerminal() {
					return
				}
			}
		}
	}
}
