package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

const alertsJobName = "inventory-alerts"

// alertGenerator lo que el job necesita del generador de alertas.
type alertGenerator interface {
	Generate(ctx context.Context) (inventory.GenerateReport, error)
}

// AlertsJob ejecuta el generador de alertas cada intervalo. Una sola ejecución a la vez:
// si una pasada se demora, la siguiente se reprograma en vez de solaparse.
type AlertsJob struct {
	scheduler gocron.Scheduler
	generator alertGenerator
	log       *logger.Logger
	interval  time.Duration
}

// NewAlertsJob registra el job; no arranca hasta Start.
func NewAlertsJob(generator alertGenerator, interval time.Duration, log *logger.Logger) (*AlertsJob, error) {
	if interval <= 0 {
		return nil, errors.New("scheduler: intervalo de alertas debe ser positivo")
	}
	if log == nil {
		log = logger.Nop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	j := &AlertsJob{
		scheduler: s,
		generator: generator,
		log:       log.Component("alerts_job"),
		interval:  interval,
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(j.RunOnce, context.Background()),
		gocron.WithName(alertsJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("create %s job: %w", alertsJobName, err)
	}
	return j, nil
}

// Start arranca el scheduler en segundo plano.
func (j *AlertsJob) Start() {
	j.log.Info().Dur("interval", j.interval).Msg("job de alertas iniciado")
	j.scheduler.Start()
}

// Stop espera a que termine la pasada en curso y detiene el scheduler.
func (j *AlertsJob) Stop() error {
	return j.scheduler.Shutdown()
}

// RunOnce una pasada del generador. Los errores se registran y no detienen el job.
func (j *AlertsJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.interval)
	defer cancel()

	start := time.Now()
	report, err := j.generator.Generate(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("generación periódica de alertas falló")
		return
	}
	j.log.Info().
		Int("scanned", report.Scanned).
		Int("created", len(report.Created)).
		Int("resolved", report.Resolved).
		Dur("took", time.Since(start)).
		Msg("alertas generadas")
}
