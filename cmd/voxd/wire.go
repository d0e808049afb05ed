package main

import (
	"context"
	"fmt"

	"github.com/kbukum/voxd/audio"
	"github.com/kbukum/voxd/bootstrap"
	"github.com/kbukum/voxd/component"
	"github.com/kbukum/voxd/config"
	"github.com/kbukum/voxd/control"
	"github.com/kbukum/voxd/dictionary"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/model"
	"github.com/kbukum/voxd/observability"
	"github.com/kbukum/voxd/output"
	"github.com/kbukum/voxd/pipeline"
	"github.com/kbukum/voxd/postproc"
	"github.com/kbukum/voxd/server"
	"github.com/kbukum/voxd/sound"
	"github.com/kbukum/voxd/sse"
	"github.com/kbukum/voxd/status"
	"github.com/kbukum/voxd/storage"
	"github.com/kbukum/voxd/transcription"
	"github.com/kbukum/voxd/transcription/whisper"
	"github.com/kbukum/voxd/transcription/whispercpp"
	"github.com/kbukum/voxd/trigger"
	"github.com/kbukum/voxd/vad"
)

// wire builds every component of the daemon and registers them with the
// bootstrap app. Registration order is start order; components stop in
// reverse, so the pipeline drains before its collaborators go away.
func wire(app *bootstrap.App[*Config]) error {
	cfg := app.Cfg
	log := app.Logger

	for _, dir := range []string{storage.ConfigDir(), storage.DataDir(), storage.CacheDir(), storage.RuntimeDir()} {
		if err := storage.EnsureDir(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	metrics, metricsShutdown, err := observability.Setup(
		context.Background(), cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return err
	}
	app.OnStop(func(ctx context.Context) error {
		return metricsShutdown(ctx)
	})

	// SSE hub carries status snapshots and download progress to subscribers.
	sseComp := sse.NewComponent("/v1/events")

	catalog, err := model.LoadCatalog(model.CatalogPath())
	if err != nil {
		return err
	}
	models, err := model.NewManager(cfg.Model, catalog, sseComp.Hub(), metrics, log)
	if err != nil {
		return err
	}

	sounds := sound.NewWorker(cfg.Sound, sound.DefaultCueDir(), log)
	engine := audio.NewEngine(cfg.Audio, log)
	engine.SetNoiseFloor(cfg.VAD.Threshold)
	monitor := vad.NewMonitor(cfg.VAD, engine, log, cfg.Pipeline.Chunked)

	invoker, err := buildTranscription(cfg, models, metrics, log)
	if err != nil {
		return err
	}

	dict := dictionary.NewEngine(dictionary.Path(), log)
	if err := dict.Load(); err != nil {
		// Absorbed: the engine runs with no rules until the file is fixed.
		log.Warn("Dictionary disabled at startup", map[string]interface{}{
			"error": err.Error(),
		})
	}

	history := postproc.NewHistory(postproc.HistoryPath(), cfg.Postproc.HistoryLimit)
	refiner, err := postproc.NewRefiner(cfg.Postproc, history, metrics, log)
	if err != nil {
		return err
	}

	statusPub := status.NewPublisher(status.Path(), sseComp.Hub(), log)
	statusPub.SetModel(models.ActiveModel())

	store := config.NewStore("")
	dispatcher := output.NewDispatcher(cfg.Output, log, metrics)

	controller := pipeline.NewController(cfg.Pipeline, pipeline.Ports{
		Capture:    engine,
		Monitor:    monitor,
		Transcribe: invoker,
		Substitute: dict,
		Refine:     refiner,
		Deliver:    dispatcher,
		Status:     statusPub,
		Cues:       sounds,
		Settings:   store,
	}, log, metrics)

	debounce := trigger.NewDebouncer(cfg.Trigger.Debounce)
	listener, err := trigger.NewListener(cfg.Trigger, controller, debounce, log)
	if err != nil {
		return err
	}

	components := []component.Component{sounds, sseComp, models, engine, controller, listener}

	if cfg.Server.Enabled != nil && *cfg.Server.Enabled {
		settings := newSettingsStore(store, *cfg, hotApply{
			engine: engine,
			sounds: sounds,
			dict:   dict,
		}, log)

		srv := server.New(cfg.Server, log)
		srv.ApplyDefaults(cfg.Name, app.Components.HealthAll)

		api := control.New(control.Options{
			Pipeline: controller,
			Debounce: debounce,
			Status:   statusPub,
			Models:   models,
			History:  history,
			Dict:     dict,
			Settings: settings,
			Hub:      sseComp.Hub(),
		}, log)
		api.Register(srv.GinEngine())

		components = append(components, server.NewComponent(srv))
	}

	for _, c := range components {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	app.OnSignal(sigToggle, func() { listener.Toggle("signal") })
	app.OnSignal(sigOpenSettings, func() { controller.OpenSettings("signal") })

	return nil
}

// buildTranscription registers the configured backends and wires the model
// readiness gate for the local whisper.cpp path.
func buildTranscription(cfg *Config, models *model.Manager, metrics *observability.Metrics, log *logger.Logger) (*transcription.Invoker, error) {
	registry := transcription.NewRegistry()

	wcCfg := cfg.Transcription.WhisperCPP
	if wcCfg.ModelPath == "" {
		path, err := models.Path(models.ActiveModel())
		if err != nil {
			return nil, err
		}
		wcCfg.ModelPath = path
	}
	registry.Set(whispercpp.ProviderName, whispercpp.NewProvider(wcCfg))
	registry.Set(whisper.ProviderName, whisper.NewProvider(cfg.Transcription.Server))

	invoker, err := transcription.NewInvoker(cfg.Transcription.InvokerConfig, registry, metrics, log)
	if err != nil {
		return nil, err
	}
	if invoker.Backend() == whispercpp.ProviderName {
		invoker.SetReadyCheck(func(ctx context.Context) error {
			return models.EnsureReady(ctx, models.ActiveModel())
		})
	}
	return invoker, nil
}
