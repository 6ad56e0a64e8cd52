package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/valentinpelus/faqbot/internal/config"
	"github.com/valentinpelus/faqbot/internal/processor"
	"github.com/valentinpelus/faqbot/pkg/feedback"
	"github.com/valentinpelus/faqbot/pkg/knowledge"
	"github.com/valentinpelus/faqbot/pkg/kubernetes"
	"github.com/valentinpelus/faqbot/pkg/logging"
	"github.com/valentinpelus/faqbot/pkg/mirror"
	"github.com/valentinpelus/faqbot/pkg/remote"
)

// App holds all application dependencies
type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	KnowledgeBase  *knowledge.KnowledgeBase
	FeedbackStore  *feedback.Store
	RemoteProvider remote.Provider
	Mirror         mirror.Mirror
	ChatProcessor  *processor.ChatProcessor

	closers []io.Closer
}

type options struct {
	offline bool
	noColor bool
}

// Option changes how New wires the application
type Option func(*options)

// Offline skips the remote chat provider and the feedback mirror
func Offline() Option {
	return func(o *options) {
		o.offline = true
	}
}

// NoColor disables colored level names in console logs
func NoColor() Option {
	return func(o *options) {
		o.noColor = true
	}
}

// New initializes a new application with all dependencies
func New(ctx context.Context, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFilePath,
		Production: cfg.IsProduction(),
		NoColor:    o.noColor,
	})
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger}

	// Knowledge base: built-in records, optionally refreshed once from the configured source
	kbConfig := cfg.Knowledge()
	var configMaps knowledge.ConfigMapReader
	if kbConfig.Source == knowledge.SourceConfigMap {
		clientset, err := kubernetes.GetClientset()
		if err != nil {
			logger.Warn("Kubernetes unavailable, continuing with built-in knowledge base", zap.Error(err))
			kbConfig.Source = knowledge.SourceNone
		} else {
			configMaps = kubernetes.NewClient(clientset)
		}
	}

	source, err := knowledge.NewSource(kbConfig, configMaps)
	if err != nil {
		return nil, err
	}
	a.KnowledgeBase = knowledge.NewKnowledgeBase(source, cfg.KnowledgeFetchTimeout, logger)
	if err := a.KnowledgeBase.Refresh(ctx); err != nil {
		logger.Warn("Continuing with built-in knowledge base", zap.Error(err))
	}

	// Feedback store
	backend := a.blobStore(ctx)
	a.FeedbackStore = feedback.NewStore(backend, a.KnowledgeBase, feedback.WithLogger(logger))
	a.FeedbackStore.Load(ctx)

	procOpts := []processor.Option{
		processor.WithLogger(logger),
		processor.WithTurnTTL(cfg.TurnTTL),
	}

	if !o.offline {
		provider, err := remote.NewProvider(ctx, cfg.Remote(), a.KnowledgeBase)
		switch {
		case errors.Is(err, remote.ErrNotConfigured):
		case err != nil:
			logger.Warn("Failed to initialize remote chat provider, answering locally", zap.Error(err))
		default:
			a.RemoteProvider = provider
			procOpts = append(procOpts, processor.WithRemote(provider, cfg.RemoteChatTimeout))
		}

		m, err := mirror.New(ctx, cfg.Mirror())
		if err != nil {
			logger.Warn("Failed to initialize feedback mirror, continuing without it", zap.Error(err))
		} else if m != nil {
			a.Mirror = m
			if c, ok := m.(io.Closer); ok {
				a.closers = append(a.closers, c)
			}
			procOpts = append(procOpts, processor.WithMirror(m, cfg.FeedbackMirrorTimeout))
		}
	}

	a.ChatProcessor = processor.NewChatProcessor(a.KnowledgeBase, a.FeedbackStore, procOpts...)

	return a, nil
}

// blobStore opens the configured feedback backend. An unreachable Redis
// degrades to an in-memory ledger so the bot keeps answering.
func (a *App) blobStore(ctx context.Context) feedback.BlobStore {
	switch a.Config.FeedbackBackend {
	case "redis":
		client, err := feedback.NewRedisClient(ctx, a.Config.RedisURL)
		if err != nil {
			a.Logger.Warn("Redis unavailable, feedback will not survive a restart", zap.Error(err))
			a.Config.FeedbackBackend = "memory"
			return feedback.NewMemoryBlobStore(nil)
		}
		a.closers = append(a.closers, client)
		return feedback.NewRedisBlobStore(client, a.Config.FeedbackStorageKey)
	case "memory":
		return feedback.NewMemoryBlobStore(nil)
	default:
		return feedback.NewFileBlobStore(a.Config.FeedbackFilePath)
	}
}

// LogStartupInfo logs application startup information
func (a *App) LogStartupInfo() {
	remoteName := "disabled"
	if a.RemoteProvider != nil {
		remoteName = a.RemoteProvider.Name()
	}
	mirrorName := "disabled"
	if a.Mirror != nil {
		mirrorName = a.Mirror.Name()
	}

	a.Logger.Info("Starting faqbot",
		zap.String("port", a.Config.Port),
		zap.String("knowledge_source", a.KnowledgeBase.SourceName()),
		zap.Int("knowledge_records", a.KnowledgeBase.Len()),
		zap.String("feedback_backend", a.Config.FeedbackBackend),
		zap.String("remote_chat", remoteName),
		zap.String("feedback_mirror", mirrorName))

	if a.Config.APIAuthToken != "" {
		a.Logger.Info("Admin authentication: enabled (Bearer token required)")
	} else {
		a.Logger.Warn("Admin authentication: disabled (anyone can export, import and refresh)")
	}
}

// Close releases connections and flushes the logger
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}
