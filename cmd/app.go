package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability/gemini"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/handoff"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/logger"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/metrics"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/screens"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/secrets"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/workflow/job"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/workflow/resume"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// runtime holds everything a command needs. It is built once per invocation.
type runtime struct {
	ctx     context.Context
	config  *Config
	logger  *zap.Logger
	metrics *metrics.Recorder
	session *session.Provider

	closers []func() error
}

// setup builds the logger, config, metrics and session. It exits the process on failure.
func setup(ctx context.Context) *runtime {
	logger, err := logger.New(logger.Options{
		JSON:    viper.GetBool("json"),
		Debug:   viper.GetBool("debug"),
		File:    viper.GetString("log-file"),
		Version: version,
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.API == nil || config.Session == nil {
		logger.Fatal("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	rt := &runtime{
		ctx:     ctx,
		config:  config,
		logger:  logger,
		metrics: metrics.New(),
	}

	store, err := rt.sessionStore()
	if err != nil {
		logger.Fatal("opening session store", zap.Error(err), zap.String("backend", config.Session.Backend))
	}

	rt.session = session.NewProvider(store, session.DemoAuthenticator{}, logger)
	if err := rt.session.Restore(ctx); err != nil {
		logger.Fatal("restoring session", zap.Error(err))
	}

	return rt
}

func (rt *runtime) sessionStore() (session.Store, error) {
	cfg := rt.config.Session

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "file":
		path := strings.TrimSpace(cfg.File)
		if path == "" {
			var err error
			if path, err = session.DefaultFilePath(); err != nil {
				return nil, err
			}
		}
		rt.logger.Debug("using file session store", zap.String("path", path))
		return session.NewFileStore(path), nil
	case "redis":
		store, err := session.NewRedisStore(rt.ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, store.Close)
		rt.logger.Debug("using redis session store", zap.String("address", cfg.Redis.Address))
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.Backend)
	}
}

// client builds the remote capability client.
func (rt *runtime) client() *capability.Client {
	token, err := resolveToken(rt.config.API)
	if err != nil {
		rt.logger.Fatal("loading api token", zap.Error(err),
			zap.String("hint", "set JOBMATCH_API_TOKEN_FILE or the 'api.token-file' key in the configuration file"),
		)
	}

	client, err := capability.New(capability.Options{
		URL:       rt.config.API.URL,
		Token:     token,
		UserAgent: rt.config.API.UserAgent,
		Timeout:   rt.config.API.Timeout,
		Logger:    rt.logger,
		Metrics:   rt.metrics,
	})
	if err != nil {
		rt.logger.Fatal("creating api client", zap.Error(err))
	}

	return client
}

// resolveToken returns the optional bearer token.
func resolveToken(cfg *APIConfig) (string, error) {
	return secrets.Load(secrets.Source{
		Name:     "api token",
		Value:    cfg.Token,
		File:     cfg.TokenFile,
		Optional: true,
	})
}

// resumeCapabilities returns the Gemini provider when AI is enabled, the remote client otherwise.
func (rt *runtime) resumeCapabilities(client *capability.Client) capability.ResumeCapabilities {
	cfg := rt.config.AI
	if cfg == nil || !cfg.Enabled {
		return client
	}

	provider, err := newResumeProvider(rt.ctx, cfg, rt.logger, rt.metrics)
	if err != nil {
		rt.logger.Fatal("creating ai provider", zap.Error(err))
	}

	return provider
}

func newResumeProvider(ctx context.Context, cfg *AIConfig, log *zap.Logger, rec *metrics.Recorder) (*gemini.Provider, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("ai.gemini section is required")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewProvider(generator, log, rec, generator.Model(), cfg.Gemini.MaxLogLength), nil
}

// navigator registers every screen with engines built for the signed-in role.
func (rt *runtime) navigator(client *capability.Client, prompt screens.Prompter, downloadDir string) (*handoff.Navigator, screens.Deps) {
	deps := screens.Deps{
		Session:     rt.session,
		Downloader:  client,
		Postings:    client,
		Prompt:      prompt,
		Out:         os.Stdout,
		DownloadDir: downloadDir,
		Logger:      rt.logger,
	}

	if id, ok := rt.session.Current(); ok {
		switch id.Role {
		case session.RoleJobSeeker:
			deps.Resume = resume.New(rt.resumeCapabilities(client), rt.logger, rt.metrics)
		case session.RoleRecruiter:
			deps.Jobs = job.New(client, rt.logger, rt.metrics)
		}
	}

	nav := handoff.NewNavigator(rt.logger)
	screens.Register(nav, deps)

	return nav, deps
}

// requireRole exits unless the signed-in identity has role.
func (rt *runtime) requireRole(role session.Role) session.Identity {
	id, err := rt.session.RequireRole(role)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			rt.logger.Error("not signed in", zap.String("hint", "run `"+app+" signin` or `"+app+" signup`"))
		} else {
			rt.logger.Error("access denied", zap.Error(err))
		}
		rt.exit(err)
	}
	return id
}

// exit flushes metrics, releases resources and terminates with a non-zero
// status when err is set.
func (rt *runtime) exit(err error) {
	if rt.config.Metrics != nil {
		if werr := rt.metrics.WriteTextfile(rt.config.Metrics.Textfile); werr != nil {
			rt.logger.Warn("writing metrics", zap.Error(werr))
		}
	}

	for _, c := range rt.closers {
		if cerr := c(); cerr != nil {
			rt.logger.Debug("closing resource", zap.Error(cerr))
		}
	}

	_ = rt.logger.Sync()

	if err == nil {
		return
	}

	if errors.Is(err, screens.ErrAborted) {
		rt.logger.Info("exiting", zap.String("reason", "aborted by user"))
	} else if errs.KindOf(err) == "" {
		// Workflow errors were already shown on screen.
		rt.logger.Error("exiting", zap.Error(err))
	}
	os.Exit(1)
}
