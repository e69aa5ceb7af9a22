package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/middleware"
	"github.com/moodify/core/internal/modules/auth/user"
	"github.com/moodify/core/internal/modules/catalog"
	"github.com/moodify/core/internal/modules/dashboard"
	"github.com/moodify/core/internal/modules/feedback"
	"github.com/moodify/core/internal/modules/media"
	"github.com/moodify/core/internal/modules/mood"
	"github.com/moodify/core/internal/modules/mood/classifier"
	"github.com/moodify/core/internal/modules/playlist"
	"github.com/moodify/core/internal/modules/song"
	"github.com/moodify/core/internal/modules/system/health"
	"github.com/moodify/core/internal/pkg/jwt"
	"github.com/moodify/core/internal/pkg/objectstore"
	"github.com/moodify/core/internal/pkg/ratelimit"
	"github.com/moodify/core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const apiPrefix = "/api"

type services struct {
	mood *mood.Service
}

func (a *App) registerRoutes() (*services, error) {
	r := a.router
	cfg := a.cfg

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	issuer := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	if cfg.JWT.Secret == "" {
		a.logger.Warn("jwt.secret is empty, using built-in development secret")
	}
	authMW := middleware.Auth(issuer)

	// Auth, classification and uploads are rate limited; redis shares the budget
	// across instances when configured.
	var rdb *redis.Client
	newLimiter := func(prefix string, rps float64, burst int) ratelimit.Limiter {
		if a.rc != nil {
			return ratelimit.NewWindow(a.rc, prefix, rps, burst)
		}
		k := ratelimit.New(rps, burst)
		a.stoppers = append(a.stoppers, k.Stop)
		return k
	}
	if a.rc != nil {
		rdb = a.rc.Raw()
	}
	authLimit := middleware.RateLimit(newLimiter("rl:auth", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst))
	classifyLimit := middleware.RateLimit(newLimiter("rl:classify", cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst))
	uploadLimit := middleware.RateLimit(newLimiter("rl:media", 1, 2))
	dedupe := middleware.Idempotence(rdb)

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	llm, err := classifier.NewLLM(cfg.AI, a.logger)
	if err != nil {
		return nil, fmt.Errorf("ai: %w", err)
	}
	detector := classifier.NewDetector(llm)
	if detector.UsesModel() {
		a.logger.Info("mood detection uses language model", zap.String("provider", cfg.AI.Type), zap.String("model", cfg.AI.Model))
	}

	userSvc := user.NewService(a.store.Users(), issuer, a.logger)
	moodSvc := mood.NewService(a.store, detector, a.logger)
	playlistSvc := playlist.NewService(a.store, cat, cfg.Playlist.MaxPerUser, a.logger)
	mediaSvc, err := a.newMediaService(moodSvc)
	if err != nil {
		return nil, err
	}

	api := r.Group(apiPrefix)
	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "moodify", "version": "1.0.0"})
	})

	health.RegisterRoutes(api, a.store, a.sched, authMW)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW, authLimit)
	mood.NewHandler(moodSvc).RegisterRoutes(api, authMW, classifyLimit)
	media.NewHandler(mediaSvc, cfg.Emotion.MaxUploadMB).RegisterRoutes(api, authMW, uploadLimit)
	catalog.NewHandler(cat).RegisterRoutes(api)
	playlist.NewHandler(playlistSvc).RegisterRoutes(api, authMW, dedupe)
	song.NewHandler(song.NewService(a.store, cat)).RegisterRoutes(api, authMW)
	dashboard.NewHandler(dashboard.NewService(a.store)).RegisterRoutes(api, authMW)
	feedback.NewHandler(feedback.NewService(a.store, a.logger)).RegisterRoutes(api, authMW)

	return &services{mood: moodSvc}, nil
}

func (a *App) newMediaService(moods *mood.Service) (*media.Service, error) {
	var analyzer media.Analyzer
	if a.cfg.EmotionEnabled() {
		analyzer = media.NewClient(a.cfg.Emotion)
	}
	var archive objectstore.Store
	if a.cfg.ArchiveEnabled() {
		s3, err := objectstore.NewS3(a.cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		archive = s3
		a.logger.Info("media archive enabled", zap.String("bucket", a.cfg.Archive.Bucket))
	}
	return media.NewService(analyzer, archive, moods, a.logger), nil
}
