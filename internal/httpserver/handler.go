package httpserver

import (
	"sla-srv/internal/alert"
	alertHTTP "sla-srv/internal/alert/delivery/http"
	alertRedis "sla-srv/internal/alert/delivery/redis"
	alertPostgre "sla-srv/internal/alert/repository/postgre"
	alertUsecase "sla-srv/internal/alert/usecase"
	"sla-srv/internal/escalation"
	escalationHTTP "sla-srv/internal/escalation/delivery/http"
	escalationJob "sla-srv/internal/escalation/delivery/job"
	escalationPostgre "sla-srv/internal/escalation/repository/postgre"
	escalationUsecase "sla-srv/internal/escalation/usecase"
	feedbackPostgre "sla-srv/internal/feedback/repository/postgre"
	"sla-srv/internal/middleware"
	"sla-srv/internal/notification"
	notificationHTTP "sla-srv/internal/notification/delivery/http"
	notificationJob "sla-srv/internal/notification/delivery/job"
	"sla-srv/internal/notification/delivery/queue"
	notificationPostgre "sla-srv/internal/notification/repository/postgre"
	"sla-srv/internal/notification/sender"
	notificationUsecase "sla-srv/internal/notification/usecase"
	slaRuleHTTP "sla-srv/internal/slarule/delivery/http"
	slaRulePostgre "sla-srv/internal/slarule/repository/postgre"
	slaRuleUsecase "sla-srv/internal/slarule/usecase"
	pkgRedis "sla-srv/pkg/redis"
	"sla-srv/pkg/scheduler"

	// Import this to execute the init function in docs.go which setups the Swagger docs.
	_ "sla-srv/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	Api         = "/api/v1"
	InternalApi = "/internal/api/v1"

	escalationLockPrefix = "sla:escalation:lock:"
)

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.jwtManager, srv.internalKey)

	srv.gin.Use(middleware.Recovery(srv.l, srv.discord))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig(srv.allowedOrigins)))
	srv.gin.Use(mw.RequestLogger())

	// Operational endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	feedbackRepo := feedbackPostgre.New(srv.l, srv.postgresDB)
	ruleRepo := slaRulePostgre.New(srv.l, srv.postgresDB)
	escalationRepo := escalationPostgre.New(srv.l, srv.postgresDB)
	alertRepo := alertPostgre.New(srv.l, srv.postgresDB)
	notificationRepo := notificationPostgre.New(srv.l, srv.postgresDB)

	// Notification dispatch
	ncfg := srv.notificationCfg
	srv.dispatchPool = queue.New(srv.l, queue.Config{
		Workers: ncfg.Workers,
		Size:    ncfg.QueueSize,
	}, srv.metrics)
	senders := sender.New(srv.l, sender.Deps{
		Mailer:  srv.mailer,
		Gateway: srv.gateway,
		Redis:   srv.redis,
		Metrics: srv.metrics,
	}, sender.Config{
		SendTimeout: ncfg.SendTimeout,
		Breaker: sender.BreakerConfig{
			MaxRequests:         ncfg.Breaker.MaxRequests,
			Interval:            ncfg.Breaker.Interval,
			Timeout:             ncfg.Breaker.Timeout,
			ConsecutiveFailures: ncfg.Breaker.ConsecutiveFailures,
		},
	})
	srv.notificationUC = notificationUsecase.New(srv.l, notificationUsecase.Deps{
		Repo:      notificationRepo,
		Templates: notificationPostgre.NewTemplateRepository(srv.l, srv.postgresDB),
		Contacts:  notificationPostgre.NewContactRepository(srv.l, srv.postgresDB),
		Senders:   senders,
		Queue:     srv.dispatchPool,
		Metrics:   srv.metrics,
	}, notification.Config{BatchSize: ncfg.BatchSize})

	// SLA rules and escalation
	ecfg := srv.escalationCfg
	ruleUC := slaRuleUsecase.New(srv.l, ruleRepo)
	escalationUC := escalationUsecase.New(srv.l, escalationUsecase.Deps{
		Repo:     escalationRepo,
		Feedback: feedbackRepo,
		Rules:    ruleUC,
		Notifier: srv.notificationUC,
		Locker:   pkgRedis.NewLocker(srv.redis, escalationLockPrefix, ecfg.LockTTL, ecfg.LockWait),
		Metrics:  srv.metrics,
	}, escalation.Config{
		Workers:                 ecfg.Workers,
		PageSize:                ecfg.PageSize,
		AllowResolvedRecurrence: ecfg.AllowResolvedRecurrence,
	})

	// Alert detection
	alertUC := alertUsecase.New(srv.l, alertUsecase.Deps{
		Repo:        alertRepo,
		Feedback:    feedbackRepo,
		Escalations: escalationUC,
		Discord:     srv.discord,
		Metrics:     srv.metrics,
	}, alert.NewPolicy(srv.detectionCfg))
	srv.alertSubscriber = alertRedis.New(srv.redis, alertUC, srv.l, alertRedis.Config{
		Workers:   srv.detectionCfg.Workers,
		QueueSize: srv.detectionCfg.QueueSize,
	})

	// Periodic jobs
	srv.scheduler = scheduler.New(srv.l)
	if err := escalationJob.New(srv.l, escalationUC).Register(srv.scheduler, ecfg.ScanSpec); err != nil {
		return err
	}
	if err := notificationJob.New(srv.l, srv.notificationUC).Register(srv.scheduler, ncfg.DueSpec); err != nil {
		return err
	}

	// Routes
	api := srv.gin.Group(Api)
	internalAPI := srv.gin.Group(InternalApi)

	slaRuleHTTP.New(srv.l, ruleUC, escalationUC, srv.discord).RegisterRoutes(api, mw)

	escH := escalationHTTP.New(srv.l, escalationUC, srv.discord)
	escH.RegisterRoutes(api, mw)
	escH.RegisterInternalRoutes(internalAPI, mw)

	alertH := alertHTTP.New(srv.l, alertUC, srv.discord)
	alertH.RegisterRoutes(api, mw)
	alertH.RegisterInternalRoutes(internalAPI, mw)

	notiH := notificationHTTP.New(srv.l, srv.notificationUC, srv.discord)
	notiH.RegisterRoutes(api, mw)
	notiH.RegisterInternalRoutes(internalAPI, mw)

	return nil
}
