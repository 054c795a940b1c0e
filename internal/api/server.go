package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/findlocalfirewood/firewood-api/docs"
	v1 "github.com/findlocalfirewood/firewood-api/internal/api/handler/v1"
	"github.com/findlocalfirewood/firewood-api/internal/api/middleware"
	"github.com/findlocalfirewood/firewood-api/internal/config"
	"github.com/findlocalfirewood/firewood-api/internal/events"
	"github.com/findlocalfirewood/firewood-api/internal/geocode"
	"github.com/findlocalfirewood/firewood-api/internal/notify"
	"github.com/findlocalfirewood/firewood-api/internal/repository"
	"github.com/findlocalfirewood/firewood-api/internal/repository/dao"
	"github.com/findlocalfirewood/firewood-api/internal/service"
	"github.com/findlocalfirewood/firewood-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Feed   *v1.FeedHub

	events events.Emitter
}

type handlers struct {
	auth     *v1.AuthHandler
	profile  *v1.ProfileHandler
	stand    *v1.StandHandler
	checkIn  *v1.CheckInHandler
	photo    *v1.PhotoHandler
	geocode  *v1.GeocodeHandler
	admin    *v1.AdminHandler
	localDir string
}

func NewServer(ctx context.Context, conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	engine.MaxMultipartMemory = conf.Photos.SubmissionMaxBytes

	emitter, err := events.Connect(conf.NATS)
	if err != nil {
		return nil, fmt.Errorf("events.Connect -> %w", err)
	}

	s := &Server{
		Config: conf,
		Router: engine,
		Feed:   v1.NewFeedHub(conf.API.AllowedCORSDomains),
		events: emitter,
	}

	h, err := s.initHandlers(ctx, db)
	if err != nil {
		_ = emitter.Close()
		return nil, err
	}

	s.MountMiddlewares()
	s.MountHandlers(h)

	return s, nil
}

func (s *Server) initHandlers(ctx context.Context, db *gorm.DB) (handlers, error) {
	profileRepo := repository.NewProfileRepository(dao.NewProfileDAO(db))
	standRepo := repository.NewStandRepository(dao.NewStandDAO(db))
	checkInRepo := repository.NewCheckInRepository(dao.NewVerificationDAO(db))

	store, err := storage.New(ctx, s.Config.Storage)
	if err != nil {
		return handlers{}, fmt.Errorf("storage.New -> %w", err)
	}

	notifier, err := notify.New(s.Config.Telegram)
	if err != nil {
		return handlers{}, fmt.Errorf("notify.New -> %w", err)
	}

	wizard := service.NewWizard(s.Config.Photos.MaxCount)
	profileSvc := service.NewProfileService(profileRepo)
	standSvc := service.NewStandService(standRepo, checkInRepo, profileRepo, wizard, s.Config.CheckIn, s.events, notifier)
	checkInSvc := service.NewCheckInService(checkInRepo, standRepo, profileRepo, s.Config.CheckIn, s.events, s.Feed)

	h := handlers{
		auth:    v1.NewAuthHandler(s.Config.API, service.NewAuthService(profileRepo)),
		profile: v1.NewProfileHandler(profileSvc),
		stand:   v1.NewStandHandler(standSvc, wizard),
		checkIn: v1.NewCheckInHandler(checkInSvc),
		photo:   v1.NewPhotoHandler(service.NewPhotoService(store, s.Config.Photos)),
		geocode: v1.NewGeocodeHandler(geocode.NewClient(s.Config.Geocode)),
		admin:   v1.NewAdminHandler(standSvc, profileSvc),
	}
	if local, ok := store.(*storage.LocalStore); ok {
		h.localDir = local.Dir()
	}

	return h, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authn := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", h.auth.HandleSignup)
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	profiles := s.Router.Group(basePath, authn.VerifyJWT())
	{
		profiles.GET("/profiles/me", h.profile.HandleGetMe)
		profiles.PATCH("/profiles/me", h.profile.HandleUpdateMe)
	}

	public := s.Router.Group(basePath, authn.OptionalJWT())
	{
		public.GET("/stands", h.stand.HandleListStands)
		public.GET("/stands/:standID", h.stand.HandleGetStand)
		public.POST("/stands", h.stand.HandleCreateStand)
		public.POST("/stands/form/validate", h.stand.HandleValidateForm)
		public.POST("/stands/wizard/steps/:step", h.stand.HandleWizardStep)
		public.POST("/stands/wizard", h.stand.HandleSubmitWizard)

		public.GET("/stands/:standID/checkins", h.checkIn.HandleListCheckIns)
		public.POST("/stands/:standID/checkins", h.checkIn.HandleCreateCheckIn)
		public.GET("/checkins/quota", h.checkIn.HandleGetQuota)
		public.GET("/stands/:standID/feed", s.Feed.HandleFeed)

		public.POST("/photos", h.photo.HandleUploadPhotos)

		public.GET("/geocode", h.geocode.HandleSearch)
		public.GET("/geocode/reverse", h.geocode.HandleReverse)
	}

	admin := s.Router.Group(basePath+"/admin", authn.VerifyJWT(), h.admin.RequireAdmin())
	{
		admin.GET("/stands/pending", h.admin.HandleListPending)
		admin.PATCH("/stands/:standID/approve", h.admin.HandleApproveStand)
	}

	if h.localDir != "" {
		s.Router.Static("/uploads", h.localDir)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "FindLocalFirewood API"
	docs.SwaggerInfo.Description = "Directory of roadside firewood stands: listings, check-ins and submissions."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Close flushes pending events. The feed hub stops with the context
// passed to its Run.
func (s *Server) Close() {
	if err := s.events.Close(); err != nil {
		zap.L().Warn("closing event publisher", zap.Error(err))
	}
}
