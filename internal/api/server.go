package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/colaai/colaai-api/docs"
	v1 "github.com/colaai/colaai-api/internal/api/handler/v1"
	"github.com/colaai/colaai-api/internal/api/middleware"
	"github.com/colaai/colaai-api/internal/config"
	"github.com/colaai/colaai-api/internal/payment"
	"github.com/colaai/colaai-api/internal/repository"
	"github.com/colaai/colaai-api/internal/repository/dao"
	"github.com/colaai/colaai-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth        *v1.AuthHandler
	user        *v1.UserHandler
	event       *v1.EventHandler
	category    *v1.CategoryHandler
	review      *v1.ReviewHandler
	inscription *v1.InscriptionHandler
	payment     *v1.PaymentHandler
	admin       *v1.AdminHandler
}

type repositories struct {
	users        *repository.UserRepository
	categories   *repository.CategoryRepository
	events       *repository.EventRepository
	inscriptions *repository.InscriptionRepository
	reviews      *repository.ReviewRepository
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(initRepositories(db)))

	return s
}

func initRepositories(db *gorm.DB) repositories {
	return repositories{
		users:        repository.NewUserRepository(dao.NewUserDAO(db)),
		categories:   repository.NewCategoryRepository(dao.NewCategoryDAO(db)),
		events:       repository.NewEventRepository(dao.NewEventDAO(db)),
		inscriptions: repository.NewInscriptionRepository(dao.NewInscriptionDAO(db)),
		reviews:      repository.NewReviewRepository(dao.NewReviewDAO(db)),
	}
}

func (s *Server) initHandlers(repos repositories) handlers {
	uSvc := service.NewUserService(repos.users)
	inscriptionSvc := service.NewInscriptionService(repos.inscriptions)
	paymentSvc := service.NewPaymentService(repos.events, inscriptionSvc, payment.NewSimulator(payment.DefaultLatency))

	return handlers{
		auth: v1.NewAuthHandler(s.Config.API, service.NewAuthService(repos.users)),
		user: v1.NewUserHandler(uSvc),
		event: v1.NewEventHandler(
			service.NewEventService(repos.events, repos.categories),
			service.NewStatsService(repos.events, repos.inscriptions),
			service.NewCheckInService(repos.inscriptions),
			uSvc,
		),
		category:    v1.NewCategoryHandler(service.NewCategoryService(repos.categories), uSvc),
		review:      v1.NewReviewHandler(service.NewReviewService(repos.reviews, repos.events), uSvc),
		inscription: v1.NewInscriptionHandler(inscriptionSvc, uSvc),
		payment:     v1.NewPaymentHandler(paymentSvc, uSvc),
		admin:       v1.NewAdminHandler(service.NewAdminService(repos.users, repos.events, repos.inscriptions), uSvc),
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)

		public.GET("/events", h.event.HandleListEvents)
		public.GET("/events/:eventID", h.event.HandleGetEvent)
		public.GET("/events/:eventID/reviews", h.review.HandleListReviews)
		public.GET("/categories", h.category.HandleListCategories)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/me", h.user.HandleGetMe)
		authenticated.GET("/users/:userID", h.user.HandleGetUser)

		authenticated.POST("/events", h.event.HandleCreateEvent)
		authenticated.PUT("/events/:eventID", h.event.HandleUpdateEvent)
		authenticated.DELETE("/events/:eventID", h.event.HandleDeleteEvent)
		authenticated.GET("/events/:eventID/stats", h.event.HandleGetEventStats)
		authenticated.POST("/events/:eventID/check-in", h.event.HandleCheckIn)
		authenticated.POST("/events/:eventID/reviews", h.review.HandleCreateReview)

		authenticated.POST("/categories", h.category.HandleCreateCategory)

		authenticated.GET("/inscriptions", h.inscription.HandleListInscriptions)
		authenticated.POST("/inscriptions", h.inscription.HandleCreateInscription)
		authenticated.DELETE("/inscriptions/:inscriptionID", h.inscription.HandleCancelInscription)

		authenticated.POST("/payments", h.payment.HandlePay)
	}

	admin := authenticated.Group("/admin")
	{
		admin.GET("/users", h.admin.HandleListUsers)
		admin.PATCH("/users", h.admin.HandleUpdateUserRole)
		admin.DELETE("/users", h.admin.HandleDeleteUser)
		admin.GET("/events", h.admin.HandleListAdminEvents)
		admin.GET("/stats", h.admin.HandleGetStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ColaAi API"
	docs.SwaggerInfo.Description = "Event catalog, inscriptions and payments."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
