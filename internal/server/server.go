package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/config"
	"github.com/mkovalchuk/airport-api/internal/handlers"
	"github.com/mkovalchuk/airport-api/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/airports", handlers.ListAirports)
		public.GET("/airports/:id", handlers.GetAirport)

		public.GET("/routes", handlers.ListRoutes)
		public.GET("/routes/:id", handlers.GetRoute)

		public.GET("/airplanes", handlers.ListAirplanes)
		public.GET("/airplanes/:id", handlers.GetAirplane)

		public.GET("/flights", handlers.ListFlights)
		public.GET("/flights/:id", handlers.GetFlight)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/positions", handlers.ListPositions)
		protected.GET("/positions/:id", handlers.GetPosition)

		protected.GET("/crew-members", handlers.ListCrewMembers)
		protected.GET("/crew-members/:id", handlers.GetCrewMember)

		protected.GET("/airplane-types", handlers.ListAirplaneTypes)
		protected.GET("/airplane-types/:id", handlers.GetAirplaneType)

		orders := protected.Group("/orders")
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.ListOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.DELETE("/:id", handlers.DeleteOrder)
			orders.GET("/:id/tickets/:ticketId/qr", handlers.GenerateTicketQR)
		}
	}

	admin := r.Group("/v1")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminRequired())
	{
		registerAdminCRUD(admin, "/positions",
			handlers.CreatePosition, handlers.UpdatePosition, handlers.DeletePosition)
		registerAdminCRUD(admin, "/crew-members",
			handlers.CreateCrewMember, handlers.UpdateCrewMember, handlers.DeleteCrewMember)
		registerAdminCRUD(admin, "/airplane-types",
			handlers.CreateAirplaneType, handlers.UpdateAirplaneType, handlers.DeleteAirplaneType)
		registerAdminCRUD(admin, "/airplanes",
			handlers.CreateAirplane, handlers.UpdateAirplane, handlers.DeleteAirplane)
		registerAdminCRUD(admin, "/airports",
			handlers.CreateAirport, handlers.UpdateAirport, handlers.DeleteAirport)
		registerAdminCRUD(admin, "/routes",
			handlers.CreateRoute, handlers.UpdateRoute, handlers.DeleteRoute)
		registerAdminCRUD(admin, "/flights",
			handlers.CreateFlight, handlers.UpdateFlight, handlers.DeleteFlight)
	}
}

// registerAdminCRUD wires the write verbs for one resource. PUT replaces the
// whole record; PATCH goes through the same handler, which pre-fills the
// request from the stored record so absent fields keep their values.
func registerAdminCRUD(group *gin.RouterGroup, path string, create, update, destroy gin.HandlerFunc) {
	group.POST(path, create)
	group.PUT(path+"/:id", update)
	group.PATCH(path+"/:id", update)
	group.DELETE(path+"/:id", destroy)
}
