package routes

import (
	"canteen-backend/internal/access"
	"canteen-backend/internal/api/handlers"
	"canteen-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	AuthHandler       handlers.AuthHandler
	ProfileHandler    handlers.ProfileHandler
	CanteenHandler    handlers.CanteenHandler
	MenuHandler       handlers.MenuHandler
	OrderHandler      handlers.OrderHandler
	InvitationHandler handlers.InvitationHandler
	StaffHandler      handlers.StaffHandler
	DashboardHandler  handlers.DashboardHandler
	Middleware        middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Profile()
	c.Canteen()
	c.Menu()
	c.Orders()
	c.Invitations()
	c.Staff()
	c.Dashboard()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/signup", c.AuthHandler.SignUp)
		auth.Post("/signin", c.AuthHandler.SignIn)
		auth.Get("/confirm", c.AuthHandler.ConfirmEmail)
		auth.Get("/google", c.AuthHandler.OAuthRedirect)
		auth.Get("/google/callback", c.AuthHandler.OAuthCallback)

		auth.Post("/signout", c.Middleware.AuthMiddleware(), c.AuthHandler.SignOut)
		auth.Post("/refresh", c.Middleware.AuthMiddleware(), c.AuthHandler.RefreshSession)
		auth.Get("/session", c.Middleware.AuthMiddleware(), c.AuthHandler.GetSession)
		auth.Get("/user", c.Middleware.AuthMiddleware(), c.AuthHandler.GetUser)
	}
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware())
	{
		profile.Get("/", c.ProfileHandler.GetProfile)
		profile.Patch("/", c.ProfileHandler.UpdateProfile)
		profile.Get("/pages", c.ProfileHandler.GetPages)
	}
}

func (c *Config) Canteen() {
	canteen := c.App.Group("/api/v1/canteen", c.Middleware.AuthMiddleware())
	{
		// only an unprovisioned owner gets through, the service checks it
		canteen.Post("/", c.CanteenHandler.CreateCanteen)
		canteen.Post("/sample", c.CanteenHandler.SeedSampleData)

		canteen.Get("/", c.Middleware.RequireCanteen(), c.CanteenHandler.GetCanteen)
		canteen.Put("/", c.Middleware.RequirePermission(access.ResourceSettings), c.Middleware.RequireCanteen(), c.CanteenHandler.UpdateCanteen)
		canteen.Delete("/", c.Middleware.RequirePermission(access.ResourceSettings), c.Middleware.RequireCanteen(), c.CanteenHandler.DeleteCanteen)
	}
}

func (c *Config) Menu() {
	menu := c.App.Group("/api/v1/menu", c.Middleware.AuthMiddleware(), c.Middleware.RequireCanteen())
	// cashiers read the menu to build orders
	read := c.Middleware.RequirePermission(access.ResourceMenu, access.ResourceOrders)
	write := c.Middleware.RequirePermission(access.ResourceMenu)
	{
		menu.Get("/categories", read, c.MenuHandler.GetCategories)
		menu.Post("/categories", write, c.MenuHandler.CreateCategory)
		menu.Put("/categories/:id", write, c.MenuHandler.UpdateCategory)
		menu.Delete("/categories/:id", write, c.MenuHandler.DeleteCategory)

		menu.Get("/items", read, c.MenuHandler.GetMenuItems)
		menu.Post("/items", write, c.MenuHandler.CreateMenuItem)
		menu.Post("/items/image", write, c.MenuHandler.UploadMenuItemImage)
		menu.Put("/items/:id", write, c.MenuHandler.UpdateMenuItem)
		menu.Delete("/items/:id", write, c.MenuHandler.DeleteMenuItem)
	}
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/v1/orders",
		c.Middleware.AuthMiddleware(),
		c.Middleware.RequirePermission(access.ResourceOrders),
		c.Middleware.RequireCanteen(),
	)
	{
		orders.Get("/", c.OrderHandler.GetOrders)
		orders.Post("/", c.OrderHandler.CreateOrder)
		orders.Get("/stream", c.OrderHandler.StreamOrders)
		orders.Get("/:id", c.OrderHandler.GetOrder)
		orders.Patch("/:id/status", c.OrderHandler.UpdateOrderStatus)
	}
}

func (c *Config) Invitations() {
	invitations := c.App.Group("/api/v1/invitations")
	{
		invitations.Post("/",
			c.Middleware.AuthMiddleware(),
			c.Middleware.RequirePermission(access.ResourceStaff),
			c.Middleware.RequireCanteen(),
			c.InvitationHandler.CreateInvitation,
		)
		invitations.Post("/accept", c.InvitationHandler.AcceptInvitation)
		invitations.Get("/:token", c.InvitationHandler.GetInvitation)
	}
}

func (c *Config) Staff() {
	staff := c.App.Group("/api/v1/staff",
		c.Middleware.AuthMiddleware(),
		c.Middleware.RequirePermission(access.ResourceStaff),
		c.Middleware.RequireCanteen(),
	)
	{
		staff.Get("/", c.StaffHandler.GetStaff)
		staff.Put("/:id", c.StaffHandler.UpdateStaff)
		staff.Patch("/:id/active", c.StaffHandler.SetStaffActive)
	}
}

func (c *Config) Dashboard() {
	dashboard := c.App.Group("/api/v1/dashboard",
		c.Middleware.AuthMiddleware(),
		c.Middleware.RequirePermission(access.ResourceDashboard),
		c.Middleware.RequireCanteen(),
	)
	dashboard.Get("/", c.DashboardHandler.GetDashboard)
}
