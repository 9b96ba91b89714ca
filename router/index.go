package router

import (
	"time"

	"event_planner/constants"
	"event_planner/handler"
	"event_planner/middleware"
	"event_planner/utils"
	"event_planner/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// recoveryLimiter caps recovery requests per client IP.
func recoveryLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, constants.TOO_MANY_REQUESTS, nil)
		},
	})
}

func SetupRoutes(app *fiber.App, h *handler.Handler, auth middleware.Authenticator) {
	app.Get("/health", h.Health)

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	protected := middleware.Protected(auth)
	staffOnly := middleware.RequireRole(auth, constants.ROLE_ADMIN, constants.ROLE_SUPER_ADMIN)
	superOnly := middleware.RequireRole(auth, constants.ROLE_SUPER_ADMIN)

	// catalog
	v1.Get("/packages", h.Packages)
	v1.Get("/packages/:slug", h.Package)
	v1.Get("/services", h.Services)
	v1.Get("/venues", h.Venues)
	v1.Get("/venues/:id", h.Venue)

	// public portfolio and rsvp
	gallery := v1.Group("/gallery")
	gallery.Get("/", validate.GalleryFilter(), h.PublicGallery)
	gallery.Get("/:slug", h.PublicGalleryDetail)
	gallery.Post("/:slug/like", h.LikeGallery)

	rsvp := v1.Group("/rsvp")
	rsvp.Get("/:token", h.GetInvitation)
	rsvp.Post("/:token", validate.RSVP(), h.RespondInvitation)

	authGroup := v1.Group("/auth")
	authGroup.Post("/signup", validate.SignUp(), h.SignUp)
	authGroup.Post("/signin", validate.SignIn(), h.SignIn)
	authGroup.Post("/refresh", h.Refresh)
	authGroup.Post("/signout", h.SignOut)
	authGroup.Post("/recover", recoveryLimiter(), validate.Recover(), h.Recover)
	authGroup.Post("/reset", recoveryLimiter(), validate.ResetPassword(), h.ResetPassword)
	authGroup.Get("/me", protected, h.Me)

	// signed-in users
	events := v1.Group("/events", protected)
	events.Post("/wizard", validate.WizardEvaluate(), h.EvaluateWizard)
	events.Post("/", validate.EventForm(), h.CreateEvent)
	events.Get("/", validate.EventFilter(), h.MyEvents)
	events.Get("/:id", validate.GetById("id"), h.MyEvent)
	events.Put("/:id", validate.GetById("id"), validate.EventForm(), h.UpdateMyEvent)
	events.Delete("/:id", validate.GetById("id"), h.DeleteMyEvent)

	events.Get("/:id/guests", validate.GetById("id"), validate.GuestFilter(), h.ListGuests)
	events.Post("/:id/guests", validate.GetById("id"), validate.Guest(), h.CreateGuest)
	events.Get("/:id/guests/summary", validate.GetById("id"), h.GuestSummary)
	events.Get("/:id/guests/export", validate.GetById("id"), validate.GuestFilter(), h.ExportGuests)
	events.Get("/:id/guests/:guestId", validate.GetById("id"), validate.GetById("guestId"), h.GetGuest)
	events.Put("/:id/guests/:guestId", validate.GetById("id"), validate.GetById("guestId"), validate.Guest(), h.UpdateGuest)
	events.Delete("/:id/guests/:guestId", validate.GetById("id"), validate.GetById("guestId"), h.DeleteGuest)

	messages := v1.Group("/messages", protected)
	messages.Get("/", h.MyMessages)
	messages.Post("/", validate.SendMessage(), h.SendMessage)
	messages.Get("/unread", h.MyUnreadMessages)

	notifications := v1.Group("/notifications", protected)
	notifications.Get("/", validate.Pagination(), h.Notifications)
	notifications.Get("/unread", h.UnreadNotifications)
	notifications.Patch("/read-all", h.ReadAllNotifications)
	notifications.Patch("/:id/read", validate.GetById("id"), h.ReadNotification)

	v1.Get("/ws", handler.UpgradeOnly, protected, h.UserStream())

	// staff
	admin := v1.Group("/admin", protected, staffOnly)
	admin.Get("/events", validate.EventFilter(), h.ListEvents)
	admin.Get("/events/code/:code", h.EventByCode)
	admin.Get("/events/:id", validate.GetById("id"), h.GetEvent)
	admin.Patch("/events/:id/status", validate.GetById("id"), validate.UpdateEventStatus(), h.SetEventStatus)
	admin.Patch("/events/:id/package", validate.GetById("id"), validate.UpdateEventPackage(), h.SetEventPackage)
	admin.Patch("/events/:id/services", validate.GetById("id"), validate.UpdateEventServices(), h.SetEventServices)
	admin.Post("/events/:id/convert", validate.GetById("id"), validate.ConvertEvent(), h.ConvertEvent)
	admin.Delete("/events/:id", validate.GetById("id"), h.DeleteEvent)

	admin.Get("/gallery", validate.GalleryFilter(), h.ListGallery)
	admin.Post("/gallery", validate.CreateGallery(), h.CreateGallery)
	admin.Get("/gallery/:id", validate.GetById("id"), h.GetGallery)
	admin.Put("/gallery/:id", validate.GetById("id"), validate.UpdateGallery(), h.UpdateGallery)
	admin.Patch("/gallery/:id/publish", validate.GetById("id"), validate.PublishGallery(), h.PublishGallery)
	admin.Post("/gallery/:id/images", validate.GetById("id"), h.UploadGalleryImages)
	admin.Delete("/gallery/:id", validate.GetById("id"), h.DeleteGallery)

	admin.Get("/chat", h.Conversations)
	admin.Get("/chat/:userId", validate.GetById("userId"), h.Thread)
	admin.Post("/chat/:userId", validate.GetById("userId"), validate.SendMessage(), h.Reply)

	admin.Get("/analytics", h.Analytics)
	admin.Get("/ws", handler.UpgradeOnly, h.StaffInbox())

	// super admin
	super := v1.Group("/super-admin", protected, superOnly)
	super.Get("/users", validate.UserFilter(), h.ListUsers)
	super.Patch("/users/:id/role", validate.GetById("id"), validate.UpdateRole(), h.UpdateUserRole)
	super.Get("/analytics", h.Analytics)

	app.Use(handler.NotFound)
}
