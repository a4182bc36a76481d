package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/PoodingDev/Evento-Be/controllers"
	"github.com/PoodingDev/Evento-Be/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	// 1. AUTH / USER
	api.Post("/users", controllers.Register)
	api.Post("/auth/login", controllers.Login)
	api.Post("/auth/refresh", controllers.Refresh)

	me := api.Group("/users/me", middleware.JWTProtected())
	me.Get("/", controllers.GetMe)
	me.Put("/", controllers.UpdateMe)
	me.Delete("/", controllers.DeleteMe)

	// 2. CALENDAR
	calendar := api.Group("/calendars", middleware.JWTProtected())
	calendar.Post("/", controllers.CreateCalendar)
	calendar.Get("/search", controllers.SearchCalendars)
	calendar.Get("/admin", controllers.GetAdminCalendars)
	calendar.Get("/:calendar_id", controllers.GetCalendar)
	calendar.Put("/:calendar_id", controllers.UpdateCalendar)
	calendar.Delete("/:calendar_id", controllers.DeleteCalendar)
	calendar.Get("/:calendar_id/export.ics", controllers.ExportCalendar)

	// 3. EVENT (캘린더 하위 생성/목록, 단건은 전역 id)
	calendar.Post("/:calendar_id/events", controllers.CreateEvent)
	calendar.Post("/:calendar_id/events/public", controllers.CreatePublicEvent)
	calendar.Get("/:calendar_id/events", controllers.GetEventsForCalendar)

	event := api.Group("/events", middleware.JWTProtected())
	event.Get("/:event_id", controllers.GetEvent)
	event.Put("/:event_id", controllers.UpdateEvent)
	event.Delete("/:event_id", controllers.DeleteEvent)

	// 4. COMMENT (이벤트 하위)
	event.Get("/:event_id/comments", controllers.ListComments)
	event.Post("/:event_id/comments", controllers.CreateComment)
	event.Get("/:event_id/comments/:comment_id", controllers.GetComment)
	event.Put("/:event_id/comments/:comment_id", controllers.UpdateComment)
	event.Delete("/:event_id/comments/:comment_id", controllers.DeleteComment)

	// 5. INVITATION
	invitation := api.Group("/invitations", middleware.JWTProtected())
	invitation.Post("/", controllers.RedeemInvitation)
	invitation.Post("/send", controllers.SendInvitation)

	// 6. SUBSCRIPTION
	sub := api.Group("/subscriptions", middleware.JWTProtected())
	sub.Post("/", controllers.Subscribe)
	sub.Get("/", controllers.ListSubscriptions)
	sub.Put("/:subscription_id", controllers.UpdateSubscription)
	sub.Delete("/:subscription_id", controllers.Unsubscribe)

	// 7. FAVORITE
	favorite := api.Group("/favorites", middleware.JWTProtected())
	favorite.Post("/", controllers.CreateFavorite)
	favorite.Get("/", controllers.ListFavorites)
	favorite.Put("/:favorite_event_id", controllers.UpdateFavorite)
	favorite.Delete("/:favorite_event_id", controllers.DeleteFavorite)
}
