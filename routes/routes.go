package routes

import (
	"bankroll/controllers/balance"
	"bankroll/controllers/group"
	"bankroll/controllers/player"
	"bankroll/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Post("/admin/groups", group.RegisterGroup)

	adminroutes := app.Group("/admin/group", middlewares.AdminAuth)
	adminroutes.Get("/", group.GroupInfo)
	adminroutes.Post("/settings", group.SaveSettings)
	adminroutes.Get("/balances", group.ListBalances)
	adminroutes.Get("/histories", group.ListHistories)

	playerroutes := app.Group("/player", middlewares.PlayerAuth)
	playerroutes.Post("/join", player.JoinGroup)
	playerroutes.Get("/me", middlewares.PlayerJoined, player.Me)
	playerroutes.Get("/ranking", middlewares.PlayerJoined, player.Ranking)
	playerroutes.Get("/calendar", middlewares.PlayerJoined, player.Calendar)
	playerroutes.Get("/balances", middlewares.PlayerJoined, balance.List)
	playerroutes.Post("/balances", middlewares.PlayerJoined, balance.Report)
	playerroutes.Put("/balances/:code", middlewares.PlayerJoined, balance.Edit)
	playerroutes.Delete("/balances/:code", middlewares.PlayerJoined, balance.Delete)
}
