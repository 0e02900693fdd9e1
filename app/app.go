package app

import (
	"fmt"

	"bondcurve"
	"bondcurve/app/handler"
	"bondcurve/app/middleware"
	"bondcurve/internal/db"

	"github.com/gofiber/fiber/v2"
)

func Run(port int, authKey string, stg *db.Storage, engine *bondcurve.CurveEngine) {

	app := fiber.New()

	middleware.SetupMiddleware(app)

	auth := handler.NewAuthHandler(stg, authKey)
	auth.InitRoute(app)

	handler.NewCurveHandler(engine, stg).InitRoute(app)
	handler.NewTradeHandler(engine, stg, stg).InitRoute(app)
	handler.NewAdminHandler(engine, auth.AuthMiddleware).InitRoute(app)
	handler.NewEventHandler(engine, engine, engine).InitRoute(app)

	app.Listen(fmt.Sprintf(":%d", port))
}
