package di

import (
	"go.uber.org/fx"

	"github.com/smartkart/smartkart/internal/app"
	"github.com/smartkart/smartkart/internal/config"
	"github.com/smartkart/smartkart/internal/logger"
	"github.com/smartkart/smartkart/internal/notify"
	"github.com/smartkart/smartkart/internal/pkg/auth"
	"github.com/smartkart/smartkart/internal/server/http/router"
	"github.com/smartkart/smartkart/internal/storage/postgres"
	"github.com/smartkart/smartkart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
