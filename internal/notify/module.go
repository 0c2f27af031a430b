package notify

import (
	"context"

	"go.uber.org/fx"
)

// Module wires the connection registry and its shutdown hook.
var Module = fx.Options(
	fx.Provide(NewRegistry),
	fx.Provide(func(r *Registry) Publisher { return r }),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, registry *Registry) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			registry.Close()
			return nil
		},
	})
}
