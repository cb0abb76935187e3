package bootstrap

import (
	"go.uber.org/fx"
)

// Module provides bootstrap-related components to Fx.
// Include it after the server module so the startup report follows the bind.
var Module = fx.Options(
	fx.Provide(NewWebInitializer),     // Provides the WebInitializer.
	fx.Invoke(ApplyLoggingConfigHook), // Reports the effective logging configuration.
	fx.Invoke(ReportStartupHook),      // Announces the server address once it is listening.
)
