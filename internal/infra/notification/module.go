package notification

import "go.uber.org/fx"

// Module provides the email and SMS senders.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewMailer, NewSMSSender),
)
