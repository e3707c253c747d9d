package bill

import (
	"github.com/chatgptnotes/esic-billing/internal/bill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bill.service",
	fx.Provide(service.NewService),
)
