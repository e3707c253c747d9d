package draft

import (
	"github.com/chatgptnotes/esic-billing/internal/draft/service"
	"go.uber.org/fx"
)

var Module = fx.Module("draft.service",
	fx.Provide(service.NewService),
)
