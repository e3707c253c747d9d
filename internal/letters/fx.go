package letters

import (
	"github.com/chatgptnotes/esic-billing/internal/letters/service"
	"go.uber.org/fx"
)

var Module = fx.Module("letters.service",
	fx.Provide(service.NewService),
)
