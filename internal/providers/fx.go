package providers

import (
	"github.com/chatgptnotes/esic-billing/internal/providers/ai"
	"github.com/chatgptnotes/esic-billing/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	ai.Module,
	pdf.Module,
)
