package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/malchin/market/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_MAIN)
