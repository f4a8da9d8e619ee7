package linker

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("prospectlink.services.linker")
