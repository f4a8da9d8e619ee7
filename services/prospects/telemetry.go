package prospects

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("prospectlink.services.prospects")
