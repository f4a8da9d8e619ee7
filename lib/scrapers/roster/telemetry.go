package roster

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("prospectlink.scrapers.roster")
