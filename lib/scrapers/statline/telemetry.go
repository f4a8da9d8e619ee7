package statline

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("prospectlink.scrapers.statline")
