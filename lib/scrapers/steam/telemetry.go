package steam

import "steamlens/lib/telemetry"

var tracer = telemetry.Tracer("steamlens.lib.scrapers.steam")
