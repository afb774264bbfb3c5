package main

import (
	"steamlens/cmd/steamlens/commands"
	"steamlens/lib/cliutil"
	"steamlens/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	ctx := cliutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "steamlens")
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
